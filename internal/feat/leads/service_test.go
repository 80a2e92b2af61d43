package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kozmoai/site/internal/testutil"
	"github.com/kozmoai/site/pkg/kz/config"
	"github.com/kozmoai/site/pkg/kz/logger"
)

func TestCreateDemoRequestAssignsIDAndTime(t *testing.T) {
	store := &stubStore{}
	svc := newStubService(store, time.Second)

	req := &DemoRequest{Name: "Al", Email: "al@x.com", SubscribeToNewsletter: true}
	require.NoError(t, svc.CreateDemoRequest(context.Background(), req))

	assert.NotEqual(t, uuid.Nil, req.ID)
	assert.Equal(t, fixedNow, req.CreatedAt)
	require.Equal(t, 1, store.count())
	assert.Equal(t, req.ID, store.last().ID)
}

func TestCreateDemoRequestStoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newStubService(&stubStore{err: boom}, time.Second)

	err := svc.CreateDemoRequest(context.Background(), &DemoRequest{Name: "Al", Email: "al@x.com"})

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.False(t, pe.Timeout)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestCreateDemoRequestTimesOutWhenStoreHangs(t *testing.T) {
	store := &stubStore{release: make(chan struct{}), ignoreCtx: true}
	t.Cleanup(func() { close(store.release) })
	svc := newStubService(store, 30*time.Millisecond)

	start := time.Now()
	err := svc.CreateDemoRequest(context.Background(), &DemoRequest{Name: "Al", Email: "al@x.com"})

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.True(t, IsPersistenceError(err))
}

func TestCreateDemoRequestCancelsStoreOnTimeout(t *testing.T) {
	store := &stubStore{release: make(chan struct{})}
	t.Cleanup(func() { close(store.release) })
	svc := newStubService(store, 30*time.Millisecond)

	err := svc.CreateDemoRequest(context.Background(), &DemoRequest{Name: "Al", Email: "al@x.com"})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestListDemoRequestsClampsLimit(t *testing.T) {
	store := &stubStore{}
	svc := newStubService(store, time.Second)
	for range 3 {
		require.NoError(t, svc.CreateDemoRequest(context.Background(), &DemoRequest{Name: "Al", Email: "al@x.com"}))
	}

	got, err := svc.ListDemoRequests(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = svc.ListDemoRequests(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestServiceOverSQLite(t *testing.T) {
	db, err := testutil.NewTestDB()
	require.NoError(t, err)
	defer db.Close()

	cfg := &config.Config{Leads: config.LeadsConfig{SubmitTimeout: time.Second}}
	svc := NewService(&testutil.TestDBProvider{DB: db}, cfg, logger.NewNoopLogger())
	require.NoError(t, svc.Start(context.Background()))

	req, errs := Validate(FormInput{Name: "Al", Email: "al@x.com", Company: " Acme "})
	require.False(t, errs.HasErrors())
	require.NoError(t, svc.CreateDemoRequest(context.Background(), req))

	got, err := svc.ListDemoRequests(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, req.ID, got[0].ID)
	assert.Equal(t, "Acme", got[0].Company)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestServiceStartWithoutStore(t *testing.T) {
	svc := NewService(nil, &config.Config{}, logger.NewNoopLogger())
	assert.Error(t, svc.Start(context.Background()))
}

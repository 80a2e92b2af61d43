package leads

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kozmoai/site/pkg/kz/model"
)

// Store is the persistence boundary for demo requests.
type Store interface {
	Insert(ctx context.Context, req *DemoRequest) error
	List(ctx context.Context, limit int) ([]*DemoRequest, error)
}

const (
	insertDemoRequest = `INSERT INTO demo_requests
	(id, name, email, company, message, subscribe_to_newsletter, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	listDemoRequests = `SELECT id, name, email, company, message, subscribe_to_newsletter, created_at
	FROM demo_requests
	ORDER BY created_at DESC
	LIMIT ?`
)

// SQLStore stores demo requests in the demo_requests table of either
// supported driver.
type SQLStore struct {
	db       *sql.DB
	postgres bool
}

// NewSQLStore creates a store over db. driver is "sqlite" or "postgres".
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, postgres: driver == "postgres"}
}

func (s *SQLStore) Insert(ctx context.Context, req *DemoRequest) error {
	_, err := s.db.ExecContext(ctx, s.rebind(insertDemoRequest),
		req.ID.String(),
		req.Name,
		req.Email,
		model.NewNullString(req.Company),
		model.NewNullString(req.Message),
		req.SubscribeToNewsletter,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("cannot insert demo request: %w", err)
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context, limit int) ([]*DemoRequest, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(listDemoRequests), limit)
	if err != nil {
		return nil, fmt.Errorf("cannot list demo requests: %w", err)
	}
	defer rows.Close()

	var out []*DemoRequest
	for rows.Next() {
		var (
			id               string
			company, message sql.NullString
			createdAt        time.Time
			req              DemoRequest
		)
		if err := rows.Scan(&id, &req.Name, &req.Email, &company, &message,
			&req.SubscribeToNewsletter, &createdAt); err != nil {
			return nil, fmt.Errorf("cannot scan demo request: %w", err)
		}
		parsed, err := model.ParseID(id)
		if err != nil {
			return nil, fmt.Errorf("cannot read demo request: %w", err)
		}
		req.ID = parsed
		req.Company = model.StringFromNull(company)
		req.Message = model.StringFromNull(message)
		req.CreatedAt = createdAt.UTC()
		out = append(out, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot list demo requests: %w", err)
	}
	return out, nil
}

// rebind turns ? placeholders into $n for Postgres.
func (s *SQLStore) rebind(query string) string {
	if !s.postgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

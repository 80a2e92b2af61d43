package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidID is returned by ParseID for anything but a canonical, non-nil ID.
var ErrInvalidID = errors.New("invalid id")

// NewID returns a random (version 4) ID.
func NewID() uuid.UUID {
	return uuid.New()
}

// ParseID reads an ID written by NewID's String form: lowercase and
// hyphenated. Braced, URN, unhyphenated and uppercase spellings are rejected,
// as is the nil UUID, so an accepted value always round-trips unchanged
// through cookies and the database.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil || id.String() != s {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

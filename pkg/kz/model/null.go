package model

import (
	"database/sql"
	"strings"
)

// NewNullString maps an empty (or blank) string to SQL NULL.
func NewNullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// StringFromNull returns the string value, or "" for NULL.
func StringFromNull(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

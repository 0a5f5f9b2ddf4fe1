package database

import "errors"

var (
	// ErrMissingField is returned when a handle or message body is empty.
	ErrMissingField = errors.New("username and message are required")
	// ErrStoreUnavailable wraps any failure to open, create or query the messages table.
	ErrStoreUnavailable = errors.New("message store unavailable")
	// ErrNoMessages is returned by Sample when the table exists but holds no rows.
	ErrNoMessages = errors.New("no messages stored")
)

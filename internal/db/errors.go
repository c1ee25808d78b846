package db

import "errors"

// ErrKeyNotFound signals a missing key.
var ErrKeyNotFound = errors.New("db: key not found")

// Redis command names recorded in Error.Op.
const (
	OpGet = "GET"
	OpSet = "SET"
)

// Error is a failed command on Key.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return "db " + e.Op + ": " + e.Err.Error()
	}
	return "db " + e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

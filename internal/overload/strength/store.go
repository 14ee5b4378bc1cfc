package strength

import (
	"context"
	"errors"
)

var (
	ErrTooManyConflicts = errors.New("too many concurrent writes for the same exercise")
	ErrDuplicateRecord  = errors.New("record id already stored")
)

// Key identifies one history: a user's records for a single exercise.
type Key struct {
	UserID     string
	ExerciseID string
}

// BuildFunc receives the key's history, oldest first, and returns the record
// to append. It must not retain or modify the slice.
type BuildFunc func(history []Record) (Record, error)

// Store is the system of record for strength histories.
//
// Append must be an atomic read-modify-write for its key: no other Append for
// the same key may interleave between reading the history handed to build and
// appending its result. Appends to different keys must not block each other.
type Store interface {
	Append(ctx context.Context, key Key, build BuildFunc) (Record, error)
	// History returns the key's records, oldest first.
	History(ctx context.Context, key Key) ([]Record, error)
	// UserRecords returns the records of all the user's exercises, in no particular order.
	UserRecords(ctx context.Context, userID string) ([]Record, error)
}

package storage

import (
	"context"
	"time"
)

// Record is the per-email send history: every subject successfully delivered
// to that address across the lifetime of the store. An email has at most one
// record; the subject set only ever grows.
type Record struct {
	Email    string
	Subjects []string
}

// Failure is one entry in the append-only failed-send log. The same email may
// recur across runs and attempts.
type Failure struct {
	Email string
	At    time.Time
}

// Store is the persistent send-history API used by the planner (bulk snapshot
// read) and the dispatch engine (one write per outcome).
//
// AddSubject is the success-path upsert: it creates the record on first
// contact and is a no-op for an (email, subject) pair already present.
type Store interface {
	FindAll(ctx context.Context) ([]Record, error)
	FindByEmail(ctx context.Context, email string) (*Record, error)
	AddSubject(ctx context.Context, email, subject string) error
	AppendFailure(ctx context.Context, email string, at time.Time) error
	Failures(ctx context.Context, email string) ([]Failure, error)
	Close() error
}

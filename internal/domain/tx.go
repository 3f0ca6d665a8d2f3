package domain

import (
	"context"
	"errors"
)

// TransactionManager runs fn with every repository call inside a single
// database transaction. Multi-entity writes (order + items + stock,
// account + profile) go through this instead of best-effort sequences.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Sentinel errors shared across repositories.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository loads and saves the whole application state. There are no
// partial writes: Save replaces every key at once.
type Repository interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, st State) error
	Close() error
}

// Backuper is implemented by repositories that can copy their stored data
// aside before it is overwritten. Backup returns where the copy went, or ""
// when there was nothing to copy.
type Backuper interface {
	Backup(ctx context.Context) (string, error)
}

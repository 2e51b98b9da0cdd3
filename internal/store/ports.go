// Package store defines the outbound ports for application persistence.
package store

import (
	"context"
	"errors"

	"grantcalc/internal/core"
)

// ErrNotFound is returned when no application exists for a number.
var ErrNotFound = errors.New("application not found")

type (
	// ApplicationWriter persists the raw input snapshot. Saving the same
	// application number again replaces the previous snapshot.
	ApplicationWriter interface {
		Save(ctx context.Context, app core.Application) error
	}

	// ApplicationReader loads persisted snapshots.
	ApplicationReader interface {
		// Get returns the snapshot for an application number, or ErrNotFound.
		Get(ctx context.Context, number string) (core.Application, error)
		// List returns all saved application numbers, sorted.
		List(ctx context.Context) ([]string, error)
	}
)

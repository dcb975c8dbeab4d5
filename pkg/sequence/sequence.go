// Package sequence provides countable, ordered collections of set entities
// that support windowed fetches.
package sequence

import (
	"context"

	"github.com/hashicorp-forge/hermes-oai/pkg/setspec"
)

// Entity is a community or collection as read from storage.
type Entity struct {
	// ID is the storage key. Providers order entities by ascending ID.
	ID uint

	// Handle is the persistent identifier (e.g., "123456789/2").
	Handle string

	// Name is the display name. It may be empty.
	Name string

	// Kind is the entity kind.
	Kind setspec.Kind
}

// Provider is a countable collection of entities with a stable order.
type Provider interface {
	// Count returns the number of entities in the collection.
	Count(ctx context.Context) (int, error)

	// Fetch returns up to limit entities starting at offset. Fewer entities
	// are returned near the end of the collection; an offset past the end
	// returns an empty slice and no error.
	Fetch(ctx context.Context, offset, limit int) ([]Entity, error)
}

// ProviderFuncs is a function adapter that implements the Provider
// interface.
type ProviderFuncs struct {
	CountFunc func(ctx context.Context) (int, error)
	FetchFunc func(ctx context.Context, offset, limit int) ([]Entity, error)
}

// Count implements Provider.
func (p ProviderFuncs) Count(ctx context.Context) (int, error) {
	return p.CountFunc(ctx)
}

// Fetch implements Provider.
func (p ProviderFuncs) Fetch(ctx context.Context, offset, limit int) ([]Entity, error) {
	return p.FetchFunc(ctx, offset, limit)
}

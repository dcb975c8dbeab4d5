// Package handle resolves persistent handles to the entities they name.
package handle

import (
	"context"

	"github.com/hashicorp-forge/hermes-oai/pkg/sequence"
)

// Resolver resolves a handle to an entity. A nil entity with a nil error
// means the handle is not registered.
type Resolver interface {
	Resolve(ctx context.Context, handle string) (*sequence.Entity, error)
}

// ResolverFunc is a function adapter that implements the Resolver interface.
type ResolverFunc func(ctx context.Context, handle string) (*sequence.Entity, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, handle string) (*sequence.Entity, error) {
	return f(ctx, handle)
}

// MapResolver is an in-memory Resolver keyed by handle.
type MapResolver map[string]sequence.Entity

// NewMapResolver builds a resolver from a list of entities.
func NewMapResolver(entities ...sequence.Entity) MapResolver {
	m := make(MapResolver, len(entities))
	for _, e := range entities {
		m[e.Handle] = e
	}
	return m
}

// Resolve implements Resolver.
func (m MapResolver) Resolve(ctx context.Context, handle string) (*sequence.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := m[handle]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

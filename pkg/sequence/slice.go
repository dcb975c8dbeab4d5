package sequence

import (
	"context"
	"sort"
)

// Slice is an in-memory Provider.
type Slice struct {
	entities []Entity
}

// NewSlice creates an in-memory provider. Entities are copied and sorted by
// ID.
func NewSlice(entities []Entity) *Slice {
	sorted := make([]Entity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return &Slice{entities: sorted}
}

// Count implements Provider.
func (s *Slice) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, newError("Count", "", err)
	}
	return len(s.entities), nil
}

// Fetch implements Provider.
func (s *Slice) Fetch(ctx context.Context, offset, limit int) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError("Fetch", "", err)
	}
	if offset < 0 || limit <= 0 || offset >= len(s.entities) {
		return []Entity{}, nil
	}

	end := len(s.entities)
	if limit < end-offset {
		end = offset + limit
	}

	result := make([]Entity, end-offset)
	copy(result, s.entities[offset:end])
	return result, nil
}

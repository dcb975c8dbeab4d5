package setrepo

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/hermes-oai/pkg/handle"
	"github.com/hashicorp-forge/hermes-oai/pkg/sequence"
	"github.com/hashicorp-forge/hermes-oai/pkg/setspec"
)

// Config holds the collaborators of a Repository.
type Config struct {
	// Communities serves the first part of the listing.
	Communities sequence.Provider

	// Collections serves the part of the listing after all communities.
	Collections sequence.Provider

	// Resolver resolves handles for existence checks.
	Resolver handle.Resolver

	// Logger is optional.
	Logger hclog.Logger
}

// source pairs a provider with the kind of entity it serves.
type source struct {
	provider sequence.Provider
	kind     setspec.Kind
}

// Repository lists sets and checks set existence. It holds no mutable state
// and is safe for concurrent use.
type Repository struct {
	communities source
	collections source
	resolver    handle.Resolver
	logger      hclog.Logger
}

// New creates a Repository.
func New(cfg Config) (*Repository, error) {
	if cfg.Communities == nil {
		return nil, errors.New("community provider is required")
	}
	if cfg.Collections == nil {
		return nil, errors.New("collection provider is required")
	}
	if cfg.Resolver == nil {
		return nil, errors.New("handle resolver is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Repository{
		communities: source{provider: cfg.Communities, kind: setspec.KindCommunity},
		collections: source{provider: cfg.Collections, kind: setspec.KindCollection},
		resolver:    cfg.Resolver,
		logger:      logger.Named("sets"),
	}, nil
}

// SupportsSets reports whether set listing is available. It is always true
// for a Repository.
func (r *Repository) SupportsSets() bool {
	return true
}

// List returns up to length sets starting at offset in the combined
// sequence of communities followed by collections.
//
// Invalid windows (negative offset or non-positive length) yield an empty
// result. Storage failures are logged and the failing side is treated as
// empty, so List always returns a well-formed result.
func (r *Repository) List(ctx context.Context, offset, length int) ListResult {
	if offset < 0 || length <= 0 {
		r.logger.Debug("ignoring invalid set window",
			"offset", offset,
			"length", length,
		)
		return ListResult{Sets: []Set{}}
	}

	r.logger.Debug("querying sets", "offset", offset, "length", length)

	communityCount := r.count(ctx, r.communities)
	collectionCount := r.count(ctx, r.collections)
	total := communityCount + collectionCount

	r.logger.Debug("counted sets",
		"communities", communityCount,
		"collections", collectionCount,
	)

	if offset >= total {
		return ListResult{Sets: []Set{}, Total: total}
	}

	var sets []Set
	if offset < communityCount {
		sets = r.fetch(ctx, r.communities, offset, length)

		// The window runs past the last community: fill the remainder with
		// leading collections. The remainder is based on what was actually
		// fetched, not on the community count.
		if length > communityCount-offset {
			if remaining := length - len(sets); remaining > 0 {
				sets = append(sets, r.fetch(ctx, r.collections, 0, remaining)...)
			}
		}
	} else {
		sets = r.fetch(ctx, r.collections, offset-communityCount, length)
	}

	hasMore := length < total-offset

	r.logger.Debug("listed sets",
		"returned", len(sets),
		"total", total,
		"has_more", hasMore,
	)

	return ListResult{
		HasMore: hasMore,
		Sets:    sets,
		Total:   total,
	}
}

// Exists reports whether spec names an existing community or collection.
// Resolution errors are logged and reported as false.
func (r *Repository) Exists(ctx context.Context, spec string) bool {
	h := setspec.Decode(spec)

	e, err := r.resolver.Resolve(ctx, h)
	if err != nil {
		r.logger.Error("error resolving set spec",
			"spec", spec,
			"handle", h,
			"error", err,
		)
		return false
	}
	if e == nil {
		return false
	}

	return e.Kind.IsSetKind()
}

// count returns the number of entities in src, or zero if the count fails.
func (r *Repository) count(ctx context.Context, src source) int {
	n, err := src.provider.Count(ctx)
	if err != nil {
		r.logger.Error("error counting sets",
			"kind", src.kind,
			"error", err,
		)
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// fetch returns at most limit sets from src starting at offset, or none if
// the fetch fails.
func (r *Repository) fetch(ctx context.Context, src source, offset, limit int) []Set {
	entities, err := src.provider.Fetch(ctx, offset, limit)
	if err != nil {
		r.logger.Error("error fetching sets",
			"kind", src.kind,
			"offset", offset,
			"limit", limit,
			"error", err,
		)
		return []Set{}
	}
	if len(entities) > limit {
		entities = entities[:limit]
	}
	return projectAll(entities, src.kind)
}

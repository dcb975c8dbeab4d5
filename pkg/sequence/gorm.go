package sequence

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/hermes-oai/pkg/models"
	"github.com/hashicorp-forge/hermes-oai/pkg/setspec"
)

// GormProvider serves entities of one kind from a database table, ordered
// by primary key.
type GormProvider struct {
	db     *gorm.DB
	model  interface{}
	kind   setspec.Kind
	logger hclog.Logger
}

// row is the projection read from community and collection tables.
type row struct {
	ID     uint
	Handle string
	Name   string
}

// NewGormProvider creates a provider over the table backing model.
func NewGormProvider(db *gorm.DB, model interface{}, kind setspec.Kind, logger hclog.Logger) (*GormProvider, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	if !kind.IsSetKind() {
		return nil, fmt.Errorf("invalid set kind: %s", kind)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &GormProvider{
		db:     db,
		model:  model,
		kind:   kind,
		logger: logger.Named(kind.String()),
	}, nil
}

// NewCommunityProvider creates a provider over the communities table.
func NewCommunityProvider(db *gorm.DB, logger hclog.Logger) (*GormProvider, error) {
	return NewGormProvider(db, &models.Community{}, setspec.KindCommunity, logger)
}

// NewCollectionProvider creates a provider over the collections table.
func NewCollectionProvider(db *gorm.DB, logger hclog.Logger) (*GormProvider, error) {
	return NewGormProvider(db, &models.Collection{}, setspec.KindCollection, logger)
}

// Count implements Provider.
func (p *GormProvider) Count(ctx context.Context) (int, error) {
	var count int64
	if err := p.db.
		WithContext(ctx).
		Model(p.model).
		Count(&count).
		Error; err != nil {
		return 0, newError("Count", p.kind, fmt.Errorf("%w: %w", ErrStorageUnavailable, err))
	}

	p.logger.Trace("counted entities", "count", count)
	return int(count), nil
}

// Fetch implements Provider.
func (p *GormProvider) Fetch(ctx context.Context, offset, limit int) ([]Entity, error) {
	if offset < 0 || limit <= 0 {
		return []Entity{}, nil
	}

	var rows []row
	if err := p.db.
		WithContext(ctx).
		Model(p.model).
		Select("id", "handle", "name").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).
		Error; err != nil {
		return nil, newError("Fetch", p.kind, fmt.Errorf("%w: %w", ErrStorageUnavailable, err))
	}

	entities := make([]Entity, 0, len(rows))
	for _, r := range rows {
		entities = append(entities, Entity{
			ID:     r.ID,
			Handle: r.Handle,
			Name:   r.Name,
			Kind:   p.kind,
		})
	}

	p.logger.Trace("fetched entities",
		"offset", offset,
		"limit", limit,
		"returned", len(entities),
	)
	return entities, nil
}

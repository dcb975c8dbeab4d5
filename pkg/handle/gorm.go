package handle

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/hermes-oai/pkg/models"
	"github.com/hashicorp-forge/hermes-oai/pkg/sequence"
	"github.com/hashicorp-forge/hermes-oai/pkg/setspec"
)

// GormResolver resolves handles through the handles table.
type GormResolver struct {
	db     *gorm.DB
	logger hclog.Logger
}

// NewGormResolver creates a database-backed resolver.
func NewGormResolver(db *gorm.DB, logger hclog.Logger) (*GormResolver, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GormResolver{db: db, logger: logger.Named("handle")}, nil
}

// Resolve implements Resolver.
func (r *GormResolver) Resolve(ctx context.Context, handle string) (*sequence.Entity, error) {
	if handle == "" {
		return nil, nil
	}

	db := r.db.WithContext(ctx)

	h := &models.Handle{}
	if err := h.GetByHandle(db, handle); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up handle %q: %w", handle, err)
	}

	switch h.ResourceTypeID {
	case models.ResourceTypeCommunity:
		c := &models.Community{}
		if err := c.Get(db, h.ResourceID); err != nil {
			return r.missing(h, err)
		}
		return &sequence.Entity{
			ID:     c.ID,
			Handle: c.Handle,
			Name:   c.Name,
			Kind:   setspec.KindCommunity,
		}, nil

	case models.ResourceTypeCollection:
		c := &models.Collection{}
		if err := c.Get(db, h.ResourceID); err != nil {
			return r.missing(h, err)
		}
		return &sequence.Entity{
			ID:     c.ID,
			Handle: c.Handle,
			Name:   c.Name,
			Kind:   setspec.KindCollection,
		}, nil

	case models.ResourceTypeItem:
		return &sequence.Entity{
			ID:     h.ResourceID,
			Handle: h.Handle,
			Kind:   setspec.KindItem,
		}, nil

	default:
		r.logger.Debug("handle references unsupported resource type",
			"handle", handle,
			"resource_type", h.ResourceTypeID.String(),
		)
		return nil, nil
	}
}

// missing handles a handle whose target row could not be loaded. A deleted
// target is not an error.
func (r *GormResolver) missing(h *models.Handle, err error) (*sequence.Entity, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Debug("handle target not found",
			"handle", h.Handle,
			"resource_type", h.ResourceTypeID.String(),
			"resource_id", h.ResourceID,
		)
		return nil, nil
	}
	return nil, fmt.Errorf("error loading %s %d for handle %q: %w",
		h.ResourceTypeID, h.ResourceID, h.Handle, err)
}

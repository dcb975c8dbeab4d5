package models

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Community is a top-level organizational node. Communities are listed as
// sets ahead of collections.
type Community struct {
	gorm.Model

	// Handle is the persistent identifier (e.g., "123456789/2").
	Handle string `gorm:"uniqueIndex;not null"`

	// Name is the display name.
	Name string `gorm:"not null"`

	// ShortDescription is an optional one-line description.
	ShortDescription *string

	// ParentID references the parent community for sub-communities.
	ParentID *uint
	Parent   *Community `gorm:"foreignKey:ParentID"`

	// Collections are the collections owned by this community.
	Collections []Collection
}

// Create creates a community and registers its handle.
func (c *Community) Create(db *gorm.DB) error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Handle, validation.Required, handleRule),
		validation.Field(&c.Name, validation.Required),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Omit(clause.Associations).
			Create(c).
			Error; err != nil {
			return fmt.Errorf("error creating community: %w", err)
		}

		h := &Handle{
			Handle:         c.Handle,
			ResourceTypeID: ResourceTypeCommunity,
			ResourceID:     c.ID,
		}
		if err := h.Create(tx); err != nil {
			return fmt.Errorf("error registering community handle: %w", err)
		}

		return nil
	})
}

// Get retrieves a community by ID.
func (c *Community) Get(db *gorm.DB, id uint) error {
	if err := validation.Validate(id, validation.Required); err != nil {
		return err
	}

	return db.
		First(c, id).
		Error
}

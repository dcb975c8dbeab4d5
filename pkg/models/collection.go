package models

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection holds items and belongs to a community.
type Collection struct {
	gorm.Model

	// Handle is the persistent identifier (e.g., "123456789/7").
	Handle string `gorm:"uniqueIndex;not null"`

	// Name is the display name.
	Name string `gorm:"not null"`

	// ShortDescription is an optional one-line description.
	ShortDescription *string

	// CommunityID references the owning community.
	CommunityID uint `gorm:"not null"`
	Community   Community
}

// Create creates a collection and registers its handle.
func (c *Collection) Create(db *gorm.DB) error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Handle, validation.Required, handleRule),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.CommunityID, validation.Required),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Omit(clause.Associations).
			Create(c).
			Error; err != nil {
			return fmt.Errorf("error creating collection: %w", err)
		}

		h := &Handle{
			Handle:         c.Handle,
			ResourceTypeID: ResourceTypeCollection,
			ResourceID:     c.ID,
		}
		if err := h.Create(tx); err != nil {
			return fmt.Errorf("error registering collection handle: %w", err)
		}

		return nil
	})
}

// Get retrieves a collection by ID.
func (c *Collection) Get(db *gorm.DB, id uint) error {
	if err := validation.Validate(id, validation.Required); err != nil {
		return err
	}

	return db.
		First(c, id).
		Error
}

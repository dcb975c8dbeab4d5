package models

import (
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// ResourceType identifies the table a handle points into. Values match the
// resource type IDs used by existing repository databases.
type ResourceType int

const (
	ResourceTypeItem       ResourceType = 2
	ResourceTypeCollection ResourceType = 3
	ResourceTypeCommunity  ResourceType = 4
)

// String returns a readable name for the resource type.
func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeItem:
		return "item"
	case ResourceTypeCollection:
		return "collection"
	case ResourceTypeCommunity:
		return "community"
	default:
		return fmt.Sprintf("unknown(%d)", int(rt))
	}
}

// handleRule rejects '_', which set specs use in place of '/'. A handle
// containing it could not be recovered from its set spec.
var handleRule = validation.Match(regexp.MustCompile(`^[^_]*$`)).
	Error("must not contain '_'")

// Handle maps a persistent identifier to the row it names.
type Handle struct {
	ID uint `gorm:"primaryKey"`

	// Handle is the persistent identifier (e.g., "123456789/2").
	Handle string `gorm:"uniqueIndex;not null"`

	// ResourceTypeID is the type of the referenced row.
	ResourceTypeID ResourceType `gorm:"not null"`

	// ResourceID is the primary key of the referenced row.
	ResourceID uint `gorm:"not null"`

	CreatedAt time.Time
}

// Create registers a handle.
func (h *Handle) Create(db *gorm.DB) error {
	if err := validation.ValidateStruct(h,
		validation.Field(&h.Handle, validation.Required, handleRule),
		validation.Field(&h.ResourceTypeID, validation.Required),
		validation.Field(&h.ResourceID, validation.Required),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	return db.Create(h).Error
}

// GetByHandle retrieves a handle record by its handle string.
func (h *Handle) GetByHandle(db *gorm.DB, handle string) error {
	if err := validation.Validate(handle, validation.Required); err != nil {
		return err
	}

	return db.
		Where("handle = ?", handle).
		First(h).
		Error
}

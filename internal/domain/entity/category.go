// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a spending category in the SpendLens system.
// Categories nest at most one level deep: a category with a non-nil ParentID
// must reference a root category. The nesting constraint is validated at the
// store boundary, not at match time.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ParentID  *uuid.UUID // nil for root categories
	Name      string
	Color     string
	Icon      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
// Defaulting logic for color and icon is applied in the Application layer
// before calling this constructor.
func NewCategory(userID uuid.UUID, parentID *uuid.UUID, name, color, icon string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		ParentID:  parentID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

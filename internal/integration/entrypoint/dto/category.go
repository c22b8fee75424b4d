// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/spendlens/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=50"`
	Color    string  `json:"color,omitempty"`
	Icon     string  `json:"icon,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	var parentID *string
	if cat.ParentID != nil {
		s := cat.ParentID.String()
		parentID = &s
	}

	return CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Color:     cat.Color,
		Icon:      cat.Icon,
		ParentID:  parentID,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of Category entities to CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	out := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		out[i] = ToCategoryResponse(cat)
	}
	return CategoryListResponse{
		Categories: out,
	}
}

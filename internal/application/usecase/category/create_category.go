// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 50
)

// hexColorRegex is compiled once at package level for performance.
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID   uuid.UUID
	ParentID *uuid.UUID // Optional, references a root category
	Name     string
	Color    string // Optional, defaults to DefaultCategoryColor
	Icon     string // Optional, defaults to DefaultCategoryIcon
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation. Categories nest at most one level
// deep: a parent must itself be a root category.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	// Validate name
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			nil,
		)
	}
	if len(input.Name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	// Validate color format if provided
	if input.Color != "" && !hexColorRegex.MatchString(input.Color) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}

	// Apply default values for optional fields (Application layer responsibility)
	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	// Validate the parent, if any
	if input.ParentID != nil {
		parent, err := uc.categoryRepo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeParentCategoryNotFound,
				"parent category not found",
				domainerror.ErrParentCategoryNotFound,
			)
		}
		if parent.UserID != input.UserID {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeParentCategoryNotFound,
				"parent category not found",
				domainerror.ErrParentCategoryNotFound,
			)
		}
		if parent.ParentID != nil {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNestingTooDeep,
				"categories can only nest one level deep",
				domainerror.ErrCategoryNestingTooDeep,
			)
		}
	}

	// Check if category name already exists for this user
	exists, err := uc.categoryRepo.ExistsByNameAndUser(ctx, input.Name, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}

	// Create category entity with defaulted values
	category := entity.NewCategory(input.UserID, input.ParentID, input.Name, color, icon)

	// Save category to database
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

// Package categorization contains the learned-categorization use cases: rule
// authoring, manual categorization with learning, and the batch auto pass.
package categorization

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/domain/learning"
)

const (
	// MaxPatternLength is the maximum allowed length for rule patterns.
	MaxPatternLength = 255
)

// CreatePatternRuleInput represents the input for explicit pattern rule creation.
type CreatePatternRuleInput struct {
	UserID     uuid.UUID
	Pattern    string
	MatchMode  learning.MatchMode
	CategoryID uuid.UUID
}

// CreatePatternRuleOutput represents the output of pattern rule creation.
type CreatePatternRuleOutput struct {
	Rule *entity.CategorizationRuleWithCategory
}

// CreatePatternRuleUseCase handles explicit pattern rule creation.
type CreatePatternRuleUseCase struct {
	ruleRepo     adapter.CategorizationRuleRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreatePatternRuleUseCase creates a new CreatePatternRuleUseCase instance.
func NewCreatePatternRuleUseCase(
	ruleRepo adapter.CategorizationRuleRepository,
	categoryRepo adapter.CategoryRepository,
) *CreatePatternRuleUseCase {
	return &CreatePatternRuleUseCase{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the pattern rule creation.
func (uc *CreatePatternRuleUseCase) Execute(ctx context.Context, input CreatePatternRuleInput) (*CreatePatternRuleOutput, error) {
	if input.Pattern == "" {
		return nil, domainerror.NewCategorizationError(
			domainerror.ErrCodeEmptyPattern,
			"pattern is required",
			domainerror.ErrEmptyPattern,
		)
	}

	if len(input.Pattern) > MaxPatternLength {
		return nil, domainerror.NewCategorizationError(
			domainerror.ErrCodePatternTooLong,
			fmt.Sprintf("pattern must not exceed %d characters", MaxPatternLength),
			domainerror.ErrPatternTooLong,
		)
	}

	if !learning.IsValidMatchMode(input.MatchMode) {
		return nil, domainerror.NewCategorizationError(
			domainerror.ErrCodeInvalidMatchMode,
			"match mode must be 'contains', 'starts_with' or 'exact'",
			domainerror.ErrInvalidMatchMode,
		)
	}

	// Verify category exists and belongs to the user.
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, domainerror.NewCategorizationError(
			domainerror.ErrCodeCategoryNotFoundRule,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	if category.UserID != input.UserID {
		return nil, domainerror.NewCategorizationError(
			domainerror.ErrCodeNotAuthorizedRule,
			"category does not belong to the rule owner",
			domainerror.ErrNotAuthorizedToModifyRule,
		)
	}

	key := learning.BuildPatternKey(input.MatchMode, input.Pattern)

	// At most one rule per exact key per user. Two different keys that match
	// the same transactions may still coexist.
	exists, err := uc.ruleRepo.ExistsByKey(ctx, input.UserID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check rule existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategorizationError(
			domainerror.ErrCodeDuplicateRule,
			"a rule with this pattern already exists",
			domainerror.ErrDuplicateRule,
		)
	}

	rule := entity.NewCategorizationRule(input.UserID, key, input.CategoryID, nil)

	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create categorization rule: %w", err)
	}

	return &CreatePatternRuleOutput{
		Rule: &entity.CategorizationRuleWithCategory{
			Rule:     rule,
			Category: category,
		},
	}, nil
}

package categorization

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
)

// ListRulesInput represents the input for listing categorization rules.
type ListRulesInput struct {
	UserID uuid.UUID
}

// ListRulesOutput represents the output of listing categorization rules.
type ListRulesOutput struct {
	Rules []*entity.CategorizationRuleWithCategory
}

// ListRulesUseCase handles listing a user's categorization rules.
type ListRulesUseCase struct {
	ruleRepo adapter.CategorizationRuleRepository
}

// NewListRulesUseCase creates a new ListRulesUseCase instance.
func NewListRulesUseCase(ruleRepo adapter.CategorizationRuleRepository) *ListRulesUseCase {
	return &ListRulesUseCase{ruleRepo: ruleRepo}
}

// Execute lists the rules in creation order, the same precedence the
// auto-categorization pass applies them in.
func (uc *ListRulesUseCase) Execute(ctx context.Context, input ListRulesInput) (*ListRulesOutput, error) {
	rules, err := uc.ruleRepo.FindByUserWithCategories(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categorization rules: %w", err)
	}
	return &ListRulesOutput{Rules: rules}, nil
}

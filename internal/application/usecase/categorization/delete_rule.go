package categorization

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// DeleteRuleInput represents the input for rule deletion.
type DeleteRuleInput struct {
	UserID uuid.UUID
	RuleID uuid.UUID
}

// DeleteRuleUseCase handles explicit rule deletion. Rules are never deleted
// automatically; this is always a user action.
type DeleteRuleUseCase struct {
	ruleRepo adapter.CategorizationRuleRepository
}

// NewDeleteRuleUseCase creates a new DeleteRuleUseCase instance.
func NewDeleteRuleUseCase(ruleRepo adapter.CategorizationRuleRepository) *DeleteRuleUseCase {
	return &DeleteRuleUseCase{ruleRepo: ruleRepo}
}

// Execute performs the rule deletion.
func (uc *DeleteRuleUseCase) Execute(ctx context.Context, input DeleteRuleInput) error {
	rule, err := uc.ruleRepo.FindByID(ctx, input.RuleID)
	if err != nil {
		return domainerror.NewCategorizationError(
			domainerror.ErrCodeRuleNotFound,
			"categorization rule not found",
			domainerror.ErrRuleNotFound,
		)
	}
	if rule.UserID != input.UserID {
		return domainerror.NewCategorizationError(
			domainerror.ErrCodeNotAuthorizedRule,
			"not authorized to modify rule",
			domainerror.ErrNotAuthorizedToModifyRule,
		)
	}

	if err := uc.ruleRepo.Delete(ctx, input.RuleID); err != nil {
		return fmt.Errorf("failed to delete categorization rule: %w", err)
	}
	return nil
}

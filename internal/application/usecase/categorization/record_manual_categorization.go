package categorization

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// RecordManualCategorizationInput represents a user's manual categorization decision.
type RecordManualCategorizationInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	CategoryID    *uuid.UUID
	Option        entity.CategorizationOption
}

// RecordManualCategorizationOutput reports what the categorization changed.
type RecordManualCategorizationOutput struct {
	Transaction    *entity.Transaction
	Rule           *entity.CategorizationRule // nil unless the "rule" option touched one
	RuleWasCreated bool
}

// RecordManualCategorizationUseCase applies a manual categorization and its
// option-specific learning side effects.
type RecordManualCategorizationUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	ruleRepo        adapter.CategorizationRuleRepository
}

// NewRecordManualCategorizationUseCase creates a new instance.
func NewRecordManualCategorizationUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	ruleRepo adapter.CategorizationRuleRepository,
) *RecordManualCategorizationUseCase {
	return &RecordManualCategorizationUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		ruleRepo:        ruleRepo,
	}
}

// Execute performs the manual categorization.
//
// The category and isManuallyCategorized are always set. Beyond that, the
// option decides: "once" does nothing more, "rule" upserts a fingerprint-keyed
// rule (confidence 1 on insert, +1 on reconfirmation), "exclude" sets
// excludeFromLearning and clears the fingerprint, "no-auto" sets
// disableAutoRules. The exclusion and no-auto flags are sticky; clearing them
// is a separate explicit action outside this use case.
func (uc *RecordManualCategorizationUseCase) Execute(ctx context.Context, input RecordManualCategorizationInput) (*RecordManualCategorizationOutput, error) {
	if !entity.IsValidCategorizationOption(input.Option) {
		return nil, domainerror.NewCategorizationError(
			domainerror.ErrCodeInvalidOption,
			"option must be 'once', 'rule', 'exclude' or 'no-auto'",
			domainerror.ErrInvalidCategorizationOption,
		)
	}

	tx, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	if tx.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	// Transfers and income may stay uncategorized; everything else needs a category.
	if input.CategoryID == nil && !tx.IsTransfer && !tx.IsIncome {
		return nil, domainerror.NewCategorizationError(
			domainerror.ErrCodeCategoryRequired,
			"category is required",
			domainerror.ErrCategoryRequired,
		)
	}

	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		if category.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotOwned,
				"category does not belong to user",
				domainerror.ErrCategoryNotOwnedByUser,
			)
		}
	}

	manual := true
	update := adapter.CategorizationUpdate{
		CategoryID:            input.CategoryID,
		IsManuallyCategorized: &manual,
	}

	switch input.Option {
	case entity.CategorizationOptionExclude:
		exclude := true
		update.ExcludeFromLearning = &exclude
		update.ClearLearningKey = true
	case entity.CategorizationOptionNoAuto:
		noAuto := true
		update.DisableAutoRules = &noAuto
	}

	if err := uc.transactionRepo.UpdateCategorization(ctx, tx.ID, update); err != nil {
		return nil, fmt.Errorf("failed to update transaction categorization: %w", err)
	}

	output := &RecordManualCategorizationOutput{}

	// Learn a rule only when asked to, and only when a fingerprint exists and
	// a concrete category was chosen.
	if input.Option == entity.CategorizationOptionRule && tx.LearningKeyValue() != "" && input.CategoryID != nil {
		rule, created, err := uc.upsertFingerprintRule(ctx, tx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		output.Rule = rule
		output.RuleWasCreated = created
	}

	refreshed, err := uc.transactionRepo.FindByID(ctx, tx.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload transaction: %w", err)
	}
	output.Transaction = refreshed

	return output, nil
}

// upsertFingerprintRule creates a fingerprint-keyed rule or reinforces the
// existing one: same key means the category is retargeted and confidence is
// bumped by exactly 1.
func (uc *RecordManualCategorizationUseCase) upsertFingerprintRule(
	ctx context.Context,
	tx *entity.Transaction,
	categoryID uuid.UUID,
) (*entity.CategorizationRule, bool, error) {
	key := tx.LearningKeyValue()

	existing, err := uc.ruleRepo.FindByKey(ctx, tx.UserID, key)
	switch {
	case err == nil:
		if err := uc.ruleRepo.UpdateCategoryAndBumpConfidence(ctx, existing.ID, categoryID); err != nil {
			return nil, false, fmt.Errorf("failed to reinforce rule: %w", err)
		}
		existing.CategoryID = categoryID
		existing.Confidence++
		return existing, false, nil
	case isRuleNotFound(err):
		txID := tx.ID
		rule := entity.NewCategorizationRule(tx.UserID, key, categoryID, &txID)
		if err := uc.ruleRepo.Create(ctx, rule); err != nil {
			return nil, false, fmt.Errorf("failed to create learned rule: %w", err)
		}
		return rule, true, nil
	default:
		return nil, false, fmt.Errorf("failed to look up rule by key: %w", err)
	}
}

package categorization

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

func newTestTransaction(userID uuid.UUID, description string) *entity.Transaction {
	return entity.NewTransaction(
		userID,
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		description,
		decimal.NewFromFloat(-12.50),
		nil,
		"",
		false,
		false,
	)
}

func TestRecordManualCategorization(t *testing.T) {
	userID := uuid.New()
	category := entity.NewCategory(userID, nil, "Food", entity.DefaultCategoryColor, entity.DefaultCategoryIcon)

	setup := func() (*RecordManualCategorizationUseCase, *fakeTransactionRepo, *fakeRuleRepo) {
		txRepo := newFakeTransactionRepo()
		ruleRepo := newFakeRuleRepo()
		uc := NewRecordManualCategorizationUseCase(txRepo, newFakeCategoryRepo(category), ruleRepo)
		return uc, txRepo, ruleRepo
	}

	t.Run("once sets category and manual flag only", func(t *testing.T) {
		uc, txRepo, ruleRepo := setup()
		tx := newTestTransaction(userID, "PAGO EN GLOVO01JAN BC6L1KTB")
		txRepo.put(tx)

		out, err := uc.Execute(context.Background(), RecordManualCategorizationInput{
			UserID:        userID,
			TransactionID: tx.ID,
			CategoryID:    &category.ID,
			Option:        entity.CategorizationOptionOnce,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := out.Transaction
		if got.CategoryID == nil || *got.CategoryID != category.ID {
			t.Error("category not assigned")
		}
		if !got.IsManuallyCategorized {
			t.Error("isManuallyCategorized not set")
		}
		if got.ExcludeFromLearning || got.DisableAutoRules {
			t.Error("once must not touch learning flags")
		}
		if rules, _ := ruleRepo.FindByUser(context.Background(), userID); len(rules) != 0 {
			t.Errorf("once must not create rules, found %d", len(rules))
		}
	})

	t.Run("rule option creates fingerprint rule with provenance", func(t *testing.T) {
		uc, txRepo, ruleRepo := setup()
		tx := newTestTransaction(userID, "PAGO EN GLOVO01JAN BC6L1KTB")
		txRepo.put(tx)

		out, err := uc.Execute(context.Background(), RecordManualCategorizationInput{
			UserID:        userID,
			TransactionID: tx.ID,
			CategoryID:    &category.ID,
			Option:        entity.CategorizationOptionRule,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.RuleWasCreated {
			t.Fatal("expected a new rule")
		}
		if out.Rule.LearningKey != "GLOVO" {
			t.Errorf("rule key = %q, want %q", out.Rule.LearningKey, "GLOVO")
		}
		if out.Rule.Confidence != 1 {
			t.Errorf("confidence = %d, want 1", out.Rule.Confidence)
		}
		if out.Rule.CreatedByTransactionID == nil || *out.Rule.CreatedByTransactionID != tx.ID {
			t.Error("provenance transaction not recorded")
		}
		stored, err := ruleRepo.FindByKey(context.Background(), userID, "GLOVO")
		if err != nil {
			t.Fatalf("rule not persisted: %v", err)
		}
		if stored.CategoryID != category.ID {
			t.Error("rule targets wrong category")
		}
	})

	t.Run("reconfirming same fingerprint bumps confidence to 2", func(t *testing.T) {
		uc, txRepo, ruleRepo := setup()
		first := newTestTransaction(userID, "PAGO EN GLOVO01JAN BC6L1KTB")
		second := newTestTransaction(userID, "PAGO EN GLOVO28FEB XK9P2QRS")
		txRepo.put(first)
		txRepo.put(second)

		for _, tx := range []*entity.Transaction{first, second} {
			if _, err := uc.Execute(context.Background(), RecordManualCategorizationInput{
				UserID:        userID,
				TransactionID: tx.ID,
				CategoryID:    &category.ID,
				Option:        entity.CategorizationOptionRule,
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		rule, err := ruleRepo.FindByKey(context.Background(), userID, "GLOVO")
		if err != nil {
			t.Fatalf("rule missing: %v", err)
		}
		if rule.Confidence != 2 {
			t.Errorf("confidence = %d, want 2", rule.Confidence)
		}
	})

	t.Run("exclude clears learning key and removes eligibility for good", func(t *testing.T) {
		uc, txRepo, ruleRepo := setup()
		tx := newTestTransaction(userID, "PAGO EN GLOVO01JAN BC6L1KTB")
		txRepo.put(tx)

		out, err := uc.Execute(context.Background(), RecordManualCategorizationInput{
			UserID:        userID,
			TransactionID: tx.ID,
			CategoryID:    &category.ID,
			Option:        entity.CategorizationOptionExclude,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Transaction.ExcludeFromLearning {
			t.Error("excludeFromLearning not set")
		}
		if out.Transaction.LearningKey != nil {
			t.Error("learningKey not cleared; clearing is part of the exclusion action")
		}

		// Even with a matching rule added afterwards, the transaction never
		// becomes eligible again.
		ruleRepo.Create(context.Background(), entity.NewCategorizationRule(userID, "GLOVO", category.ID, nil))
		eligible, _ := txRepo.FindEligibleForAutoCategorize(context.Background(), userID)
		for _, e := range eligible {
			if e.ID == tx.ID {
				t.Error("excluded transaction selected for auto-categorization")
			}
		}
	})

	t.Run("no-auto sets disableAutoRules and keeps fingerprint", func(t *testing.T) {
		uc, txRepo, _ := setup()
		tx := newTestTransaction(userID, "PAGO EN GLOVO01JAN BC6L1KTB")
		txRepo.put(tx)

		out, err := uc.Execute(context.Background(), RecordManualCategorizationInput{
			UserID:        userID,
			TransactionID: tx.ID,
			CategoryID:    &category.ID,
			Option:        entity.CategorizationOptionNoAuto,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Transaction.DisableAutoRules {
			t.Error("disableAutoRules not set")
		}
		if out.Transaction.LearningKey == nil {
			t.Error("no-auto must not clear the fingerprint")
		}
	})

	t.Run("missing category rejected for plain expense", func(t *testing.T) {
		uc, txRepo, _ := setup()
		tx := newTestTransaction(userID, "PAGO EN GLOVO")
		txRepo.put(tx)

		_, err := uc.Execute(context.Background(), RecordManualCategorizationInput{
			UserID:        userID,
			TransactionID: tx.ID,
			Option:        entity.CategorizationOptionOnce,
		})
		if !errors.Is(err, domainerror.ErrCategoryRequired) {
			t.Errorf("expected ErrCategoryRequired, got %v", err)
		}
	})

	t.Run("missing category allowed for transfer", func(t *testing.T) {
		uc, txRepo, _ := setup()
		tx := newTestTransaction(userID, "TRANSFER TO SAVINGS")
		tx.IsTransfer = true
		txRepo.put(tx)

		if _, err := uc.Execute(context.Background(), RecordManualCategorizationInput{
			UserID:        userID,
			TransactionID: tx.ID,
			Option:        entity.CategorizationOptionOnce,
		}); err != nil {
			t.Errorf("unexpected error for transfer without category: %v", err)
		}
	})

	t.Run("unknown option rejected", func(t *testing.T) {
		uc, txRepo, _ := setup()
		tx := newTestTransaction(userID, "PAGO EN GLOVO")
		txRepo.put(tx)

		_, err := uc.Execute(context.Background(), RecordManualCategorizationInput{
			UserID:        userID,
			TransactionID: tx.ID,
			CategoryID:    &category.ID,
			Option:        "sometimes",
		})
		if !errors.Is(err, domainerror.ErrInvalidCategorizationOption) {
			t.Errorf("expected ErrInvalidCategorizationOption, got %v", err)
		}
	})

	t.Run("transaction of another user rejected", func(t *testing.T) {
		uc, txRepo, _ := setup()
		tx := newTestTransaction(uuid.New(), "PAGO EN GLOVO")
		txRepo.put(tx)

		_, err := uc.Execute(context.Background(), RecordManualCategorizationInput{
			UserID:        userID,
			TransactionID: tx.ID,
			CategoryID:    &category.ID,
			Option:        entity.CategorizationOptionOnce,
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction) {
			t.Errorf("expected ErrNotAuthorizedToModifyTransaction, got %v", err)
		}
	})

	t.Run("missing transaction rejected", func(t *testing.T) {
		uc, _, _ := setup()
		_, err := uc.Execute(context.Background(), RecordManualCategorizationInput{
			UserID:        userID,
			TransactionID: uuid.New(),
			CategoryID:    &category.ID,
			Option:        entity.CategorizationOptionOnce,
		})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

package categorization

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/domain/learning"
)

func TestCreatePatternRule(t *testing.T) {
	userID := uuid.New()
	category := entity.NewCategory(userID, nil, "Food", entity.DefaultCategoryColor, entity.DefaultCategoryIcon)

	t.Run("creates rule with uppercase key and confidence 1", func(t *testing.T) {
		ruleRepo := newFakeRuleRepo()
		uc := NewCreatePatternRuleUseCase(ruleRepo, newFakeCategoryRepo(category))

		out, err := uc.Execute(context.Background(), CreatePatternRuleInput{
			UserID:     userID,
			Pattern:    "glovo",
			MatchMode:  learning.MatchModeContains,
			CategoryID: category.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.Rule.Rule.LearningKey; got != "contains:GLOVO" {
			t.Errorf("learning key = %q, want %q", got, "contains:GLOVO")
		}
		if out.Rule.Rule.Confidence != 1 {
			t.Errorf("confidence = %d, want 1", out.Rule.Rule.Confidence)
		}
		if out.Rule.Rule.CreatedByTransactionID != nil {
			t.Error("authored rule should have no provenance transaction")
		}
	})

	t.Run("duplicate key fails and keeps original category", func(t *testing.T) {
		otherCategory := entity.NewCategory(userID, nil, "Transport", entity.DefaultCategoryColor, entity.DefaultCategoryIcon)
		ruleRepo := newFakeRuleRepo()
		uc := NewCreatePatternRuleUseCase(ruleRepo, newFakeCategoryRepo(category, otherCategory))

		first, err := uc.Execute(context.Background(), CreatePatternRuleInput{
			UserID:     userID,
			Pattern:    "GLOVO",
			MatchMode:  learning.MatchModeContains,
			CategoryID: category.ID,
		})
		if err != nil {
			t.Fatalf("first create failed: %v", err)
		}

		_, err = uc.Execute(context.Background(), CreatePatternRuleInput{
			UserID:     userID,
			Pattern:    "glovo",
			MatchMode:  learning.MatchModeContains,
			CategoryID: otherCategory.ID,
		})
		if !errors.Is(err, domainerror.ErrDuplicateRule) {
			t.Fatalf("expected ErrDuplicateRule, got %v", err)
		}

		stored, err := ruleRepo.FindByID(context.Background(), first.Rule.Rule.ID)
		if err != nil {
			t.Fatalf("original rule missing: %v", err)
		}
		if stored.CategoryID != category.ID {
			t.Error("original rule's category changed after duplicate attempt")
		}
	})

	t.Run("same pattern under different mode coexists", func(t *testing.T) {
		ruleRepo := newFakeRuleRepo()
		uc := NewCreatePatternRuleUseCase(ruleRepo, newFakeCategoryRepo(category))

		for _, mode := range []learning.MatchMode{learning.MatchModeContains, learning.MatchModeExact} {
			if _, err := uc.Execute(context.Background(), CreatePatternRuleInput{
				UserID:     userID,
				Pattern:    "GLOVO",
				MatchMode:  mode,
				CategoryID: category.ID,
			}); err != nil {
				t.Fatalf("mode %q: unexpected error: %v", mode, err)
			}
		}
	})

	t.Run("empty pattern rejected", func(t *testing.T) {
		uc := NewCreatePatternRuleUseCase(newFakeRuleRepo(), newFakeCategoryRepo(category))
		_, err := uc.Execute(context.Background(), CreatePatternRuleInput{
			UserID:     userID,
			MatchMode:  learning.MatchModeContains,
			CategoryID: category.ID,
		})
		if !errors.Is(err, domainerror.ErrEmptyPattern) {
			t.Errorf("expected ErrEmptyPattern, got %v", err)
		}
	})

	t.Run("unknown match mode rejected", func(t *testing.T) {
		uc := NewCreatePatternRuleUseCase(newFakeRuleRepo(), newFakeCategoryRepo(category))
		_, err := uc.Execute(context.Background(), CreatePatternRuleInput{
			UserID:     userID,
			Pattern:    "GLOVO",
			MatchMode:  "regex",
			CategoryID: category.ID,
		})
		if !errors.Is(err, domainerror.ErrInvalidMatchMode) {
			t.Errorf("expected ErrInvalidMatchMode, got %v", err)
		}
	})

	t.Run("category of another user rejected", func(t *testing.T) {
		foreign := entity.NewCategory(uuid.New(), nil, "Food", entity.DefaultCategoryColor, entity.DefaultCategoryIcon)
		uc := NewCreatePatternRuleUseCase(newFakeRuleRepo(), newFakeCategoryRepo(foreign))
		_, err := uc.Execute(context.Background(), CreatePatternRuleInput{
			UserID:     userID,
			Pattern:    "GLOVO",
			MatchMode:  learning.MatchModeContains,
			CategoryID: foreign.ID,
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyRule) {
			t.Errorf("expected ErrNotAuthorizedToModifyRule, got %v", err)
		}
	})
}

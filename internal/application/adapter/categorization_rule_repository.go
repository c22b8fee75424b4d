// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/domain/entity"
)

// CategorizationRuleRepository defines the interface for rule persistence operations.
type CategorizationRuleRepository interface {
	// Create inserts a new categorization rule.
	Create(ctx context.Context, rule *entity.CategorizationRule) error

	// FindByID retrieves a rule by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CategorizationRule, error)

	// FindByKey retrieves the user's rule with the exact learning key, or
	// domain ErrRuleNotFound when none exists.
	FindByKey(ctx context.Context, userID uuid.UUID, learningKey string) (*entity.CategorizationRule, error)

	// FindByUser retrieves all rules for a user in creation order (id as a
	// deterministic tiebreaker). This order is the first-match-wins
	// precedence of the auto-categorization pass.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategorizationRule, error)

	// FindByUserWithCategories retrieves all rules with their target
	// categories, in the same creation order as FindByUser.
	FindByUserWithCategories(ctx context.Context, userID uuid.UUID) ([]*entity.CategorizationRuleWithCategory, error)

	// UpdateCategoryAndBumpConfidence retargets a rule's category and
	// increments its confidence by exactly 1.
	UpdateCategoryAndBumpConfidence(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) error

	// Delete removes a rule from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByKey checks if a rule with the exact learning key exists for the user.
	ExistsByKey(ctx context.Context, userID uuid.UUID, learningKey string) (bool, error)
}

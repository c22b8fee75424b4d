// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategorizationRule represents a learned or authored categorization rule.
//
// LearningKey is overloaded: explicitly authored rules store a
// "<mode>:<PATTERN>" key, while rules learned from manual categorizations
// store the bare merchant fingerprint. At most one rule exists per exact key
// value per user; two distinct keys that happen to match the same
// transactions may coexist.
//
// Confidence starts at 1 and increments by exactly 1 each time a user
// reconfirms the same category for the same learning key. It never decreases.
type CategorizationRule struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	LearningKey            string
	CategoryID             uuid.UUID
	Confidence             int
	CreatedByTransactionID *uuid.UUID // provenance, nil for authored pattern rules
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// NewCategorizationRule creates a new CategorizationRule entity with the
// initial confidence of 1.
func NewCategorizationRule(
	userID uuid.UUID,
	learningKey string,
	categoryID uuid.UUID,
	createdByTransactionID *uuid.UUID,
) *CategorizationRule {
	now := time.Now().UTC()

	return &CategorizationRule{
		ID:                     uuid.New(),
		UserID:                 userID,
		LearningKey:            learningKey,
		CategoryID:             categoryID,
		Confidence:             1,
		CreatedByTransactionID: createdByTransactionID,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// CategorizationRuleWithCategory represents a rule with its target category.
type CategorizationRuleWithCategory struct {
	Rule     *CategorizationRule
	Category *Category
}

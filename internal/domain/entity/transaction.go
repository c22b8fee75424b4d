// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/domain/learning"
)

// CategorizationOption selects the side effects of a manual categorization
// beyond setting the category itself.
type CategorizationOption string

const (
	// CategorizationOptionOnce categorizes this transaction only.
	CategorizationOptionOnce CategorizationOption = "once"

	// CategorizationOptionRule categorizes and creates or reinforces a
	// learned rule keyed by the transaction's fingerprint.
	CategorizationOptionRule CategorizationOption = "rule"

	// CategorizationOptionExclude categorizes and permanently excludes the
	// transaction from learning, clearing its fingerprint.
	CategorizationOptionExclude CategorizationOption = "exclude"

	// CategorizationOptionNoAuto categorizes and opts the transaction out of
	// future automatic rule application.
	CategorizationOptionNoAuto CategorizationOption = "no-auto"
)

// IsValidCategorizationOption reports whether option is a known option value.
func IsValidCategorizationOption(option CategorizationOption) bool {
	switch option {
	case CategorizationOptionOnce, CategorizationOptionRule,
		CategorizationOptionExclude, CategorizationOptionNoAuto:
		return true
	}
	return false
}

// Transaction represents a bank transaction in the SpendLens system.
// NormalizedDescription and LearningKey are derived from Description once at
// creation time and cached; LearningKey is nil when the transaction has been
// excluded from learning.
type Transaction struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Date                  time.Time
	Description           string // original bank text
	NormalizedDescription string
	LearningKey           *string
	Amount                decimal.Decimal // negative for expenses, positive for income
	CategoryID            *uuid.UUID      // nil = uncategorized
	Notes                 string
	IsManuallyCategorized bool
	IsTransfer            bool
	IsIncome              bool
	ExcludeFromLearning   bool
	DisableAutoRules      bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity, deriving the normalized
// description and learning key from the raw bank text.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	categoryID *uuid.UUID,
	notes string,
	isTransfer bool,
	isIncome bool,
) *Transaction {
	now := time.Now().UTC()

	normalized := learning.Normalize(description)
	var learningKey *string
	if key := learning.ExtractLearningKey(normalized); key != "" {
		learningKey = &key
	}

	return &Transaction{
		ID:                    uuid.New(),
		UserID:                userID,
		Date:                  date,
		Description:           description,
		NormalizedDescription: normalized,
		LearningKey:           learningKey,
		Amount:                amount,
		CategoryID:            categoryID,
		Notes:                 notes,
		IsTransfer:            isTransfer,
		IsIncome:              isIncome,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// LearningKeyValue returns the fingerprint or "" when none is set.
func (t *Transaction) LearningKeyValue() string {
	if t.LearningKey == nil {
		return ""
	}
	return *t.LearningKey
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID        uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	CategoryIDs   []uuid.UUID
	Uncategorized bool   // only transactions without a category
	Search        string // case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// CategorizationUpdate is the subset of transaction fields the categorization
// engine writes. Nil pointer fields are left untouched; ClearLearningKey
// additionally nulls the cached fingerprint (part of the exclusion action,
// not merely a flag).
type CategorizationUpdate struct {
	CategoryID            *uuid.UUID
	IsManuallyCategorized *bool
	ExcludeFromLearning   *bool
	DisableAutoRules      *bool
	ClearLearningKey      bool
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// FindEligibleForAutoCategorize retrieves the transactions the batch pass
	// may touch: uncategorized, not excluded from learning, auto rules not
	// disabled, and carrying a non-empty fingerprint or normalized description.
	FindEligibleForAutoCategorize(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// UpdateCategorization applies the engine-owned subset of fields to a
	// transaction. The update is atomic per transaction.
	UpdateCategorization(ctx context.Context, id uuid.UUID, update CategorizationUpdate) error

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}

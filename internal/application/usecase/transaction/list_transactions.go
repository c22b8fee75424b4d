// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID        uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	CategoryIDs   []uuid.UUID
	Uncategorized bool
	Search        string
	Page          int
	Limit         int
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Date                  time.Time
	Description           string
	NormalizedDescription string
	LearningKey           *string
	Amount                decimal.Decimal
	CategoryID            *uuid.UUID
	Category              *CategoryOutput
	Notes                 string
	IsManuallyCategorized bool
	IsTransfer            bool
	IsIncome              bool
	ExcludeFromLearning   bool
	DisableAutoRules      bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID    uuid.UUID
	Name  string
	Color string
	Icon  string
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	// Set default pagination values
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := adapter.TransactionFilter{
		UserID:        input.UserID,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		CategoryIDs:   input.CategoryIDs,
		Uncategorized: input.Uncategorized,
		Search:        input.Search,
	}

	pagination := adapter.TransactionPagination{
		Page:  page,
		Limit: limit,
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(result.Transactions)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}

	for i, txnWithCat := range result.Transactions {
		output.Transactions[i] = newTransactionOutput(txnWithCat.Transaction, txnWithCat.Category)
	}

	return output, nil
}

// newTransactionOutput maps a transaction entity (and optional category) to
// the use case output shape.
func newTransactionOutput(txn *entity.Transaction, category *entity.Category) *TransactionOutput {
	out := &TransactionOutput{
		ID:                    txn.ID,
		UserID:                txn.UserID,
		Date:                  txn.Date,
		Description:           txn.Description,
		NormalizedDescription: txn.NormalizedDescription,
		LearningKey:           txn.LearningKey,
		Amount:                txn.Amount,
		CategoryID:            txn.CategoryID,
		Notes:                 txn.Notes,
		IsManuallyCategorized: txn.IsManuallyCategorized,
		IsTransfer:            txn.IsTransfer,
		IsIncome:              txn.IsIncome,
		ExcludeFromLearning:   txn.ExcludeFromLearning,
		DisableAutoRules:      txn.DisableAutoRules,
		CreatedAt:             txn.CreatedAt,
		UpdatedAt:             txn.UpdatedAt,
	}

	if category != nil {
		out.Category = &CategoryOutput{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
		}
	}

	return out
}

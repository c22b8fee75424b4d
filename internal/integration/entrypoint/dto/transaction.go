// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/usecase/transaction"
	"github.com/spendlens/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required"` // Format: "2006-01-02"
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	IsTransfer  bool            `json:"is_transfer,omitempty"`
	IsIncome    bool            `json:"is_income,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                    string            `json:"id"`
	Date                  time.Time         `json:"date"`
	Description           string            `json:"description"`
	NormalizedDescription string            `json:"normalized_description"`
	LearningKey           *string           `json:"learning_key,omitempty"`
	Amount                decimal.Decimal   `json:"amount"`
	CategoryID            *string           `json:"category_id,omitempty"`
	Category              *CategoryResponse `json:"category,omitempty"`
	Notes                 string            `json:"notes,omitempty"`
	IsManuallyCategorized bool              `json:"is_manually_categorized"`
	IsTransfer            bool              `json:"is_transfer"`
	IsIncome              bool              `json:"is_income"`
	ExcludeFromLearning   bool              `json:"exclude_from_learning"`
	DisableAutoRules      bool              `json:"disable_auto_rules"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// PaginationResponse represents pagination metadata in list responses.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// ToTransactionResponse converts a use case TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(out *transaction.TransactionOutput) TransactionResponse {
	var categoryID *string
	if out.CategoryID != nil {
		s := out.CategoryID.String()
		categoryID = &s
	}

	resp := TransactionResponse{
		ID:                    out.ID.String(),
		Date:                  out.Date,
		Description:           out.Description,
		NormalizedDescription: out.NormalizedDescription,
		LearningKey:           out.LearningKey,
		Amount:                out.Amount,
		CategoryID:            categoryID,
		Notes:                 out.Notes,
		IsManuallyCategorized: out.IsManuallyCategorized,
		IsTransfer:            out.IsTransfer,
		IsIncome:              out.IsIncome,
		ExcludeFromLearning:   out.ExcludeFromLearning,
		DisableAutoRules:      out.DisableAutoRules,
		CreatedAt:             out.CreatedAt,
		UpdatedAt:             out.UpdatedAt,
	}

	if out.Category != nil {
		resp.Category = &CategoryResponse{
			ID:    out.Category.ID.String(),
			Name:  out.Category.Name,
			Color: out.Category.Color,
			Icon:  out.Category.Icon,
		}
	}

	return resp
}

// ToTransactionResponseFromEntity converts a domain Transaction entity to a
// TransactionResponse DTO.
func ToTransactionResponseFromEntity(txn *entity.Transaction) TransactionResponse {
	var categoryID *string
	if txn.CategoryID != nil {
		s := txn.CategoryID.String()
		categoryID = &s
	}

	return TransactionResponse{
		ID:                    txn.ID.String(),
		Date:                  txn.Date,
		Description:           txn.Description,
		NormalizedDescription: txn.NormalizedDescription,
		LearningKey:           txn.LearningKey,
		Amount:                txn.Amount,
		CategoryID:            categoryID,
		Notes:                 txn.Notes,
		IsManuallyCategorized: txn.IsManuallyCategorized,
		IsTransfer:            txn.IsTransfer,
		IsIncome:              txn.IsIncome,
		ExcludeFromLearning:   txn.ExcludeFromLearning,
		DisableAutoRules:      txn.DisableAutoRules,
		CreatedAt:             txn.CreatedAt,
		UpdatedAt:             txn.UpdatedAt,
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to a TransactionListResponse.
func ToTransactionListResponse(out *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(out.Transactions))
	for i, txn := range out.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}
	return TransactionListResponse{
		Transactions: transactions,
		Pagination: PaginationResponse{
			Page:       out.Pagination.Page,
			Limit:      out.Pagination.Limit,
			Total:      out.Pagination.Total,
			TotalPages: out.Pagination.TotalPages,
		},
	}
}

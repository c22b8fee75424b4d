// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/spendlens/backend/internal/domain/entity"
)

// CategorizeTransactionRequest represents the request body for manually
// categorizing a transaction.
type CategorizeTransactionRequest struct {
	CategoryID *string `json:"category_id,omitempty"`
	Option     string  `json:"option" binding:"required,oneof=once rule exclude no-auto"`
}

// CategorizeTransactionResponse represents the result of a manual categorization.
type CategorizeTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Rule        *RuleResponse       `json:"rule,omitempty"`
	RuleCreated bool                `json:"rule_created"`
}

// CreateRuleRequest represents the request body for explicit pattern rule creation.
type CreateRuleRequest struct {
	Pattern    string `json:"pattern" binding:"required,min=1,max=255"`
	MatchMode  string `json:"match_mode" binding:"required,oneof=contains starts_with exact"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// RuleResponse represents a single categorization rule in API responses.
type RuleResponse struct {
	ID                     string            `json:"id"`
	LearningKey            string            `json:"learning_key"`
	CategoryID             string            `json:"category_id"`
	Category               *CategoryResponse `json:"category,omitempty"`
	Confidence             int               `json:"confidence"`
	CreatedByTransactionID *string           `json:"created_by_transaction_id,omitempty"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
}

// RuleListResponse represents the response for listing categorization rules.
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// AutoCategorizeResponse reports the result of a batch auto-categorization pass.
type AutoCategorizeResponse struct {
	UpdatedCount int `json:"updated_count"`
}

// ToRuleResponse converts a domain CategorizationRule entity to a RuleResponse DTO.
func ToRuleResponse(rule *entity.CategorizationRule) RuleResponse {
	var createdBy *string
	if rule.CreatedByTransactionID != nil {
		s := rule.CreatedByTransactionID.String()
		createdBy = &s
	}

	return RuleResponse{
		ID:                     rule.ID.String(),
		LearningKey:            rule.LearningKey,
		CategoryID:             rule.CategoryID.String(),
		Confidence:             rule.Confidence,
		CreatedByTransactionID: createdBy,
		CreatedAt:              rule.CreatedAt,
		UpdatedAt:              rule.UpdatedAt,
	}
}

// ToRuleResponseWithCategory converts a rule with its preloaded category.
func ToRuleResponseWithCategory(rule *entity.CategorizationRuleWithCategory) RuleResponse {
	resp := ToRuleResponse(rule.Rule)
	if rule.Category != nil {
		cat := ToCategoryResponse(rule.Category)
		resp.Category = &cat
	}
	return resp
}

// ToRuleListResponse converts a list of rules with categories to RuleListResponse.
func ToRuleListResponse(rules []*entity.CategorizationRuleWithCategory) RuleListResponse {
	out := make([]RuleResponse, len(rules))
	for i, rule := range rules {
		out[i] = ToRuleResponseWithCategory(rule)
	}
	return RuleListResponse{
		Rules: out,
	}
}

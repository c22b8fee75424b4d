// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/domain/entity"
)

// CategorizationRuleModel represents the categorization_rules table in the
// database. LearningKey stores either a bare fingerprint (legacy rules) or a
// mode-prefixed pattern key such as "contains:COFFEE"; the unique index on
// (user_id, learning_key) is what enforces one rule per key per user.
type CategorizationRuleModel struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID                 uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_rules_user_key"`
	LearningKey            string     `gorm:"type:varchar(272);not null;uniqueIndex:idx_rules_user_key"`
	CategoryID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Confidence             int        `gorm:"not null;default:1"`
	CreatedByTransactionID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt              time.Time  `gorm:"not null;index"`
	UpdatedAt              time.Time  `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the CategorizationRuleModel.
func (CategorizationRuleModel) TableName() string {
	return "categorization_rules"
}

// ToEntity converts a CategorizationRuleModel to a domain CategorizationRule entity.
func (m *CategorizationRuleModel) ToEntity() *entity.CategorizationRule {
	return &entity.CategorizationRule{
		ID:                     m.ID,
		UserID:                 m.UserID,
		LearningKey:            m.LearningKey,
		CategoryID:             m.CategoryID,
		Confidence:             m.Confidence,
		CreatedByTransactionID: m.CreatedByTransactionID,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

// ToEntityWithCategory converts a CategorizationRuleModel with its Category preloaded.
func (m *CategorizationRuleModel) ToEntityWithCategory() *entity.CategorizationRuleWithCategory {
	result := &entity.CategorizationRuleWithCategory{
		Rule: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}

	return result
}

// CategorizationRuleFromEntity creates a CategorizationRuleModel from a domain entity.
func CategorizationRuleFromEntity(rule *entity.CategorizationRule) *CategorizationRuleModel {
	return &CategorizationRuleModel{
		ID:                     rule.ID,
		UserID:                 rule.UserID,
		LearningKey:            rule.LearningKey,
		CategoryID:             rule.CategoryID,
		Confidence:             rule.Confidence,
		CreatedByTransactionID: rule.CreatedByTransactionID,
		CreatedAt:              rule.CreatedAt,
		UpdatedAt:              rule.UpdatedAt,
	}
}

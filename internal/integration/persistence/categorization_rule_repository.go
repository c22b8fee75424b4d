// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/integration/persistence/model"
)

// categorizationRuleRepository implements the adapter.CategorizationRuleRepository interface.
type categorizationRuleRepository struct {
	db *gorm.DB
}

// NewCategorizationRuleRepository creates a new categorization rule repository instance.
func NewCategorizationRuleRepository(db *gorm.DB) adapter.CategorizationRuleRepository {
	return &categorizationRuleRepository{
		db: db,
	}
}

// Create inserts a new categorization rule.
func (r *categorizationRuleRepository) Create(ctx context.Context, rule *entity.CategorizationRule) error {
	ruleModel := model.CategorizationRuleFromEntity(rule)
	result := r.db.WithContext(ctx).Create(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a rule by its ID.
func (r *categorizationRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CategorizationRule, error) {
	var ruleModel model.CategorizationRuleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindByKey retrieves the user's rule with the exact learning key.
func (r *categorizationRuleRepository) FindByKey(ctx context.Context, userID uuid.UUID, learningKey string) (*entity.CategorizationRule, error) {
	var ruleModel model.CategorizationRuleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND learning_key = ?", userID, learningKey).
		First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindByUser retrieves all rules for a user in creation order. The order is
// the match precedence of the auto-categorization pass, so it must stay
// deterministic: created_at first, id as tiebreaker.
func (r *categorizationRuleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CategorizationRule, error) {
	var ruleModels []model.CategorizationRuleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.CategorizationRule, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntity()
	}
	return rules, nil
}

// FindByUserWithCategories retrieves all rules with their target categories,
// in the same creation order as FindByUser.
func (r *categorizationRuleRepository) FindByUserWithCategories(ctx context.Context, userID uuid.UUID) ([]*entity.CategorizationRuleWithCategory, error) {
	var ruleModels []model.CategorizationRuleModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.CategorizationRuleWithCategory, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntityWithCategory()
	}
	return rules, nil
}

// UpdateCategoryAndBumpConfidence retargets a rule's category and increments
// its confidence by exactly 1.
func (r *categorizationRuleRepository) UpdateCategoryAndBumpConfidence(ctx context.Context, id uuid.UUID, categoryID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.CategorizationRuleModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"category_id": categoryID,
			"confidence":  gorm.Expr("confidence + 1"),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRuleNotFound
	}
	return nil
}

// Delete removes a rule from the database.
func (r *categorizationRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CategorizationRuleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRuleNotFound
	}
	return nil
}

// ExistsByKey checks if a rule with the exact learning key exists for the user.
func (r *categorizationRuleRepository) ExistsByKey(ctx context.Context, userID uuid.UUID, learningKey string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategorizationRuleModel{}).
		Where("user_id = ? AND learning_key = ?", userID, learningKey).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

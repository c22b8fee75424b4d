package categorization

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// fakeTransactionRepo is an in-memory adapter.TransactionRepository.
// It applies the same eligibility predicate as the real store.
type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]*entity.Transaction
	failUpdates  map[uuid.UUID]error // per-transaction forced update failures
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{
		transactions: make(map[uuid.UUID]*entity.Transaction),
		failUpdates:  make(map[uuid.UUID]error),
	}
}

func (r *fakeTransactionRepo) put(tx *entity.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tx
	r.transactions[tx.ID] = &cp
}

func (r *fakeTransactionRepo) get(id uuid.UUID) *entity.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx, ok := r.transactions[id]; ok {
		cp := *tx
		return &cp
	}
	return nil
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.put(tx)
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	if tx := r.get(id); tx != nil {
		return tx, nil
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) FindByFilter(_ context.Context, _ adapter.TransactionFilter, _ adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	return &entity.TransactionListResult{}, nil
}

func (r *fakeTransactionRepo) FindEligibleForAutoCategorize(_ context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var eligible []*entity.Transaction
	for _, tx := range r.transactions {
		if tx.UserID != userID || tx.CategoryID != nil || tx.ExcludeFromLearning || tx.DisableAutoRules {
			continue
		}
		if tx.LearningKeyValue() == "" && tx.NormalizedDescription == "" {
			continue
		}
		cp := *tx
		eligible = append(eligible, &cp)
	}
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].CreatedAt.Before(eligible[j].CreatedAt)
	})
	return eligible, nil
}

func (r *fakeTransactionRepo) UpdateCategorization(_ context.Context, id uuid.UUID, update adapter.CategorizationUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.failUpdates[id]; ok {
		return err
	}

	tx, ok := r.transactions[id]
	if !ok {
		return domainerror.ErrTransactionNotFound
	}
	if update.CategoryID != nil {
		categoryID := *update.CategoryID
		tx.CategoryID = &categoryID
	}
	if update.IsManuallyCategorized != nil {
		tx.IsManuallyCategorized = *update.IsManuallyCategorized
	}
	if update.ExcludeFromLearning != nil {
		tx.ExcludeFromLearning = *update.ExcludeFromLearning
	}
	if update.DisableAutoRules != nil {
		tx.DisableAutoRules = *update.DisableAutoRules
	}
	if update.ClearLearningKey {
		tx.LearningKey = nil
	}
	return nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, tx *entity.Transaction) error {
	r.put(tx)
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.transactions, id)
	return nil
}

// fakeCategoryRepo is an in-memory adapter.CategoryRepository.
type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID) (bool, error) {
	for _, c := range r.categories {
		if c.UserID == userID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// fakeRuleRepo is an in-memory adapter.CategorizationRuleRepository that
// preserves creation order, like the real store's enumeration.
type fakeRuleRepo struct {
	mu    sync.Mutex
	rules []*entity.CategorizationRule
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{}
}

func (r *fakeRuleRepo) Create(_ context.Context, rule *entity.CategorizationRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rule
	r.rules = append(r.rules, &cp)
	return nil
}

func (r *fakeRuleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CategorizationRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range r.rules {
		if rule.ID == id {
			cp := *rule
			return &cp, nil
		}
	}
	return nil, domainerror.ErrRuleNotFound
}

func (r *fakeRuleRepo) FindByKey(_ context.Context, userID uuid.UUID, learningKey string) (*entity.CategorizationRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range r.rules {
		if rule.UserID == userID && rule.LearningKey == learningKey {
			cp := *rule
			return &cp, nil
		}
	}
	return nil, domainerror.ErrRuleNotFound
}

func (r *fakeRuleRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.CategorizationRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CategorizationRule
	for _, rule := range r.rules {
		if rule.UserID == userID {
			cp := *rule
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRuleRepo) FindByUserWithCategories(ctx context.Context, userID uuid.UUID) ([]*entity.CategorizationRuleWithCategory, error) {
	rules, err := r.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.CategorizationRuleWithCategory, len(rules))
	for i, rule := range rules {
		out[i] = &entity.CategorizationRuleWithCategory{Rule: rule}
	}
	return out, nil
}

func (r *fakeRuleRepo) UpdateCategoryAndBumpConfidence(_ context.Context, id uuid.UUID, categoryID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range r.rules {
		if rule.ID == id {
			rule.CategoryID = categoryID
			rule.Confidence++
			return nil
		}
	}
	return domainerror.ErrRuleNotFound
}

func (r *fakeRuleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rule := range r.rules {
		if rule.ID == id {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrRuleNotFound
}

func (r *fakeRuleRepo) ExistsByKey(ctx context.Context, userID uuid.UUID, learningKey string) (bool, error) {
	_, err := r.FindByKey(ctx, userID, learningKey)
	if err == nil {
		return true, nil
	}
	return false, nil
}

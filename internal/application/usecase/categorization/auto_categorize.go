package categorization

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/domain/learning"
)

const (
	// DefaultAutoCategorizeWorkers bounds the per-transaction update
	// concurrency of a single pass.
	DefaultAutoCategorizeWorkers = 4
)

// AutoCategorizeInput represents the input for the batch auto-categorization pass.
type AutoCategorizeInput struct {
	UserID uuid.UUID
}

// AutoCategorizeOutput reports how many transactions were categorized.
type AutoCategorizeOutput struct {
	UpdatedCount int
}

// AutoCategorizeUseCase runs the batch auto-categorization pass: it snapshots
// the user's rule set once, evaluates every eligible uncategorized transaction
// against it in rule-creation order, and applies the category of the first
// matching rule.
type AutoCategorizeUseCase struct {
	transactionRepo adapter.TransactionRepository
	ruleRepo        adapter.CategorizationRuleRepository
	workers         int
}

// NewAutoCategorizeUseCase creates a new AutoCategorizeUseCase instance.
// workers bounds the update concurrency; values < 1 fall back to the default.
func NewAutoCategorizeUseCase(
	transactionRepo adapter.TransactionRepository,
	ruleRepo adapter.CategorizationRuleRepository,
	workers int,
) *AutoCategorizeUseCase {
	if workers < 1 {
		workers = DefaultAutoCategorizeWorkers
	}
	return &AutoCategorizeUseCase{
		transactionRepo: transactionRepo,
		ruleRepo:        ruleRepo,
		workers:         workers,
	}
}

// Execute runs the pass.
//
// The rule snapshot is taken once and shared read-only across workers, so
// rules created concurrently by other actors are not observed mid-pass.
// Per-transaction outcomes are independent; an update failure is logged and
// skipped without aborting the batch. Cancellation is fail-forward:
// transactions already updated keep their category and the pass reports the
// smaller count. A rerun is safe because updated transactions are no longer
// eligible.
func (uc *AutoCategorizeUseCase) Execute(ctx context.Context, input AutoCategorizeInput) (*AutoCategorizeOutput, error) {
	startTime := time.Now()
	logger := slog.Default().With("userID", input.UserID.String())

	rules, err := uc.ruleRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot rule set: %w", err)
	}
	if len(rules) == 0 {
		return &AutoCategorizeOutput{UpdatedCount: 0}, nil
	}

	transactions, err := uc.transactionRepo.FindEligibleForAutoCategorize(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible transactions: %w", err)
	}

	logger.Info("Starting auto-categorization pass",
		"ruleCount", len(rules),
		"eligibleTransactions", len(transactions),
	)

	var updated atomic.Int64

	jobs := make(chan *entity.Transaction)
	var wg sync.WaitGroup
	for i := 0; i < uc.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tx := range jobs {
				if uc.categorizeOne(ctx, logger, rules, tx) {
					updated.Add(1)
				}
			}
		}()
	}

dispatch:
	for _, tx := range transactions {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- tx:
		}
	}
	close(jobs)
	wg.Wait()

	logger.Info("Auto-categorization pass completed",
		"updatedCount", updated.Load(),
		"duration", time.Since(startTime).String(),
	)

	return &AutoCategorizeOutput{UpdatedCount: int(updated.Load())}, nil
}

// categorizeOne applies the first matching rule to one transaction. Returns
// true when the transaction was updated.
func (uc *AutoCategorizeUseCase) categorizeOne(
	ctx context.Context,
	logger *slog.Logger,
	rules []*entity.CategorizationRule,
	tx *entity.Transaction,
) bool {
	rule := firstMatch(rules, tx)
	if rule == nil {
		return false
	}

	categoryID := rule.CategoryID
	update := adapter.CategorizationUpdate{CategoryID: &categoryID}
	if err := uc.transactionRepo.UpdateCategorization(ctx, tx.ID, update); err != nil {
		// Non-fatal for the batch: log, skip, continue with the rest.
		logger.Warn("Failed to apply rule to transaction",
			"transactionID", tx.ID.String(),
			"ruleID", rule.ID.String(),
			"error", err.Error(),
		)
		return false
	}
	return true
}

// firstMatch returns the first rule matching the transaction in snapshot
// order, or nil. No ranking: evaluation stops at the first hit.
func firstMatch(rules []*entity.CategorizationRule, tx *entity.Transaction) *entity.CategorizationRule {
	for _, rule := range rules {
		if learning.Matches(rule.LearningKey, tx.NormalizedDescription, tx.LearningKeyValue()) {
			return rule
		}
	}
	return nil
}

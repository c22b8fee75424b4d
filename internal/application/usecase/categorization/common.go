package categorization

import (
	"errors"

	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// isRuleNotFound reports whether err means the rule lookup found nothing, as
// opposed to a storage failure.
func isRuleNotFound(err error) bool {
	return errors.Is(err, domainerror.ErrRuleNotFound)
}

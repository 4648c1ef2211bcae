package game

import (
	"errors"
	"strings"
)

// RuleError reports one or more game-rule violations. Validation collects
// every applicable violation before failing, so Reasons can hold several
// entries. A RuleError always means the operation left state untouched.
type RuleError struct {
	Reasons []string
}

func (e *RuleError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

func newRuleError(reasons ...string) *RuleError {
	return &RuleError{Reasons: reasons}
}

// IsRuleViolation reports whether err is a recoverable rule violation, as
// opposed to a caller contract breach.
func IsRuleViolation(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}

// Contract-breach errors. These indicate caller bugs, not game outcomes,
// and are never wrapped in a RuleError.
var (
	ErrNotSetUp     = errors.New("game: match has not been set up")
	ErrAlreadySetUp = errors.New("game: setup already performed for this match")
)

const reasonGameOver = "game already over"

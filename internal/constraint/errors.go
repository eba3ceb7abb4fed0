package constraint

import "errors"

var (
	// ErrInvalidValue indicates a drawn rule value outside the rule's valid range.
	ErrInvalidValue = errors.New("rule value out of range")

	// ErrRulePanic wraps a panic recovered while evaluating or applying a rule.
	ErrRulePanic = errors.New("rule panicked")
)

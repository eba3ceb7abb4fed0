package domain

import "fmt"

// Variety carries the optional axes injected when a description collides with
// an earlier one in the batch. The zero value means "no variety requested".
type Variety struct {
	Style       string `json:"style,omitempty"`
	Focus       string `json:"focus,omitempty"`
	Phase       string `json:"phase,omitempty"`
	Perspective string `json:"perspective,omitempty"`
}

// IsZero reports whether no variety axis is set.
func (v Variety) IsZero() bool {
	return v == Variety{}
}

// GenerationContext is the sparse input a single record is grown from.
// It is passed by value so the engine never mutates the caller's copy.
type GenerationContext struct {
	CategoryRaw string     `json:"category"`
	Priority    Priority   `json:"priority"`
	ContextRaw  string     `json:"context"`
	Complexity  int        `json:"complexity"`
	Kind        RecordKind `json:"kind"`
	Variety     Variety    `json:"variety,omitempty"`
}

// Validate checks the enumerated fields and the complexity bound.
func (gc GenerationContext) Validate() error {
	if !gc.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, gc.Priority)
	}
	if !gc.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, gc.Kind)
	}
	if gc.Complexity < MinComplexity || gc.Complexity > MaxComplexity {
		return fmt.Errorf("%w: got %d", ErrInvalidComplexity, gc.Complexity)
	}
	return nil
}

// WithVariety returns a copy of gc carrying v.
func (gc GenerationContext) WithVariety(v Variety) GenerationContext {
	gc.Variety = v
	return gc
}

const (
	MinComplexity = 1
	MaxComplexity = 10
)

// ClampComplexity forces c into MinComplexity..MaxComplexity.
func ClampComplexity(c int) int {
	return min(max(c, MinComplexity), MaxComplexity)
}

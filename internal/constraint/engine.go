package constraint

import (
	"fmt"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/params"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

// ViolationSource says which stage recorded a violation.
type ViolationSource string

const (
	SourceRule  ViolationSource = "rule"
	SourceCheck ViolationSource = "check"
)

// Violation is one soft failure recorded while generating a tree.
type Violation struct {
	ID       string          `json:"id"`
	Source   ViolationSource `json:"source"`
	Detail   string          `json:"detail"`
	Repaired bool            `json:"repaired"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.ID, v.Detail)
}

// Engine generates constrained parameter trees. It keeps a violation log
// across calls until ClearViolations; it is not safe for concurrent use.
type Engine struct {
	reg        *profile.Registry
	rules      []Rule
	violations []Violation
}

type Option func(*Engine)

// WithRules replaces the default rule list.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

func NewEngine(reg *profile.Registry, opts ...Option) *Engine {
	if reg == nil {
		reg = profile.Default()
	}
	e := &Engine{reg: reg, rules: DefaultRules()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the profile registry the engine resolves against.
func (e *Engine) Registry() *profile.Registry {
	return e.reg
}

// Generate builds the tree for gc, applies every rule and repairs what the
// checks flag. It never fails: rule errors and panics become violations.
func (e *Engine) Generate(gc domain.GenerationContext, r *rng.Source) *params.Tree {
	in := params.NewInput(gc, e.reg)
	tree := params.Build(in, r)
	v := View{In: in, Tree: tree}

	for _, rule := range e.rules {
		if err := applyRule(rule, v, r); err != nil {
			e.record(Violation{ID: rule.ID, Source: SourceRule, Detail: err.Error()})
		}
	}
	e.validateAndRepair(v)
	return tree
}

func applyRule(rule Rule, v View, r *rng.Source) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrRulePanic, p)
		}
	}()

	if rule.Condition == nil || !rule.Condition(v) {
		return nil
	}
	if rule.Generate == nil || rule.Apply == nil {
		return nil
	}
	val := rule.Generate(r)
	if rule.Valid != nil && !rule.Valid(val) {
		return fmt.Errorf("%w: %s drew %v", ErrInvalidValue, rule.Target, val)
	}
	if err := rule.Apply(v, val); err != nil {
		return fmt.Errorf("applying to %s: %w", rule.Target, err)
	}
	return nil
}

// validateAndRepair runs each check once. A flagged check with a remedy is
// repaired immediately; the tree is not re-checked afterwards.
func (e *Engine) validateAndRepair(v View) {
	for _, c := range checks {
		detail, bad := c.detect(v)
		if !bad {
			continue
		}
		if c.remedy != nil {
			c.remedy(v)
		}
		e.record(Violation{ID: c.id, Source: SourceCheck, Detail: detail, Repaired: c.remedy != nil})
	}
}

// Validate reports the check violations present in tree without repairing it.
func (e *Engine) Validate(gc domain.GenerationContext, tree *params.Tree) []Violation {
	v := View{In: params.NewInput(gc, e.reg), Tree: tree}
	var out []Violation
	for _, c := range checks {
		if detail, bad := c.detect(v); bad {
			out = append(out, Violation{ID: c.id, Source: SourceCheck, Detail: detail})
		}
	}
	return out
}

func (e *Engine) record(v Violation) {
	e.violations = append(e.violations, v)
}

// Violations returns a copy of the log.
func (e *Engine) Violations() []Violation {
	return append([]Violation(nil), e.violations...)
}

func (e *Engine) ClearViolations() {
	e.violations = nil
}

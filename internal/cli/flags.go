package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

// enumValue is a string flag restricted to a fixed set of values.
type enumValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range e.allowed {
		if s == a {
			e.value = s
			return nil
		}
	}
	return fmt.Errorf("want %s", strings.Join(e.allowed, " or "))
}

func (e *enumValue) Type() string { return "string" }

// augmentFlags are the --augment-* ratio flags. Ranges are checked when the
// batch plan is resolved.
type augmentFlags struct {
	ratios domain.AugmentRatios
}

type ratioFlag struct {
	name  string
	usage string
	dst   *float64
}

func ratioFlags(r *domain.AugmentRatios) []ratioFlag {
	return []ratioFlag{
		{"augment-typo", "share of records given an adjacent-character typo", &r.Typo},
		{"augment-shuffle", "share of records with their words shuffled", &r.EntityShuffle},
		{"augment-adversarial", "share of records given one character-level edit", &r.Adversarial},
		{"augment-paraphrase", "share of records reworded by the llm", &r.Paraphrase},
		{"augment-out-of-scope", "out-of-scope samples to add, as a share of the batch", &r.OutOfScope},
		{"augment-ambiguous", "ambiguous samples to add, as a share of the batch", &r.Ambiguous},
	}
}

func (a *augmentFlags) register(fs *pflag.FlagSet) {
	for _, f := range ratioFlags(&a.ratios) {
		fs.Float64Var(f.dst, f.name, 0, f.usage+" (default from config)")
	}
}

// apply overlays the flags that were set on base. It returns nil when none
// were, leaving the configured ratios to the service defaults.
func (a *augmentFlags) apply(fs *pflag.FlagSet, base domain.AugmentRatios) *domain.AugmentRatios {
	set, out := ratioFlags(&a.ratios), ratioFlags(&base)
	changed := false
	for i, f := range set {
		if fs.Changed(f.name) {
			*out[i].dst = *f.dst
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return &base
}

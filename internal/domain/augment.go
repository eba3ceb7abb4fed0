package domain

import (
	"errors"
	"fmt"
)

// Sample labels mark records injected to teach a classifier what is not a
// network intent.
const (
	SampleLabelOutOfScope = "out_of_scope"
	SampleLabelAmbiguous  = "ambiguous"
)

// AugmentRatios is the share of a batch each augmentation technique touches.
// A zero ratio disables the technique.
type AugmentRatios struct {
	Typo          float64 `yaml:"typo" json:"typo"`
	EntityShuffle float64 `yaml:"entity_shuffle" json:"entity_shuffle"`
	Adversarial   float64 `yaml:"adversarial" json:"adversarial"`
	Paraphrase    float64 `yaml:"paraphrase" json:"paraphrase"`
	OutOfScope    float64 `yaml:"out_of_scope" json:"out_of_scope"`
	Ambiguous     float64 `yaml:"ambiguous" json:"ambiguous"`
}

func (r AugmentRatios) IsZero() bool {
	return r == AugmentRatios{}
}

// Validate reports every ratio outside 0..1.
func (r AugmentRatios) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"typo", r.Typo},
		{"entity_shuffle", r.EntityShuffle},
		{"adversarial", r.Adversarial},
		{"paraphrase", r.Paraphrase},
		{"out_of_scope", r.OutOfScope},
		{"ambiguous", r.Ambiguous},
	} {
		if !(f.v >= 0 && f.v <= 1) {
			errs = append(errs, fmt.Errorf("%w: %s=%g", ErrInvalidRatio, f.name, f.v))
		}
	}
	return errors.Join(errs...)
}

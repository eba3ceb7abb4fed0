package generation

import (
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

// MaxVarietyAttempts bounds how often a colliding description is re-rendered
// with fresh variety axes before an instance suffix is forced.
const MaxVarietyAttempts = 5

var (
	varietyStyles       = []string{"concise", "operational", "executive", "technical", "policy-driven", "narrative"}
	varietyFocuses      = []string{"cost efficiency", "energy savings", "resilience", "user experience", "regulatory compliance", "capacity growth"}
	varietyPhases       = []string{"planning", "rollout", "steady-state", "peak-load", "maintenance", "migration"}
	varietyPerspectives = []string{"operator", "tenant", "regulator", "field engineer", "service owner", "network planner"}
)

// sampleVariety widens with each attempt: the first retry sets one axis, the
// fourth and later set all four.
func sampleVariety(attempt int, r *rng.Source) domain.Variety {
	v := domain.Variety{Style: r.Choice(varietyStyles)}
	if attempt >= 1 {
		v.Focus = r.Choice(varietyFocuses)
	}
	if attempt >= 2 {
		v.Phase = r.Choice(varietyPhases)
	}
	if attempt >= 3 {
		v.Perspective = r.Choice(varietyPerspectives)
	}
	return v
}

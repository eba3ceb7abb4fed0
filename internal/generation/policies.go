package generation

import (
	"fmt"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

const (
	MinBatchSize = 1
	MaxBatchSize = 10000

	DefaultBatchSize = 100
	DefaultSeed      = 42
)

// BatchRequest carries the optional knobs a caller may set for one batch.
// Nil fields fall through to the defaults.
type BatchRequest struct {
	Count   *int
	Seed    *uint64
	Kind    string
	Format  string
	Augment *domain.AugmentRatios
}

// BatchPlan is a BatchRequest with every field resolved.
type BatchPlan struct {
	Count   int
	Seed    uint64
	Kind    domain.RecordKind
	Format  string
	Augment domain.AugmentRatios
}

// ResolveBatchPlan applies the defaults cascade: request > defaults > hardcoded.
// Kind stays empty when neither side names one, which means "any kind".
func ResolveBatchPlan(req, defaults BatchRequest) (BatchPlan, error) {
	plan := BatchPlan{
		Count:   domain.FromPtrWithDefault(DefaultBatchSize, req.Count, defaults.Count),
		Seed:    domain.FromPtrWithDefault[uint64](DefaultSeed, req.Seed, defaults.Seed),
		Format:  strings.ToLower(domain.CoalesceStr(req.Format, defaults.Format, "json")),
		Augment: domain.FromPtrWithDefault(domain.AugmentRatios{}, req.Augment, defaults.Augment),
	}
	if plan.Count < MinBatchSize || plan.Count > MaxBatchSize {
		return BatchPlan{}, fmt.Errorf("%w: got %d, want %d..%d", ErrBatchSize, plan.Count, MinBatchSize, MaxBatchSize)
	}
	if err := plan.Augment.Validate(); err != nil {
		return BatchPlan{}, err
	}
	if raw := domain.CoalesceStr(req.Kind, defaults.Kind); raw != "" && !strings.EqualFold(raw, "any") {
		kind, err := domain.ParseRecordKind(raw)
		if err != nil {
			return BatchPlan{}, err
		}
		plan.Kind = kind
	}
	return plan, nil
}

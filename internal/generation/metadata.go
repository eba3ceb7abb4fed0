package generation

import (
	"fmt"

	"github.com/aadhamashraf/intentgen/internal/constraint"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

const (
	Standard         = "3GPP_Release_17"
	GeneratorVersion = "2.0.0"

	minQualityScore = 7.5
	maxQualityScore = 10.0
)

var (
	dataClassifications = []string{"PUBLIC", "INTERNAL", "CONFIDENTIAL", "RESTRICTED"}
	industryVerticals   = []string{"TELECOMMUNICATIONS", "AUTOMOTIVE", "HEALTHCARE", "MANUFACTURING", "ENERGY", "SMART_CITIES"}
)

func buildMetadata(reg *profile.Registry, gc domain.GenerationContext, r *rng.Source) domain.Metadata {
	return domain.Metadata{
		Version:             fmt.Sprintf("%d.%d.%d", r.IntBetween(1, 3), r.IntBetween(0, 9), r.IntBetween(0, 99)),
		Standard:            Standard,
		Compliance:          constraint.ComplianceStandards(reg, gc.CategoryRaw, gc.Kind, r),
		ResearchContext:     constraint.ResearchContext(reg, gc.CategoryRaw, gc.Complexity, gc.Priority, r),
		TechnicalComplexity: gc.Complexity,
		GeneratorVersion:    GeneratorVersion,
		DataClassification:  r.Choice(dataClassifications),
		QualityScore:        rng.Round(r.Uniform(minQualityScore, maxQualityScore), 2),
		ResearchRelevance:   researchRelevance(gc.Complexity),
		IndustryVertical:    r.Choice(industryVerticals),
	}
}

func researchRelevance(complexity int) string {
	switch {
	case complexity >= 8:
		return "HIGH"
	case complexity >= 5:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// attachViolations records the engine log on the metadata and derives the
// validation status from it.
func attachViolations(meta *domain.Metadata, vs []constraint.Violation) {
	meta.ValidationStatus = "VALIDATED"
	for _, v := range vs {
		meta.Violations = append(meta.Violations, v.String())
		if !v.Repaired {
			meta.ValidationStatus = "PENDING_VALIDATION"
		}
	}
}

package constraint

import (
	"sort"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

// DefaultPriorityWeights apply when the slice names none.
var DefaultPriorityWeights = map[domain.Priority]float64{
	domain.PriorityLow:       0.3,
	domain.PriorityMedium:    0.4,
	domain.PriorityHigh:      0.2,
	domain.PriorityCritical:  0.08,
	domain.PriorityEmergency: 0.02,
}

var (
	defaultComplexityRange = profile.Range{Min: 3, Max: 7}

	complexityByPriority = map[domain.Priority]int{
		domain.PriorityEmergency: 2,
		domain.PriorityCritical:  1,
		domain.PriorityHigh:      0,
		domain.PriorityMedium:    -1,
		domain.PriorityLow:       -2,
	}

	complexityByKind = map[domain.RecordKind]int{
		domain.KindFeasibilityCheck:     2,
		domain.KindPerformanceAssurance: 1,
		domain.KindDeployment:           0,
		domain.KindModification:         1,
		domain.KindReportRequest:        -1,
		domain.KindNotificationRequest:  -1,
	}

	kindStandards = map[domain.RecordKind][]string{
		domain.KindDeployment:           {"3GPP_TS_28.312", "ETSI_NFV_SOL_001"},
		domain.KindModification:         {"3GPP_TS_28.313", "TM_Forum_IG1176"},
		domain.KindPerformanceAssurance: {"3GPP_TS_28.314", "ITU_T_Y.3011"},
		domain.KindReportRequest:        {"3GPP_TS_28.315", "TM_Forum_IG1177"},
		domain.KindFeasibilityCheck:     {"ETSI_NFV_SOL_002", "ONF_TR_526"},
		domain.KindNotificationRequest:  {"IETF_RFC_8309", "IETF_RFC_8329"},
	}
)

// PriorityWeights returns the un-normalized weights for a slice, deployment
// context and record kind, in ascending priority order.
func PriorityWeights(reg *profile.Registry, slice, location string, kind domain.RecordKind) []float64 {
	weights := make(map[domain.Priority]float64, len(DefaultPriorityWeights))
	for p, w := range DefaultPriorityWeights {
		weights[p] = w
	}
	if sc, ok := reg.Slice(slice); ok && len(sc.PriorityWeights) > 0 {
		weights = make(map[domain.Priority]float64, len(sc.PriorityWeights))
		for name, w := range sc.PriorityWeights {
			if p, err := domain.ParsePriority(name); err == nil {
				weights[p] = w
			}
		}
	}

	switch profile.CategorizeContext(location) {
	case domain.ContextHighway, domain.ContextIndustrial:
		weights[domain.PriorityCritical] *= 2
		weights[domain.PriorityHigh] *= 1.5
	}
	if kind == domain.KindPerformanceAssurance || kind == domain.KindFeasibilityCheck {
		weights[domain.PriorityHigh] *= 1.3
		weights[domain.PriorityCritical] *= 1.2
	}

	out := make([]float64, len(domain.Priorities))
	for i, p := range domain.Priorities {
		out[i] = weights[p]
	}
	return out
}

// SamplePriority draws a priority from PriorityWeights.
func SamplePriority(reg *profile.Registry, slice, location string, kind domain.RecordKind, r *rng.Source) domain.Priority {
	return domain.Priorities[r.Weighted(PriorityWeights(reg, slice, location, kind))]
}

// SampleComplexity draws from the slice's complexity range (3..7 when it has
// none), shifts by priority and kind, and clamps to 1..10.
func SampleComplexity(reg *profile.Registry, slice string, p domain.Priority, kind domain.RecordKind, r *rng.Source) int {
	rg := defaultComplexityRange
	if sc, ok := reg.Slice(slice); ok && sc.ComplexityRange.Max > 0 {
		rg = sc.ComplexityRange
	}
	c := r.IntBetween(int(rg.Min), int(rg.Max))
	c += complexityByPriority[p] + complexityByKind[kind]
	return domain.ClampComplexity(c)
}

// ComplianceStandards picks 2 to 4 distinct standards from the category
// profile, the record kind and the slice name.
func ComplianceStandards(reg *profile.Registry, slice string, kind domain.RecordKind, r *rng.Source) []string {
	cat := profile.CategorizeCategory(slice)
	pool := append([]string(nil), reg.Profile(cat).ComplianceStandards...)
	pool = append(pool, kindStandards[kind]...)

	lower := strings.ToLower(slice)
	if strings.Contains(lower, "security") || strings.Contains(lower, "audit") {
		pool = append(pool, "ISO_27001", "NIST_CYBERSECURITY_FRAMEWORK")
	}
	if cat == domain.CategoryV2X {
		pool = append(pool, "ETSI_EN_302_637", "3GPP_TS_22.186")
	}

	pool = dedupe(pool)
	return r.Sample(pool, r.IntBetween(2, 4))
}

// ResearchContext picks a research label for the category, sharpened for
// high complexity and urgent priorities.
func ResearchContext(reg *profile.Registry, slice string, complexity int, p domain.Priority, r *rng.Source) string {
	cat := profile.CategorizeCategory(slice)
	contexts := reg.Catalog().ResearchContexts[string(cat)]
	if len(contexts) == 0 {
		contexts = reg.Catalog().ResearchContexts[string(domain.CategoryEMBB)]
	}
	label := r.Choice(contexts)
	if complexity >= 8 {
		label = strings.NewReplacer("Study", "Advanced_Study", "Research", "Advanced_Research").Replace(label)
	}
	if p.Urgent() {
		label = strings.NewReplacer("Analysis", "Critical_Analysis", "Study", "Mission_Critical_Study").Replace(label)
	}
	return label
}

// dedupe removes repeats and sorts, so the sample depends only on the set.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

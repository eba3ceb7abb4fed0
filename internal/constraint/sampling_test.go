package constraint

import (
	"strings"
	"testing"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/rng"
	"github.com/stretchr/testify/assert"
)

func TestPriorityWeights_ContextAndKindBoosts(t *testing.T) {
	reg := profile.Default()

	urban := PriorityWeights(reg, "Unknown_Slice", "Urban_Center", domain.KindDeployment)
	assert.Equal(t, []float64{0.3, 0.4, 0.2, 0.08, 0.02}, urban)

	highway := PriorityWeights(reg, "Unknown_Slice", "Highway_Corridor", domain.KindDeployment)
	assert.InDelta(t, 0.16, highway[3], 1e-9)
	assert.InDelta(t, 0.3, highway[2], 1e-9)

	feas := PriorityWeights(reg, "Unknown_Slice", "Urban_Center", domain.KindFeasibilityCheck)
	assert.InDelta(t, 0.26, feas[2], 1e-9)
	assert.InDelta(t, 0.096, feas[3], 1e-9)
}

func TestSamplePriority_AlwaysValid(t *testing.T) {
	reg := profile.Default()
	r := rng.New(17)
	seen := map[domain.Priority]int{}
	for i := 0; i < 2000; i++ {
		p := SamplePriority(reg, "URLLC_Industrial_Automation", "Factory_Floor", domain.KindPerformanceAssurance, r)
		assert.True(t, p.Valid())
		seen[p]++
	}
	assert.Greater(t, seen[domain.PriorityCritical], 0)
}

func TestSampleComplexity_InRange(t *testing.T) {
	reg := profile.Default()
	r := rng.New(4)
	for _, p := range domain.Priorities {
		for _, k := range domain.RecordKinds {
			for i := 0; i < 20; i++ {
				c := SampleComplexity(reg, "eMBB_Ultra_HD_Streaming", p, k, r)
				assert.GreaterOrEqual(t, c, 1)
				assert.LessOrEqual(t, c, 10)
			}
		}
	}
}

func TestSampleComplexity_Shifts(t *testing.T) {
	reg := profile.Default()
	// default range 3..7, EMERGENCY +2, FEASIBILITY_CHECK +2
	for seed := uint64(0); seed < 30; seed++ {
		c := SampleComplexity(reg, "Unknown_Slice", domain.PriorityEmergency, domain.KindFeasibilityCheck, rng.New(seed))
		assert.GreaterOrEqual(t, c, 7)
	}
	for seed := uint64(0); seed < 30; seed++ {
		c := SampleComplexity(reg, "Unknown_Slice", domain.PriorityLow, domain.KindReportRequest, rng.New(seed))
		assert.LessOrEqual(t, c, 4)
	}
}

func TestComplianceStandards_DistinctAndBounded(t *testing.T) {
	reg := profile.Default()
	r := rng.New(9)
	for i := 0; i < 50; i++ {
		std := ComplianceStandards(reg, "V2X_Security_Audit", domain.KindModification, r)
		assert.GreaterOrEqual(t, len(std), 2)
		assert.LessOrEqual(t, len(std), 4)

		seen := map[string]bool{}
		for _, s := range std {
			assert.False(t, seen[s], "duplicate %s", s)
			seen[s] = true
		}
	}
}

func TestResearchContext_Sharpened(t *testing.T) {
	reg := profile.Default()
	plain := reg.Catalog().ResearchContexts["mMTC"]

	for seed := uint64(0); seed < 20; seed++ {
		raw := ResearchContext(reg, "IoT_Sensors", 3, domain.PriorityLow, rng.New(seed))
		assert.Contains(t, plain, raw)

		sharp := ResearchContext(reg, "IoT_Sensors", 9, domain.PriorityEmergency, rng.New(seed))
		if strings.Contains(raw, "Study") || strings.Contains(raw, "Research") || strings.Contains(raw, "Analysis") {
			assert.NotEqual(t, raw, sharp)
		} else {
			assert.Equal(t, raw, sharp)
		}
	}
}

package constraint

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gc(category, context string, p domain.Priority, complexity int) domain.GenerationContext {
	return domain.GenerationContext{
		CategoryRaw: category,
		ContextRaw:  context,
		Priority:    p,
		Complexity:  complexity,
		Kind:        domain.KindDeployment,
	}
}

func TestGenerate_URLLCLatencyCeiling(t *testing.T) {
	e := NewEngine(profile.Default())
	for _, p := range domain.Priorities {
		for seed := uint64(0); seed < 40; seed++ {
			tree := e.Generate(gc("URLLC_Smart_Grid", "Rural_Farmland", p, 9), rng.New(seed))
			assert.LessOrEqual(t, tree.QoS.PacketDelayBudgetMs, 5.0, "priority %s seed %d", p, seed)
		}
	}
}

func TestGenerate_MemoryRatioHoldsAfterRepair(t *testing.T) {
	e := NewEngine(profile.Default())
	categories := []string{"URLLC_Industrial_Automation", "eMBB_Ultra_HD_Streaming", "mMTC_Smart_Agriculture", "V2X_Platooning"}
	contexts := []string{"Urban_Center", "Highway_Corridor", "Factory_Floor", "Rural_Farmland"}

	for i, cat := range categories {
		for _, p := range domain.Priorities {
			for c := 1; c <= 10; c++ {
				tree := e.Generate(gc(cat, contexts[i], p, c), rng.New(uint64(c*31+i)))
				ratio := tree.Resources.Compute.MemoryRatio()
				assert.GreaterOrEqual(t, ratio, MinMemoryRatio, "%s %s c=%d", cat, p, c)
				assert.LessOrEqual(t, ratio, MaxMemoryRatio, "%s %s c=%d", cat, p, c)
			}
		}
	}
}

func TestGenerate_LowLatencyGetsEnoughCPU(t *testing.T) {
	e := NewEngine(profile.Default())
	for seed := uint64(0); seed < 50; seed++ {
		tree := e.Generate(gc("URLLC", "industrial", domain.PriorityLow, 1), rng.New(seed))
		if tree.QoS.PacketDelayBudgetMs < 5 {
			assert.GreaterOrEqual(t, tree.Resources.Compute.CPUCores, 4)
		}
	}
}

func TestGenerate_HeavyEncryptionRepairedForNonCriticalURLLC(t *testing.T) {
	e := NewEngine(profile.Default())
	tree := e.Generate(gc("URLLC", "urban", domain.PriorityEmergency, 5), rng.New(8))
	assert.Equal(t, "128_NEA2", tree.Security.EncryptionAlgorithm)

	var found bool
	for _, v := range e.Violations() {
		if v.ID == CheckURLLCHeavyEncryption {
			found = true
			assert.True(t, v.Repaired)
			assert.Equal(t, SourceCheck, v.Source)
		}
	}
	assert.True(t, found)
}

func TestGenerate_CriticalURLLCKeepsStrongEncryption(t *testing.T) {
	e := NewEngine(profile.Default())
	tree := e.Generate(gc("URLLC", "urban", domain.PriorityCritical, 5), rng.New(8))
	assert.Contains(t, tree.Security.EncryptionAlgorithm, "256")
}

func TestGenerate_PanickingRuleBecomesViolation(t *testing.T) {
	boom := Rule{
		ID:        "boom",
		Condition: func(View) bool { return true },
		Generate:  func(*rng.Source) float64 { return 1 },
		Apply:     func(View, float64) error { panic("nil subtree") },
	}
	e := NewEngine(profile.Default(), WithRules(append([]Rule{boom}, DefaultRules()...)...))

	var tree any
	require.NotPanics(t, func() {
		tree = e.Generate(gc("eMBB", "urban", domain.PriorityHigh, 9), rng.New(1))
	})
	require.NotNil(t, tree)

	vs := e.Violations()
	require.NotEmpty(t, vs)
	assert.Equal(t, "boom", vs[0].ID)
	assert.Equal(t, SourceRule, vs[0].Source)
	assert.Contains(t, vs[0].Detail, ErrRulePanic.Error())
}

func TestGenerate_InvalidValueAndApplyErrorRecorded(t *testing.T) {
	outOfRange := Rule{
		ID:        "out_of_range",
		Condition: func(View) bool { return true },
		Target:    "qos_parameters.packet_delay_budget_ms",
		Generate:  func(*rng.Source) float64 { return 42 },
		Valid:     within(0, 1),
		Apply:     func(View, float64) error { t.Fatal("invalid values must not be applied"); return nil },
	}
	failing := Rule{
		ID:        "failing",
		Condition: func(View) bool { return true },
		Generate:  func(*rng.Source) float64 { return 0.5 },
		Apply:     func(View, float64) error { return errors.New("no such field") },
	}
	skipped := Rule{
		ID:        "skipped",
		Condition: func(View) bool { return false },
		Generate:  func(*rng.Source) float64 { return 0.5 },
		Apply:     func(View, float64) error { return errors.New("should not run") },
	}
	e := NewEngine(profile.Default(), WithRules(outOfRange, failing, skipped))
	e.Generate(gc("mMTC", "urban", domain.PriorityLow, 3), rng.New(5))

	var ids []string
	for _, v := range e.Violations() {
		if v.Source == SourceRule {
			ids = append(ids, v.ID)
		}
	}
	assert.Equal(t, []string{"out_of_range", "failing"}, ids)
}

func TestGenerate_DeterministicBySeed(t *testing.T) {
	ctx := gc("V2X_Platooning", "Highway_Corridor", domain.PriorityCritical, 8)
	a, err := json.Marshal(NewEngine(nil).Generate(ctx, rng.New(2024)))
	require.NoError(t, err)
	b, err := json.Marshal(NewEngine(nil).Generate(ctx, rng.New(2024)))
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestGenerate_RuralWidensCoverage(t *testing.T) {
	base := NewEngine(nil, WithRules()).Generate(gc("eMBB", "Rural_Farmland", domain.PriorityMedium, 4), rng.New(3))
	adjusted := NewEngine(nil).Generate(gc("eMBB", "Rural_Farmland", domain.PriorityMedium, 4), rng.New(3))
	assert.Greater(t, adjusted.Topology.Coverage.RadiusKm, base.Topology.Coverage.RadiusKm)
}

func TestValidate_DoesNotRepair(t *testing.T) {
	e := NewEngine(nil, WithRules())
	ctx := gc("eMBB", "urban", domain.PriorityLow, 3)
	tree := e.Generate(ctx, rng.New(1))
	tree.Resources.Compute.CPUCores = 2
	tree.Resources.Compute.MemoryGB = 200

	vs := e.Validate(ctx, tree)
	require.Len(t, vs, 1)
	assert.Equal(t, CheckCPUMemoryRatio, vs[0].ID)
	assert.False(t, vs[0].Repaired)
	assert.Equal(t, 200, tree.Resources.Compute.MemoryGB)
}

func TestClearViolations(t *testing.T) {
	e := NewEngine(nil)
	e.Generate(gc("URLLC", "urban", domain.PriorityEmergency, 5), rng.New(8))
	require.NotEmpty(t, e.Violations())
	e.ClearViolations()
	assert.Empty(t, e.Violations())
}

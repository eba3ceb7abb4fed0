package params

import (
	"encoding/json"
	"testing"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(category, context string, p domain.Priority, complexity int, kind domain.RecordKind) Input {
	return NewInput(domain.GenerationContext{
		CategoryRaw: category,
		ContextRaw:  context,
		Priority:    p,
		Complexity:  complexity,
		Kind:        kind,
	}, profile.Default())
}

func TestBuildQoS_URLLCLatencyNeverExceedsCeiling(t *testing.T) {
	for _, p := range domain.Priorities {
		for _, ctx := range []string{"Rural_Farm", "Highway_Corridor", "Urban_Center", "Factory_Floor"} {
			in := input("URLLC_Remote_Surgery", ctx, p, 5, domain.KindDeployment)
			for seed := uint64(0); seed < 50; seed++ {
				q := BuildQoS(in, rng.New(seed))
				assert.LessOrEqual(t, q.PacketDelayBudgetMs, 5.0, "priority %s context %s seed %d", p, ctx, seed)
				assert.Positive(t, q.PacketDelayBudgetMs)
			}
		}
	}
}

func TestBuildQoS_CriticalPERNotAboveLow(t *testing.T) {
	for _, cat := range []string{"URLLC", "eMBB_Video", "IoT_Sensors", "V2X_Platooning"} {
		for seed := uint64(1); seed <= 20; seed++ {
			low := BuildQoS(input(cat, "urban", domain.PriorityLow, 5, domain.KindDeployment), rng.New(seed))
			crit := BuildQoS(input(cat, "urban", domain.PriorityCritical, 5, domain.KindDeployment), rng.New(seed))
			assert.LessOrEqual(t, crit.PacketErrorRate, low.PacketErrorRate, "category %s seed %d", cat, seed)
		}
	}
}

func TestPacketErrorRate_Ranges(t *testing.T) {
	assert.InDelta(t, 1e-6, PacketErrorRate(domain.CategoryURLLC, domain.PriorityLow, 0), 1e-12)
	assert.InDelta(t, 1e-5, PacketErrorRate(domain.CategoryV2X, domain.PriorityMedium, 1), 1e-12)
	assert.InDelta(t, 1e-4, PacketErrorRate(domain.CategoryEMBB, domain.PriorityLow, 0), 1e-12)
	assert.InDelta(t, 1e-3, PacketErrorRate(domain.CategoryMMTC, domain.PriorityLow, 0), 1e-12)
	assert.InDelta(t, 1e-2, PacketErrorRate(domain.CategoryMMTC, domain.PriorityLow, 1), 1e-12)
	assert.InDelta(t, 1e-4, PacketErrorRate(domain.CategoryMMTC, domain.PriorityEmergency, 0), 1e-12)
	assert.InDelta(t, 1e-3, PacketErrorRate(domain.CategoryMMTC, domain.PriorityCritical, 1), 1e-12)
}

func TestBuildQoS_ReliabilityCapped(t *testing.T) {
	q := BuildQoS(input("URLLC", "industrial", domain.PriorityEmergency, 9, domain.KindDeployment), rng.New(7))
	assert.LessOrEqual(t, q.ReliabilityPercent, ReliabilityCeiling)
	assert.Equal(t, "MAY_PREEMPT", q.PreemptionCapability)
}

func TestBuildResources_FloorsAndUrgentBoost(t *testing.T) {
	for c := 1; c <= 10; c++ {
		res := BuildResources(input("IoT_Sensors", "rural", domain.PriorityLow, c, domain.KindDeployment), rng.New(uint64(c)))
		assert.GreaterOrEqual(t, res.Compute.CPUCores, 1)
		assert.GreaterOrEqual(t, res.Compute.MemoryGB, 1)
		assert.GreaterOrEqual(t, res.Compute.StorageGB, 1)
	}

	low := BuildResources(input("URLLC", "urban", domain.PriorityLow, 6, domain.KindDeployment), rng.New(3))
	high := BuildResources(input("URLLC", "urban", domain.PriorityEmergency, 6, domain.KindDeployment), rng.New(3))
	assert.GreaterOrEqual(t, high.Compute.CPUCores, low.Compute.CPUCores)
}

func TestComplexityMultiplier(t *testing.T) {
	assert.InDelta(t, 0.7, ComplexityMultiplier(1), 1e-9)
	assert.InDelta(t, 2.5, ComplexityMultiplier(10), 1e-9)
}

func TestBuildMonitoring_LevelsAndModels(t *testing.T) {
	assert.Equal(t, MonitoringComprehensive, MonitoringLevel(3, domain.PriorityEmergency))
	assert.Equal(t, MonitoringComprehensive, MonitoringLevel(8, domain.PriorityLow))
	assert.Equal(t, MonitoringDetailed, MonitoringLevel(2, domain.PriorityHigh))
	assert.Equal(t, MonitoringBasic, MonitoringLevel(4, domain.PriorityMedium))

	simple := BuildMonitoring(input("eMBB", "urban", domain.PriorityLow, 3, domain.KindDeployment), rng.New(1))
	assert.Nil(t, simple.Analytics.MLModels)
	assert.Equal(t, []string{"SNMP", "REST_API"}, simple.Alerting.NotificationChannels)

	rich := BuildMonitoring(input("eMBB", "urban", domain.PriorityCritical, 9, domain.KindDeployment), rng.New(1))
	assert.Len(t, rich.Analytics.MLModels, 5)
	assert.Contains(t, rich.KPI.KeyMetrics, "security_events")
	assert.Contains(t, rich.KPI.KeyMetrics, "anomaly_scores")
	assert.GreaterOrEqual(t, rich.KPI.SamplingRatePercent, 80)
}

func TestBuildOptimization_TuningMatchesAlgorithm(t *testing.T) {
	for seed := uint64(0); seed < 30; seed++ {
		o := BuildOptimization(input("eMBB", "urban", domain.PriorityMedium, 9, domain.KindDeployment), rng.New(seed))
		switch o.Algorithm {
		case "Multi_Objective_Genetic_Algorithm":
			assert.NotNil(t, o.Tuning.PopulationSize)
			assert.Nil(t, o.Tuning.Temperature)
		case "Simulated_Annealing":
			assert.NotNil(t, o.Tuning.Temperature)
			assert.Nil(t, o.Tuning.PopulationSize)
		case "Particle_Swarm_Optimization":
			assert.Equal(t, AlgorithmTuning{}, o.Tuning)
		default:
			t.Fatalf("unexpected algorithm %q at complexity 9", o.Algorithm)
		}
	}
}

func TestBuildScaling_MMTCBounds(t *testing.T) {
	s := BuildScaling(input("mMTC_Smart_City", "urban", domain.PriorityLow, 4, domain.KindDeployment), rng.New(2))
	assert.Equal(t, 1, s.Constraints.MinInstances)
	assert.Equal(t, 10000, s.Constraints.MaxInstances)
}

func TestBuildIntentDetails_OnlyKindSection(t *testing.T) {
	for _, kind := range domain.RecordKinds {
		d := BuildIntentDetails(input("eMBB", "urban", domain.PriorityMedium, 5, kind), rng.New(4))
		raw, err := json.Marshal(d)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(raw, &m))
		// four envelope keys plus the kind's own sections
		want := 5
		if kind == domain.KindDeployment {
			want = 6
		}
		assert.Len(t, m, want, "kind %s", kind)
	}
}

func TestTreeMap_TopLevelKeys(t *testing.T) {
	tree := Build(input("URLLC_Industrial_Automation", "Factory_Floor", domain.PriorityHigh, 7, domain.KindModification), rng.New(11))
	m, err := tree.Map()
	require.NoError(t, err)

	for _, k := range []string{
		"qos_parameters", "resource_allocation", "security_parameters", "network_topology",
		"monitoring_parameters", "performance_requirements", "scaling_parameters",
		"optimization_parameters", "intent_details",
	} {
		assert.Contains(t, m, k)
	}
	assert.Len(t, m, 9)

	qos, ok := m["qos_parameters"].(map[string]any)
	require.True(t, ok)
	assert.IsType(t, float64(0), qos["packet_delay_budget_ms"])
}

func TestBuild_DeterministicBySeed(t *testing.T) {
	in := input("V2X_Platooning", "Highway_Corridor", domain.PriorityCritical, 8, domain.KindFeasibilityCheck)
	a, err := json.Marshal(Build(in, rng.New(99)))
	require.NoError(t, err)
	b, err := json.Marshal(Build(in, rng.New(99)))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

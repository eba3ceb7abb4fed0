package constraint

import (
	"math"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

// Rule is one correlation between inputs and parameters. When Condition
// holds, a value is drawn with Generate, checked with Valid and handed to
// Apply, which adjusts the parameter named by Target.
type Rule struct {
	ID        string
	Condition func(View) bool
	Target    string
	Generate  func(*rng.Source) float64
	Valid     func(float64) bool
	Apply     func(View, float64) error
	Weight    float64
}

func uniform(lo, hi float64) func(*rng.Source) float64 {
	return func(r *rng.Source) float64 { return r.Uniform(lo, hi) }
}

func within(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v >= lo && v <= hi }
}

// DefaultRules returns the rule list in application order.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:        "priority_latency_correlation",
			Condition: func(v View) bool { return v.In.Urgent() },
			Target:    "qos_parameters.packet_delay_budget_ms",
			Generate:  uniform(0.2, 0.5),
			Valid:     within(0.1, 0.8),
			Apply: func(v View, f float64) error {
				q := &v.Tree.QoS
				q.PacketDelayBudgetMs = rng.Round(q.PacketDelayBudgetMs*f, 2)
				return nil
			},
			Weight: 0.9,
		},
		{
			ID:        "complexity_resource_correlation",
			Condition: func(v View) bool { return v.In.Complexity >= 8 },
			Target:    "resource_allocation.compute_resources.cpu_cores",
			Generate:  uniform(1.8, 3.5),
			Valid:     within(1.0, 5.0),
			Apply: func(v View, f float64) error {
				c := &v.Tree.Resources.Compute
				c.CPUCores = max(1, int(float64(c.CPUCores)*f))
				return nil
			},
			Weight: 0.8,
		},
		{
			ID:        "slice_priority_correlation",
			Condition: func(v View) bool { return v.In.Category.LatencyCritical() },
			Target:    "qos_parameters.preemption_capability",
			Generate:  uniform(0.7, 1.0),
			Valid:     within(0.5, 1.0),
			Apply: func(v View, f float64) error {
				q := &v.Tree.QoS
				q.PreemptionCapability = "MAY_PREEMPT"
				q.PriorityLevel = max(1, int(float64(q.PriorityLevel)*(1-f)))
				return nil
			},
			Weight: 0.95,
		},
		{
			ID:        "reliability_latency_tradeoff",
			Condition: func(v View) bool { return v.Tree.QoS.ReliabilityPercent > 99.99 },
			Target:    "qos_parameters.packet_delay_budget_ms",
			Generate:  uniform(1.1, 1.4),
			Valid:     within(1.0, 2.0),
			Apply: func(v View, f float64) error {
				q := &v.Tree.QoS
				q.PacketDelayBudgetMs = math.Min(rng.Round(q.PacketDelayBudgetMs*f, 2), v.In.MaxLatency)
				return nil
			},
			Weight: 0.7,
		},
		{
			ID:        "throughput_resource_correlation",
			Condition: func(v View) bool { return v.Throughput() > 1000 },
			Target:    "resource_allocation.network_resources.bandwidth_allocation_mbps",
			Generate:  uniform(1.5, 2.5),
			Valid:     within(1.0, 3.0),
			Apply: func(v View, f float64) error {
				n := &v.Tree.Resources.Network
				n.BandwidthMbps = int(float64(n.BandwidthMbps) * f)
				return nil
			},
			Weight: 0.85,
		},
		{
			ID: "security_performance_tradeoff",
			Condition: func(v View) bool {
				return v.In.Profile.Security.EncryptionStrength == "AES_256"
			},
			Target:   "resource_allocation.virtualization_parameters.virtualization_overhead_percent",
			Generate: uniform(1.2, 1.6),
			Valid:    within(1.0, 2.0),
			Apply: func(v View, f float64) error {
				vp := &v.Tree.Resources.Virtualization
				vp.OverheadPercent = rng.Round(vp.OverheadPercent*f, 1)
				return nil
			},
			Weight: 0.6,
		},
		{
			ID:        "location_coverage_correlation",
			Condition: func(v View) bool { return v.In.Context == domain.ContextRural },
			Target:    "network_topology.coverage.coverage_radius_km",
			Generate:  uniform(2.0, 4.0),
			Valid:     within(1.0, 5.0),
			Apply: func(v View, f float64) error {
				c := &v.Tree.Topology.Coverage
				c.RadiusKm = rng.Round(c.RadiusKm*f, 2)
				return nil
			},
			Weight: 0.75,
		},
		{
			ID:        "mobility_handover_correlation",
			Condition: func(v View) bool { return v.In.Location.MobilityFactor > 0.7 },
			Target:    "network_topology.coverage.handover_frequency_per_min",
			Generate:  uniform(2.0, 5.0),
			Valid:     within(1.0, 10.0),
			Apply: func(v View, f float64) error {
				v.Tree.Topology.Coverage.HandoverFrequencyPerMin = rng.Round(f, 2)
				return nil
			},
			Weight: 0.8,
		},
		{
			ID:        "device_density_resource_correlation",
			Condition: func(v View) bool { return v.In.Category == domain.CategoryMMTC },
			Target:    "resource_allocation.network_resources.connection_density_per_km2",
			Generate:  uniform(10, 1000),
			Valid:     within(1, 10000),
			Apply: func(v View, f float64) error {
				n := &v.Tree.Resources.Network
				n.ConnectionDensityKm2 = int(float64(n.ConnectionDensityKm2) * f)
				return nil
			},
			Weight: 0.9,
		},
		{
			ID: "energy_performance_correlation",
			Condition: func(v View) bool {
				return strings.EqualFold(v.In.Location.PowerAvailability, "LIMITED")
			},
			Target:   "performance_requirements.quality_of_experience.performance_consistency_percent",
			Generate: uniform(0.8, 0.95),
			Valid:    within(0.5, 1.0),
			Apply: func(v View, f float64) error {
				e := &v.Tree.Performance.Experience
				e.PerformanceConsistencyPercent = rng.Round(e.PerformanceConsistencyPercent*f, 1)
				return nil
			},
			Weight: 0.65,
		},
	}
}

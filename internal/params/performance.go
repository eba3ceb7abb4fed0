package params

import (
	"math"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

type perfBase struct {
	throughput, latency, availability, reliability [2]float64
}

var perfBases = map[domain.Category]perfBase{
	domain.CategoryURLLC: {[2]float64{10, 100}, [2]float64{0.1, 5}, [2]float64{99.999, 99.9999}, [2]float64{99.99, 99.999}},
	domain.CategoryV2X:   {[2]float64{10, 1000}, [2]float64{1, 10}, [2]float64{99.99, 99.999}, [2]float64{99.9, 99.99}},
	domain.CategoryEMBB:  {[2]float64{100, 10000}, [2]float64{10, 50}, [2]float64{99.9, 99.99}, [2]float64{99.5, 99.9}},
	domain.CategoryMMTC:  {[2]float64{1, 10}, [2]float64{100, 1000}, [2]float64{99.0, 99.9}, [2]float64{99.0, 99.5}},
}

var performanceMultiplier = map[domain.Priority]float64{
	domain.PriorityEmergency: 1.8,
	domain.PriorityCritical:  1.5,
	domain.PriorityHigh:      1.2,
	domain.PriorityMedium:    1.0,
	domain.PriorityLow:       0.8,
}

type Performance struct {
	ThroughputMbps      int                 `json:"throughput_requirement_mbps"`
	LatencyMs           float64             `json:"latency_requirement_ms"`
	AvailabilityPercent float64             `json:"availability_requirement_percent"`
	ReliabilityPercent  float64             `json:"reliability_requirement_percent"`
	Scalability         Scalability         `json:"scalability_requirement"`
	SLA                 PerformanceSLA      `json:"performance_sla"`
	Experience          QualityOfExperience `json:"quality_of_experience"`
}

type Scalability struct {
	MaxInstances      int    `json:"horizontal_scaling_instances"`
	VerticalCores     int    `json:"vertical_scaling_cores"`
	AutoScalingPolicy string `json:"auto_scaling_policy"`
	CPUThreshold      int    `json:"cpu_threshold_percent"`
	MemoryThreshold   int    `json:"memory_threshold_percent"`
	NetworkThreshold  int    `json:"network_threshold_percent"`
	ScalingSpeed      string `json:"scaling_speed"`
	CooldownSec       int    `json:"scaling_cooldown_seconds"`
}

type PerformanceSLA struct {
	ResponseTimeMs      float64 `json:"response_time_sla_ms"`
	ThroughputMbps      float64 `json:"throughput_sla_mbps"`
	AvailabilityPercent float64 `json:"availability_sla_percent"`
	PenaltyClauses      string  `json:"penalty_clauses"`
}

type QualityOfExperience struct {
	UserSatisfactionPercent       float64 `json:"user_satisfaction_target_percent"`
	ServiceQualityIndex           float64 `json:"service_quality_index"`
	PerformanceConsistencyPercent float64 `json:"performance_consistency_percent"`
}

// BuildPerformance scales the category requirements by the priority
// multiplier and applies the profile's throughput→latency coefficient.
func BuildPerformance(in Input, r *rng.Source) Performance {
	base, ok := perfBases[in.Category]
	if !ok {
		base = perfBases[domain.CategoryEMBB]
	}
	m, ok := performanceMultiplier[in.Priority]
	if !ok {
		m = 1.0
	}

	throughput := int(r.Uniform(base.throughput[0], base.throughput[1]) * m)
	latency := r.Uniform(base.latency[0], base.latency[1]) / m
	availability := math.Min(ReliabilityCeiling, r.Uniform(base.availability[0], base.availability[1])*(1+(m-1)*0.001))
	reliability := math.Min(99.999, r.Uniform(base.reliability[0], base.reliability[1])*(1+(m-1)*0.001))

	if coeff, ok := in.Profile.Interdependencies["throughput"]["latency"]; ok {
		throughput = int(float64(throughput) * math.Max(0.1, 1+coeff*(latency/100)))
	}

	return Performance{
		ThroughputMbps:      throughput,
		LatencyMs:           rng.Round(latency, 1),
		AvailabilityPercent: rng.Round(availability, 3),
		ReliabilityPercent:  rng.Round(reliability, 2),
		Scalability:         buildScalability(in, r),
		SLA: PerformanceSLA{
			ResponseTimeMs:      rng.Round(latency*2, 1),
			ThroughputMbps:      math.Round(float64(throughput) * 0.9),
			AvailabilityPercent: rng.Round(availability, 3),
			PenaltyClauses:      choose(in.Urgent(), "ENABLED", "DISABLED"),
		},
		Experience: QualityOfExperience{
			UserSatisfactionPercent:       rng.Round(r.Uniform(85, 98), 1),
			ServiceQualityIndex:           rng.Round(r.Uniform(3.5, 5.0), 1),
			PerformanceConsistencyPercent: rng.Round(r.Uniform(90, 99), 1),
		},
	}
}

func buildScalability(in Input, r *rng.Source) Scalability {
	var s Scalability
	if in.Urgent() {
		s.AutoScalingPolicy = "PROACTIVE"
		s.MaxInstances = r.IntBetween(100, 1000)
		s.ScalingSpeed = "VERY_FAST"
	} else {
		s.AutoScalingPolicy = r.Choice([]string{"REACTIVE", "PROACTIVE"})
		s.MaxInstances = r.IntBetween(10, 100)
		s.ScalingSpeed = r.Choice([]string{"FAST", "MEDIUM"})
	}
	s.VerticalCores = r.IntBetween(4, 64)
	s.CPUThreshold = r.IntBetween(70, 90)
	s.MemoryThreshold = r.IntBetween(80, 95)
	s.NetworkThreshold = r.IntBetween(75, 90)
	s.CooldownSec = r.IntBetween(30, 300)
	return s
}

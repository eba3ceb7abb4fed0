package params

import (
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

type Scaling struct {
	Strategy    ScalingStrategy    `json:"scaling_strategy"`
	ScaleOut    ScalingPolicy      `json:"scale_out_policy"`
	ScaleIn     ScalingPolicy      `json:"scale_in_policy"`
	Constraints ScalingConstraints `json:"scaling_constraints"`
}

type ScalingStrategy struct {
	Horizontal  string `json:"horizontal_scaling"`
	Vertical    string `json:"vertical_scaling"`
	Sensitivity string `json:"auto_scaling_sensitivity"`
	Speed       string `json:"scaling_speed"`
}

type ScalingPolicy struct {
	Metric            string `json:"metric"`
	ThresholdPercent  int    `json:"threshold_percent"`
	EvaluationPeriods int    `json:"evaluation_periods"`
	CooldownSec       int    `json:"cooldown_period_seconds"`
}

type ScalingConstraints struct {
	MinInstances     int `json:"min_instances"`
	MaxInstances     int `json:"max_instances"`
	Increment        int `json:"scaling_increment"`
	MaxCPUCores      int `json:"max_cpu_cores"`
	MaxMemoryGB      int `json:"max_memory_gb"`
	MaxBandwidthGbps int `json:"max_network_bandwidth_gbps"`
}

// BuildScaling copies the profile's scaling policy and draws thresholds.
// mMTC always scales from 1 to 10000 instances.
func BuildScaling(in Input, r *rng.Source) Scaling {
	pol := in.Profile.Scaling
	s := Scaling{
		Strategy: ScalingStrategy{
			Horizontal:  orDefault(pol.HorizontalScaling, "SUPPORTED"),
			Vertical:    orDefault(pol.VerticalScaling, "SUPPORTED"),
			Sensitivity: orDefault(pol.AutoScalingSensitivity, "MEDIUM"),
			Speed:       orDefault(pol.ScalingSpeed, "MEDIUM"),
		},
		ScaleOut: ScalingPolicy{
			Metric:            "CPU_UTILIZATION",
			ThresholdPercent:  r.IntBetween(70, 85),
			EvaluationPeriods: r.IntBetween(2, 5),
			CooldownSec:       r.IntBetween(60, 300),
		},
		ScaleIn: ScalingPolicy{
			Metric:            "CPU_UTILIZATION",
			ThresholdPercent:  r.IntBetween(20, 40),
			EvaluationPeriods: r.IntBetween(5, 10),
			CooldownSec:       r.IntBetween(300, 600),
		},
	}
	if in.Category == domain.CategoryMMTC {
		s.Constraints.MinInstances = 1
		s.Constraints.MaxInstances = 10000
	} else {
		s.Constraints.MinInstances = r.IntBetween(2, 5)
		s.Constraints.MaxInstances = r.IntBetween(10, 100)
	}
	s.Constraints.Increment = r.IntBetween(1, 5)
	s.Constraints.MaxCPUCores = r.IntBetween(100, 1000)
	s.Constraints.MaxMemoryGB = r.IntBetween(500, 5000)
	s.Constraints.MaxBandwidthGbps = r.IntBetween(1, 100)
	return s
}

type Optimization struct {
	Algorithm   string              `json:"optimization_algorithm"`
	Targets     []string            `json:"optimization_targets"`
	Budget      OptimizationBudget  `json:"optimization_constraints"`
	Tuning      AlgorithmTuning     `json:"algorithm_parameters"`
	Convergence ConvergenceCriteria `json:"convergence_criteria"`
}

type OptimizationBudget struct {
	ResourceBudgetUSD    int     `json:"resource_budget_usd"`
	TimeBudgetHours      int     `json:"time_budget_hours"`
	PerformanceThreshold float64 `json:"performance_threshold_percent"`
}

// AlgorithmTuning holds only the knobs that apply to the chosen algorithm.
type AlgorithmTuning struct {
	PopulationSize *int     `json:"population_size,omitempty"`
	MutationRate   *float64 `json:"mutation_rate,omitempty"`
	CrossoverRate  *float64 `json:"crossover_rate,omitempty"`
	LearningRate   *float64 `json:"learning_rate,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty"`
}

type ConvergenceCriteria struct {
	MaxIterations        int     `json:"max_iterations"`
	Tolerance            float64 `json:"tolerance"`
	ImprovementThreshold float64 `json:"improvement_threshold"`
}

var optimizationTargets = map[domain.Category][]string{
	domain.CategoryURLLC: {"latency", "reliability", "determinism"},
	domain.CategoryV2X:   {"safety", "latency", "mobility_performance"},
	domain.CategoryEMBB:  {"throughput", "user_experience", "spectral_efficiency"},
	domain.CategoryMMTC:  {"power_efficiency", "connection_density", "cost"},
}

// BuildOptimization picks an algorithm tier by complexity. A named slice's
// optimization targets take precedence over the category defaults.
func BuildOptimization(in Input, r *rng.Source) Optimization {
	var algo string
	switch {
	case in.Complexity >= 9:
		algo = r.Choice([]string{"Multi_Objective_Genetic_Algorithm", "Particle_Swarm_Optimization", "Simulated_Annealing"})
	case in.Complexity >= 7:
		algo = r.Choice([]string{"Genetic_Algorithm", "Gradient_Descent", "Bayesian_Optimization"})
	default:
		algo = r.Choice([]string{"Greedy_Algorithm", "Hill_Climbing", "Random_Search"})
	}

	targets := optimizationTargets[in.Category]
	if in.Slice != nil && len(in.Slice.OptimizationTargets) > 0 {
		targets = in.Slice.OptimizationTargets
	}
	if targets == nil {
		targets = []string{"performance", "cost", "efficiency"}
	}

	o := Optimization{
		Algorithm: algo,
		Targets:   append([]string(nil), targets...),
		Budget: OptimizationBudget{
			ResourceBudgetUSD:    r.IntBetween(10000, 1000000),
			TimeBudgetHours:      r.IntBetween(1, 24),
			PerformanceThreshold: rng.Round(r.Uniform(80, 95), 1),
		},
	}
	if strings.Contains(algo, "Genetic") {
		pop := r.IntBetween(50, 200)
		mut := rng.Round(r.Uniform(0.01, 0.1), 4)
		cross := rng.Round(r.Uniform(0.6, 0.9), 4)
		o.Tuning.PopulationSize, o.Tuning.MutationRate, o.Tuning.CrossoverRate = &pop, &mut, &cross
	}
	if strings.Contains(algo, "Gradient") {
		lr := rng.Round(r.Uniform(0.001, 0.1), 4)
		o.Tuning.LearningRate = &lr
	}
	if strings.Contains(algo, "Simulated") {
		temp := rng.Round(r.Uniform(100, 1000), 1)
		o.Tuning.Temperature = &temp
	}
	o.Convergence = ConvergenceCriteria{
		MaxIterations:        r.IntBetween(100, 1000),
		Tolerance:            rng.Round(r.Uniform(0.001, 0.01), 5),
		ImprovementThreshold: rng.Round(r.Uniform(0.01, 0.1), 4),
	}
	return o
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

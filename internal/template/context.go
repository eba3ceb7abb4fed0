// Package template turns a generated parameter tree into a natural-language
// description: it flattens the tree, scores topic richness, picks a strategy
// and renders the best-fitting candidate template.
package template

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/profile"
)

type Topic string

const (
	TopicNetwork       Topic = "network"
	TopicQoS           Topic = "qos"
	TopicSecurity      Topic = "security"
	TopicResource      Topic = "resource"
	TopicMonitoring    Topic = "monitoring"
	TopicOrchestration Topic = "orchestration"
	TopicPerformance   Topic = "performance"
	TopicAIML          Topic = "ai_ml"
)

// Topics lists every richness topic in scoring order.
var Topics = []Topic{
	TopicNetwork, TopicQoS, TopicSecurity, TopicResource,
	TopicMonitoring, TopicOrchestration, TopicPerformance, TopicAIML,
}

// representatives are flattened-key substrings whose presence marks a topic
// as covered. Most topics mix always-present keys with keys that only appear
// for certain kinds, priorities or complexities.
var representatives = map[Topic][]string{
	TopicNetwork:       {"spectrum_bands", "antenna_configuration", "backhaul", "network_slicing", "deployment_specification_network_function"},
	TopicQoS:           {"packet_delay_budget", "jitter_tolerance", "packet_error_rate", "traffic_steering", "performance_objectives_packet_loss"},
	TopicSecurity:      {"encryption_algorithm", "key_management", "zero_trust_architecture", "threat_detection", "threat_intelligence"},
	TopicResource:      {"cpu_cores", "memory_size_gb", "bandwidth_allocation", "virtualization_overhead", "feasibility_assessment_compute"},
	TopicMonitoring:    {"monitoring_level", "key_metrics_7", "key_metrics_10", "ml_models", "ml_models_deep_learning"},
	TopicOrchestration: {"orchestration_parameters", "workflow_id", "scaling_strategy", "rollback", "change_pattern"},
	TopicPerformance:   {"throughput_requirement", "latency_requirement", "performance_sla", "quality_of_experience", "performance_objectives"},
	TopicAIML:          {"ml_models_anomaly_detection", "ml_models_deep_learning", "ml_models_reinforcement_learning", "algorithm_parameters", "predictive_analytics"},
}

type Strategy string

const (
	StrategyCognitive              Strategy = "cognitive"
	StrategyZeroTrust              Strategy = "zero-trust"
	StrategyMissionCritical        Strategy = "mission-critical"
	StrategyParameterRich          Strategy = "parameter-rich"
	StrategyOrchestrationAware     Strategy = "orchestration-aware"
	StrategyScenarioBased          Strategy = "scenario-based"
	StrategyAutonomousOptimization Strategy = "autonomous-optimization"
	StrategyAIDriven               Strategy = "ai-driven"
	StrategyEdgeComputing          Strategy = "edge-computing"
	StrategyCrossDomain            Strategy = "cross-domain"
)

const parameterRichThreshold = 0.7

// Context is the read-only view a template renders from.
type Context struct {
	Flat     map[string]string
	Richness map[Topic]float64
	Strategy Strategy

	Kind        domain.RecordKind
	Priority    domain.Priority
	Complexity  int
	Category    domain.Category
	Location    domain.ContextCategory
	CategoryRaw string
	ContextRaw  string
	Variety     domain.Variety
	Meta        domain.Metadata
}

// BuildContext flattens tree, scores richness and selects a strategy.
func BuildContext(tree map[string]any, gc domain.GenerationContext, meta domain.Metadata) Context {
	flat := make(map[string]string)
	Flatten("", tree, flat)

	ctx := Context{
		Flat:        flat,
		Richness:    Richness(flat),
		Kind:        gc.Kind,
		Priority:    gc.Priority,
		Complexity:  domain.ClampComplexity(gc.Complexity),
		Category:    profile.CategorizeCategory(gc.CategoryRaw),
		Location:    profile.CategorizeContext(gc.ContextRaw),
		CategoryRaw: gc.CategoryRaw,
		ContextRaw:  gc.ContextRaw,
		Variety:     gc.Variety,
		Meta:        meta,
	}
	ctx.Strategy = SelectStrategy(ctx)
	return ctx
}

// Flatten writes every leaf of v into out. Map keys are joined with "_" and
// slice elements get their index as a suffix.
func Flatten(prefix string, v any, out map[string]string) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "_" + k
	}

	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			Flatten(join(k), child, out)
		}
	case []any:
		for i, child := range t {
			Flatten(join(strconv.Itoa(i)), child, out)
		}
	case []string:
		for i, child := range t {
			out[join(strconv.Itoa(i))] = child
		}
	case nil:
		if prefix != "" {
			out[prefix] = ""
		}
	default:
		if prefix != "" {
			out[prefix] = scalarString(t)
		}
	}
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Richness scores each topic as the share of its representatives that occur
// in at least one flattened key.
func Richness(flat map[string]string) map[Topic]float64 {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[Topic]float64, len(Topics))
	for _, topic := range Topics {
		reps := representatives[topic]
		hits := 0
		for _, rep := range reps {
			for _, k := range keys {
				if strings.Contains(k, rep) {
					hits++
					break
				}
			}
		}
		out[topic] = float64(hits) / float64(len(reps))
	}
	return out
}

// MeanRichness averages the topic scores.
func (c Context) MeanRichness() float64 {
	if len(Topics) == 0 {
		return 0
	}
	var sum float64
	for _, t := range Topics {
		sum += c.Richness[t]
	}
	return sum / float64(len(Topics))
}

// SelectStrategy walks the decision tree: urgent high complexity first, then
// overall richness, then record kind, then category.
func SelectStrategy(c Context) Strategy {
	if c.Complexity >= 8 && c.Priority.Urgent() {
		ai, sec := c.Richness[TopicAIML], c.Richness[TopicSecurity]
		switch {
		case ai > sec:
			return StrategyCognitive
		case sec > ai:
			return StrategyZeroTrust
		default:
			return StrategyMissionCritical
		}
	}

	if c.MeanRichness() > parameterRichThreshold {
		return StrategyParameterRich
	}

	switch c.Kind {
	case domain.KindDeployment:
		if c.Richness[TopicOrchestration] >= 0.5 {
			return StrategyOrchestrationAware
		}
		return StrategyScenarioBased
	case domain.KindPerformanceAssurance:
		return StrategyAutonomousOptimization
	case domain.KindFeasibilityCheck:
		return StrategyAIDriven
	}

	switch {
	case c.Category.LatencyCritical():
		return StrategyMissionCritical
	case strings.Contains(strings.ToLower(c.CategoryRaw), "edge"):
		return StrategyEdgeComputing
	default:
		return StrategyCrossDomain
	}
}

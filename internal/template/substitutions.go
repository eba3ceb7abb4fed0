package template

import (
	"fmt"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

// Substitution produces the text for one placeholder. Returning false makes
// the engine fall back to the placeholder's default.
type Substitution func(Context, *rng.Source) (string, bool)

type substitution struct {
	fn  Substitution
	def string
}

// Flattened key paths read by the built-in substitutions.
const (
	keyLatency        = "qos_parameters_packet_delay_budget_ms"
	keyReliability    = "qos_parameters_reliability_percent"
	keyThroughput     = "performance_requirements_throughput_requirement_mbps"
	keyEncryption     = "security_parameters_encryption_algorithm"
	keyMonitoring     = "monitoring_parameters_monitoring_level"
	keyOptimization   = "optimization_parameters_optimization_algorithm"
	keyCPU            = "resource_allocation_compute_resources_cpu_cores"
	keyMemory         = "resource_allocation_compute_resources_memory_size_gb"
	keyNF             = "intent_details_deployment_specification_network_function"
	keyVNFProvider    = "intent_details_deployment_specification_vnf_provider"
	keyRollback       = "intent_details_orchestration_parameters_rollback_strategy"
	keyResourceType   = "intent_details_modification_specification_resource_type"
	keyOperation      = "intent_details_modification_specification_operation_type"
	keyChangePattern  = "intent_details_modification_specification_change_pattern"
	keyRollbackOn     = "intent_details_modification_specification_rollback_configuration_rollback_enabled"
	keyRollbackWithin = "intent_details_modification_specification_rollback_configuration_rollback_timeout_seconds"
	keySLAType        = "intent_details_performance_objectives_sla_type"
	keyAvailability   = "intent_details_performance_objectives_availability_target_percent"
	keyProactive      = "intent_details_performance_objectives_proactive_actions_0"
	keyReportType     = "intent_details_report_specification_report_type"
	keyReportDomain   = "intent_details_report_specification_domains"
	keyReportNE       = "intent_details_report_specification_network_elements"
	keyDelivery       = "intent_details_report_specification_delivery_method"
	keyScope          = "intent_details_feasibility_assessment_assessment_scope"
	keyVerdict        = "intent_details_feasibility_assessment_feasibility_verdict"
	keyEvent          = "intent_details_notification_configuration_event_types_0"
	keySubscription   = "intent_details_notification_configuration_subscription_type"
	keyChannel        = "intent_details_notification_configuration_primary_channel"
)

var priorityPhrases = map[domain.Priority]string{
	domain.PriorityEmergency: "emergency",
	domain.PriorityCritical:  "critical",
	domain.PriorityHigh:      "high-priority",
	domain.PriorityMedium:    "standard",
	domain.PriorityLow:       "best-effort",
}

func (c Context) lookup(key string) (string, bool) {
	v, ok := c.Flat[key]
	return v, ok && v != ""
}

// words lower-cases an enum value and turns underscores into spaces.
func words(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", " "))
}

func spaced(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

func fromFlat(key string, format func(string) string) Substitution {
	return func(c Context, _ *rng.Source) (string, bool) {
		v, ok := c.lookup(key)
		if !ok {
			return "", false
		}
		return format(v), true
	}
}

func pick(items []string) Substitution {
	return func(_ Context, r *rng.Source) (string, bool) {
		if len(items) == 0 {
			return "", false
		}
		return r.Choice(items), true
	}
}

func unit(u string) func(string) string {
	return func(v string) string { return v + u }
}

func identity(v string) string { return v }

func builtinSubstitutions() map[string]substitution {
	subs := map[string]substitution{
		"slice_type": {func(c Context, _ *rng.Source) (string, bool) {
			if c.CategoryRaw == "" {
				return "", false
			}
			return spaced(c.CategoryRaw), true
		}, "network slice"},
		"location": {func(c Context, _ *rng.Source) (string, bool) {
			if c.ContextRaw == "" {
				return "", false
			}
			return spaced(c.ContextRaw), true
		}, "the target site"},
		"network_function": {func(c Context, _ *rng.Source) (string, bool) {
			if v, ok := c.lookup(keyNF); ok {
				return v, true
			}
			return c.lookup(keyReportNE)
		}, "core network function"},
		"latency":                {fromFlat(keyLatency, unit(" ms")), "low"},
		"reliability":            {fromFlat(keyReliability, unit("%")), "carrier-grade"},
		"throughput":             {fromFlat(keyThroughput, unit(" Mbps throughput")), "high throughput"},
		"encryption":             {fromFlat(keyEncryption, identity), "256-bit"},
		"monitoring_level":       {fromFlat(keyMonitoring, words), "detailed"},
		"optimization_algorithm": {fromFlat(keyOptimization, words), "multi-objective"},
		"cpu_cores":              {fromFlat(keyCPU, identity), "dedicated"},
		"memory":                 {fromFlat(keyMemory, unit(" GB")), "dedicated memory"},
		"vnf_provider":           {fromFlat(keyVNFProvider, identity), "a certified vendor"},
		"rollback_strategy":      {fromFlat(keyRollback, words), "automatic"},
		"priority_phrase": {func(c Context, _ *rng.Source) (string, bool) {
			p, ok := priorityPhrases[c.Priority]
			return p, ok
		}, "standard"},
		"kind_phrase": {kindPhrase, "service lifecycle management"},
		"category_term": {func(c Context, r *rng.Source) (string, bool) {
			return pick(categoryTerms[c.Category])(c, r)
		}, "5G network"},
		"location_term": {func(c Context, r *rng.Source) (string, bool) {
			return pick(locationTerms[c.Location])(c, r)
		}, "service area"},

		"target_resource": {fromFlat(keyResourceType, words), "network resource"},
		"operation_type":  {fromFlat(keyOperation, words), "reconfiguration"},
		"change_pattern":  {fromFlat(keyChangePattern, words), "rolling update"},
		"rollback_feature": {func(c Context, _ *rng.Source) (string, bool) {
			on, ok := c.lookup(keyRollbackOn)
			if !ok {
				return "", false
			}
			if on != "true" {
				return "manual rollback procedures", true
			}
			if within, ok := c.lookup(keyRollbackWithin); ok {
				return fmt.Sprintf("automatic rollback within %s seconds", within), true
			}
			return "automatic rollback", true
		}, "rollback safeguards"},
		"validation_feature": {pick([]string{
			"pre-change validation", "post-change verification", "configuration drift detection", "canary health checks",
		}), "change validation"},

		"sla_tier":            {fromFlat(keySLAType, words), "gold tier"},
		"availability_target": {fromFlat(keyAvailability, unit("%")), "99.99%"},
		"assurance_action":    {fromFlat(keyProactive, words), "predictive scaling"},
		"prediction_feature": {pick([]string{
			"predictive degradation detection", "proactive fault prediction", "traffic forecasting", "capacity trend prediction",
		}), "predictive analytics"},

		"report_type":     {fromFlat(keyReportType, words), "performance analytics"},
		"report_domain":   {fromFlat(keyReportDomain, spaced), "RAN"},
		"delivery_method": {fromFlat(keyDelivery, spaced), "REST API"},
		"time_period": {pick([]string{
			"last 24 hours", "previous week", "current billing cycle", "last quarter", "peak traffic window",
		}), "last 24 hours"},
		"aggregation_method": {pick([]string{
			"time-series", "percentile", "rolling-window", "weighted average", "per-cell",
		}), "time-series"},

		"target_deployment": {pick([]string{
			"network slice expansion", "edge computing rollout", "core network upgrade",
			"RAN densification", "private 5G network", "multi-access edge integration",
		}), "the proposed deployment"},
		"assessment_scope":       {fromFlat(keyScope, words), "comprehensive"},
		"recommendation_outcome": {fromFlat(keyVerdict, words), "go/no-go"},
		"risk_analysis": {pick([]string{
			"risk-weighted scoring", "failure mode analysis", "dependency risk mapping", "Monte Carlo risk simulation",
		}), "risk analysis"},
		"economic_analysis": {pick([]string{
			"total cost of ownership modelling", "ROI projection", "capex and opex analysis", "break-even analysis",
		}), "cost analysis"},

		"event_type":        {fromFlat(keyEvent, words), "performance"},
		"subscription_type": {fromFlat(keySubscription, words), "event-based"},
		"delivery_channel":  {fromFlat(keyChannel, identity), "webhook"},
		"qos_guarantee": {pick([]string{
			"at-least-once", "exactly-once", "ordered", "low-latency",
		}), "reliable"},
	}

	for name, list := range modifiers {
		subs[name] = substitution{pick(list), list[0]}
	}
	return subs
}

func kindPhrase(c Context, _ *rng.Source) (string, bool) {
	switch c.Kind {
	case domain.KindDeployment:
		if nf, ok := c.lookup(keyNF); ok {
			return "deployment of " + nf, true
		}
		return "network function deployment", true
	case domain.KindModification:
		if res, ok := c.lookup(keyResourceType); ok {
			return "modification of the " + words(res), true
		}
		return "configuration change", true
	case domain.KindPerformanceAssurance:
		if sla, ok := c.lookup(keySLAType); ok {
			return words(sla) + " SLA assurance", true
		}
		return "performance assurance", true
	case domain.KindReportRequest:
		if rt, ok := c.lookup(keyReportType); ok {
			return words(rt) + " reporting", true
		}
		return "intent reporting", true
	case domain.KindFeasibilityCheck:
		return "feasibility assessment", true
	case domain.KindNotificationRequest:
		if ev, ok := c.lookup(keyEvent); ok {
			return "notification of " + words(ev) + " events", true
		}
		return "event notification", true
	}
	return "", false
}

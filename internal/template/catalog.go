package template

import "github.com/aadhamashraf/intentgen/internal/domain"

type Tier string

const (
	TierBasic    Tier = "basic"
	TierAdvanced Tier = "advanced"
	TierResearch Tier = "research"
)

// TierFor maps complexity to a vocabulary tier.
func TierFor(complexity int) Tier {
	switch {
	case complexity >= 8:
		return TierResearch
	case complexity >= 5:
		return TierAdvanced
	default:
		return TierBasic
	}
}

var strategyTemplates = map[Strategy][]string{
	StrategyCognitive: {
		"Enable {complexity_modifier} cognitive control of {network_function} for {slice_type} at {location}, using {ai_feature} to hold {latency} latency and {reliability} reliability under {priority_phrase} conditions",
		"Apply {ai_feature} and {optimization_algorithm} optimization to steer {slice_type} at {location} toward {throughput} with {monitoring_feature}",
		"Let {complexity_modifier} {ai_feature} govern {kind_phrase} for {slice_type} at {location} with {security_feature}",
	},
	StrategyZeroTrust: {
		"Enforce {complexity_modifier} zero-trust protection for {slice_type} at {location} with {encryption} encryption, {security_feature} and {latency} latency bounds",
		"Harden {network_function} serving {slice_type} at {location} through {security_feature}, continuous verification and {monitoring_feature}",
		"Carry out {kind_phrase} for {slice_type} at {location} under zero-trust policy with {encryption} encryption and {priority_phrase} escalation",
	},
	StrategyMissionCritical: {
		"Guarantee {complexity_modifier} mission-critical {category_term} service for {slice_type} at {location} with {latency} latency and {reliability} reliability",
		"Carry out {kind_phrase} for {slice_type} at {location} with {performance_modifier} handling, {latency} latency and {priority_phrase} treatment",
		"Secure {reliability} reliability for {network_function} supporting {slice_type} in the {location_term} with {monitoring_feature}",
	},
	StrategyParameterRich: {
		"Provision {slice_type} at {location} with {throughput}, {latency} latency, {reliability} reliability, {encryption} encryption and {monitoring_level} monitoring using {optimization_algorithm} optimization",
		"Configure {complexity_modifier} {kind_phrase} for {slice_type} at {location} targeting {throughput} at {latency} with {cpu_cores} CPU cores and {memory} of memory",
		"Deliver {slice_type} at {location} with {performance_modifier} {throughput}, {latency} latency, {security_feature} and {monitoring_feature}",
	},
	StrategyOrchestrationAware: {
		"Orchestrate {complexity_modifier} deployment of {network_function} for {slice_type} at {location} using {orchestration_feature} with {rollback_strategy} rollback",
		"Deploy {network_function} from {vnf_provider} at {location} for {slice_type} with {orchestration_feature} and {performance_modifier} resource allocation",
		"Roll out {network_function} for {slice_type} at {location} through a {orchestration_feature} workflow with {monitoring_feature}",
	},
	StrategyAutonomousOptimization: {
		"Maintain {complexity_modifier} closed-loop assurance for {slice_type} at {location} at the {sla_tier} with {assurance_action} and {prediction_feature}",
		"Keep {availability_target} availability for {slice_type} at {location} through {assurance_action} and {monitoring_feature}",
		"Continuously optimize {slice_type} at {location} for {latency} latency using {optimization_algorithm} optimization and {prediction_feature}",
	},
	StrategyAIDriven: {
		"Assess with {ai_feature} whether {target_deployment} for {slice_type} at {location} is feasible, reaching a {recommendation_outcome} recommendation",
		"Run a {complexity_modifier} {assessment_scope} feasibility study of {target_deployment} at {location} for {slice_type} with {risk_analysis}",
		"Evaluate {target_deployment} for {slice_type} at {location} using {ai_feature} and {economic_analysis}",
	},
	StrategyEdgeComputing: {
		"Place {network_function} at the edge near {location} for {slice_type} with {latency} latency and {technical_feature}",
		"Carry out {kind_phrase} for edge-hosted {slice_type} at {location} with {performance_modifier} processing and {monitoring_feature}",
		"Extend {slice_type} to edge sites at {location} with {orchestration_feature} and {throughput}",
	},
	StrategyCrossDomain: {
		"Coordinate {complexity_modifier} {kind_phrase} across RAN, transport and core domains for {slice_type} at {location}",
		"Carry out {kind_phrase} for {slice_type} in the {location_term} with {performance_modifier} handling and {monitoring_feature}",
		"Align {category_term} policies for {slice_type} at {location} across domains with {technical_feature}",
	},
}

// kindTemplates holds the kind-specific vocabulary used by the
// scenario-based strategy.
var kindTemplates = map[domain.RecordKind]map[Tier][]string{
	domain.KindDeployment: {
		TierBasic: {
			"Deploy {network_function} network function at {location} for {slice_type}",
			"Establish {network_function} deployment supporting {slice_type} requirements",
			"Provision {network_function} instance for {slice_type} service delivery",
		},
		TierAdvanced: {
			"Execute {complexity_modifier} deployment of {network_function} with {performance_modifier} configuration at {location} supporting {slice_type}",
			"Implement {complexity_modifier} {network_function} deployment featuring {technical_feature} for {slice_type} at {location}",
			"Instantiate {complexity_modifier} {network_function} with {orchestration_feature} and {performance_modifier} resource allocation for {slice_type}",
		},
		TierResearch: {
			"Execute {complexity_modifier} deployment of {network_function} at {location} for {slice_type} with {orchestration_feature}, {security_feature} and {ai_feature} for detailed performance analysis",
			"Implement {complexity_modifier} multi-vendor {network_function} deployment with {technical_feature}, {monitoring_feature} and {ai_feature} for {slice_type} at {location}",
		},
	},
	domain.KindModification: {
		TierBasic: {
			"Modify {target_resource} configuration for {slice_type} optimization",
			"Update {target_resource} parameters at {location} for {slice_type}",
		},
		TierAdvanced: {
			"Implement {complexity_modifier} modification of {target_resource} through {operation_type} at {location} for {slice_type}",
			"Reconfigure {target_resource} with a {change_pattern} strategy and {rollback_feature} for {slice_type}",
		},
		TierResearch: {
			"Implement {complexity_modifier} modification of {target_resource} through {operation_type} at {location} for {slice_type} with {rollback_feature}, {ai_feature} and impact analysis",
			"Reconfigure {target_resource} with a {change_pattern} strategy, {monitoring_feature} and {validation_feature} for {slice_type}",
		},
	},
	domain.KindPerformanceAssurance: {
		TierBasic: {
			"Establish performance monitoring for {slice_type} at {location}",
			"Enforce the {sla_tier} SLA for {slice_type}",
		},
		TierAdvanced: {
			"Establish {complexity_modifier} performance assurance for {slice_type} at {location} at the {sla_tier}",
			"Enforce SLA targets with {assurance_action} and {monitoring_feature} for {slice_type}",
		},
		TierResearch: {
			"Establish {complexity_modifier} performance assurance for {slice_type} at {location} guaranteeing {availability_target} availability through {prediction_feature} and {assurance_action}",
		},
	},
	domain.KindReportRequest: {
		TierBasic: {
			"Generate a {report_type} report for {slice_type} operations",
			"Create {report_type} covering the {time_period} for {slice_type}",
		},
		TierAdvanced: {
			"Generate a {complexity_modifier} {report_type} report for the {report_domain} domain at {location} for {slice_type}",
			"Create {report_type} with {aggregation_method} aggregation and {delivery_method} delivery for {slice_type}",
		},
		TierResearch: {
			"Generate a {complexity_modifier} {report_type} report for the {report_domain} domain at {location} for {slice_type} with {aggregation_method} aggregation, {ai_feature} and {monitoring_feature}",
		},
	},
	domain.KindFeasibilityCheck: {
		TierBasic: {
			"Assess feasibility of {target_deployment} for {slice_type}",
			"Evaluate technical viability of {target_deployment} at {location}",
		},
		TierAdvanced: {
			"Conduct {complexity_modifier} {assessment_scope} feasibility analysis of {target_deployment} at {location}",
		},
		TierResearch: {
			"Conduct {complexity_modifier} {assessment_scope} feasibility analysis of {target_deployment} at {location} with {risk_analysis} and {economic_analysis}, recommending {recommendation_outcome}",
		},
	},
	domain.KindNotificationRequest: {
		TierBasic: {
			"Configure notifications for {event_type} events on {slice_type}",
			"Deliver {event_type} events for {slice_type} via {delivery_channel}",
		},
		TierAdvanced: {
			"Configure {complexity_modifier} {subscription_type} notifications for {event_type} events at {location} for {slice_type}",
			"Deliver {event_type} events over {delivery_channel} with {qos_guarantee} delivery for {slice_type}",
		},
		TierResearch: {
			"Configure {complexity_modifier} {subscription_type} notifications for {event_type} events at {location} for {slice_type} over {delivery_channel} with {qos_guarantee} delivery and {ai_feature}",
		},
	},
}

var modifiers = map[string][]string{
	"complexity_modifier": {
		"sophisticated", "advanced", "comprehensive", "intelligent", "adaptive",
		"multi-layered", "enterprise-grade", "cutting-edge", "next-generation",
		"AI-enhanced", "cloud-native", "microservices-based",
	},
	"performance_modifier": {
		"high-performance", "ultra-reliable", "low-latency", "high-throughput",
		"deterministic", "real-time", "carrier-grade", "production-ready", "scalable", "resilient",
	},
	"technical_feature": {
		"edge computing integration", "AI-driven optimization", "quantum-resistant encryption",
		"self-healing capabilities", "autonomous operation", "multi-cloud orchestration",
		"intent-driven automation", "cognitive networking", "digital twin integration",
	},
	"orchestration_feature": {
		"cloud-native orchestration", "multi-vendor coordination", "automated lifecycle management",
		"policy-driven deployment", "service mesh integration", "GitOps-enabled deployment",
		"infrastructure-as-code", "blue-green deployment", "canary release management",
	},
	"ai_feature": {
		"machine learning optimization", "predictive analytics", "anomaly detection",
		"reinforcement learning", "federated learning", "explainable AI", "deep learning insights",
	},
	"security_feature": {
		"zero-trust architecture", "end-to-end encryption", "quantum-safe cryptography",
		"behavioral analytics", "automated incident response", "micro-segmentation",
		"identity-based access control", "compliance automation",
	},
	"monitoring_feature": {
		"comprehensive telemetry", "real-time observability", "distributed tracing",
		"predictive monitoring", "intelligent alerting", "automated root cause analysis",
		"SLA compliance tracking", "capacity planning",
	},
}

var categoryTerms = map[domain.Category][]string{
	domain.CategoryURLLC: {"ultra-reliable low-latency", "industrial automation", "tactile internet"},
	domain.CategoryEMBB:  {"enhanced mobile broadband", "multimedia streaming", "immersive experience"},
	domain.CategoryMMTC:  {"massive machine-type", "IoT connectivity", "sensor network"},
	domain.CategoryV2X:   {"vehicle-to-everything", "autonomous driving", "connected mobility"},
}

var locationTerms = map[domain.ContextCategory][]string{
	domain.ContextUrban:      {"metropolitan area", "dense urban environment", "city center"},
	domain.ContextRural:      {"remote area", "agricultural region", "sparse coverage zone"},
	domain.ContextHighway:    {"transportation corridor", "vehicular pathway", "transit route"},
	domain.ContextIndustrial: {"manufacturing facility", "industrial complex", "production environment"},
}

var richnessPhrases = map[Topic]string{
	TopicNetwork:       "dense radio and transport topology",
	TopicQoS:           "strict QoS guarantees",
	TopicSecurity:      "layered zero-trust safeguards",
	TopicResource:      "dedicated compute reservations",
	TopicMonitoring:    "fine-grained telemetry",
	TopicOrchestration: "automated lifecycle orchestration",
	TopicPerformance:   "tight SLA targets",
	TopicAIML:          "AI-driven closed-loop control",
}

// Candidates returns the templates considered for ctx.
func Candidates(ctx Context) []string {
	if ctx.Strategy == StrategyScenarioBased {
		if tiers, ok := kindTemplates[ctx.Kind]; ok {
			return tiers[TierFor(ctx.Complexity)]
		}
	}
	list, ok := strategyTemplates[ctx.Strategy]
	if !ok {
		list = strategyTemplates[StrategyCrossDomain]
	}
	// The generic fallback speaks the record kind's own vocabulary first.
	if ctx.Strategy == StrategyCrossDomain {
		if tiers, ok := kindTemplates[ctx.Kind]; ok {
			return append(append([]string(nil), tiers[TierFor(ctx.Complexity)]...), list...)
		}
	}
	return list
}

package params

import (
	"fmt"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

var (
	serviceLevels = []string{"PLATINUM_PLUS", "PLATINUM", "GOLD_PREMIUM", "GOLD", "SILVER_PLUS", "SILVER", "BRONZE"}
	vnfProviders  = []string{"Ericsson", "Nokia", "Huawei", "Samsung", "ZTE", "Cisco"}
	riskLevels    = []string{"VERY_LOW", "LOW", "MEDIUM", "HIGH", "VERY_HIGH"}
)

// IntentDetails carries the request envelope plus exactly one kind-specific
// section. Sections for other kinds are nil and omitted from the tree.
type IntentDetails struct {
	RequestID     string `json:"request_id"`
	CorrelationID string `json:"correlation_id"`
	TenantID      string `json:"tenant_id"`
	ServiceLevel  string `json:"service_level"`

	Deployment    *DeploymentSpec   `json:"deployment_specification,omitempty"`
	Orchestration *Orchestration    `json:"orchestration_parameters,omitempty"`
	Modification  *ModificationSpec `json:"modification_specification,omitempty"`
	Assurance     *AssuranceSpec    `json:"performance_objectives,omitempty"`
	Report        *ReportSpec       `json:"report_specification,omitempty"`
	Feasibility   *FeasibilitySpec  `json:"feasibility_assessment,omitempty"`
	Notification  *NotificationSpec `json:"notification_configuration,omitempty"`
}

type DeploymentSpec struct {
	NetworkFunction    string `json:"network_function"`
	VNFDescriptorID    string `json:"vnfd_id"`
	VNFDVersion        string `json:"vnfd_version"`
	VNFProvider        string `json:"vnf_provider"`
	SoftwareVersion    string `json:"vnf_software_version"`
	Flavor             string `json:"deployment_flavor"`
	MinInstances       int    `json:"min_number_of_instances"`
	MaxInstances       int    `json:"max_number_of_instances"`
	InitialInstances   int    `json:"initial_number_of_instances"`
	InstantiationLevel string `json:"instantiation_level_id"`
	AntiAffinity       string `json:"anti_affinity"`
	Affinity           string `json:"affinity"`
}

type Orchestration struct {
	NFVOID           string `json:"nfvo_id"`
	VNFMID           string `json:"vnfm_id"`
	VIMID            string `json:"vim_id"`
	WorkflowID       string `json:"workflow_id"`
	WorkflowVersion  string `json:"workflow_version"`
	ExecutionTimeout int    `json:"execution_timeout_seconds"`
	RollbackStrategy string `json:"rollback_strategy"`
}

type ModificationSpec struct {
	ResourceType     string   `json:"resource_type"`
	ResourceID       string   `json:"resource_id"`
	CurrentState     string   `json:"current_state"`
	Operation        string   `json:"operation_type"`
	ChangeType       string   `json:"change_type"`
	ChangePattern    string   `json:"change_pattern"`
	Rollback         Rollback `json:"rollback_configuration"`
	AffectedServices int      `json:"affected_services"`
	DowntimeSeconds  int      `json:"estimated_downtime_seconds"`
	TechnicalRisk    string   `json:"technical_risk"`
	BusinessRisk     string   `json:"business_risk"`
}

type Rollback struct {
	Enabled        bool     `json:"rollback_enabled"`
	TimeoutSeconds int      `json:"rollback_timeout_seconds"`
	Triggers       []string `json:"rollback_triggers"`
}

type AssuranceSpec struct {
	SLAID              string   `json:"sla_id"`
	SLAType            string   `json:"sla_type"`
	AvailabilityTarget float64  `json:"availability_target_percent"`
	MTTRMinutes        int      `json:"mean_time_to_repair_minutes"`
	MTBFHours          int      `json:"mean_time_between_failures_hours"`
	LatencyTargetMs    float64  `json:"end_to_end_latency_target_ms"`
	PacketLossTarget   float64  `json:"packet_loss_target_percent"`
	HandoverSuccess    float64  `json:"handover_success_rate_percent"`
	ProactiveActions   []string `json:"proactive_actions"`
	ReactiveActions    []string `json:"reactive_actions"`
}

type ReportSpec struct {
	ReportType         string   `json:"report_type"`
	Granularity        string   `json:"granularity"`
	TimeZone           string   `json:"time_zone"`
	GeographicalRegion string   `json:"geographical_region"`
	NetworkElement     string   `json:"network_elements"`
	Domain             string   `json:"domains"`
	Metrics            []string `json:"metrics_of_interest"`
	OutputFormat       string   `json:"format"`
	Compression        string   `json:"compression"`
	DeliveryMethod     string   `json:"delivery_method"`
	MaxRetries         int      `json:"max_retries"`
}

type FeasibilitySpec struct {
	Scope                   string  `json:"assessment_scope"`
	ComputeAvailable        int     `json:"compute_resources_available_percent"`
	NetworkAvailable        int     `json:"network_resources_available_percent"`
	StandardsCompliance     string  `json:"standards_compliance"`
	ImplementationReadiness string  `json:"implementation_readiness"`
	CapitalExpenditureUSD   int     `json:"capital_expenditure_usd"`
	MonthlyOpexUSD          int     `json:"operational_expenditure_usd_per_month"`
	ReturnOnInvestment      float64 `json:"return_on_investment_percent"`
	ProcessChanges          string  `json:"process_changes_required"`
	Verdict                 string  `json:"feasibility_verdict"`
}

type NotificationSpec struct {
	SubscriptionID   string   `json:"subscription_id"`
	SubscriptionType string   `json:"subscription_type"`
	EventTypes       []string `json:"event_types"`
	SeverityFilter   string   `json:"severity_filter"`
	Frequency        string   `json:"frequency"`
	BatchSize        int      `json:"batch_size"`
	PrimaryChannel   string   `json:"primary_channel"`
	FallbackChannel  string   `json:"fallback_channel"`
	MessageFormat    string   `json:"message_format"`
	Authentication   string   `json:"authentication_method"`
}

// Simple deployments carry no orchestration workflow.
const orchestrationMinComplexity = 5

var performanceMetrics = []string{
	"throughput", "latency", "jitter", "packet_loss", "availability",
	"cpu_utilization", "memory_utilization", "session_count", "handover_success_rate",
	"spectral_efficiency", "energy_efficiency", "connection_density",
}

var notificationEvents = []string{
	"PERFORMANCE_THRESHOLD_CROSSED", "FAULT_DETECTED", "SLA_VIOLATION",
	"CONFIGURATION_CHANGE", "SECURITY_INCIDENT", "CAPACITY_WARNING",
}

// BuildIntentDetails fills the envelope and the section matching in.Kind.
func BuildIntentDetails(in Input, r *rng.Source) IntentDetails {
	d := IntentDetails{
		RequestID:     "REQ_" + r.Hex(8),
		CorrelationID: "CORR_" + r.Hex(8),
		TenantID:      fmt.Sprintf("TENANT_%d", r.IntBetween(10000, 99999)),
	}
	if in.Urgent() {
		d.ServiceLevel = r.Choice(serviceLevels[:3])
	} else {
		d.ServiceLevel = r.Choice(serviceLevels)
	}

	switch in.Kind {
	case domain.KindDeployment:
		d.Deployment, d.Orchestration = buildDeployment(in, r)
	case domain.KindModification:
		d.Modification = buildModification(in, r)
	case domain.KindPerformanceAssurance:
		d.Assurance = buildAssurance(in, r)
	case domain.KindReportRequest:
		d.Report = buildReport(in, r)
	case domain.KindFeasibilityCheck:
		d.Feasibility = buildFeasibility(in, r)
	case domain.KindNotificationRequest:
		d.Notification = buildNotification(in, r)
	}
	return d
}

func networkFunction(in Input, r *rng.Source) string {
	if in.Slice != nil && len(in.Slice.RequiredNFs) > 0 {
		return r.Choice(in.Slice.RequiredNFs)
	}
	if len(in.NetworkFunctions) > 0 {
		return r.Choice(in.NetworkFunctions)
	}
	return "UPF"
}

func buildDeployment(in Input, r *rng.Source) (*DeploymentSpec, *Orchestration) {
	nf := networkFunction(in, r)
	spec := &DeploymentSpec{
		NetworkFunction:    nf,
		VNFDescriptorID:    "vnfd_" + r.Hex(6),
		VNFDVersion:        fmt.Sprintf("%d.%d.%d", r.IntBetween(1, 5), r.IntBetween(0, 9), r.IntBetween(0, 99)),
		VNFProvider:        r.Choice(vnfProviders),
		SoftwareVersion:    fmt.Sprintf("SW_%d.%d.%d", r.IntBetween(1, 10), r.IntBetween(0, 99), r.IntBetween(0, 999)),
		Flavor:             "High_Performance_" + r.Choice([]string{"Compute", "Network", "Storage"}) + "_Optimized",
		MinInstances:       r.IntBetween(1, 5),
		MaxInstances:       r.IntBetween(10, 100),
		InitialInstances:   r.IntBetween(2, 10),
		InstantiationLevel: fmt.Sprintf("level_%d", r.IntBetween(1, 5)),
		AntiAffinity:       r.Choice([]string{"HOST", "ZONE", "REGION"}),
	}
	if in.Category.LatencyCritical() {
		spec.Affinity = "HARD"
	} else {
		spec.Affinity = r.Choice([]string{"SOFT", "HARD", "PREFERRED"})
	}

	if in.Complexity < orchestrationMinComplexity {
		return spec, nil
	}
	orch := &Orchestration{
		NFVOID:           "nfvo_" + r.Hex(6),
		VNFMID:           "vnfm_" + r.Hex(6),
		VIMID:            "vim_" + r.Hex(6),
		WorkflowID:       "workflow_" + r.Hex(8),
		WorkflowVersion:  fmt.Sprintf("%d.%d", r.IntBetween(1, 3), r.IntBetween(0, 9)),
		ExecutionTimeout: r.IntBetween(600, 7200),
	}
	if in.Urgent() {
		orch.RollbackStrategy = "AUTOMATIC"
	} else {
		orch.RollbackStrategy = r.Choice([]string{"AUTOMATIC", "MANUAL", "CONDITIONAL"})
	}
	return spec, orch
}

func buildModification(in Input, r *rng.Source) *ModificationSpec {
	m := &ModificationSpec{
		ResourceType: r.Choice([]string{"VNF_INSTANCE", "NETWORK_SLICE", "QOS_FLOW", "PDU_SESSION"}),
		ResourceID:   "resource_" + r.Hex(8),
		CurrentState: r.Choice([]string{"INSTANTIATED", "STARTED", "STOPPED", "CONFIGURED"}),
		Operation:    r.Choice([]string{"MODIFY_INFO", "CHANGE_FLAVOUR", "CHANGE_EXT_CONN", "OPERATE"}),
		ChangeType:   r.Choice([]string{"ADDED", "REMOVED", "MODIFIED", "TEMPORARY"}),
		Rollback: Rollback{
			TimeoutSeconds: r.IntBetween(300, 1800),
			Triggers: r.Sample([]string{
				"PERFORMANCE_DEGRADATION", "ERROR_RATE_THRESHOLD", "MANUAL_TRIGGER", "HEALTH_CHECK_FAILURE",
			}, r.IntBetween(1, 3)),
		},
		AffectedServices: r.IntBetween(1, 50),
		DowntimeSeconds:  r.IntBetween(0, 300),
		TechnicalRisk:    r.Choice(riskLevels),
		BusinessRisk:     r.Choice(riskLevels),
	}
	// Urgent changes always roll out gradually and can be reverted.
	if in.Urgent() {
		m.ChangePattern = r.Choice([]string{"ROLLING_UPDATE", "CANARY"})
		m.Rollback.Enabled = true
	} else {
		m.ChangePattern = r.Choice([]string{"ROLLING_UPDATE", "BLUE_GREEN", "CANARY", "IMMEDIATE"})
		m.Rollback.Enabled = r.Bool()
	}
	return m
}

func buildAssurance(in Input, r *rng.Source) *AssuranceSpec {
	a := &AssuranceSpec{
		SLAID:              "sla_" + r.Hex(6),
		SLAType:            r.Choice([]string{"GOLD_TIER", "SILVER_TIER", "BRONZE_TIER", "CUSTOM_TIER"}),
		AvailabilityTarget: rng.Round(r.Uniform(99.5, 99.999), 3),
		MTTRMinutes:        r.IntBetween(15, 240),
		MTBFHours:          r.IntBetween(720, 8760),
		LatencyTargetMs:    rng.Round(r.Uniform(in.Profile.LatencyRange.Min, in.MaxLatency), 2),
		PacketLossTarget:   rng.Round(r.Uniform(0.001, 0.1), 4),
		HandoverSuccess:    rng.Round(r.Uniform(98, 99.9), 2),
		ProactiveActions:   r.Sample([]string{"PREDICTIVE_SCALING", "CAPACITY_PLANNING", "TRAFFIC_REROUTING", "PREVENTIVE_MAINTENANCE"}, 2),
		ReactiveActions:    r.Sample([]string{"AUTO_HEALING", "LOAD_BALANCING", "FAILOVER", "RESOURCE_REALLOCATION"}, 2),
	}
	return a
}

func buildReport(in Input, r *rng.Source) *ReportSpec {
	return &ReportSpec{
		ReportType:         r.Choice([]string{"PERFORMANCE_ANALYTICS", "SECURITY_AUDIT", "COMPLIANCE_ASSESSMENT", "RESOURCE_UTILIZATION", "FAULT_ANALYSIS"}),
		Granularity:        r.Choice([]string{"1_MINUTE", "5_MINUTES", "15_MINUTES", "1_HOUR", "1_DAY"}),
		TimeZone:           r.Choice([]string{"UTC", "EST", "PST", "CET", "JST"}),
		GeographicalRegion: r.Choice([]string{"GLOBAL", "REGIONAL", "NATIONAL", "METROPOLITAN", "LOCAL"}),
		NetworkElement:     networkFunction(in, r),
		Domain:             r.Choice([]string{"RAN", "CORE", "TRANSPORT", "MANAGEMENT", "SECURITY"}),
		Metrics:            r.Sample(performanceMetrics, r.IntBetween(3, 8)),
		OutputFormat:       r.Choice([]string{"JSON", "XML", "CSV", "PARQUET", "AVRO", "YAML"}),
		Compression:        r.Choice([]string{"GZIP", "BZIP2", "LZ4", "SNAPPY", "NONE"}),
		DeliveryMethod:     r.Choice([]string{"REST_API", "SFTP", "S3_BUCKET", "KAFKA_TOPIC", "EMAIL"}),
		MaxRetries:         r.IntBetween(3, 10),
	}
}

func buildFeasibility(in Input, r *rng.Source) *FeasibilitySpec {
	f := &FeasibilitySpec{
		Scope:                   r.Choice([]string{"TECHNICAL_ONLY", "ECONOMIC_ONLY", "OPERATIONAL_ONLY", "COMPREHENSIVE"}),
		ComputeAvailable:        r.IntBetween(60, 95),
		NetworkAvailable:        r.IntBetween(70, 90),
		StandardsCompliance:     r.Choice([]string{"FULL", "PARTIAL", "MINIMAL"}),
		ImplementationReadiness: r.Choice([]string{"PRODUCTION_READY", "BETA", "ALPHA", "PROTOTYPE"}),
		CapitalExpenditureUSD:   r.IntBetween(10000, 10000000),
		MonthlyOpexUSD:          r.IntBetween(1000, 100000),
		ReturnOnInvestment:      rng.Round(r.Uniform(5, 50), 1),
		ProcessChanges:          r.Choice([]string{"NONE", "MINOR", "MODERATE", "MAJOR"}),
	}
	switch {
	case f.ComputeAvailable >= 80 && f.NetworkAvailable >= 80:
		f.Verdict = "FEASIBLE"
	case f.ComputeAvailable >= 70 || in.Complexity <= 5:
		f.Verdict = "CONDITIONALLY_FEASIBLE"
	default:
		f.Verdict = "REQUIRES_INVESTMENT"
	}
	return f
}

func buildNotification(in Input, r *rng.Source) *NotificationSpec {
	n := &NotificationSpec{
		SubscriptionID:   "SUB_" + r.Hex(8),
		SubscriptionType: r.Choice([]string{"EVENT_BASED", "PERIODIC", "THRESHOLD_BASED", "HYBRID"}),
		EventTypes:       r.Sample(notificationEvents, r.IntBetween(2, 4)),
		BatchSize:        r.IntBetween(1, 1000),
		PrimaryChannel:   r.Choice([]string{"WEBHOOK", "KAFKA", "AMQP", "MQTT", "WEBSOCKET", "gRPC"}),
		FallbackChannel:  r.Choice([]string{"EMAIL", "SMS", "SLACK", "TEAMS", "PAGERDUTY"}),
		MessageFormat:    r.Choice([]string{"JSON_SCHEMA", "AVRO", "PROTOBUF", "XML_SCHEMA"}),
		Authentication:   r.Choice([]string{"OAUTH2_CLIENT_CREDENTIALS", "API_KEY", "MUTUAL_TLS", "JWT_BEARER"}),
	}
	if in.Urgent() {
		n.SeverityFilter = "CRITICAL_MAJOR"
		n.Frequency = "REAL_TIME"
	} else {
		n.SeverityFilter = r.Choice([]string{"ALL", "CRITICAL_MAJOR", "CUSTOM"})
		n.Frequency = r.Choice([]string{"EVERY_MINUTE", "EVERY_5_MINUTES", "HOURLY", "DAILY"})
	}
	return n
}

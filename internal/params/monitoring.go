package params

import (
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

const (
	MonitoringBasic         = "BASIC"
	MonitoringDetailed      = "DETAILED"
	MonitoringComprehensive = "COMPREHENSIVE"
)

var categoryMetrics = map[domain.Category][]string{
	domain.CategoryURLLC: {"jitter", "packet_loss", "reliability", "determinism"},
	domain.CategoryV2X:   {"handover_latency", "mobility_performance", "safety_metrics"},
	domain.CategoryEMBB:  {"user_throughput", "spectral_efficiency", "user_experience"},
	domain.CategoryMMTC:  {"connection_density", "power_efficiency", "coverage"},
}

type Monitoring struct {
	Level     string          `json:"monitoring_level"`
	KPI       KPIMetrics      `json:"kpi_metrics"`
	Alerting  AlertingConfig  `json:"alerting_configuration"`
	Analytics AnalyticsConfig `json:"analytics_configuration"`
}

type KPIMetrics struct {
	SamplingRatePercent int      `json:"sampling_rate_percent"`
	KeyMetrics          []string `json:"key_metrics"`
	MetricCorrelation   string   `json:"metric_correlation"`
	AnomalyDetection    string   `json:"anomaly_detection"`
}

type AlertingConfig struct {
	SeverityLevels       []string `json:"severity_levels"`
	EscalationMinutes    [3]int   `json:"escalation_policy_minutes"`
	NotificationChannels []string `json:"notification_channels"`
	AlertCorrelation     string   `json:"alert_correlation"`
	AlertSuppression     string   `json:"alert_suppression"`
}

type AnalyticsConfig struct {
	AggregationIntervalSec int               `json:"aggregation_interval_seconds"`
	RetentionDays          int               `json:"retention_period_days"`
	CompressionEnabled     bool              `json:"compression_enabled"`
	PredictiveAnalytics    string            `json:"predictive_analytics"`
	RootCauseAnalysis      string            `json:"root_cause_analysis"`
	CapacityForecasting    string            `json:"capacity_forecasting"`
	MLModels               map[string]string `json:"ml_models,omitempty"`
	RealTimeDashboards     string            `json:"real_time_dashboards"`
}

// MonitoringLevel grades monitoring intensity from complexity and priority.
func MonitoringLevel(complexity int, p domain.Priority) string {
	switch {
	case complexity >= 8 || p.Urgent():
		return MonitoringComprehensive
	case complexity >= 5 || p == domain.PriorityHigh:
		return MonitoringDetailed
	default:
		return MonitoringBasic
	}
}

func BuildMonitoring(in Input, r *rng.Source) Monitoring {
	c := in.Complexity
	level := MonitoringLevel(c, in.Priority)

	var sampling, interval, retention int
	switch level {
	case MonitoringComprehensive:
		sampling, interval, retention = r.IntBetween(80, 100), r.IntBetween(1, 10), r.IntBetween(90, 365)
	case MonitoringDetailed:
		sampling, interval, retention = r.IntBetween(50, 80), r.IntBetween(10, 30), r.IntBetween(30, 90)
	default:
		sampling, interval, retention = r.IntBetween(20, 50), r.IntBetween(30, 60), r.IntBetween(7, 30)
	}

	var escalation [3]int
	if in.Urgent() {
		escalation = [3]int{r.IntBetween(1, 3), r.IntBetween(3, 10), r.IntBetween(10, 30)}
	} else {
		escalation = [3]int{r.IntBetween(1, 5), r.IntBetween(5, 15), r.IntBetween(15, 60)}
	}

	return Monitoring{
		Level: level,
		KPI: KPIMetrics{
			SamplingRatePercent: sampling,
			KeyMetrics:          keyMetrics(in.Category, c, in.Priority),
			MetricCorrelation:   choose(c >= 7, "ENABLED", "DISABLED"),
			AnomalyDetection:    choose(c >= 8, "AI_POWERED", "THRESHOLD_BASED"),
		},
		Alerting: AlertingConfig{
			SeverityLevels:       []string{"CRITICAL", "MAJOR", "MINOR", "WARNING", "INFO"},
			EscalationMinutes:    escalation,
			NotificationChannels: notificationChannels(in.Priority, c),
			AlertCorrelation:     choose(c >= 6, "ENABLED", "DISABLED"),
			AlertSuppression:     choose(c >= 7, "INTELLIGENT", "BASIC"),
		},
		Analytics: AnalyticsConfig{
			AggregationIntervalSec: interval,
			RetentionDays:          retention,
			CompressionEnabled:     c >= 5,
			PredictiveAnalytics:    choose(c >= 8, "ENABLED", "DISABLED"),
			RootCauseAnalysis:      choose(c >= 9, "AI_POWERED", "RULE_BASED"),
			CapacityForecasting:    choose(c >= 7, "ENABLED", "DISABLED"),
			MLModels:               mlModels(c, r),
			RealTimeDashboards:     choose(in.Urgent(), "ENABLED", "BASIC"),
		},
	}
}

func keyMetrics(cat domain.Category, complexity int, p domain.Priority) []string {
	metrics := []string{"latency", "throughput", "availability", "error_rate"}
	metrics = append(metrics, categoryMetrics[cat]...)
	if complexity >= 7 {
		metrics = append(metrics, "resource_utilization", "cost_efficiency", "energy_consumption")
	}
	if p.Urgent() {
		metrics = append(metrics, "security_events", "compliance_violations")
	}
	if complexity >= 8 {
		metrics = append(metrics, "predictive_indicators", "anomaly_scores", "optimization_opportunities")
	}
	return metrics
}

func notificationChannels(p domain.Priority, complexity int) []string {
	channels := []string{"SNMP", "REST_API"}
	if p.Urgent() {
		channels = append(channels, "SMS", "EMAIL", "WEBHOOK")
	}
	if complexity >= 7 {
		channels = append(channels, "Kafka", "WebSocket", "gRPC")
	}
	return channels
}

// mlModels is empty below complexity 6; advanced families join at 8.
func mlModels(complexity int, r *rng.Source) map[string]string {
	if complexity < 6 {
		return nil
	}
	models := map[string]string{
		"anomaly_detection":    r.Choice([]string{"Isolation_Forest", "One_Class_SVM"}),
		"predictive_analytics": r.Choice([]string{"ARIMA", "Linear_Regression"}),
	}
	if complexity >= 8 {
		models["deep_learning"] = r.Choice([]string{"LSTM", "CNN", "Transformer"})
		models["reinforcement_learning"] = r.Choice([]string{"Q_Learning", "Policy_Gradient"})
		models["ensemble_methods"] = r.Choice([]string{"Random_Forest", "Gradient_Boosting"})
	}
	return models
}

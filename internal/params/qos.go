package params

import (
	"math"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

// ReliabilityCeiling caps every reliability figure.
const ReliabilityCeiling = 99.9999

var priorityLatencyMultiplier = map[domain.Priority]float64{
	domain.PriorityEmergency: 0.2,
	domain.PriorityCritical:  0.4,
	domain.PriorityHigh:      0.7,
	domain.PriorityMedium:    1.0,
	domain.PriorityLow:       1.3,
}

var packetErrorRanges = map[domain.Category][2]float64{
	domain.CategoryURLLC: {1e-6, 1e-5},
	domain.CategoryV2X:   {1e-6, 1e-5},
	domain.CategoryEMBB:  {1e-4, 1e-3},
	domain.CategoryMMTC:  {1e-3, 1e-2},
}

var fiveQI = map[domain.Category][]string{
	domain.CategoryURLLC: {"5QI_82_Discrete_Automation_Small_Packets", "5QI_83_Discrete_Automation_Large_Packets"},
	domain.CategoryV2X:   {"5QI_75_V2X_Messages", "5QI_79_V2X_Video"},
	domain.CategoryEMBB:  {"5QI_7_Voice_Video_Gaming", "5QI_8_Video_TCP_Premium"},
	domain.CategoryMMTC:  {"5QI_9_Video_TCP_Background", "5QI_6_Video_TCP"},
}

type QoS struct {
	FlowIdentifier          string             `json:"qos_flow_identifier"`
	GuaranteedBitRateMbps   int                `json:"guaranteed_bit_rate_mbps"`
	MaximumBitRateMbps      int                `json:"maximum_bit_rate_mbps"`
	PacketDelayBudgetMs     float64            `json:"packet_delay_budget_ms"`
	PacketErrorRate         float64            `json:"packet_error_rate"`
	ReliabilityPercent      float64            `json:"reliability_percent"`
	JitterToleranceMs       float64            `json:"jitter_tolerance_ms"`
	PriorityLevel           int                `json:"priority_level"`
	PreemptionCapability    string             `json:"preemption_capability"`
	PreemptionVulnerability string             `json:"preemption_vulnerability"`
	ReflectiveQoS           string             `json:"reflective_qos"`
	FlowBitRates            FlowBitRates       `json:"flow_bit_rates"`
	Characteristics         QoSCharacteristics `json:"qos_characteristics"`
	TrafficSteering         TrafficSteering    `json:"traffic_steering"`
}

type FlowBitRates struct {
	AggregateMaximumMbps        int     `json:"aggregate_maximum_bit_rate_mbps"`
	SessionAggregateMaximumMbps float64 `json:"session_aggregate_maximum_bit_rate_mbps"`
}

type QoSCharacteristics struct {
	ResourceType       string  `json:"resource_type"`
	MaximumDataBurstKB int     `json:"maximum_data_burst_volume_kb"`
	AveragingWindowMs  float64 `json:"averaging_window_ms"`
}

type TrafficSteering struct {
	Functionality string `json:"steering_functionality"`
	Mode          string `json:"steering_mode"`
}

// BuildQoS draws latency, throughput, jitter and packet error rate in that
// order before anything priority-dependent, so two inputs that differ only in
// priority consume the stream identically up to the error rate.
func BuildQoS(in Input, r *rng.Source) QoS {
	m, ok := priorityLatencyMultiplier[in.Priority]
	if !ok {
		m = 1.0
	}
	penalty := in.Location.LatencyPenalty
	if penalty == 0 {
		penalty = 1.0
	}
	hi := math.Min(in.Profile.LatencyRange.Max*m*penalty, in.MaxLatency)
	lo := math.Min(in.Profile.LatencyRange.Min*m*penalty, hi)
	latency := math.Min(rng.Round(r.Uniform(lo, hi), 2), in.MaxLatency)

	adj := math.Max(0.1, 1+in.LatencyThroughput*(latency/100))
	throughput := int(r.Uniform(in.Profile.ThroughputRange.Min, in.Profile.ThroughputRange.Max) * adj)

	var jitterFrac float64
	if in.Category.LatencyCritical() {
		jitterFrac = r.Uniform(0.05, 0.2)
	} else {
		jitterFrac = r.Uniform(0.1, 0.4)
	}
	jitter := rng.Round(latency*jitterFrac, 2)

	per := PacketErrorRate(in.Category, in.Priority, r.Float64())

	boost := in.Location.ReliabilityBoost
	if boost == 0 {
		boost = 1.0
	}
	if in.Urgent() {
		boost *= 1.001
	}
	reliability := math.Min(ReliabilityCeiling, in.Profile.ReliabilityRange.Max*boost)

	qfi := fiveQI[in.Category]
	if qfi == nil {
		qfi = fiveQI[domain.CategoryEMBB]
	}

	return QoS{
		FlowIdentifier:          r.Choice(qfi),
		GuaranteedBitRateMbps:   max(1, throughput/10),
		MaximumBitRateMbps:      throughput,
		PacketDelayBudgetMs:     latency,
		PacketErrorRate:         per,
		ReliabilityPercent:      rng.Round(reliability, 4),
		JitterToleranceMs:       jitter,
		PriorityLevel:           PriorityLevel(in.Priority, r),
		PreemptionCapability:    choose(in.Urgent(), "MAY_PREEMPT", "SHALL_NOT_PREEMPT"),
		PreemptionVulnerability: choose(in.Urgent(), "NOT_PREEMPTABLE", "PREEMPTABLE"),
		ReflectiveQoS:           choose(in.Category.LatencyCritical(), "ENABLED", "DISABLED"),
		FlowBitRates: FlowBitRates{
			AggregateMaximumMbps:        throughput * 2,
			SessionAggregateMaximumMbps: float64(throughput) * 1.5,
		},
		Characteristics: QoSCharacteristics{
			ResourceType:       choose(in.Category.LatencyCritical(), "GBR", "NON_GBR"),
			MaximumDataBurstKB: max(100, throughput/10),
			AveragingWindowMs:  math.Max(1000, rng.Round(latency*100, 2)),
		},
		TrafficSteering: TrafficSteering{
			Functionality: choose(in.Category == domain.CategoryEMBB, "ATSSS", "MPTCP"),
			Mode:          choose(in.Urgent(), "ACTIVE_STANDBY", "LOAD_BALANCING"),
		},
	}
}

// PacketErrorRate maps a unit draw u∈[0,1) into the category's error-rate
// range, reduced tenfold for CRITICAL and EMERGENCY.
func PacketErrorRate(c domain.Category, p domain.Priority, u float64) float64 {
	rg, ok := packetErrorRanges[c]
	if !ok {
		rg = packetErrorRanges[domain.CategoryEMBB]
	}
	rate := rg[0] + u*(rg[1]-rg[0])
	if p.Urgent() {
		rate *= 0.1
	}
	return rate
}

// PriorityLevel maps a priority onto the 3GPP 1..127 priority level scale.
func PriorityLevel(p domain.Priority, r *rng.Source) int {
	switch p {
	case domain.PriorityEmergency:
		return 1
	case domain.PriorityCritical:
		return r.IntBetween(1, 5)
	case domain.PriorityHigh:
		return r.IntBetween(5, 15)
	case domain.PriorityMedium:
		return r.IntBetween(15, 50)
	case domain.PriorityLow:
		return r.IntBetween(50, 127)
	}
	return 50
}

package params

import (
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

type Topology struct {
	Architecture       string        `json:"network_architecture"`
	DeploymentScenario string        `json:"deployment_scenario"`
	SpectrumBands      SpectrumBands `json:"spectrum_bands"`
	Antenna            AntennaConfig `json:"antenna_configuration"`
	Backhaul           Backhaul      `json:"backhaul"`
	Placement          Placement     `json:"network_functions_placement"`
	Slicing            SlicingPolicy `json:"network_slicing"`
	Coverage           Coverage      `json:"coverage"`
}

type SpectrumBands struct {
	LowBand  string `json:"low_band"`
	MidBand  string `json:"mid_band"`
	HighBand string `json:"high_band"`
}

type AntennaConfig struct {
	Type                   string `json:"type"`
	Beamforming            string `json:"beamforming_capability"`
	Sectorization          string `json:"sectorization"`
	BeamManagement         string `json:"beam_management"`
	InterferenceMitigation string `json:"interference_mitigation"`
}

type Backhaul struct {
	Type               string  `json:"type"`
	CapacityGbps       int     `json:"capacity_gbps"`
	LatencyMs          float64 `json:"latency_ms"`
	Redundancy         string  `json:"redundancy"`
	TrafficEngineering string  `json:"traffic_engineering"`
	CongestionControl  string  `json:"congestion_control"`
}

type Placement struct {
	CoreStrategy       string `json:"core_placement_strategy"`
	CoreLatencyOpt     string `json:"core_latency_optimization"`
	CoreRedundancy     string `json:"core_redundancy_level"`
	MECDeployment      string `json:"edge_mec_deployment"`
	EdgeTier           string `json:"edge_computing_tier"`
	EdgeProcessing     string `json:"edge_processing_capability"`
	RANArchitecture    string `json:"ran_architecture"`
	RANFunctionalSplit string `json:"ran_functional_split"`
	RANCoordination    string `json:"ran_coordination_level"`
}

type SlicingPolicy struct {
	Isolation         string `json:"slice_isolation"`
	SLAEnforcement    string `json:"slice_sla_enforcement"`
	InterSliceTraffic string `json:"inter_slice_communication"`
}

// Coverage carries the mobility-dependent radio figures the location and
// mobility rules adjust.
type Coverage struct {
	RadiusKm                float64 `json:"coverage_radius_km"`
	MobilityFactor          float64 `json:"mobility_factor"`
	HandoverFrequencyPerMin float64 `json:"handover_frequency_per_min"`
}

// BuildTopology chooses architecture, radio and placement by category and
// deployment context.
func BuildTopology(in Input, r *rng.Source) Topology {
	critical := in.Category.LatencyCritical()
	t := Topology{}

	switch {
	case critical:
		t.Architecture = "Standalone_5G"
	case in.Context == domain.ContextRural:
		t.Architecture = "Non_Standalone_5G"
	default:
		t.Architecture = r.Choice([]string{"Standalone_5G", "Non_Standalone_5G"})
	}

	switch in.Context {
	case domain.ContextRural:
		t.DeploymentScenario = "Rural_Macro"
	case domain.ContextHighway:
		t.DeploymentScenario = "Urban_Macro"
	case domain.ContextIndustrial:
		t.DeploymentScenario = "Indoor_Hotspot"
	default:
		t.DeploymentScenario = r.Choice([]string{"Urban_Macro", "Urban_Micro", "Dense_Urban"})
	}

	switch {
	case critical:
		t.SpectrumBands = SpectrumBands{
			LowBand:  r.Choice([]string{"700MHz", "800MHz"}),
			MidBand:  r.Choice([]string{"3.5GHz", "2.6GHz"}),
			HighBand: r.Choice([]string{"28GHz", "39GHz"}),
		}
	case in.Category == domain.CategoryEMBB:
		t.SpectrumBands = SpectrumBands{
			LowBand:  r.Choice([]string{"600MHz", "700MHz"}),
			MidBand:  r.Choice([]string{"1.8GHz", "2.1GHz"}),
			HighBand: r.Choice([]string{"24GHz", "28GHz", "39GHz"}),
		}
	default:
		t.SpectrumBands = SpectrumBands{
			LowBand:  r.Choice([]string{"600MHz", "700MHz", "800MHz"}),
			MidBand:  r.Choice([]string{"1.8GHz", "2.1GHz"}),
			HighBand: r.Choice([]string{"24GHz", "28GHz"}),
		}
	}

	if critical || in.Context == domain.ContextIndustrial {
		t.Antenna = AntennaConfig{
			Type:                   r.Choice([]string{"Massive_MIMO_64T64R", "Massive_MIMO_32T32R"}),
			Beamforming:            "3D_Beamforming",
			Sectorization:          r.Choice([]string{"6_Sector", "12_Sector"}),
			BeamManagement:         "ADVANCED",
			InterferenceMitigation: "COORDINATED_BEAMFORMING",
		}
	} else {
		t.Antenna = AntennaConfig{
			Type:                   r.Choice([]string{"Massive_MIMO_32T32R", "Traditional_MIMO_4T4R"}),
			Beamforming:            r.Choice([]string{"3D_Beamforming", "Horizontal_Beamforming"}),
			Sectorization:          r.Choice([]string{"3_Sector", "6_Sector"}),
			BeamManagement:         "STANDARD",
			InterferenceMitigation: "BASIC",
		}
	}

	t.Backhaul = buildBackhaul(in, r)
	t.Placement = buildPlacement(in, r)
	t.Slicing = SlicingPolicy{
		Isolation:         choose(critical, "HARD", "SOFT"),
		SLAEnforcement:    choose(in.Urgent(), "STRICT", "BEST_EFFORT"),
		InterSliceTraffic: choose(critical, "CONTROLLED", "ALLOWED"),
	}

	mobility := in.Location.MobilityFactor
	t.Coverage = Coverage{
		RadiusKm:                rng.Round(r.Uniform(0.2, 2.0)*(1+in.Location.CoverageComplexity), 2),
		MobilityFactor:          mobility,
		HandoverFrequencyPerMin: rng.Round(mobility*r.Uniform(0.5, 2.0), 2),
	}
	return t
}

func buildBackhaul(in Input, r *rng.Source) Backhaul {
	critical := in.Category.LatencyCritical()
	fiber := in.Location.FiberAvailability

	var b Backhaul
	switch {
	case in.Context == domain.ContextRural || fiber == "POOR" || fiber == "LIMITED":
		b.Type = r.Choice([]string{"Microwave", "Satellite", "Hybrid_Fiber_Wireless"})
		b.CapacityGbps = r.IntBetween(1, 10)
		b.LatencyMs = rng.Round(r.Uniform(2, 10), 2)
	case critical:
		b.Type = "Fiber_Optic"
		b.CapacityGbps = r.IntBetween(10, 100)
		b.LatencyMs = rng.Round(r.Uniform(0.1, 1), 2)
	default:
		b.Type = r.Choice([]string{"Fiber_Optic", "Microwave"})
		b.CapacityGbps = r.IntBetween(5, 50)
		b.LatencyMs = rng.Round(r.Uniform(0.5, 5), 2)
	}
	if critical {
		b.Redundancy = "Active_Active"
	} else {
		b.Redundancy = r.Choice([]string{"Active_Active", "Active_Standby"})
	}
	b.TrafficEngineering = choose(critical, "ENABLED", "BASIC")
	b.CongestionControl = choose(critical, "ADVANCED", "STANDARD")
	return b
}

func buildPlacement(in Input, r *rng.Source) Placement {
	var p Placement
	switch {
	case in.Category.LatencyCritical():
		p.CoreStrategy, p.CoreLatencyOpt, p.CoreRedundancy = "EDGE_OPTIMIZED", "ENABLED", "HIGH"
	case in.Context == domain.ContextRural:
		p.CoreStrategy, p.CoreLatencyOpt, p.CoreRedundancy = "CENTRALIZED", "DISABLED", "MEDIUM"
	default:
		p.CoreStrategy, p.CoreLatencyOpt, p.CoreRedundancy = "DISTRIBUTED", "ENABLED", "MEDIUM"
	}

	switch in.Category {
	case domain.CategoryURLLC, domain.CategoryV2X:
		p.MECDeployment, p.EdgeTier, p.EdgeProcessing = "MANDATORY", "FAR_EDGE", "HIGH"
	case domain.CategoryEMBB:
		p.MECDeployment, p.EdgeTier, p.EdgeProcessing = "OPTIONAL", "NEAR_EDGE", "MEDIUM"
	default:
		p.MECDeployment, p.EdgeTier, p.EdgeProcessing = "DISABLED", "CLOUD", "LOW"
	}

	if in.Category.LatencyCritical() {
		p.RANArchitecture, p.RANFunctionalSplit, p.RANCoordination = "CENTRALIZED_RAN", "OPTION_7_2", "HIGH"
	} else {
		p.RANArchitecture = r.Choice([]string{"DISTRIBUTED_RAN", "CENTRALIZED_RAN"})
		p.RANFunctionalSplit = r.Choice([]string{"OPTION_2", "OPTION_7_2"})
		p.RANCoordination = "MEDIUM"
	}
	return p
}

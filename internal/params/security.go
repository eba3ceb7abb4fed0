package params

import (
	"fmt"

	"github.com/aadhamashraf/intentgen/internal/rng"
)

type Security struct {
	AuthenticationMethod string            `json:"authentication_method"`
	EncryptionAlgorithm  string            `json:"encryption_algorithm"`
	IntegrityAlgorithm   string            `json:"integrity_protection"`
	KeyManagement        KeyManagement     `json:"key_management"`
	Context              SecurityContext   `json:"security_context"`
	Privacy              PrivacyProtection `json:"privacy_protection"`
	Advanced             AdvancedSecurity  `json:"advanced_security_features"`
}

type KeyManagement struct {
	KDF                   string `json:"kdf"`
	KeyLength             string `json:"key_length"`
	RotationIntervalHours int    `json:"key_rotation_interval_hours"`
	DerivationCounter     int    `json:"key_derivation_counter"`
	MasterKey             string `json:"master_key"`
	SessionKeys           string `json:"session_keys"`
	TrafficKeys           string `json:"traffic_keys"`
}

type SecurityContext struct {
	KAMF  string `json:"kamf"`
	KAUSF string `json:"kausf"`
	KSEAF string `json:"kseaf"`
	SUPI  string `json:"supi"`
	SUCI  string `json:"suci"`
}

type PrivacyProtection struct {
	SUPIConcealment         string `json:"supi_concealment"`
	TemporaryIdentifiers    string `json:"temporary_identifiers"`
	LocationPrivacy         string `json:"location_privacy"`
	IMSIEncryption          string `json:"imsi_encryption"`
	IdentityLifetimeMinutes int    `json:"temporary_identity_lifetime_minutes"`
}

type AdvancedSecurity struct {
	ZeroTrust       *ZeroTrust           `json:"zero_trust_architecture,omitempty"`
	ThreatDetection *ThreatDetection     `json:"threat_detection,omitempty"`
	Compliance      ComplianceFrameworks `json:"compliance_frameworks"`
}

type ZeroTrust struct {
	IdentityVerification string `json:"identity_verification"`
	DeviceAttestation    string `json:"device_attestation"`
	NetworkSegmentation  string `json:"network_segmentation"`
	DataProtection       string `json:"data_protection"`
}

type ThreatDetection struct {
	AnomalyDetection   string `json:"anomaly_detection"`
	IntrusionDetection string `json:"intrusion_detection"`
	ThreatIntelligence string `json:"threat_intelligence"`
	ResponseAutomation string `json:"response_automation"`
}

type ComplianceFrameworks struct {
	Regulatory string `json:"regulatory_compliance"`
	Security   string `json:"security_standards"`
	Industry   string `json:"industry_standards"`
}

// BuildSecurity selects 256-bit algorithms for urgent priorities and
// latency-critical categories, and derives key rotation from the profile.
func BuildSecurity(in Input, r *rng.Source) Security {
	strong := in.Urgent() || in.Category.LatencyCritical()

	var enc, integ, keyLen string
	if strong {
		enc = r.Choice([]string{"256_NEA1", "256_NEA2", "256_NEA3"})
		integ = r.Choice([]string{"256_NIA1", "256_NIA2", "256_NIA3"})
		keyLen = "256_bit"
	} else {
		enc = r.Choice([]string{"128_NEA1", "128_NEA2", "128_NEA3"})
		integ = r.Choice([]string{"128_NIA1", "128_NIA2", "128_NIA3"})
		keyLen = r.Choice([]string{"128_bit", "256_bit"})
	}

	auth := in.Profile.Security.AuthenticationMethod
	if auth == "" {
		auth = "EAP_AKA_Prime"
	}

	s := Security{
		AuthenticationMethod: auth,
		EncryptionAlgorithm:  enc,
		IntegrityAlgorithm:   integ,
		KeyManagement: KeyManagement{
			KDF:                   r.Choice([]string{"HMAC_SHA256", "HMAC_SHA384", "HMAC_SHA512"}),
			KeyLength:             keyLen,
			RotationIntervalHours: RotationHours(in.Profile.Security.KeyRotationFrequency, r),
			DerivationCounter:     r.IntBetween(1, 65535),
			MasterKey:             fmt.Sprintf("K_master_%d", r.IntBetween(1000, 9999)),
			SessionKeys:           fmt.Sprintf("K_session_%d", r.IntBetween(100, 999)),
			TrafficKeys:           fmt.Sprintf("K_traffic_%d", r.IntBetween(10, 99)),
		},
		Context: SecurityContext{
			KAMF:  "0x" + r.Hex(32),
			KAUSF: "0x" + r.Hex(32),
			KSEAF: "0x" + r.Hex(32),
			SUPI:  fmt.Sprintf("imsi-%015d", r.IntBetween(100000000000000, 999999999999999)),
			SUCI:  "suci-0-001-01-" + r.Hex(8),
		},
		Privacy: PrivacyProtection{
			SUPIConcealment:         "ENABLED",
			TemporaryIdentifiers:    r.Choice([]string{"5G_GUTI", "5G_TMSI", "Random_TMSI"}),
			IMSIEncryption:          "ENABLED",
			IdentityLifetimeMinutes: r.IntBetween(30, 180),
		},
		Advanced: AdvancedSecurity{
			Compliance: ComplianceFrameworks{
				Regulatory: r.Choice([]string{"GDPR", "CCPA", "HIPAA", "SOX"}),
				Security:   r.Choice([]string{"ISO_27001", "NIST_CSF", "SOC_2"}),
				Industry:   r.Choice([]string{"3GPP_33.501", "ETSI_TS_133_501"}),
			},
		},
	}
	if in.Urgent() {
		s.Privacy.LocationPrivacy = "FULL_PROTECTION"
	} else {
		s.Privacy.LocationPrivacy = r.Choice([]string{"FULL_PROTECTION", "PARTIAL_PROTECTION"})
	}

	if in.Urgent() || in.Complexity >= 7 {
		s.Advanced.ZeroTrust = &ZeroTrust{
			IdentityVerification: "continuous_behavioral_authentication",
			DeviceAttestation:    "hardware_based_tpm",
			NetworkSegmentation:  "micro_segmentation_with_dynamic_policies",
			DataProtection:       "end_to_end_encryption_with_quantum_resistance",
		}
	}
	if in.Complexity >= 6 {
		s.Advanced.ThreatDetection = &ThreatDetection{
			AnomalyDetection:   "AI_powered_behavioral_analysis",
			IntrusionDetection: "signature_and_heuristic_based",
			ThreatIntelligence: "real_time_threat_feeds",
			ResponseAutomation: "automated_threat_mitigation",
		}
	}
	return s
}

// RotationHours draws a key rotation interval for a profile frequency label.
func RotationHours(frequency string, r *rng.Source) int {
	switch frequency {
	case "VERY_HIGH":
		return r.IntBetween(1, 4)
	case "HIGH":
		return r.IntBetween(4, 12)
	case "LOW":
		return r.IntBetween(24, 168)
	default:
		return r.IntBetween(12, 24)
	}
}

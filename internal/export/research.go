package export

import (
	"fmt"
	"io"
	"time"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/google/uuid"
)

const (
	ResearchGeneratorVersion = "2.0.0_Research_Edition"
	researchPurpose          = "Advanced 3GPP Intent-Based Networking Research"
)

var researchStandards = []string{"3GPP_TS_28.312", "3GPP_TS_28.313", "ETSI_NFV_SOL_001"}

type QualityMetrics struct {
	AverageComplexity float64 `json:"average_complexity"`
	DiversityScore    float64 `json:"diversity_score"`
	ResearchRelevance float64 `json:"research_relevance"`
}

type ResearchMetadata struct {
	GenerationTimestamp time.Time      `json:"generation_timestamp"`
	TotalRecords        int            `json:"total_records"`
	GeneratorVersion    string         `json:"generator_version"`
	DatasetPurpose      string         `json:"dataset_purpose"`
	ComplianceStandards []string       `json:"compliance_standards"`
	QualityMetrics      QualityMetrics `json:"quality_metrics"`
	EvaluationResults   any            `json:"evaluation_results,omitempty"`
}

type ResearchStatistics struct {
	SessionID              string         `json:"research_session_id"`
	TotalGenerated         int            `json:"total_generated"`
	IntentTypeDistribution map[string]int `json:"intent_type_distribution"`
	ComplexityDistribution map[string]int `json:"complexity_distribution"`
}

// ResearchDataset is the self-describing export: the records wrapped with
// quality metrics and distribution statistics.
type ResearchDataset struct {
	Metadata   ResearchMetadata   `json:"metadata"`
	Intents    []domain.Record    `json:"intents"`
	Statistics ResearchStatistics `json:"statistics"`
}

// NewSessionID returns RESEARCH_<unix seconds>_<12 hex chars>.
func NewSessionID(random io.Reader, now time.Time) (string, error) {
	u, err := uuid.NewRandomFromReader(random)
	if err != nil {
		return "", fmt.Errorf("drawing session id: %w", err)
	}
	hex := u.String()
	return fmt.Sprintf("RESEARCH_%d_%s", now.Unix(), hex[len(hex)-12:]), nil
}

// BuildResearchDataset computes the quality metrics and distributions for
// records. evaluation may be nil.
func BuildResearchDataset(records []domain.Record, sessionID string, now time.Time, evaluation any) ResearchDataset {
	if records == nil {
		records = []domain.Record{}
	}
	kinds := make(map[string]int, len(domain.RecordKinds))
	for _, k := range domain.RecordKinds {
		kinds[string(k)] = 0
	}
	complexity := map[string]int{"LOW": 0, "MEDIUM": 0, "HIGH": 0}

	var sumComplexity, high int
	distinct := map[domain.RecordKind]struct{}{}
	for _, rec := range records {
		c := rec.Metadata.TechnicalComplexity
		sumComplexity += c
		kinds[string(rec.Kind)]++
		distinct[rec.Kind] = struct{}{}
		complexity[complexityBand(c)]++
		if rec.Metadata.ResearchRelevance == "HIGH" {
			high++
		}
	}

	var metrics QualityMetrics
	if n := len(records); n > 0 {
		metrics = QualityMetrics{
			AverageComplexity: float64(sumComplexity) / float64(n),
			DiversityScore:    float64(len(distinct)) / float64(len(domain.RecordKinds)),
			ResearchRelevance: float64(high) / float64(n),
		}
	}

	return ResearchDataset{
		Metadata: ResearchMetadata{
			GenerationTimestamp: now.UTC(),
			TotalRecords:        len(records),
			GeneratorVersion:    ResearchGeneratorVersion,
			DatasetPurpose:      researchPurpose,
			ComplianceStandards: researchStandards,
			QualityMetrics:      metrics,
			EvaluationResults:   evaluation,
		},
		Intents: records,
		Statistics: ResearchStatistics{
			SessionID:              sessionID,
			TotalGenerated:         len(records),
			IntentTypeDistribution: kinds,
			ComplexityDistribution: complexity,
		},
	}
}

func complexityBand(c int) string {
	switch {
	case c <= 3:
		return "LOW"
	case c <= 7:
		return "MEDIUM"
	default:
		return "HIGH"
	}
}

// WriteResearch writes the dataset as indented JSON.
func WriteResearch(w io.Writer, ds ResearchDataset) error {
	return writeIndented(w, ds)
}

package domain

import (
	"strings"
	"time"
)

// Metadata is the descriptive envelope attached to every record.
type Metadata struct {
	Version             string   `json:"version"`
	Standard            string   `json:"standard"`
	Compliance          []string `json:"compliance"`
	ResearchContext     string   `json:"research_context,omitempty"`
	TechnicalComplexity int      `json:"technical_complexity"`
	GeneratorVersion    string   `json:"generator_version"`
	DataClassification  string   `json:"data_classification"`
	QualityScore        float64  `json:"quality_score"`
	ValidationStatus    string   `json:"validation_status"`
	ResearchRelevance   string   `json:"research_relevance"`
	IndustryVertical    string   `json:"industry_vertical"`
	Strategy            string   `json:"template_strategy,omitempty"`
	Violations          []string `json:"constraint_violations,omitempty"`
	Augmentations       []string `json:"augmentations,omitempty"`
	SampleLabel         string   `json:"sample_label,omitempty"`
}

// Record is one generated intent. It is immutable once returned by the assembler.
type Record struct {
	ID          string         `json:"id"`
	Kind        RecordKind     `json:"intent_type"`
	Description string         `json:"description"`
	Timestamp   time.Time      `json:"timestamp"`
	Priority    Priority       `json:"priority"`
	Category    string         `json:"network_slice"`
	Context     string         `json:"location"`
	Parameters  map[string]any `json:"parameters"`
	Metadata    Metadata       `json:"metadata"`
}

// NormalizeDescription collapses whitespace and folds case. Two descriptions
// are considered duplicates when their normalized forms are equal.
func NormalizeDescription(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

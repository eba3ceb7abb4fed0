package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/llm"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

// HighQualityScore is the overall score at or above which a judged record
// counts as high quality.
const HighQualityScore = 8.0

type Issue struct {
	Issue    string `json:"issue"`
	Location string `json:"location"`
	Severity string `json:"severity"`
}

type Modification struct {
	Location       string `json:"location"`
	Recommendation string `json:"recommendation"`
}

// Judgement is the structured review the model returns for one record.
type Judgement struct {
	Overall struct {
		Score   llm.Number `json:"overall_quality_score"`
		Summary string     `json:"executive_summary"`
	} `json:"overall_assessment"`
	Technical struct {
		Accuracy      llm.Number `json:"technical_accuracy_score"`
		Realism       llm.Number `json:"realism_and_implementability_score"`
		Compliance    llm.Number `json:"3gpp_compliance_score"`
		Consistency   llm.Number `json:"internal_consistency_score"`
		ResearchValue llm.Number `json:"research_value_score"`
	} `json:"core_technical_evaluation"`
	Linguistic struct {
		Clarity     llm.Number `json:"intent_clarity_score"`
		Terminology llm.Number `json:"terminology_accuracy_score"`
		Naturalness llm.Number `json:"linguistic_naturalness_score"`
	} `json:"linguistic_evaluation"`
	Weakness struct {
		Category string  `json:"primary_weakness_category"`
		Issues   []Issue `json:"detailed_issues_detected"`
	} `json:"weakness_analysis"`
	Enhancement struct {
		Modifications     []Modification `json:"suggested_modifications"`
		GeneratorFeedback string         `json:"generator_logic_feedback"`
	} `json:"enhancement_recommendations"`
}

func validateJudgement(j Judgement) error {
	if s := float64(j.Overall.Score); s < 1 || s > 10 {
		return fmt.Errorf("overall_quality_score %g outside 1..10", s)
	}
	return nil
}

const judgeSystemPrompt = `You are a senior 5G network architect and AI researcher specializing in Intent-Based Networking (IBN) and 3GPP standards.`

const judgePromptFormat = `Conduct a meticulous, multi-faceted evaluation of the following generated network intent record.
Critically analyze all fields: the description, the intent type, and especially the nested parameters.
Assess technical accuracy, realism, compliance, and internal consistency.

---
INTENT_JSON: %s
---

Respond ONLY with a single JSON object of this shape. Scores are numbers from 1 (poor) to 10 (excellent).

{
  "overall_assessment": {"overall_quality_score": 0, "executive_summary": ""},
  "core_technical_evaluation": {
    "technical_accuracy_score": 0,
    "realism_and_implementability_score": 0,
    "3gpp_compliance_score": 0,
    "internal_consistency_score": 0,
    "research_value_score": 0
  },
  "linguistic_evaluation": {
    "intent_clarity_score": 0,
    "terminology_accuracy_score": 0,
    "linguistic_naturalness_score": 0
  },
  "weakness_analysis": {
    "primary_weakness_category": "Technical Inaccuracy | Lack of Realism | Internal Inconsistency | Vague Description | None",
    "detailed_issues_detected": [{"issue": "", "location": "parameters.qos_parameters.packet_delay_budget_ms", "severity": "High | Medium | Low"}]
  },
  "enhancement_recommendations": {
    "suggested_modifications": [{"location": "", "recommendation": ""}],
    "generator_logic_feedback": ""
  }
}`

// Judge asks a model to review records.
type Judge struct {
	client llm.LLMClient
	sample int
}

// NewJudge reviews at most sampleSize records per ReviewSample call.
func NewJudge(client llm.LLMClient, sampleSize int) *Judge {
	return &Judge{client: client, sample: max(sampleSize, 1)}
}

// Review judges one record.
func (j *Judge) Review(ctx context.Context, rec domain.Record) (Judgement, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return Judgement{}, fmt.Errorf("encoding record %s: %w", rec.ID, err)
	}
	resp, err := j.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskJudge,
		SystemPrompt: judgeSystemPrompt,
		UserPrompt:   fmt.Sprintf(judgePromptFormat, payload),
		JSON:         true,
	})
	if err != nil {
		return Judgement{}, err
	}
	return llm.ExtractJSON(resp.Text, validateJudgement)
}

// Review is the outcome for one sampled record. Exactly one of Judgement and
// Error is set.
type Review struct {
	RecordID        string     `json:"record_id"`
	Judgement       *Judgement `json:"llm_evaluation,omitempty"`
	Error           string     `json:"error,omitempty"`
	Strengths       []string   `json:"strengths,omitempty"`
	Weaknesses      []string   `json:"weaknesses,omitempty"`
	Recommendations []string   `json:"recommendations,omitempty"`
}

type JudgeMetrics struct {
	OverallQuality    float64 `json:"overall_quality"`
	TechnicalAccuracy float64 `json:"technical_accuracy"`
	Realism           float64 `json:"realism_score"`
	Compliance        float64 `json:"compliance_level"`
	ResearchValue     float64 `json:"research_value"`
}

type JudgeSummary struct {
	Sampled  int          `json:"sampled"`
	Judged   int          `json:"judged"`
	Failed   int          `json:"failed"`
	Metrics  JudgeMetrics `json:"overall_metrics"`
	Reviews  []Review     `json:"detailed_evaluations"`
	Insights []string     `json:"batch_insights"`
}

// ReviewSample judges a random sample of records. Per-record failures are
// recorded on the review and the run continues, except when the server is
// unreachable, the model is missing, or ctx ends, which abort the run.
func (j *Judge) ReviewSample(ctx context.Context, records []domain.Record, r *rng.Source) (JudgeSummary, error) {
	sample := rng.SampleOf(r, records, j.sample)
	sum := JudgeSummary{Sampled: len(sample), Reviews: make([]Review, 0, len(sample))}

	var total JudgeMetrics
	for _, rec := range sample {
		jd, err := j.Review(ctx, rec)
		if err != nil {
			if errors.Is(err, llm.ErrOllamaUnavailable) || errors.Is(err, llm.ErrModelNotFound) || ctx.Err() != nil {
				return sum, err
			}
			sum.Failed++
			sum.Reviews = append(sum.Reviews, Review{RecordID: rec.ID, Error: err.Error()})
			continue
		}

		sum.Judged++
		m := metricsOf(jd)
		total.OverallQuality += m.OverallQuality
		total.TechnicalAccuracy += m.TechnicalAccuracy
		total.Realism += m.Realism
		total.Compliance += m.Compliance
		total.ResearchValue += m.ResearchValue

		sum.Reviews = append(sum.Reviews, Review{
			RecordID:        rec.ID,
			Judgement:       &jd,
			Strengths:       strengths(m),
			Weaknesses:      weaknesses(m),
			Recommendations: recommendations(m),
		})
	}

	if sum.Judged > 0 {
		n := float64(sum.Judged)
		sum.Metrics = JudgeMetrics{
			OverallQuality:    total.OverallQuality / n,
			TechnicalAccuracy: total.TechnicalAccuracy / n,
			Realism:           total.Realism / n,
			Compliance:        total.Compliance / n,
			ResearchValue:     total.ResearchValue / n,
		}
	}
	sum.Insights = insights(sum)
	return sum, nil
}

func metricsOf(jd Judgement) JudgeMetrics {
	return JudgeMetrics{
		OverallQuality:    float64(jd.Overall.Score),
		TechnicalAccuracy: float64(jd.Technical.Accuracy),
		Realism:           float64(jd.Technical.Realism),
		Compliance:        float64(jd.Technical.Compliance),
		ResearchValue:     float64(jd.Technical.ResearchValue),
	}
}

func strengths(m JudgeMetrics) []string {
	var out []string
	if m.TechnicalAccuracy >= 8.5 {
		out = append(out, "Excellent technical accuracy")
	}
	if m.Compliance >= 8.5 {
		out = append(out, "Strong 3GPP compliance")
	}
	if m.ResearchValue >= 8.0 {
		out = append(out, "High research potential")
	}
	if m.Realism >= 8.0 {
		out = append(out, "Feasible for real-world deployment")
	}
	return out
}

func weaknesses(m JudgeMetrics) []string {
	var out []string
	if m.TechnicalAccuracy < 7.0 {
		out = append(out, "Weak technical grounding")
	}
	if m.Compliance < 7.5 {
		out = append(out, "Lacks 3GPP compliance")
	}
	if m.ResearchValue < 6.5 {
		out = append(out, "Low academic value")
	}
	return out
}

func recommendations(m JudgeMetrics) []string {
	var out []string
	if m.TechnicalAccuracy < 8.0 {
		out = append(out, "Review and refine 5G terminology and parameters")
	}
	if m.ResearchValue < 7.5 {
		out = append(out, "Inject more experimental or innovative ideas")
	}
	if m.Realism < 7.5 {
		out = append(out, "Improve real-world applicability")
	}
	return out
}

func insights(sum JudgeSummary) []string {
	high := 0
	for _, r := range sum.Reviews {
		if r.Judgement != nil && float64(r.Judgement.Overall.Score) >= HighQualityScore {
			high++
		}
	}
	m := sum.Metrics
	return []string{
		fmt.Sprintf("Overall Quality: %.2f/10", m.OverallQuality),
		fmt.Sprintf("Technical Accuracy: %.2f/10", m.TechnicalAccuracy),
		fmt.Sprintf("Compliance Level: %.2f/10", m.Compliance),
		fmt.Sprintf("Research Value: %.2f/10", m.ResearchValue),
		fmt.Sprintf("%d/%d intents are high-quality", high, sum.Judged),
	}
}

package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/google/uuid"
)

var testRecordCounter atomic.Int64

// Batch options
type BatchOption func(*domain.Batch)

func WithSeed(seed uint64) BatchOption {
	return func(b *domain.Batch) {
		b.Seed = seed
	}
}

func WithCreatedAt(t time.Time) BatchOption {
	return func(b *domain.Batch) {
		b.CreatedAt = t
	}
}

func WithSessionID(id string) BatchOption {
	return func(b *domain.Batch) {
		b.SessionID = id
	}
}

func NewTestBatch(opts ...BatchOption) *domain.Batch {
	b := &domain.Batch{
		ID:               uuid.New().String(),
		Seed:             42,
		Requested:        3,
		GeneratorVersion: "2.0.0",
		CreatedAt:        time.Now().UTC().Truncate(time.Millisecond),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Record options
type RecordOption func(*domain.Record)

func WithKind(k domain.RecordKind) RecordOption {
	return func(r *domain.Record) {
		r.Kind = k
	}
}

func WithPriority(p domain.Priority) RecordOption {
	return func(r *domain.Record) {
		r.Priority = p
	}
}

func WithDescription(d string) RecordOption {
	return func(r *domain.Record) {
		r.Description = d
	}
}

func WithComplexity(c int) RecordOption {
	return func(r *domain.Record) {
		r.Metadata.TechnicalComplexity = c
	}
}

// NewTestRecord returns a small but complete record. Every call yields a
// distinct id and description.
func NewTestRecord(opts ...RecordOption) domain.Record {
	n := testRecordCounter.Add(1)
	r := domain.Record{
		ID:          fmt.Sprintf("IBN_1700000000000_%012x", n),
		Kind:        domain.KindDeployment,
		Description: fmt.Sprintf("Deploy UPF number %d for eMBB at the urban center", n),
		Timestamp:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Priority:    domain.PriorityHigh,
		Category:    "eMBB_Ultra_HD_Streaming",
		Context:     "Urban_Center",
		Parameters: map[string]any{
			"intent_type": "DEPLOYMENT",
			"qos_parameters": map[string]any{
				"packet_delay_budget_ms": 20.0,
			},
		},
		Metadata: domain.Metadata{
			Version:             "1.0.0",
			Standard:            "3GPP_Release_17",
			Compliance:          []string{"3GPP_TS_23.501", "ETSI_NFV"},
			TechnicalComplexity: 5,
			GeneratorVersion:    "2.0.0",
			DataClassification:  "INTERNAL",
			QualityScore:        8.5,
			ValidationStatus:    "VALIDATED",
			ResearchRelevance:   "MEDIUM",
			IndustryVertical:    "TELECOMMUNICATIONS",
		},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

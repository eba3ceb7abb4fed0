package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// complianceSeparator joins compliance standards in the flat column, matching
// the CSV export.
const complianceSeparator = "; "

type batchRow struct {
	ID                string `db:"id"`
	Seed              int64  `db:"seed"`
	Requested         int    `db:"requested"`
	RecordCount       int    `db:"record_count"`
	DuplicatesRemoved int    `db:"duplicates_removed"`
	GeneratorVersion  string `db:"generator_version"`
	SessionID         string `db:"session_id"`
	CreatedAt         string `db:"created_at"`
}

func toBatchRow(b *domain.Batch) batchRow {
	return batchRow{
		ID:                b.ID,
		Seed:              int64(b.Seed),
		Requested:         b.Requested,
		RecordCount:       b.RecordCount,
		DuplicatesRemoved: b.DuplicatesRemoved,
		GeneratorVersion:  b.GeneratorVersion,
		SessionID:         b.SessionID,
		CreatedAt:         b.CreatedAt.UTC().Format(timeLayout),
	}
}

func (r batchRow) toDomain() (*domain.Batch, error) {
	created, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &domain.Batch{
		ID:                r.ID,
		Seed:              uint64(r.Seed),
		Requested:         r.Requested,
		RecordCount:       r.RecordCount,
		DuplicatesRemoved: r.DuplicatesRemoved,
		GeneratorVersion:  r.GeneratorVersion,
		SessionID:         r.SessionID,
		CreatedAt:         created,
	}, nil
}

type recordRow struct {
	ID                  string `db:"id"`
	BatchID             string `db:"batch_id"`
	Position            int    `db:"position"`
	IntentType          string `db:"intent_type"`
	Description         string `db:"description"`
	Timestamp           string `db:"timestamp"`
	Priority            string `db:"priority"`
	NetworkSlice        string `db:"network_slice"`
	Location            string `db:"location"`
	TechnicalComplexity int    `db:"technical_complexity"`
	ResearchContext     string `db:"research_context"`
	Compliance          string `db:"compliance"`
	Parameters          string `db:"parameters"`
	Metadata            string `db:"metadata"`
}

func toRecordRow(batchID string, pos int, rec domain.Record) (recordRow, error) {
	params, err := json.Marshal(rec.Parameters)
	if err != nil {
		return recordRow{}, fmt.Errorf("encoding parameters of %s: %w", rec.ID, err)
	}
	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return recordRow{}, fmt.Errorf("encoding metadata of %s: %w", rec.ID, err)
	}
	return recordRow{
		ID:                  rec.ID,
		BatchID:             batchID,
		Position:            pos,
		IntentType:          string(rec.Kind),
		Description:         rec.Description,
		Timestamp:           rec.Timestamp.UTC().Format(timeLayout),
		Priority:            string(rec.Priority),
		NetworkSlice:        rec.Category,
		Location:            rec.Context,
		TechnicalComplexity: domain.ClampComplexity(rec.Metadata.TechnicalComplexity),
		ResearchContext:     rec.Metadata.ResearchContext,
		Compliance:          strings.Join(rec.Metadata.Compliance, complianceSeparator),
		Parameters:          string(params),
		Metadata:            string(meta),
	}, nil
}

func (r recordRow) toDomain() (domain.Record, error) {
	ts, err := time.Parse(timeLayout, r.Timestamp)
	if err != nil {
		return domain.Record{}, fmt.Errorf("parsing timestamp of %s: %w", r.ID, err)
	}
	rec := domain.Record{
		ID:          r.ID,
		Kind:        domain.RecordKind(r.IntentType),
		Description: r.Description,
		Timestamp:   ts,
		Priority:    domain.Priority(r.Priority),
		Category:    r.NetworkSlice,
		Context:     r.Location,
	}
	if err := json.Unmarshal([]byte(r.Parameters), &rec.Parameters); err != nil {
		return domain.Record{}, fmt.Errorf("decoding parameters of %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.Metadata), &rec.Metadata); err != nil {
		return domain.Record{}, fmt.Errorf("decoding metadata of %s: %w", r.ID, err)
	}
	return rec, nil
}

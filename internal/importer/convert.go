package importer

import (
	"fmt"
	"time"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Convert turns a validated dataset into records. Call ValidateDataset
// first; Convert assumes the dataset is valid.
//
// Missing ids become IMPORTED_<n>. Missing priority and kind stay empty so
// label statistics can report them as unlabeled.
func Convert(ds *Dataset) ([]domain.Record, error) {
	records := make([]domain.Record, 0, len(ds.Records))
	for i, ri := range ds.Records {
		rec := domain.Record{
			ID:          domain.CoalesceStr(ri.ID, fmt.Sprintf("IMPORTED_%d", i+1)),
			Kind:        domain.RecordKind(ri.IntentType),
			Description: ri.Description,
			Priority:    domain.Priority(ri.Priority),
			Category:    ri.NetworkSlice,
			Context:     ri.Location,
			Parameters:  ri.Parameters,
		}
		if ri.Timestamp != "" {
			ts, err := parseTimestamp(ri.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("records[%d].timestamp: %w", i, err)
			}
			rec.Timestamp = ts
		}
		if ri.Metadata != nil {
			rec.Metadata = *ri.Metadata
		}
		records = append(records, rec)
	}
	return records, nil
}

// Load reads, validates and converts a dataset file in one step. Validation
// problems are joined into a single error.
func Load(path string) ([]domain.Record, error) {
	ds, err := LoadDataset(path)
	if err != nil {
		return nil, err
	}
	return Decode(ds)
}

// Decode validates and converts an already parsed dataset.
func Decode(ds *Dataset) ([]domain.Record, error) {
	if errs := ValidateDataset(ds); len(errs) > 0 {
		return nil, &ValidationError{Errs: errs}
	}
	return Convert(ds)
}

package importer

import (
	"fmt"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

// ValidateDataset checks every record and returns all problems found.
// Descriptions-only datasets are only checked for empty text.
func ValidateDataset(ds *Dataset) []error {
	var errs []error
	ids := make(map[string]bool, len(ds.Records))

	for i, rec := range ds.Records {
		prefix := fmt.Sprintf("records[%d]", i)

		if rec.Description == "" {
			errs = append(errs, fmt.Errorf("%s.description is required", prefix))
		}
		if ds.Layout == LayoutDescriptions {
			continue
		}

		if rec.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[rec.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, rec.ID))
		} else {
			ids[rec.ID] = true
		}

		if rec.IntentType != "" && !domain.RecordKind(rec.IntentType).Valid() {
			errs = append(errs, fmt.Errorf("%s.intent_type: invalid value %q", prefix, rec.IntentType))
		}
		if rec.Priority != "" && !domain.Priority(rec.Priority).Valid() {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, rec.Priority))
		}
		if rec.Timestamp != "" {
			if _, err := parseTimestamp(rec.Timestamp); err != nil {
				errs = append(errs, fmt.Errorf("%s.timestamp: invalid format %q", prefix, rec.Timestamp))
			}
		}
		if rec.Metadata != nil {
			if c := rec.Metadata.TechnicalComplexity; c != 0 && (c < domain.MinComplexity || c > domain.MaxComplexity) {
				errs = append(errs, fmt.Errorf("%s.metadata.technical_complexity: %d out of range %d..%d",
					prefix, c, domain.MinComplexity, domain.MaxComplexity))
			}
		}
	}

	return errs
}

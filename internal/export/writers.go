package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

// CSVHeader is the column set of the CSV export.
var CSVHeader = []string{
	"ID", "Intent Type", "Description", "Timestamp", "Priority",
	"Network Slice", "Location", "Technical Complexity",
	"Research Context", "Compliance Standards", "Parameters",
}

// WriteJSON writes records as one indented JSON array.
func WriteJSON(w io.Writer, records []domain.Record) error {
	if records == nil {
		records = []domain.Record{}
	}
	return writeIndented(w, records)
}

// WriteJSONL writes one compact JSON object per line.
func WriteJSONL(w io.Writer, records []domain.Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return fmt.Errorf("encoding record %s: %w", records[i].ID, err)
		}
	}
	return nil
}

// WriteCSV writes CSVHeader followed by one row per record. Parameters are
// embedded as a compact JSON string.
func WriteCSV(w io.Writer, records []domain.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, rec := range records {
		params, err := json.Marshal(rec.Parameters)
		if err != nil {
			return fmt.Errorf("encoding parameters of %s: %w", rec.ID, err)
		}
		row := []string{
			rec.ID,
			string(rec.Kind),
			rec.Description,
			rec.Timestamp.UTC().Format(time.RFC3339),
			string(rec.Priority),
			rec.Category,
			rec.Context,
			strconv.Itoa(rec.Metadata.TechnicalComplexity),
			rec.Metadata.ResearchContext,
			strings.Join(rec.Metadata.Compliance, "; "),
			string(params),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %s: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// Write dispatches to the writer for a streamable format. The research
// format needs a dataset; use WriteResearch for it.
func Write(w io.Writer, f Format, records []domain.Record) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatJSONL:
		return WriteJSONL(w, records)
	case FormatCSV:
		return WriteCSV(w, records)
	default:
		return fmt.Errorf("%w: %q is not a plain record stream", ErrUnknownFormat, f)
	}
}

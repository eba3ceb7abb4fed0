// Package export writes generated records as JSON, JSONL, CSV, the research
// dataset layout, or into the SQLite dataset store.
package export

import (
	"fmt"
	"strings"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatJSONL    Format = "jsonl"
	FormatCSV      Format = "csv"
	FormatResearch Format = "research"
	FormatSQLite   Format = "sqlite"
)

var Formats = []Format{FormatJSON, FormatJSONL, FormatCSV, FormatResearch, FormatSQLite}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension is the file suffix used for default output names.
func (f Format) Extension() string {
	switch f {
	case FormatJSONL:
		return ".jsonl"
	case FormatCSV:
		return ".csv"
	case FormatSQLite:
		return ".db"
	default:
		return ".json"
	}
}

// Streamable reports whether the format is written to an io.Writer rather
// than a database.
func (f Format) Streamable() bool {
	return f != FormatSQLite
}

// DefaultFilename mirrors the dataset naming used by the generator runs:
// 3gpp_intents_<stamp>.json, 3gpp_research_dataset_<stamp>.json.
func DefaultFilename(f Format, stamp string) string {
	if f == FormatResearch {
		return "3gpp_research_dataset_" + stamp + f.Extension()
	}
	return "3gpp_intents_" + stamp + f.Extension()
}

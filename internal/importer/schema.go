// Package importer reads previously exported datasets back in, so they can
// be evaluated or re-stored. It accepts the JSON array, JSONL and research
// dataset layouts, plus plain text with one description per line.
package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

// RecordImport is the loose shape of one record in an import file. Enum
// fields stay strings so that bad values are reported by validation rather
// than rejected by the decoder.
type RecordImport struct {
	ID           string           `json:"id"`
	IntentType   string           `json:"intent_type"`
	Description  string           `json:"description"`
	Timestamp    string           `json:"timestamp,omitempty"`
	Priority     string           `json:"priority,omitempty"`
	NetworkSlice string           `json:"network_slice,omitempty"`
	Location     string           `json:"location,omitempty"`
	Parameters   map[string]any   `json:"parameters,omitempty"`
	Metadata     *domain.Metadata `json:"metadata,omitempty"`
}

// Layout names the file layout a dataset was read from.
type Layout string

const (
	LayoutJSON         Layout = "json"
	LayoutJSONL        Layout = "jsonl"
	LayoutResearch     Layout = "research"
	LayoutDescriptions Layout = "descriptions"
)

// Dataset is a parsed import file.
type Dataset struct {
	Layout  Layout
	Records []RecordImport
}

type researchEnvelope struct {
	Intents *[]RecordImport `json:"intents"`
}

// maxLineBytes bounds a single JSONL line; records with large parameter
// trees run well past bufio's default.
const maxLineBytes = 4 << 20

// LoadDataset reads and parses a dataset file. A .txt file is read as one
// description per line; everything else is sniffed from its content.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return FromDescriptions(strings.Split(string(data), "\n")), nil
	}
	ds, err := ParseDataset(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return ds, nil
}

// ParseDataset sniffs the layout: a top-level array, a research dataset
// object with an "intents" key, or one JSON object per line.
func ParseDataset(data []byte) (*Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &Dataset{Layout: LayoutJSON}, nil
	}

	if trimmed[0] == '[' {
		var recs []RecordImport
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return nil, fmt.Errorf("decoding record array: %w", err)
		}
		return &Dataset{Layout: LayoutJSON, Records: recs}, nil
	}

	var env researchEnvelope
	if err := json.Unmarshal(trimmed, &env); err == nil && env.Intents != nil {
		return &Dataset{Layout: LayoutResearch, Records: *env.Intents}, nil
	}

	return parseLines(trimmed)
}

func parseLines(data []byte) (*Dataset, error) {
	ds := &Dataset{Layout: LayoutJSONL}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		var rec RecordImport
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ds.Records = append(ds.Records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return ds, nil
}

// FromDescriptions wraps bare descriptions. Blank entries are skipped.
func FromDescriptions(descriptions []string) *Dataset {
	ds := &Dataset{Layout: LayoutDescriptions}
	for _, d := range descriptions {
		if d = strings.TrimSpace(d); d != "" {
			ds.Records = append(ds.Records, RecordImport{Description: d})
		}
	}
	return ds
}

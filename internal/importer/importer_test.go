package importer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/export"
	"github.com/aadhamashraf/intentgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoad_RoundTripsEveryExportLayout(t *testing.T) {
	recs := []domain.Record{testutil.NewTestRecord(), testutil.NewTestRecord(testutil.WithKind(domain.KindModification))}

	var jsonBuf, jsonlBuf, researchBuf bytes.Buffer
	require.NoError(t, export.WriteJSON(&jsonBuf, recs))
	require.NoError(t, export.WriteJSONL(&jsonlBuf, recs))
	require.NoError(t, export.WriteResearch(&researchBuf, export.BuildResearchDataset(recs, "s", recs[0].Timestamp, nil)))

	tests := []struct {
		name   string
		data   []byte
		layout Layout
	}{
		{"data.json", jsonBuf.Bytes(), LayoutJSON},
		{"data.jsonl", jsonlBuf.Bytes(), LayoutJSONL},
		{"research.json", researchBuf.Bytes(), LayoutResearch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.name, tt.data)

			ds, err := LoadDataset(path)
			require.NoError(t, err)
			assert.Equal(t, tt.layout, ds.Layout)

			got, err := Load(path)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, recs[1].ID, got[1].ID)
			assert.Equal(t, domain.KindModification, got[1].Kind)
			assert.True(t, recs[0].Timestamp.Equal(got[0].Timestamp))
			assert.Equal(t, recs[0].Metadata, got[0].Metadata)
		})
	}
}

func TestLoadDataset_Descriptions(t *testing.T) {
	path := writeFile(t, "intents.txt", []byte("Deploy UPF\n\n  Scale AMF  \n"))

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, LayoutDescriptions, ds.Layout)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "Scale AMF", ds.Records[1].Description)
	assert.Empty(t, ValidateDataset(ds))

	recs, err := Convert(ds)
	require.NoError(t, err)
	assert.Equal(t, "IMPORTED_2", recs[1].ID)
	assert.Empty(t, recs[1].Kind)
}

func TestParseDataset_Empty(t *testing.T) {
	ds, err := ParseDataset([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, ds.Records)
}

func TestParseDataset_BadLine(t *testing.T) {
	_, err := ParseDataset([]byte("{\"id\":\"a\",\"description\":\"x\"}\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseDataset_PythonTimestamp(t *testing.T) {
	ds, err := ParseDataset([]byte(`[{"id":"a","description":"x","timestamp":"2024-03-01T10:20:30.123456"}]`))
	require.NoError(t, err)
	require.Empty(t, ValidateDataset(ds))

	recs, err := Convert(ds)
	require.NoError(t, err)
	assert.Equal(t, 2024, recs[0].Timestamp.Year())
}

func TestValidateDataset_ReportsEveryProblem(t *testing.T) {
	ds := &Dataset{Layout: LayoutJSON, Records: []RecordImport{
		{ID: "a", Description: "ok", IntentType: "DEPLOYMENT", Priority: "HIGH"},
		{ID: "a", Description: ""},
		{ID: "", Description: "x", IntentType: "TELEPORT", Priority: "SOMETIMES", Timestamp: "yesterday"},
		{ID: "c", Description: "y", Metadata: &domain.Metadata{TechnicalComplexity: 12}},
	}}

	errs := ValidateDataset(ds)
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	assert.ElementsMatch(t, []string{
		`records[1].description is required`,
		`records[1].id: duplicate id "a"`,
		`records[2].id is required`,
		`records[2].intent_type: invalid value "TELEPORT"`,
		`records[2].priority: invalid value "SOMETIMES"`,
		`records[2].timestamp: invalid format "yesterday"`,
		`records[3].metadata.technical_complexity: 12 out of range 1..10`,
	}, msgs)
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeFile(t, "bad.json", []byte(`[{"id":"a","description":""}]`))

	_, err := Load(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errs, 1)
	assert.Contains(t, err.Error(), "description is required")
}

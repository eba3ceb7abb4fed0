package export

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)

func TestNewSessionID(t *testing.T) {
	id, err := NewSessionID(strings.NewReader(strings.Repeat("x", 16)), stamp)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^RESEARCH_1746515289_[0-9a-f]{12}$`), id)
}

func TestBuildResearchDataset_Metrics(t *testing.T) {
	high := testutil.NewTestRecord(testutil.WithComplexity(9), testutil.WithKind(domain.KindReportRequest))
	high.Metadata.ResearchRelevance = "HIGH"
	recs := []domain.Record{
		testutil.NewTestRecord(testutil.WithComplexity(2)),
		testutil.NewTestRecord(testutil.WithComplexity(4)),
		high,
	}

	ds := BuildResearchDataset(recs, "RESEARCH_1_abc", stamp, map[string]int{"checked": 3})

	assert.Equal(t, 3, ds.Metadata.TotalRecords)
	assert.InDelta(t, 5.0, ds.Metadata.QualityMetrics.AverageComplexity, 1e-9)
	assert.InDelta(t, 2.0/6.0, ds.Metadata.QualityMetrics.DiversityScore, 1e-9)
	assert.InDelta(t, 1.0/3.0, ds.Metadata.QualityMetrics.ResearchRelevance, 1e-9)
	assert.Equal(t, ResearchGeneratorVersion, ds.Metadata.GeneratorVersion)

	assert.Equal(t, 2, ds.Statistics.IntentTypeDistribution["DEPLOYMENT"])
	assert.Equal(t, 1, ds.Statistics.IntentTypeDistribution["REPORT_REQUEST"])
	assert.Equal(t, 0, ds.Statistics.IntentTypeDistribution["MODIFICATION"])
	assert.Len(t, ds.Statistics.IntentTypeDistribution, len(domain.RecordKinds))
	assert.Equal(t, map[string]int{"LOW": 1, "MEDIUM": 1, "HIGH": 1}, ds.Statistics.ComplexityDistribution)
	assert.Equal(t, "RESEARCH_1_abc", ds.Statistics.SessionID)
}

func TestBuildResearchDataset_Empty(t *testing.T) {
	ds := BuildResearchDataset(nil, "s", stamp, nil)
	assert.Zero(t, ds.Metadata.QualityMetrics)
	assert.NotNil(t, ds.Intents)
}

func TestWriteResearch_Layout(t *testing.T) {
	ds := BuildResearchDataset([]domain.Record{testutil.NewTestRecord()}, "s", stamp, nil)
	var buf bytes.Buffer
	require.NoError(t, WriteResearch(&buf, ds))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Contains(t, raw, "metadata")
	assert.Contains(t, raw, "intents")
	assert.Contains(t, raw, "statistics")
	assert.NotContains(t, buf.String(), "evaluation_results")
}

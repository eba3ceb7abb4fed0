package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aadhamashraf/intentgen/internal/augment"
	"github.com/aadhamashraf/intentgen/internal/config"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/export"
	"github.com/aadhamashraf/intentgen/internal/llm"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC) }

// testApp wires an App that writes under a temp dir and never touches a
// terminal.
func testApp(t *testing.T, client llm.LLMClient) *App {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Count = 6
	cfg.OutputDir = filepath.Join(dir, "output")
	cfg.DBPath = filepath.Join(dir, "intents.db")

	return &App{
		Datasets: service.NewDatasetService(nil, service.WithNow(fixedNow), service.WithDefaults(cfg.BatchDefaults())),
		Evals:    service.NewEvaluationService(client, 2),
		Registry: profile.Default(),
		Config:   cfg,
		Version:  "1.2.3",
	}
}

// executeCmd runs the root command and captures stdout and stderr apart.
func executeCmd(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRoot_Version(t *testing.T) {
	out, _, err := executeCmd(t, testApp(t, nil), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
}

func TestGenerate_DefaultPathAndSummary(t *testing.T) {
	app := testApp(t, nil)
	out, _, err := executeCmd(t, app, "generate", "--preview", "2")
	require.NoError(t, err)

	path := filepath.Join(app.Config.OutputDir, "3gpp_intents_20250506_070809.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Len(t, records, 6)

	assert.Contains(t, out, "DATASET GENERATED")
	assert.Contains(t, out, path)
	assert.Contains(t, out, "… 4 more")
}

func TestGenerate_QuietPrintsPath(t *testing.T) {
	app := testApp(t, nil)
	path := filepath.Join(t.TempDir(), "set.csv")
	out, _, err := executeCmd(t, app, "generate", "-q", "-n", "3", "--format", "csv", "-o", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestGenerate_StdoutKeepsSummaryOnStderr(t *testing.T) {
	out, errOut, err := executeCmd(t, testApp(t, nil), "generate", "-n", "4", "--format", "jsonl", "--kind", "modification", "-o", "-")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		assert.Equal(t, "MODIFICATION", rec["intent_type"])
	}
	assert.Contains(t, errOut, "DATASET GENERATED")
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	app := testApp(t, nil)
	a, _, err := executeCmd(t, app, "generate", "-q", "--seed", "9", "--format", "jsonl", "-o", "-")
	require.NoError(t, err)
	b, _, err := executeCmd(t, app, "generate", "-q", "--seed", "9", "--format", "jsonl", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_SQLiteThenBatches(t *testing.T) {
	app := testApp(t, nil)
	_, _, err := executeCmd(t, app, "generate", "-q", "-n", "5", "--format", "sqlite")
	require.NoError(t, err)

	out, _, err := executeCmd(t, app, "batches")
	require.NoError(t, err)
	assert.Contains(t, out, "RECORDS")
	assert.Contains(t, out, "RESEARCH_")
}

func TestGenerate_AugmentFlags(t *testing.T) {
	app := testApp(t, nil)
	out, errOut, err := executeCmd(t, app, "generate", "-n", "4", "--augment-out-of-scope", "0.5", "--augment-typo", "1", "--format", "jsonl", "-o", "-")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	labelled := 0
	for _, line := range lines {
		var rec struct {
			Metadata struct {
				SampleLabel string `json:"sample_label"`
			} `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec.Metadata.SampleLabel == "out_of_scope" {
			labelled++
		}
	}
	assert.Equal(t, 2, labelled)
	assert.Contains(t, errOut, "TECHNIQUE")
	assert.Contains(t, errOut, "out_of_scope")

	_, _, err = executeCmd(t, app, "generate", "-q", "--augment-shuffle", "1.5", "--format", "jsonl", "-o", "-")
	assert.ErrorIs(t, err, domain.ErrInvalidRatio)

	_, _, err = executeCmd(t, app, "generate", "-q", "--augment-paraphrase", "0.2", "--format", "jsonl", "-o", "-")
	assert.ErrorIs(t, err, augment.ErrParaphraseDisabled)
}

func TestBatches_Empty(t *testing.T) {
	out, _, err := executeCmd(t, testApp(t, nil), "batches", "--db", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No batches stored.")
}

func TestGenerate_Errors(t *testing.T) {
	app := testApp(t, nil)

	_, _, err := executeCmd(t, app, "generate", "--format", "xml")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	_, _, err = executeCmd(t, app, "generate", "-n", "0")
	assert.Error(t, err)

	_, _, err = executeCmd(t, app, "generate", "--format", "sqlite", "-o", "-")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	_, _, err = executeCmd(t, app, "generate", "--interactive")
	assert.ErrorContains(t, err, "needs a terminal")
}

func TestCategorize(t *testing.T) {
	app := testApp(t, nil)

	out, _, err := executeCmd(t, app, "categorize", "URLLC_Autonomous_Vehicles")
	require.NoError(t, err)
	assert.Contains(t, out, "V2X")
	assert.Contains(t, out, "max latency")

	out, _, err = executeCmd(t, app, "categorize", "Factory_Floor", "--axis", "context")
	require.NoError(t, err)
	assert.Contains(t, out, "industrial")

	_, _, err = executeCmd(t, app, "categorize", "x", "--axis", "color")
	assert.ErrorContains(t, err, "want category or context")

	_, _, err = executeCmd(t, app, "categorize")
	assert.Error(t, err)
}

func TestProfiles(t *testing.T) {
	app := testApp(t, nil)
	out, _, err := executeCmd(t, app, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "DOMAIN PROFILES")

	out, _, err = executeCmd(t, app, "profiles", "--json")
	require.NoError(t, err)
	var profiles []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &profiles))
	assert.Len(t, profiles, 4)
}

func writeDataset(t *testing.T, app *App) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "set.jsonl")
	_, _, err := executeCmd(t, app, "generate", "-q", "-n", "8", "--format", "jsonl", "-o", path)
	require.NoError(t, err)
	return path
}

func TestEvaluate_Statistics(t *testing.T) {
	app := testApp(t, nil)
	path := writeDataset(t, app)
	md := filepath.Join(t.TempDir(), "report.md")

	out, _, err := executeCmd(t, app, "evaluate", path, "--markdown", md)
	require.NoError(t, err)
	assert.Contains(t, out, "DATASET ANALYSIS")
	assert.NotContains(t, out, "MODEL REVIEW")

	data, err := os.ReadFile(md)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Dataset Analysis")

	out, _, err = executeCmd(t, app, "evaluate", path, "--json")
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.EqualValues(t, 8, report["total_records"])
}

type fixedJudge struct{}

func (fixedJudge) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return &llm.GenerateResponse{Text: `{"overall_assessment": {"overall_quality_score": 8},
		"core_technical_evaluation": {"technical_accuracy_score": 8, "realism_and_implementability_score": 8, "3gpp_compliance_score": 8},
		"research_dataset_evaluation": {"research_value_score": 8}}`}, nil
}

func (fixedJudge) Available(context.Context) bool { return true }

func TestEvaluate_LLM(t *testing.T) {
	app := testApp(t, nil)
	path := writeDataset(t, app)

	_, _, err := executeCmd(t, app, "evaluate", path, "--llm")
	assert.ErrorIs(t, err, service.ErrJudgeDisabled)
	assert.ErrorContains(t, err, "INTENTGEN_LLM_ENABLED")

	app.Evals = service.NewEvaluationService(fixedJudge{}, 2)
	out, _, err := executeCmd(t, app, "evaluate", path, "--llm", "--sample", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "MODEL REVIEW")
	assert.Contains(t, out, "judged 3")
}

func TestEvaluate_MissingFile(t *testing.T) {
	_, _, err := executeCmd(t, testApp(t, nil), "evaluate", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

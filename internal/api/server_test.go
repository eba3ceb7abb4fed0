package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aadhamashraf/intentgen/internal/augment"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/export"
	"github.com/aadhamashraf/intentgen/internal/llm"
	"github.com/aadhamashraf/intentgen/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC) }

type downClient struct{}

func (downClient) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return nil, llm.ErrOllamaUnavailable
}

func (downClient) Available(context.Context) bool { return false }

func newTestServer(t *testing.T, client llm.LLMClient) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	opts := []service.DatasetOption{service.WithNow(fixedNow)}
	if client != nil {
		opts = append(opts, service.WithParaphraser(augment.NewLLMParaphraser(client)))
	}
	s := NewServer(
		service.NewDatasetService(nil, opts...),
		service.NewEvaluationService(client, 2),
		nil,
		logger,
	)
	s.now = fixedNow
	return s, &logs
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestRoot(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got rootResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, serviceVersion, got.Version)
	assert.Contains(t, got.Endpoints, "/generate")
	assert.Contains(t, got.Endpoints, "/augment")
}

func TestHealth(t *testing.T) {
	s, logs := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "healthy", got.Status)
	assert.True(t, got.GeneratorReady)
	assert.True(t, got.EvaluatorReady)
	assert.Equal(t, fixedNow(), got.Timestamp)

	assert.Contains(t, logs.String(), "path=/health")
	assert.Contains(t, logs.String(), "status=200")
}

func TestProfiles(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got)
	assert.Contains(t, got[0], "category")
}

func TestGenerate_JSON(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/generate", `{"num_records": 5, "seed": 11, "intent_type": "report_request"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, 5, got.Data.Count)
	assert.Equal(t, uint64(11), got.Data.Seed)
	require.Len(t, got.Data.Intents, 5)
	for _, in := range got.Data.Intents {
		assert.Equal(t, domain.KindReportRequest, in.Kind)
	}
}

func TestGenerate_DefaultCountAndEmptyBody(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/generate", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, defaultRecords, got.Data.Count)
}

func TestGenerate_SameSeedSameIntents(t *testing.T) {
	s, _ := newTestServer(t, nil)
	body := `{"num_records": 3, "seed": 5}`

	var a, b generateResponse
	require.NoError(t, json.Unmarshal(do(t, s, http.MethodPost, "/generate", body).Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(do(t, s, http.MethodPost, "/generate", body).Body.Bytes(), &b))
	assert.Equal(t, a.Data.Intents, b.Data.Intents)
}

func TestGenerate_StreamedFormats(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/generate", `{"num_records": 3, "format": "csv"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "3gpp_intents_20250506_070809.csv")
	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, export.CSVHeader, rows[0])

	rec = do(t, s, http.MethodPost, "/generate", `{"num_records": 3, "format": "jsonl"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), "\n"))

	rec = do(t, s, http.MethodPost, "/generate", `{"num_records": 3, "format": "research"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var ds export.ResearchDataset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ds))
	assert.Len(t, ds.Intents, 3)
}

func TestGenerate_BadRequests(t *testing.T) {
	s, logs := newTestServer(t, nil)
	cases := map[string]string{
		"zero":      `{"num_records": 0}`,
		"too many":  `{"num_records": 10001}`,
		"format":    `{"format": "xml"}`,
		"sqlite":    `{"format": "sqlite"}`,
		"kind":      `{"intent_type": "teleport"}`,
		"malformed": `{"num_records": "five"}`,
		"ratio":     `{"augment": {"typo": 2}}`,
		"no model":  `{"augment": {"paraphrase": 0.5}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/generate", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var got errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.False(t, got.Success)
			assert.NotEmpty(t, got.Error)
		})
	}
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestGenerate_WithAugment(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/generate", `{"num_records": 10, "seed": 3, "augment": {"out_of_scope": 0.2, "typo": 0.5}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 12, got.Data.Count)
	require.NotNil(t, got.Data.Augmentation)
	assert.Equal(t, 2, got.Data.Augmentation.Injected)
	assert.Equal(t, domain.SampleLabelOutOfScope, got.Data.Intents[11].Metadata.SampleLabel)

	plain := do(t, s, http.MethodPost, "/generate", `{"num_records": 2}`)
	assert.NotContains(t, plain.Body.String(), `"augmentation"`)
}

type augmentBody struct {
	Success   bool              `json:"success"`
	Original  string            `json:"original"`
	Augmented map[string]string `json:"augmented"`
}

func TestAugment(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/augment", `{"text": "Deploy UPF for eMBB in the urban center"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got augmentBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, "Deploy UPF for eMBB in the urban center", got.Original)
	for _, k := range []string{"typo", "entity_shuffle", "adversarial", "out_of_scope", "ambiguous"} {
		assert.Contains(t, got.Augmented, k)
	}
	assert.NotContains(t, got.Augmented, "paraphrase")

	body := `{"text": "Scale the AMF pool", "techniques": ["entity_shuffle", "typo"], "seed": 4}`
	var a, b augmentBody
	require.NoError(t, json.Unmarshal(do(t, s, http.MethodPost, "/augment", body).Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(do(t, s, http.MethodPost, "/augment", body).Body.Bytes(), &b))
	assert.Len(t, a.Augmented, 2)
	assert.Equal(t, a.Augmented, b.Augmented)
}

func TestAugment_Errors(t *testing.T) {
	s, _ := newTestServer(t, nil)
	for name, body := range map[string]string{
		"empty text": `{"text": " "}`,
		"unknown":    `{"text": "Deploy UPF", "techniques": ["backtranslate"]}`,
		"no model":   `{"text": "Deploy UPF", "techniques": ["paraphrase"]}`,
		"malformed":  `{"text": 5}`,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/augment", body).Code)
		})
	}

	down, _ := newTestServer(t, downClient{})
	rec := do(t, down, http.MethodPost, "/augment", `{"text": "Deploy UPF", "techniques": ["paraphrase"]}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEvaluate_Descriptions(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/evaluate", `{"intents": ["Deploy a UPF in the factory", "Deploy a UPF in the factory", "Scale the AMF quickly"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Success    bool `json:"success"`
		Evaluation struct {
			Records    int `json:"total_records"`
			Duplicates struct {
				Count int `json:"n_duplicates"`
			} `json:"duplicates"`
		} `json:"evaluation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, 3, got.Evaluation.Records)
	assert.Equal(t, 1, got.Evaluation.Duplicates.Count)
}

func TestEvaluate_GeneratedRecords(t *testing.T) {
	s, _ := newTestServer(t, nil)
	var gen generateResponse
	require.NoError(t, json.Unmarshal(do(t, s, http.MethodPost, "/generate", `{"num_records": 4}`).Body.Bytes(), &gen))

	body, err := json.Marshal(map[string]any{"records": gen.Data.Intents})
	require.NoError(t, err)
	rec := do(t, s, http.MethodPost, "/evaluate", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"total_records":4`)
}

func TestEvaluate_Errors(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/evaluate", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/evaluate", `{"records": [{"id": "a", "description": "x", "priority": "SOMETIMES"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "records[0].priority")

	rec = do(t, s, http.MethodPost, "/evaluate", `{"descriptions": ["Deploy a UPF"], "use_llm": true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrJudgeDisabled.Error())

	down, _ := newTestServer(t, downClient{})
	rec = do(t, down, http.MethodPost, "/evaluate", `{"descriptions": ["Deploy a UPF"], "use_llm": true}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t, nil)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodGet, "/generate", "").Code)
}

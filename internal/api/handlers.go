package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aadhamashraf/intentgen/internal/augment"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/evaluation"
	"github.com/aadhamashraf/intentgen/internal/export"
	"github.com/aadhamashraf/intentgen/internal/generation"
	"github.com/aadhamashraf/intentgen/internal/importer"
	"github.com/aadhamashraf/intentgen/internal/llm"
	"github.com/aadhamashraf/intentgen/internal/service"
)

// defaultRecords is the batch size when a request names none.
const defaultRecords = 10

type rootResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message:   serviceName,
		Version:   serviceVersion,
		Endpoints: []string{"/generate", "/augment", "/evaluate", "/profiles", "/health"},
	})
}

type healthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	GeneratorReady bool      `json:"generator_ready"`
	EvaluatorReady bool      `json:"evaluator_ready"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "healthy",
		Timestamp:      s.now().UTC(),
		GeneratorReady: s.datasets != nil,
		EvaluatorReady: s.evals != nil,
	})
}

func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Profiles())
}

type generateRequest struct {
	NumRecords *int                  `json:"num_records"`
	Seed       *uint64               `json:"seed"`
	Format     string                `json:"format"`
	IntentType string                `json:"intent_type"`
	Augment    *domain.AugmentRatios `json:"augment"`
}

type generateData struct {
	Intents           []domain.Record  `json:"intents"`
	Count             int              `json:"count"`
	BatchID           string           `json:"batch_id"`
	SessionID         string           `json:"session_id"`
	Seed              uint64           `json:"seed"`
	DuplicatesRemoved int              `json:"duplicates_removed"`
	Augmentation      *augment.Summary `json:"augmentation,omitempty"`
}

type generateResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    generateData `json:"data"`
}

var contentTypes = map[export.Format]string{
	export.FormatJSONL:    "application/x-ndjson",
	export.FormatCSV:      "text/csv; charset=utf-8",
	export.FormatResearch: "application/json",
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	if req.NumRecords == nil {
		n := defaultRecords
		req.NumRecords = &n
	}
	format := export.FormatJSON
	if req.Format != "" {
		f, err := export.ParseFormat(req.Format)
		if err != nil || f == export.FormatSQLite {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", export.ErrUnknownFormat, req.Format))
			return
		}
		format = f
	}

	res, err := s.datasets.Generate(r.Context(), generation.BatchRequest{
		Count:   req.NumRecords,
		Seed:    req.Seed,
		Kind:    req.IntentType,
		Format:  string(format),
		Augment: req.Augment,
	}, nil)
	switch {
	case errors.Is(err, generation.ErrBatchSize), errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidRatio), errors.Is(err, augment.ErrParaphraseDisabled):
		s.writeError(w, http.StatusBadRequest, err)
		return
	case modelUnreachable(err):
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	if format != export.FormatJSON {
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q",
			export.DefaultFilename(format, res.Batch.CreatedAt.Format("20060102_150405"))))
		if err := s.datasets.ExportTo(r.Context(), res, w); err != nil {
			s.logger.Error("streaming export failed", "format", format, "error", err)
		}
		return
	}

	data := generateData{
		Intents:           res.Records,
		Count:             len(res.Records),
		BatchID:           res.Batch.ID,
		SessionID:         res.Batch.SessionID,
		Seed:              res.Batch.Seed,
		DuplicatesRemoved: res.Batch.DuplicatesRemoved,
	}
	if !res.Augmentation.IsZero() {
		data.Augmentation = &res.Augmentation
	}
	writeJSON(w, http.StatusOK, generateResponse{
		Success: true,
		Message: fmt.Sprintf("Generated %d intents successfully", len(res.Records)),
		Data:    data,
	})
}

type augmentRequest struct {
	Text       string   `json:"text"`
	Techniques []string `json:"techniques"`
	Seed       *uint64  `json:"seed"`
}

type augmentResponse struct {
	Success bool `json:"success"`
	*service.AugmentTextResult
}

func (s *Server) handleAugment(w http.ResponseWriter, r *http.Request) {
	var req augmentRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	res, err := s.datasets.AugmentText(r.Context(), service.AugmentTextRequest{
		Text:       req.Text,
		Techniques: req.Techniques,
		Seed:       req.Seed,
	})
	switch {
	case errors.Is(err, service.ErrEmptyText), errors.Is(err, augment.ErrUnknownTechnique),
		errors.Is(err, augment.ErrParaphraseDisabled):
		s.writeError(w, http.StatusBadRequest, err)
		return
	case modelUnreachable(err):
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	case errors.Is(err, llm.ErrInvalidOutput), errors.Is(err, llm.ErrEmptyResponse):
		s.writeError(w, http.StatusBadGateway, err)
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, augmentResponse{Success: true, AugmentTextResult: res})
}

// modelUnreachable reports failures of the model server itself.
func modelUnreachable(err error) bool {
	return errors.Is(err, llm.ErrOllamaUnavailable) || errors.Is(err, llm.ErrTimeout) || errors.Is(err, llm.ErrModelNotFound)
}

// evaluateRequest carries either full records or bare descriptions.
// "intents" is accepted as an alias for descriptions.
type evaluateRequest struct {
	Records      []importer.RecordImport `json:"records"`
	Descriptions []string                `json:"descriptions"`
	Intents      []string                `json:"intents"`
	UseLLM       bool                    `json:"use_llm"`
	Sample       int                     `json:"sample"`
	Seed         uint64                  `json:"seed"`
}

type evaluateResponse struct {
	Success    bool               `json:"success"`
	Evaluation *evaluation.Report `json:"evaluation"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if s.evals == nil {
		s.writeError(w, http.StatusServiceUnavailable, errors.New("evaluator not configured"))
		return
	}
	var req evaluateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	ds := &importer.Dataset{Layout: importer.LayoutJSON, Records: req.Records}
	if len(req.Records) == 0 {
		ds = importer.FromDescriptions(append(req.Descriptions, req.Intents...))
	}
	if len(ds.Records) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("records or descriptions required"))
		return
	}
	records, err := importer.Decode(ds)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.evals.Evaluate(r.Context(), records, service.EvaluateOptions{
		UseLLM: req.UseLLM,
		Sample: req.Sample,
		Seed:   req.Seed,
	})
	switch {
	case errors.Is(err, service.ErrJudgeDisabled):
		s.writeError(w, http.StatusBadRequest, err)
		return
	case modelUnreachable(err):
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, evaluateResponse{Success: true, Evaluation: report})
}

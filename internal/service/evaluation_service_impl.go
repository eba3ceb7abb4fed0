package service

import (
	"context"
	"fmt"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/evaluation"
	"github.com/aadhamashraf/intentgen/internal/importer"
	"github.com/aadhamashraf/intentgen/internal/llm"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

type evaluationService struct {
	client     llm.LLMClient
	sampleSize int
	observer   UseCaseObserver
}

// NewEvaluationService builds an EvaluationService. client may be nil, in
// which case only the statistics run and model reviews are refused.
func NewEvaluationService(client llm.LLMClient, sampleSize int, observers ...UseCaseObserver) EvaluationService {
	return &evaluationService{
		client:     client,
		sampleSize: sampleSize,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *evaluationService) EvaluateFile(ctx context.Context, path string, opts EvaluateOptions) (*evaluation.Report, error) {
	records, err := importer.Load(path)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(ctx, records, opts)
}

func (s *evaluationService) Evaluate(ctx context.Context, records []domain.Record, opts EvaluateOptions) (report *evaluation.Report, err error) {
	fields := map[string]any{"records": len(records), "llm": opts.UseLLM}
	done := observe(ctx, s.observer, UseCaseEvaluate, fields)
	defer func() { done(err) }()

	r := evaluation.Evaluate(records)
	if !opts.UseLLM {
		return &r, nil
	}
	if s.client == nil {
		return nil, ErrJudgeDisabled
	}

	sample := opts.Sample
	if sample <= 0 {
		sample = s.sampleSize
	}
	sum, err := evaluation.NewJudge(s.client, sample).ReviewSample(ctx, records, rng.New(opts.Seed))
	if err != nil {
		return nil, fmt.Errorf("llm review: %w", err)
	}
	fields["judged"] = sum.Judged
	fields["failed"] = sum.Failed
	r.Judge = &sum
	return &r, nil
}

package service

import (
	"context"
	"io"

	"github.com/aadhamashraf/intentgen/internal/augment"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/evaluation"
	"github.com/aadhamashraf/intentgen/internal/generation"
)

// GenerateResult is one generated batch, ready for export.
type GenerateResult struct {
	Plan         generation.BatchPlan
	Batch        *domain.Batch
	Records      []domain.Record
	Augmentation augment.Summary
}

// AugmentTextRequest names the techniques to run on one description. No
// techniques means all of them; a nil Seed uses the configured seed.
type AugmentTextRequest struct {
	Text       string
	Techniques []string
	Seed       *uint64
}

type AugmentTextResult struct {
	Original  string            `json:"original"`
	Augmented map[string]string `json:"augmented"`
}

type DatasetService interface {
	// Generate resolves req against the configured defaults and produces a
	// batch. onProgress may be nil.
	Generate(ctx context.Context, req generation.BatchRequest, onProgress func(done, total int)) (*GenerateResult, error)

	// Export writes res to path in res.Plan.Format. The sqlite format
	// appends the batch to the database at path.
	Export(ctx context.Context, res *GenerateResult, path string) error

	// ExportTo streams res to w. The sqlite format is rejected.
	ExportTo(ctx context.Context, res *GenerateResult, w io.Writer) error

	// AugmentText runs each requested technique on req.Text independently.
	AugmentText(ctx context.Context, req AugmentTextRequest) (*AugmentTextResult, error)
}

// EvaluateOptions controls the optional model review.
type EvaluateOptions struct {
	UseLLM bool
	Sample int    // records to review; 0 uses the configured sample size
	Seed   uint64 // picks the sample
}

type EvaluationService interface {
	Evaluate(ctx context.Context, records []domain.Record, opts EvaluateOptions) (*evaluation.Report, error)
	EvaluateFile(ctx context.Context, path string, opts EvaluateOptions) (*evaluation.Report, error)
}

package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aadhamashraf/intentgen/internal/augment"
	"github.com/aadhamashraf/intentgen/internal/db"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/evaluation"
	"github.com/aadhamashraf/intentgen/internal/export"
	"github.com/aadhamashraf/intentgen/internal/generation"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/google/uuid"
)

type datasetService struct {
	registry    *profile.Registry
	defaults    generation.BatchRequest
	now         func() time.Time
	observer    UseCaseObserver
	paraphraser augment.Paraphraser
}

// DatasetOption configures a DatasetService.
type DatasetOption func(*datasetService)

// WithDefaults sets the batch knobs used when a request leaves them unset.
func WithDefaults(d generation.BatchRequest) DatasetOption {
	return func(s *datasetService) { s.defaults = d }
}

// WithNow fixes the clock for record timestamps, ids and session ids.
func WithNow(now func() time.Time) DatasetOption {
	return func(s *datasetService) { s.now = now }
}

// WithObserver reports every use case to obs.
func WithObserver(obs UseCaseObserver) DatasetOption {
	return func(s *datasetService) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// WithParaphraser enables the paraphrase augmentation.
func WithParaphraser(p augment.Paraphraser) DatasetOption {
	return func(s *datasetService) { s.paraphraser = p }
}

// NewDatasetService builds a DatasetService over reg. A nil registry uses
// the built-in profiles.
func NewDatasetService(reg *profile.Registry, opts ...DatasetOption) DatasetService {
	if reg == nil {
		reg = profile.Default()
	}
	s := &datasetService{
		registry: reg,
		now:      time.Now,
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *datasetService) Generate(ctx context.Context, req generation.BatchRequest, onProgress func(done, total int)) (res *GenerateResult, err error) {
	fields := map[string]any{}
	done := observe(ctx, s.observer, UseCaseGenerate, fields)
	defer func() { done(err) }()

	plan, err := generation.ResolveBatchPlan(req, s.defaults)
	if err != nil {
		return nil, err
	}
	if _, err := export.ParseFormat(plan.Format); err != nil {
		return nil, err
	}
	fields["count"] = plan.Count
	fields["seed"] = plan.Seed
	fields["format"] = plan.Format
	if plan.Augment.Paraphrase > 0 && s.paraphraser == nil {
		return nil, augment.ErrParaphraseDisabled
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sessionID, err := export.NewSessionID(rand.Reader, now)
	if err != nil {
		return nil, fmt.Errorf("creating session id: %w", err)
	}

	opts := []generation.AssemblerOption{generation.WithClock(s.now)}
	if plan.Kind != "" {
		opts = append(opts, generation.WithKind(plan.Kind))
	}
	out, err := generation.NewAssembler(s.registry, plan.Seed, opts...).GenerateBatch(ctx, plan.Count, nil, onProgress)
	if err != nil {
		return nil, err
	}

	records, summary := out.Records, augment.Summary{}
	if !plan.Augment.IsZero() {
		records, summary, err = s.augmenter(plan.Augment, plan.Seed).Apply(ctx, records)
		if err != nil {
			return nil, fmt.Errorf("augmenting batch: %w", err)
		}
		fields["injected"] = summary.Injected
	}

	fields["records"] = len(records)
	fields["duplicates_removed"] = out.DuplicatesRemoved

	return &GenerateResult{
		Plan: plan,
		Batch: &domain.Batch{
			ID:                uuid.New().String(),
			Seed:              plan.Seed,
			Requested:         plan.Count,
			RecordCount:       len(records),
			DuplicatesRemoved: out.DuplicatesRemoved,
			GeneratorVersion:  generation.GeneratorVersion,
			SessionID:         sessionID,
			CreatedAt:         now,
		},
		Records:      records,
		Augmentation: summary,
	}, nil
}

func (s *datasetService) augmenter(ratios domain.AugmentRatios, seed uint64) *augment.Augmenter {
	opts := []augment.Option{augment.WithClock(s.now)}
	if s.paraphraser != nil {
		opts = append(opts, augment.WithParaphraser(s.paraphraser))
	}
	return augment.New(ratios, seed, opts...)
}

func (s *datasetService) AugmentText(ctx context.Context, req AugmentTextRequest) (res *AugmentTextResult, err error) {
	fields := map[string]any{"techniques": len(req.Techniques)}
	done := observe(ctx, s.observer, UseCaseAugment, fields)
	defer func() { done(err) }()

	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}
	names := req.Techniques
	if len(names) == 0 {
		names = s.defaultTechniques()
	}
	techniques := make([]augment.Technique, 0, len(names))
	for _, n := range names {
		t, err := augment.ParseTechnique(n)
		if err != nil {
			return nil, err
		}
		techniques = append(techniques, t)
	}

	seed := domain.FromPtrWithDefault[uint64](generation.DefaultSeed, req.Seed, s.defaults.Seed)
	a := s.augmenter(domain.AugmentRatios{}, seed)
	res = &AugmentTextResult{Original: req.Text, Augmented: make(map[string]string, len(techniques))}
	for _, t := range techniques {
		out, err := a.Text(ctx, req.Text, t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
		res.Augmented[string(t)] = out
	}
	return res, nil
}

// defaultTechniques is every technique the service can run; paraphrase only
// with a model behind it.
func (s *datasetService) defaultTechniques() []string {
	out := make([]string, 0, len(augment.Techniques))
	for _, t := range augment.Techniques {
		if t == augment.TechniqueParaphrase && s.paraphraser == nil {
			continue
		}
		out = append(out, string(t))
	}
	return out
}

func (s *datasetService) Export(ctx context.Context, res *GenerateResult, path string) (err error) {
	fields := map[string]any{"path": path}
	done := observe(ctx, s.observer, UseCaseExport, fields)
	defer func() { done(err) }()

	f, err := export.ParseFormat(res.Plan.Format)
	if err != nil {
		return err
	}
	fields["format"] = string(f)
	fields["records"] = len(res.Records)

	if f == export.FormatSQLite {
		return s.store(ctx, res, path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := s.write(file, f, res); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (s *datasetService) ExportTo(ctx context.Context, res *GenerateResult, w io.Writer) (err error) {
	fields := map[string]any{"path": "-"}
	done := observe(ctx, s.observer, UseCaseExport, fields)
	defer func() { done(err) }()

	f, err := export.ParseFormat(res.Plan.Format)
	if err != nil {
		return err
	}
	fields["format"] = string(f)
	fields["records"] = len(res.Records)
	if f == export.FormatSQLite {
		return fmt.Errorf("%w: %s cannot be streamed", export.ErrUnknownFormat, f)
	}
	return s.write(w, f, res)
}

func (s *datasetService) write(w io.Writer, f export.Format, res *GenerateResult) error {
	if f != export.FormatResearch {
		return export.Write(w, f, res.Records)
	}
	ds := export.BuildResearchDataset(res.Records, res.Batch.SessionID, res.Batch.CreatedAt, evaluation.Evaluate(res.Records))
	return export.WriteResearch(w, ds)
}

func (s *datasetService) store(ctx context.Context, res *GenerateResult, path string) error {
	database, err := db.OpenDB(path)
	if err != nil {
		return err
	}
	defer database.Close()
	return export.NewSQLiteSink(db.NewSQLiteUnitOfWork(database)).Store(ctx, res.Batch, res.Records)
}

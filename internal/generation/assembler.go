// Package generation assembles records: it samples generation contexts, runs
// the constraint engine and the template engine, and keeps every id and
// description in a batch unique.
package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/aadhamashraf/intentgen/internal/constraint"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/rng"
	"github.com/aadhamashraf/intentgen/internal/template"
)

const (
	defaultSlice    = "eMBB_Ultra_HD_Streaming"
	defaultLocation = "Urban_Center"
)

// Assembler owns one rng stream and is not safe for concurrent use. Build a
// fresh one per batch or per request.
type Assembler struct {
	engine    *constraint.Engine
	templates *template.Engine
	rng       *rng.Source
	ids       *IDSource
	now       func() time.Time
	kind      domain.RecordKind
}

type AssemblerOption func(*Assembler)

// WithClock fixes the clock used for timestamps and ids.
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) { a.now = now }
}

// WithKind restricts batch sampling to one record kind.
func WithKind(k domain.RecordKind) AssemblerOption {
	return func(a *Assembler) { a.kind = k }
}

// WithTemplates swaps the template engine, e.g. one with extra substitutions.
func WithTemplates(t *template.Engine) AssemblerOption {
	return func(a *Assembler) { a.templates = t }
}

func NewAssembler(reg *profile.Registry, seed uint64, opts ...AssemblerOption) *Assembler {
	if reg == nil {
		reg = profile.Default()
	}
	a := &Assembler{
		engine:    constraint.NewEngine(reg),
		templates: template.NewEngine(),
		rng:       rng.New(seed),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ids = NewIDSource(a.rng, a.now)
	return a
}

func (a *Assembler) Registry() *profile.Registry {
	return a.engine.Registry()
}

// normalize maps unknown enum values to defaults instead of failing.
func normalize(gc domain.GenerationContext) domain.GenerationContext {
	if !gc.Priority.Valid() {
		gc.Priority = domain.PriorityMedium
	}
	if !gc.Kind.Valid() {
		gc.Kind = domain.KindDeployment
	}
	gc.Complexity = domain.ClampComplexity(gc.Complexity)
	gc.CategoryRaw = domain.CoalesceStr(gc.CategoryRaw, defaultSlice)
	gc.ContextRaw = domain.CoalesceStr(gc.ContextRaw, defaultLocation)
	return gc
}

// GenerateOne builds a single record whose id and description are new to
// store, then adds both to it. A nil store only dedups against itself.
func (a *Assembler) GenerateOne(gc domain.GenerationContext, store *DedupStore) domain.Record {
	if store == nil {
		store = NewDedupStore()
	}
	gc = normalize(gc)
	reg := a.engine.Registry()

	a.engine.ClearViolations()
	tree := a.engine.Generate(gc, a.rng)
	parameters, err := tree.Map()
	if err != nil {
		parameters = map[string]any{}
	}

	meta := buildMetadata(reg, gc, a.rng)
	attachViolations(&meta, a.engine.Violations())

	ctx := template.BuildContext(parameters, gc, meta)
	desc := a.templates.Render(ctx, a.rng)
	for attempt := 0; attempt < MaxVarietyAttempts && store.HasDescription(desc); attempt++ {
		ctx.Variety = sampleVariety(attempt, a.rng)
		desc = a.templates.Render(ctx, a.rng)
	}
	desc = forceUnique(desc, store)
	meta.Strategy = string(ctx.Strategy)

	id := a.ids.Next(store)
	store.Add(id, desc)

	return domain.Record{
		ID:          id,
		Kind:        gc.Kind,
		Description: desc,
		Timestamp:   a.now().UTC(),
		Priority:    gc.Priority,
		Category:    gc.CategoryRaw,
		Context:     gc.ContextRaw,
		Parameters:  parameters,
		Metadata:    meta,
	}
}

// forceUnique appends an instance counter until desc is new to store.
func forceUnique(desc string, store *DedupStore) string {
	base := desc
	for store.HasDescription(desc) {
		desc = fmt.Sprintf("%s (instance %d)", base, store.nextInstance())
	}
	return desc
}

// SampleContext draws a generation context from the registry catalog.
func (a *Assembler) SampleContext() domain.GenerationContext {
	reg := a.engine.Registry()
	cat := reg.Catalog()

	kind := a.kind
	if !kind.Valid() {
		kind = rng.Pick(a.rng, domain.RecordKinds)
	}
	slice := domain.CoalesceStr(a.rng.Choice(cat.SliceTypes), defaultSlice)
	location := domain.CoalesceStr(a.rng.Choice(cat.Locations), defaultLocation)
	p := constraint.SamplePriority(reg, slice, location, kind, a.rng)

	return domain.GenerationContext{
		CategoryRaw: slice,
		ContextRaw:  location,
		Priority:    p,
		Complexity:  constraint.SampleComplexity(reg, slice, p, kind, a.rng),
		Kind:        kind,
	}
}

// BatchResult is the outcome of one GenerateBatch call.
type BatchResult struct {
	Records           []domain.Record
	DuplicatesRemoved int
}

// GenerateBatch produces n records against store. A nil store gets a fresh
// one. onProgress, when set, is called after every record. ctx is checked
// between records; a cancelled batch returns ctx.Err() and no records.
func (a *Assembler) GenerateBatch(ctx context.Context, n int, store *DedupStore, onProgress func(done, total int)) (BatchResult, error) {
	if store == nil {
		store = NewDedupStore()
	}
	records := make([]domain.Record, 0, max(n, 0))
	for i := range max(n, 0) {
		if err := ctx.Err(); err != nil {
			return BatchResult{}, err
		}
		records = append(records, a.GenerateOne(a.SampleContext(), store))
		if onProgress != nil {
			onProgress(i+1, n)
		}
	}
	kept, removed := dropDuplicates(records)
	return BatchResult{Records: kept, DuplicatesRemoved: removed}, nil
}

// dropDuplicates is the final pass over a batch: any record repeating an
// earlier id or normalized description is removed.
func dropDuplicates(records []domain.Record) ([]domain.Record, int) {
	ids := make(map[string]struct{}, len(records))
	descs := make(map[string]struct{}, len(records))
	kept := records[:0]
	for _, rec := range records {
		norm := domain.NormalizeDescription(rec.Description)
		_, dupID := ids[rec.ID]
		_, dupDesc := descs[norm]
		if dupID || dupDesc {
			continue
		}
		ids[rec.ID] = struct{}{}
		descs[norm] = struct{}{}
		kept = append(kept, rec)
	}
	return kept, len(records) - len(kept)
}

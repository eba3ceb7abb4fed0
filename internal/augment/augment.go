// Package augment rewrites and extends a generated batch so classifiers see
// noisy, reworded and off-topic inputs: typos, word shuffles, character
// noise, model paraphrases, and injected out-of-scope or ambiguous samples.
package augment

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/generation"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

type Technique string

const (
	TechniqueTypo          Technique = "typo"
	TechniqueEntityShuffle Technique = "entity_shuffle"
	TechniqueAdversarial   Technique = "adversarial"
	TechniqueParaphrase    Technique = "paraphrase"
	TechniqueOutOfScope    Technique = "out_of_scope"
	TechniqueAmbiguous     Technique = "ambiguous"
)

// Techniques lists every technique in the order Apply runs them.
var Techniques = []Technique{
	TechniqueParaphrase,
	TechniqueEntityShuffle,
	TechniqueTypo,
	TechniqueAdversarial,
	TechniqueOutOfScope,
	TechniqueAmbiguous,
}

func ParseTechnique(s string) (Technique, error) {
	t := Technique(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Techniques, t) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTechnique, s)
	}
	return t, nil
}

// seedSalt separates the augmentation stream from the generation stream of
// the same seed.
const seedSalt = 0x6a09e667f3bcc908

// maxInjectAttempts bounds the redraws for an injected description that
// collides with one already in the batch.
const maxInjectAttempts = 8

// Augmenter applies one set of ratios. It is not safe for concurrent use.
type Augmenter struct {
	ratios      domain.AugmentRatios
	rng         *rng.Source
	paraphraser Paraphraser
	now         func() time.Time
}

type Option func(*Augmenter)

// WithParaphraser enables the paraphrase technique.
func WithParaphraser(p Paraphraser) Option {
	return func(a *Augmenter) { a.paraphraser = p }
}

// WithClock fixes the clock used for the ids of injected records.
func WithClock(now func() time.Time) Option {
	return func(a *Augmenter) { a.now = now }
}

// New returns an Augmenter whose choices replay for the same seed.
func New(ratios domain.AugmentRatios, seed uint64, opts ...Option) *Augmenter {
	a := &Augmenter{
		ratios: ratios,
		rng:    rng.New(seed ^ seedSalt),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summary counts what Apply did to a batch.
type Summary struct {
	Applied          map[Technique]int `json:"applied"`
	Injected         int               `json:"injected"`
	ParaphraseFailed int               `json:"paraphrase_failed"`
	Collisions       int               `json:"collisions"`
}

func (s Summary) IsZero() bool {
	return len(s.Applied) == 0 && s.Injected == 0 && s.ParaphraseFailed == 0 && s.Collisions == 0
}

// Apply returns records with their descriptions augmented in place and the
// injected samples appended. Each rewrite technique is drawn independently
// per record, so one record may carry several. A rewrite that would repeat a
// description already in the batch is dropped and counted as a collision.
//
// Paraphrase failures leave the description alone, except an unreachable
// server, a missing model or an ended ctx, which abort the run.
func (a *Augmenter) Apply(ctx context.Context, records []domain.Record) ([]domain.Record, Summary, error) {
	sum := Summary{Applied: map[Technique]int{}}
	if a.ratios.Paraphrase > 0 && a.paraphraser == nil {
		return nil, sum, ErrParaphraseDisabled
	}

	store := generation.NewDedupStore()
	for _, rec := range records {
		store.Add(rec.ID, rec.Description)
	}

	out := make([]domain.Record, 0, len(records)+a.injectCount(len(records)))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, sum, err
		}
		aug, err := a.rewrite(ctx, rec, store, &sum)
		if err != nil {
			return nil, sum, err
		}
		out = append(out, aug)
	}

	if len(records) > 0 {
		ids := generation.NewIDSource(a.rng, a.now)
		out = a.inject(out, records, TechniqueOutOfScope, a.ratios.OutOfScope, ids, store, &sum)
		out = a.inject(out, records, TechniqueAmbiguous, a.ratios.Ambiguous, ids, store, &sum)
	}
	return out, sum, nil
}

func (a *Augmenter) injectCount(n int) int {
	return int(math.Round(a.ratios.OutOfScope*float64(n))) + int(math.Round(a.ratios.Ambiguous*float64(n)))
}

func (a *Augmenter) rewrite(ctx context.Context, rec domain.Record, store *generation.DedupStore, sum *Summary) (domain.Record, error) {
	// Four draws per record, fired or not.
	doParaphrase := a.rng.Float64() < a.ratios.Paraphrase
	doShuffle := a.rng.Float64() < a.ratios.EntityShuffle
	doTypo := a.rng.Float64() < a.ratios.Typo
	doNoise := a.rng.Float64() < a.ratios.Adversarial

	text := rec.Description
	var applied []Technique
	if doParaphrase {
		p, err := a.paraphraser.Paraphrase(ctx, text)
		switch {
		case err == nil:
			text = p
			applied = append(applied, TechniqueParaphrase)
		case fatalParaphraseErr(ctx, err):
			return rec, fmt.Errorf("paraphrasing %s: %w", rec.ID, err)
		default:
			sum.ParaphraseFailed++
		}
	}
	if doShuffle {
		text = ShuffleEntities(text, a.rng)
		applied = append(applied, TechniqueEntityShuffle)
	}
	if doTypo {
		text = Typo(text, a.rng)
		applied = append(applied, TechniqueTypo)
	}
	if doNoise {
		text = Noise(text, a.rng)
		applied = append(applied, TechniqueAdversarial)
	}

	if len(applied) == 0 || text == rec.Description {
		return rec, nil
	}
	if store.HasDescription(text) {
		sum.Collisions++
		return rec, nil
	}
	store.Add(rec.ID, text)

	rec.Description = text
	rec.Metadata = withAugmentations(rec.Metadata, applied...)
	for _, t := range applied {
		sum.Applied[t]++
	}
	return rec, nil
}

// inject appends round(ratio*len(base)) labelled samples, each cloned from
// a random base record with a fresh id and a replaced description.
func (a *Augmenter) inject(out, base []domain.Record, t Technique, ratio float64, ids *generation.IDSource, store *generation.DedupStore, sum *Summary) []domain.Record {
	n := int(math.Round(ratio * float64(len(base))))
	for range n {
		tmpl := rng.Pick(a.rng, base)
		desc, ok := "", false
		for range maxInjectAttempts {
			desc = a.injectedText(t, tmpl.Description)
			if !store.HasDescription(desc) {
				ok = true
				break
			}
		}
		if !ok {
			sum.Collisions++
			continue
		}

		rec := tmpl
		rec.ID = ids.Next(store)
		rec.Description = desc
		rec.Metadata = withAugmentations(rec.Metadata, t)
		rec.Metadata.SampleLabel = string(t)
		store.Add(rec.ID, desc)

		out = append(out, rec)
		sum.Injected++
		sum.Applied[t]++
	}
	return out
}

func (a *Augmenter) injectedText(t Technique, from string) string {
	if t == TechniqueOutOfScope {
		return OutOfScope(a.rng)
	}
	return Ambiguous(from, a.rng)
}

// withAugmentations copies the slice fields so augmented records share no
// backing arrays with the records they came from.
func withAugmentations(m domain.Metadata, ts ...Technique) domain.Metadata {
	m.Compliance = slices.Clone(m.Compliance)
	m.Violations = slices.Clone(m.Violations)
	augs := slices.Clone(m.Augmentations)
	for _, t := range ts {
		augs = append(augs, string(t))
	}
	m.Augmentations = augs
	return m
}

// Text runs one technique on a single description. The injection techniques
// return a fresh sample: out_of_scope ignores text, ambiguous keeps its verb.
func (a *Augmenter) Text(ctx context.Context, text string, t Technique) (string, error) {
	switch t {
	case TechniqueTypo:
		return Typo(text, a.rng), nil
	case TechniqueEntityShuffle:
		return ShuffleEntities(text, a.rng), nil
	case TechniqueAdversarial:
		return Noise(text, a.rng), nil
	case TechniqueOutOfScope:
		return OutOfScope(a.rng), nil
	case TechniqueAmbiguous:
		return Ambiguous(text, a.rng), nil
	case TechniqueParaphrase:
		if a.paraphraser == nil {
			return "", ErrParaphraseDisabled
		}
		return a.paraphraser.Paraphrase(ctx, text)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTechnique, t)
}

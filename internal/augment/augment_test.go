package augment

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/llm"
	"github.com/aadhamashraf/intentgen/internal/rng"
	"github.com/aadhamashraf/intentgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

type paraphraseFunc func(ctx context.Context, text string) (string, error)

func (f paraphraseFunc) Paraphrase(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

func batch(n int) []domain.Record {
	recs := make([]domain.Record, n)
	for i := range recs {
		recs[i] = testutil.NewTestRecord()
	}
	return recs
}

func sortedWords(s string) []string {
	w := strings.Fields(s)
	sort.Strings(w)
	return w
}

func TestTypo_SwapsAdjacentCharacters(t *testing.T) {
	r := rng.New(1)
	in := "Deploy UPF for eMBB"
	out := Typo(in, r)

	require.Len(t, out, len(in))
	diff := []int{}
	for i := range in {
		if in[i] != out[i] {
			diff = append(diff, i)
		}
	}
	if len(diff) > 0 {
		require.Len(t, diff, 2)
		assert.Equal(t, diff[0]+1, diff[1])
	}

	assert.Equal(t, "UPF", Typo("UPF", r), "short text is left alone")
}

func TestShuffleEntities_KeepsWords(t *testing.T) {
	in := "Scale the AMF pool in the urban center"
	out := ShuffleEntities(in, rng.New(3))
	assert.Equal(t, sortedWords(in), sortedWords(out))
}

func TestNoise_SingleEdit(t *testing.T) {
	in := "Monitor latency on the URLLC slice"
	for seed := range uint64(20) {
		out := Noise(in, rng.New(seed))
		assert.LessOrEqual(t, len(out), len(in)+1)
		assert.GreaterOrEqual(t, len(out), len(in)-1)
	}
	assert.Equal(t, "AMF", Noise("AMF", rng.New(1)))
}

func TestOutOfScope_AndAmbiguous(t *testing.T) {
	r := rng.New(9)
	oos := OutOfScope(r)
	assert.True(t, strings.HasSuffix(oos, "."))
	assert.NotContains(t, strings.ToLower(oos), "slice")

	vague := []string{"thing", "stuff", "issue", "it", "whatever", "something"}
	for range 20 {
		amb := Ambiguous("deploy UPF in the core", r)
		hit := false
		for _, w := range strings.Fields(strings.ToLower(strings.Trim(amb, "."))) {
			for _, v := range vague {
				if strings.Trim(w, ",") == v {
					hit = true
				}
			}
		}
		assert.True(t, hit, "%q has no vague word", amb)
		if !strings.HasPrefix(amb, "Deploy ") {
			assert.Contains(t, vagueOpeners, strings.TrimSuffix(amb, "."))
		}
	}
}

func TestParseTechnique(t *testing.T) {
	tech, err := ParseTechnique(" Entity_Shuffle ")
	require.NoError(t, err)
	assert.Equal(t, TechniqueEntityShuffle, tech)

	_, err = ParseTechnique("backtranslate")
	assert.ErrorIs(t, err, ErrUnknownTechnique)
}

func TestAugmentRatios_Validate(t *testing.T) {
	assert.NoError(t, domain.AugmentRatios{Typo: 1, Ambiguous: 0}.Validate())
	err := domain.AugmentRatios{Paraphrase: 2}.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidRatio)
	assert.ErrorContains(t, err, "paraphrase=2")
}

func TestApply_ZeroRatiosLeaveBatch(t *testing.T) {
	recs := batch(5)
	out, sum, err := New(domain.AugmentRatios{}, 42).Apply(context.Background(), recs)
	require.NoError(t, err)
	assert.Equal(t, recs, out)
	assert.True(t, sum.IsZero())
}

func TestApply_RewritesAreRecordedAndUnique(t *testing.T) {
	recs := batch(30)
	out, sum, err := New(domain.AugmentRatios{Typo: 1, EntityShuffle: 0.5}, 7, WithClock(fixedNow)).Apply(context.Background(), recs)
	require.NoError(t, err)
	require.Len(t, out, len(recs))

	assert.Positive(t, sum.Applied[TechniqueTypo])
	assert.Positive(t, sum.Applied[TechniqueEntityShuffle])
	assert.Less(t, sum.Applied[TechniqueEntityShuffle], len(recs))

	seen := map[string]bool{}
	for i, rec := range out {
		assert.Equal(t, recs[i].ID, rec.ID)
		norm := domain.NormalizeDescription(rec.Description)
		assert.False(t, seen[norm], "duplicate description %q", rec.Description)
		seen[norm] = true

		if len(rec.Metadata.Augmentations) > 0 {
			assert.NotEqual(t, recs[i].Description, rec.Description)
		} else {
			assert.Equal(t, recs[i].Description, rec.Description)
		}
		assert.Empty(t, recs[i].Metadata.Augmentations, "input records are not modified")
	}
}

func TestApply_InjectsLabelledSamples(t *testing.T) {
	recs := batch(8)
	out, sum, err := New(domain.AugmentRatios{OutOfScope: 0.5, Ambiguous: 0.25}, 3, WithClock(fixedNow)).Apply(context.Background(), recs)
	require.NoError(t, err)

	require.Len(t, out, 8+4+2)
	assert.Equal(t, 6, sum.Injected)
	assert.Equal(t, 4, sum.Applied[TechniqueOutOfScope])
	assert.Equal(t, 2, sum.Applied[TechniqueAmbiguous])

	ids := map[string]bool{}
	for _, rec := range out {
		assert.False(t, ids[rec.ID], "duplicate id %s", rec.ID)
		ids[rec.ID] = true
	}
	for _, rec := range out[:8] {
		assert.Empty(t, rec.Metadata.SampleLabel)
	}
	for _, rec := range out[8:12] {
		assert.Equal(t, domain.SampleLabelOutOfScope, rec.Metadata.SampleLabel)
		assert.Equal(t, []string{"out_of_scope"}, rec.Metadata.Augmentations)
		assert.True(t, strings.HasPrefix(rec.ID, "IBN_1748779200000_"), rec.ID)
		assert.True(t, rec.Kind.Valid())
	}
	for _, rec := range out[12:] {
		assert.Equal(t, domain.SampleLabelAmbiguous, rec.Metadata.SampleLabel)
	}
}

func TestApply_DeterministicBySeed(t *testing.T) {
	recs := batch(20)
	ratios := domain.AugmentRatios{Typo: 0.3, EntityShuffle: 0.3, Adversarial: 0.3, OutOfScope: 0.1, Ambiguous: 0.1}

	a, _, err := New(ratios, 11, WithClock(fixedNow)).Apply(context.Background(), recs)
	require.NoError(t, err)
	b, _, err := New(ratios, 11, WithClock(fixedNow)).Apply(context.Background(), recs)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, _, err := New(ratios, 12, WithClock(fixedNow)).Apply(context.Background(), recs)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestApply_Paraphrase(t *testing.T) {
	recs := batch(4)
	p := paraphraseFunc(func(_ context.Context, text string) (string, error) {
		return "Please " + strings.ToLower(text[:1]) + text[1:], nil
	})

	out, sum, err := New(domain.AugmentRatios{Paraphrase: 1}, 1, WithParaphraser(p)).Apply(context.Background(), recs)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Applied[TechniqueParaphrase])
	for _, rec := range out {
		assert.True(t, strings.HasPrefix(rec.Description, "Please deploy"), rec.Description)
		assert.Equal(t, []string{"paraphrase"}, rec.Metadata.Augmentations)
	}
}

func TestApply_ParaphraseNeedsClient(t *testing.T) {
	_, _, err := New(domain.AugmentRatios{Paraphrase: 0.1}, 1).Apply(context.Background(), batch(2))
	assert.ErrorIs(t, err, ErrParaphraseDisabled)
}

func TestApply_ParaphraseFailureKeepsText(t *testing.T) {
	recs := batch(3)
	p := paraphraseFunc(func(context.Context, string) (string, error) { return "", llm.ErrInvalidOutput })

	out, sum, err := New(domain.AugmentRatios{Paraphrase: 1}, 1, WithParaphraser(p)).Apply(context.Background(), recs)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.ParaphraseFailed)
	assert.Equal(t, recs, out)
}

func TestApply_ParaphraseServerDownAborts(t *testing.T) {
	calls := 0
	p := paraphraseFunc(func(context.Context, string) (string, error) {
		calls++
		return "", llm.ErrOllamaUnavailable
	})

	_, _, err := New(domain.AugmentRatios{Paraphrase: 1}, 1, WithParaphraser(p)).Apply(context.Background(), batch(5))
	assert.ErrorIs(t, err, llm.ErrOllamaUnavailable)
	assert.Equal(t, 1, calls)
}

func TestApply_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := New(domain.AugmentRatios{Typo: 1}, 1).Apply(ctx, batch(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestText(t *testing.T) {
	a := New(domain.AugmentRatios{}, 5)
	ctx := context.Background()
	in := "Optimize throughput for the eMBB slice"

	out, err := a.Text(ctx, in, TechniqueEntityShuffle)
	require.NoError(t, err)
	assert.Equal(t, sortedWords(in), sortedWords(out))

	out, err = a.Text(ctx, in, TechniqueOutOfScope)
	require.NoError(t, err)
	assert.NotEqual(t, in, out)

	_, err = a.Text(ctx, in, TechniqueParaphrase)
	assert.ErrorIs(t, err, ErrParaphraseDisabled)

	_, err = a.Text(ctx, in, Technique("synonym"))
	assert.ErrorIs(t, err, ErrUnknownTechnique)

	boom := errors.New("boom")
	withModel := New(domain.AugmentRatios{}, 5, WithParaphraser(paraphraseFunc(func(context.Context, string) (string, error) {
		return "", boom
	})))
	_, err = withModel.Text(ctx, in, TechniqueParaphrase)
	assert.ErrorIs(t, err, boom)
}

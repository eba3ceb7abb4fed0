package template

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/rng"
)

const (
	fallbackPlaceholder = "network component"
	richnessPhraseMin   = 0.8
	researchComplexity  = 8
)

// Engine renders descriptions from a Context. It is safe to share once
// registration is finished; all randomness comes from the caller's Source.
type Engine struct {
	subs map[string]substitution
}

// NewEngine returns an Engine with the built-in substitutions registered.
func NewEngine() *Engine {
	return &Engine{subs: builtinSubstitutions()}
}

// Register adds or replaces the substitution for name. def is used whenever
// fn declines or panics.
func (e *Engine) Register(name string, fn Substitution, def string) {
	e.subs[name] = substitution{fn: fn, def: def}
}

// Resolvable reports whether a placeholder can be filled from ctx.
func (e *Engine) Resolvable(ctx Context, name string) bool {
	if _, ok := e.subs[name]; ok {
		return true
	}
	_, ok := ctx.Flat[name]
	return ok
}

// Score rates tmpl against ctx as (resolvable - 0.5*unresolvable) / total.
// A template without placeholders scores 1.
func (e *Engine) Score(ctx Context, tmpl string) float64 {
	names := Placeholders(tmpl)
	if len(names) == 0 {
		return 1
	}
	var ok, missing int
	for _, n := range names {
		if e.Resolvable(ctx, n) {
			ok++
		} else {
			missing++
		}
	}
	return (float64(ok) - 0.5*float64(missing)) / float64(len(names))
}

// Best returns the highest scoring template. Ties keep list order.
func (e *Engine) Best(ctx Context, candidates []string) string {
	best, bestScore := "", 0.0
	for i, c := range candidates {
		if s := e.Score(ctx, c); i == 0 || s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// Render picks a template for ctx, fills it and polishes the result. It
// always returns a sentence without braces.
func (e *Engine) Render(ctx Context, r *rng.Source) string {
	tmpl := e.Best(ctx, Candidates(ctx))
	text := Expand(tmpl, func(name string) (string, bool) {
		return e.resolve(ctx, name, r)
	})

	text = enhanceComplexity(text, ctx)
	text = enhancePriority(text, ctx)
	text = enhanceCategory(text, ctx)
	text = enhanceRichness(text, ctx)
	text = addVariety(text, ctx.Variety)
	text = addResearchContext(text, ctx)
	return Cleanup(text)
}

func (e *Engine) resolve(ctx Context, name string, r *rng.Source) (string, bool) {
	if sub, ok := e.subs[name]; ok {
		if v, ok := safeCall(sub.fn, ctx, r); ok && v != "" {
			return v, true
		}
		return sub.def, true
	}
	if v, ok := ctx.Flat[name]; ok {
		return v, true
	}
	return "", false
}

func safeCall(fn Substitution, ctx Context, r *rng.Source) (v string, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			v, ok = "", false
		}
	}()
	if fn == nil {
		return "", false
	}
	return fn(ctx, r)
}

func enhanceComplexity(text string, ctx Context) string {
	if ctx.Complexity > researchComplexity && !strings.Contains(text, "research-grade") {
		return strings.Replace(text, "advanced", "research-grade advanced", 1)
	}
	return text
}

func enhancePriority(text string, ctx Context) string {
	if !ctx.Priority.Urgent() {
		return text
	}
	text = upgradeWord(text, "monitoring")
	return upgradeWord(text, "security")
}

func enhanceCategory(text string, ctx Context) string {
	switch ctx.Category {
	case domain.CategoryURLLC, domain.CategoryV2X:
		text = upgradeWord(text, "latency")
		return upgradeWord(text, "reliability")
	case domain.CategoryEMBB:
		return upgradeWord(text, "throughput")
	}
	return text
}

var richnessKeywords = map[Topic]string{
	TopicNetwork:       "topology",
	TopicQoS:           "QoS",
	TopicSecurity:      "zero-trust",
	TopicResource:      "compute",
	TopicMonitoring:    "telemetry",
	TopicOrchestration: "orchestration",
	TopicPerformance:   "SLA",
	TopicAIML:          "AI",
}

func enhanceRichness(text string, ctx Context) string {
	top, score := Topic(""), 0.0
	for _, t := range Topics {
		if ctx.Richness[t] > score {
			top, score = t, ctx.Richness[t]
		}
	}
	if top == "" || score < richnessPhraseMin {
		return text
	}
	if strings.Contains(strings.ToLower(text), strings.ToLower(richnessKeywords[top])) {
		return text
	}
	return text + " backed by " + richnessPhrases[top]
}

func addVariety(text string, v domain.Variety) string {
	if v.IsZero() {
		return text
	}
	var parts []string
	if v.Style != "" {
		parts = append(parts, "in a "+v.Style+" style")
	}
	if v.Focus != "" {
		parts = append(parts, "focusing on "+v.Focus)
	}
	if v.Phase != "" {
		parts = append(parts, "during the "+v.Phase+" phase")
	}
	if v.Perspective != "" {
		parts = append(parts, "from a "+v.Perspective+" perspective")
	}
	return text + ", " + strings.Join(parts, ", ")
}

func addResearchContext(text string, ctx Context) string {
	if ctx.Meta.ResearchContext == "" {
		return text
	}
	return fmt.Sprintf("%s for %s", text, spaced(ctx.Meta.ResearchContext))
}

// wordUpgrades maps a standalone word to the phrase the enhancers put in
// its place.
var wordUpgrades = map[string]string{
	"monitoring":  "continuous monitoring",
	"security":    "hardened security",
	"latency":     "ultra-low latency",
	"reliability": "ultra-high reliability",
	"throughput":  "peak throughput",
}

var wordPatterns = make(map[string]*regexp.Regexp, len(wordUpgrades))

func init() {
	for word := range wordUpgrades {
		wordPatterns[word] = regexp.MustCompile(`(^|[^\w-])` + regexp.QuoteMeta(word) + `($|[^\w-])`)
	}
}

// upgradeWord replaces the first standalone occurrence of word with its
// upgrade. Hyphenated compounds and already-upgraded text are left alone.
func upgradeWord(text, word string) string {
	with, re := wordUpgrades[word], wordPatterns[word]
	if re == nil || strings.Contains(text, with) {
		return text
	}
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[3]] + with + text[loc[4]:]
}

var (
	reSpaces      = regexp.MustCompile(`\s+`)
	reCommaSpace  = regexp.MustCompile(`\s+,`)
	reCommaJoined = regexp.MustCompile(`,(\S)`)
	reDoubleComma = regexp.MustCompile(`,\s*,`)
)

// Cleanup removes template residue: unresolved blocks, stray braces, extra
// whitespace and comma spacing. The first letter is capitalized.
func Cleanup(text string) string {
	text = scan(text, func(name string, ok bool) string {
		if ok {
			return fallbackPlaceholder
		}
		return name
	})
	text = strings.NewReplacer("{", "", "}", "").Replace(text)
	text = reSpaces.ReplaceAllString(text, " ")
	text = reCommaSpace.ReplaceAllString(text, ",")
	text = reDoubleComma.ReplaceAllString(text, ",")
	text = reCommaJoined.ReplaceAllString(text, ", $1")
	text = strings.Trim(strings.TrimSpace(text), ",")
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

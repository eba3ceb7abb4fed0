package evaluation

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

// Report is the statistics side of an evaluation. Judge is set only when a
// model review ran.
type Report struct {
	Records    int              `json:"total_records"`
	Lexical    LexicalDiversity `json:"lexical_diversity"`
	Duplicates Duplicates       `json:"duplicates"`
	IntentType LabelBalance     `json:"intent_type_balance"`
	Priority   LabelBalance     `json:"priority_balance"`
	Vague      int              `json:"vague_expression_count"`
	Grammar    Grammar          `json:"grammar"`
	Judge      *JudgeSummary    `json:"llm_judge,omitempty"`
}

// Evaluate computes every statistic over the record descriptions and labels.
func Evaluate(records []domain.Record) Report {
	texts := make([]string, len(records))
	kinds := make([]string, len(records))
	prios := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.Description
		kinds[i] = string(rec.Kind)
		prios[i] = string(rec.Priority)
	}
	return Report{
		Records:    len(records),
		Lexical:    Lexical(texts),
		Duplicates: DuplicateMetrics(texts),
		IntentType: LabelStats(kinds),
		Priority:   LabelStats(prios),
		Vague:      VagueCount(texts),
		Grammar:    GrammarHeuristics(texts),
	}
}

// WriteMarkdown renders r as a dataset analysis document.
func WriteMarkdown(w io.Writer, r Report) error {
	var b strings.Builder
	section := func(title string) { fmt.Fprintf(&b, "\n## %s\n\n", title) }
	line := func(k string, v any) { fmt.Fprintf(&b, "- **%s**: `%v`\n", k, v) }

	b.WriteString("# Dataset Analysis\n")

	section("Dataset Summary")
	line("total_records", r.Records)

	section("Lexical Diversity")
	line("unique_sentences", fmt.Sprintf("%.4f", r.Lexical.UniqueSentences))
	line("unique_tokens", r.Lexical.UniqueTokens)
	line("type_token_ratio", fmt.Sprintf("%.4f", r.Lexical.TypeTokenRatio))
	line("unique_bigrams", r.Lexical.UniqueBigrams)
	line("rare_word_fraction", fmt.Sprintf("%.4f", r.Lexical.RareWordFraction))

	section("Grammar and Syntax")
	line("avg_grammar_errors", fmt.Sprintf("%.4f", r.Grammar.AvgErrors))
	line("missing_terminal_punctuation", r.Grammar.NoTerminal)
	line("repeated_words", r.Grammar.RepeatedWords)
	line("too_short", r.Grammar.TooShort)

	for _, lb := range []struct {
		title string
		bal   LabelBalance
	}{{"Intent Type Balance", r.IntentType}, {"Priority Balance", r.Priority}} {
		section(lb.title)
		for _, k := range SortedLabels(lb.bal.Counts) {
			line(k, lb.bal.Counts[k])
		}
		line("imbalance_ratio", fmt.Sprintf("%.2f", lb.bal.ImbalanceRatio))
		line("minority_labels", lb.bal.MinorityLabels)
	}

	section("Duplicate Metrics")
	line("n_duplicates", r.Duplicates.Count)
	line("dup_ratio", fmt.Sprintf("%.4f", r.Duplicates.Ratio))

	section("Vagueness")
	line("vague_expression_count", r.Vague)

	if r.Judge != nil {
		section("Model Review")
		line("sampled", r.Judge.Sampled)
		line("judged", r.Judge.Judged)
		line("failed", r.Judge.Failed)
		for _, in := range r.Judge.Insights {
			fmt.Fprintf(&b, "- %s\n", in)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// SortedLabels returns the keys of a label count map in lexical order.
func SortedLabels(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

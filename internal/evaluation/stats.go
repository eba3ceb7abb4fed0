// Package evaluation measures the quality of a generated dataset: lexical
// diversity, duplicates, label balance, vague wording, and optionally a
// model-as-judge review of a sample.
package evaluation

import (
	"regexp"
	"sort"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

// MinorityShare is the label share below which a label counts as minority.
const MinorityShare = 0.05

// vagueWords are matched as whole words, case-insensitively.
var vagueWords = []string{"thing", "things", "stuff", "issue", "issues", "it", "whatever", "something", "somehow"}

var vaguePattern = regexp.MustCompile(`(?i)\b(` + strings.Join(vagueWords, "|") + `)\b`)

const tokenPunctuation = ".,;:!?()[]\"'"

type LexicalDiversity struct {
	UniqueSentences  float64 `json:"unique_sentences"`
	UniqueTokens     int     `json:"unique_tokens"`
	TypeTokenRatio   float64 `json:"type_token_ratio"`
	UniqueBigrams    int     `json:"unique_bigrams"`
	RareWordFraction float64 `json:"rare_word_fraction"`
}

// Lexical computes diversity over whitespace tokens. Sentences compare
// exactly; tokens and bigrams are lowercased with edge punctuation trimmed.
func Lexical(texts []string) LexicalDiversity {
	if len(texts) == 0 {
		return LexicalDiversity{}
	}
	sentences := make(map[string]struct{}, len(texts))
	counts := map[string]int{}
	bigrams := map[string]struct{}{}
	total := 0

	for _, t := range texts {
		sentences[t] = struct{}{}
		toks := tokens(t)
		total += len(toks)
		for i, tok := range toks {
			counts[tok]++
			if i > 0 {
				bigrams[toks[i-1]+" "+tok] = struct{}{}
			}
		}
	}

	ld := LexicalDiversity{
		UniqueSentences: float64(len(sentences)) / float64(len(texts)),
		UniqueTokens:    len(counts),
		UniqueBigrams:   len(bigrams),
	}
	if total > 0 {
		ld.TypeTokenRatio = float64(len(counts)) / float64(total)
	}
	if len(counts) > 0 {
		rare := 0
		for _, n := range counts {
			if n == 1 {
				rare++
			}
		}
		ld.RareWordFraction = float64(rare) / float64(len(counts))
	}
	return ld
}

func tokens(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	out := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, tokenPunctuation); f != "" {
			out = append(out, f)
		}
	}
	return out
}

type Duplicates struct {
	Count int     `json:"n_duplicates"`
	Ratio float64 `json:"dup_ratio"`
}

// DuplicateMetrics counts texts whose normalized form already appeared.
func DuplicateMetrics(texts []string) Duplicates {
	if len(texts) == 0 {
		return Duplicates{}
	}
	seen := make(map[string]struct{}, len(texts))
	d := Duplicates{}
	for _, t := range texts {
		norm := domain.NormalizeDescription(t)
		if _, ok := seen[norm]; ok {
			d.Count++
			continue
		}
		seen[norm] = struct{}{}
	}
	d.Ratio = float64(d.Count) / float64(len(texts))
	return d
}

type LabelBalance struct {
	Counts         map[string]int `json:"label_counts"`
	ImbalanceRatio float64        `json:"label_imbalance_ratio"`
	MinorityLabels []string       `json:"minority_labels"`
	Unlabeled      int            `json:"unlabeled"`
}

// LabelStats summarizes a label column. Empty labels are counted apart and
// take no part in the imbalance ratio.
func LabelStats(labels []string) LabelBalance {
	lb := LabelBalance{Counts: map[string]int{}, MinorityLabels: []string{}}
	for _, l := range labels {
		if l == "" {
			lb.Unlabeled++
			continue
		}
		lb.Counts[l]++
	}
	if len(lb.Counts) == 0 {
		return lb
	}

	lo, hi := len(labels), 0
	for l, n := range lb.Counts {
		lo = min(lo, n)
		hi = max(hi, n)
		if float64(n) < float64(len(labels))*MinorityShare {
			lb.MinorityLabels = append(lb.MinorityLabels, l)
		}
	}
	sort.Strings(lb.MinorityLabels)
	lb.ImbalanceRatio = float64(hi) / float64(max(lo, 1))
	return lb
}

// VagueCount is the number of texts containing at least one vague word.
func VagueCount(texts []string) int {
	n := 0
	for _, t := range texts {
		if vaguePattern.MatchString(t) {
			n++
		}
	}
	return n
}

type Grammar struct {
	AvgErrors     float64 `json:"avg_grammar_errors"`
	NoTerminal    int     `json:"missing_terminal_punctuation"`
	RepeatedWords int     `json:"repeated_words"`
	TooShort      int     `json:"too_short"`
}

// GrammarHeuristics flags, per text, a missing terminal . ? or !, an
// immediately repeated word, and fewer than three words.
func GrammarHeuristics(texts []string) Grammar {
	if len(texts) == 0 {
		return Grammar{}
	}
	var g Grammar
	errs := 0
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if !strings.HasSuffix(t, ".") && !strings.HasSuffix(t, "?") && !strings.HasSuffix(t, "!") {
			g.NoTerminal++
			errs++
		}
		if hasRepeatedWord(t) {
			g.RepeatedWords++
			errs++
		}
		if len(strings.Fields(t)) < 3 {
			g.TooShort++
			errs++
		}
	}
	g.AvgErrors = float64(errs) / float64(len(texts))
	return g
}

// hasRepeatedWord scans adjacent word pairs; RE2 has no backreferences.
func hasRepeatedWord(t string) bool {
	words := strings.Fields(strings.ToLower(t))
	for i := 1; i < len(words); i++ {
		if words[i] == words[i-1] && strings.Trim(words[i], tokenPunctuation) != "" {
			return true
		}
	}
	return false
}

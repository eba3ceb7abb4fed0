package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/evaluation"
)

// FormatReport renders the statistics of an evaluation and, when present,
// the model review.
func FormatReport(r *evaluation.Report) string {
	var b strings.Builder

	b.WriteString(Header("Dataset analysis"))
	b.WriteString("\n")
	b.WriteString(KeyValues([][2]string{
		{"records", Bold(strconv.Itoa(r.Records))},
		{"unique sentences", Percent(r.Lexical.UniqueSentences)},
		{"unique tokens", strconv.Itoa(r.Lexical.UniqueTokens)},
		{"type/token ratio", fmt.Sprintf("%.3f", r.Lexical.TypeTokenRatio)},
		{"unique bigrams", strconv.Itoa(r.Lexical.UniqueBigrams)},
		{"rare words", Percent(r.Lexical.RareWordFraction)},
		{"duplicates", duplicateText(r.Duplicates)},
		{"vague expressions", strconv.Itoa(r.Vague)},
	}))
	b.WriteString("\n\n")

	b.WriteString(formatBalance("Intent type balance", r.IntentType))
	b.WriteString("\n")
	b.WriteString(formatBalance("Priority balance", r.Priority))

	if r.Judge != nil {
		b.WriteString("\n")
		b.WriteString(formatJudge(r.Judge))
	}
	return b.String()
}

func duplicateText(d evaluation.Duplicates) string {
	text := fmt.Sprintf("%d (%s)", d.Count, Percent(d.Ratio))
	if d.Count > 0 {
		return StyleYellow.Render(text)
	}
	return StyleGreen.Render(text)
}

func formatBalance(title string, lb evaluation.LabelBalance) string {
	total := lb.Unlabeled
	for _, n := range lb.Counts {
		total += n
	}
	minority := make(map[string]bool, len(lb.MinorityLabels))
	for _, l := range lb.MinorityLabels {
		minority[l] = true
	}

	rows := make([][]string, 0, len(lb.Counts))
	for _, label := range evaluation.SortedLabels(lb.Counts) {
		name := label
		if minority[label] {
			name = StyleRed.Render(label + " ▼")
		}
		rows = append(rows, distributionRow(name, lb.Counts[label], total))
	}
	out := Header(title) + "\n"
	if len(rows) > 0 {
		out += RenderTable([]string{"LABEL", "COUNT", "SHARE"}, rows)
	}
	out += Dim(fmt.Sprintf("imbalance ratio %.2f · unlabeled %d", lb.ImbalanceRatio, lb.Unlabeled)) + "\n"
	return out
}

func formatJudge(s *evaluation.JudgeSummary) string {
	var b strings.Builder
	b.WriteString(Header("Model review"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("sampled %d · judged %d · failed %d", s.Sampled, s.Judged, s.Failed)))
	b.WriteString("\n\n")

	m := s.Metrics
	scores := [][2]string{
		{"overall quality", score(m.OverallQuality)},
		{"technical accuracy", score(m.TechnicalAccuracy)},
		{"realism", score(m.Realism)},
		{"3GPP compliance", score(m.Compliance)},
		{"research value", score(m.ResearchValue)},
	}
	b.WriteString(KeyValues(scores))
	b.WriteString("\n")

	if len(s.Insights) > 0 {
		b.WriteString("\n")
		for _, in := range s.Insights {
			b.WriteString("  " + StylePurple.Render("•") + " " + in + "\n")
		}
	}
	return b.String()
}

func score(v float64) string {
	return ScoreStyle(v).Render(fmt.Sprintf("%.1f/10", v))
}

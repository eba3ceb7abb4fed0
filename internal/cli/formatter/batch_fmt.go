package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aadhamashraf/intentgen/internal/augment"
	"github.com/aadhamashraf/intentgen/internal/domain"
)

// BatchSummary is what FormatBatchSummary needs about a finished run.
type BatchSummary struct {
	Batch        *domain.Batch
	Records      []domain.Record
	Format       string
	Output       string
	Elapsed      time.Duration
	Augmentation augment.Summary
}

// FormatBatchSummary renders the run totals in a box followed by the kind
// and priority distributions.
func FormatBatchSummary(s BatchSummary) string {
	var b strings.Builder

	pairs := [][2]string{
		{"records", Bold(strconv.Itoa(len(s.Records)))},
		{"requested", strconv.Itoa(s.Batch.Requested)},
		{"duplicates removed", strconv.Itoa(s.Batch.DuplicatesRemoved)},
		{"seed", strconv.FormatUint(s.Batch.Seed, 10)},
		{"format", s.Format},
		{"output", StyleBlue.Render(s.Output)},
		{"session", Dim(s.Batch.SessionID)},
		{"elapsed", FormatDuration(s.Elapsed)},
	}
	b.WriteString(RenderBox("Dataset generated", KeyValues(pairs)))
	b.WriteString("\n\n")

	kinds := map[domain.RecordKind]int{}
	prios := map[domain.Priority]int{}
	for _, rec := range s.Records {
		kinds[rec.Kind]++
		prios[rec.Priority]++
	}

	b.WriteString(Header("Intent types"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(domain.RecordKinds))
	for _, k := range domain.RecordKinds {
		rows = append(rows, distributionRow(KindBadge(k), kinds[k], len(s.Records)))
	}
	b.WriteString(RenderTable([]string{"TYPE", "COUNT", "SHARE"}, rows))
	b.WriteString("\n")

	b.WriteString(Header("Priorities"))
	b.WriteString("\n")
	rows = rows[:0]
	for _, p := range domain.Priorities {
		rows = append(rows, distributionRow(PriorityPill(p), prios[p], len(s.Records)))
	}
	b.WriteString(RenderTable([]string{"PRIORITY", "COUNT", "SHARE"}, rows))

	if !s.Augmentation.IsZero() {
		b.WriteString("\n")
		b.WriteString(formatAugmentation(s.Augmentation, len(s.Records)))
	}
	return b.String()
}

func formatAugmentation(a augment.Summary, total int) string {
	var b strings.Builder
	b.WriteString(Header("Augmentation"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(augment.Techniques))
	for _, t := range augment.Techniques {
		rows = append(rows, distributionRow(string(t), a.Applied[t], total))
	}
	b.WriteString(RenderTable([]string{"TECHNIQUE", "RECORDS", "SHARE"}, rows))
	if a.ParaphraseFailed > 0 || a.Collisions > 0 {
		b.WriteString("\n")
		b.WriteString(Dim(fmt.Sprintf("%d paraphrases failed, %d rewrites dropped as duplicates", a.ParaphraseFailed, a.Collisions)))
	}
	return b.String()
}

func distributionRow(label string, n, total int) []string {
	pct := 0.0
	if total > 0 {
		pct = float64(n) / float64(total)
	}
	return []string{label, strconv.Itoa(n), RenderProgress(pct, 20)}
}

// FormatRecordPreview renders the first n records as a table.
func FormatRecordPreview(records []domain.Record, n int) string {
	n = min(n, len(records))
	if n == 0 {
		return Dim("no records")
	}
	rows := make([][]string, 0, n)
	for _, rec := range records[:n] {
		rows = append(rows, []string{
			Dim(rec.ID),
			KindBadge(rec.Kind),
			PriorityPill(rec.Priority),
			strconv.Itoa(rec.Metadata.TechnicalComplexity),
			Truncate(rec.Description, 72),
		})
	}
	out := RenderTable([]string{"ID", "TYPE", "PRIORITY", "CX", "DESCRIPTION"}, rows)
	if more := len(records) - n; more > 0 {
		out += Dim(fmt.Sprintf("… %d more", more)) + "\n"
	}
	return out
}

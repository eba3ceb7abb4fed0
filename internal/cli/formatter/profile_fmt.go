package formatter

import (
	"fmt"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/profile"
)

func formatRange(r profile.Range, unit string) string {
	return fmt.Sprintf("%g–%g %s", r.Min, r.Max, unit)
}

// FormatProfiles renders one row per domain category.
func FormatProfiles(profiles []profile.DomainProfile) string {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{
			StylePurple.Render(string(p.Category)),
			formatRange(p.LatencyRange, "ms"),
			formatRange(p.ThroughputRange, "Mbps"),
			fmt.Sprintf("%g%%", p.MinReliability),
			p.Security.EncryptionStrength,
			strings.Join(p.ComplianceStandards, ", "),
		})
	}
	return Header("Domain profiles") + "\n" +
		RenderTable([]string{"CATEGORY", "LATENCY", "THROUGHPUT", "MIN RELIABILITY", "ENCRYPTION", "STANDARDS"}, rows)
}

// FormatCategorization shows how raw was mapped on axis. res is only used
// on the category axis, where the resolved profile is listed.
func FormatCategorization(raw string, axis profile.Axis, canonical string, res profile.Resolved) string {
	pairs := [][2]string{
		{"input", raw},
		{"axis", string(axis)},
		{"canonical", StyleGreen.Render(canonical)},
	}
	if axis == profile.AxisCategory {
		pairs = append(pairs,
			[2]string{"latency", formatRange(res.Profile.LatencyRange, "ms")},
			[2]string{"max latency", fmt.Sprintf("%g ms", res.MaxLatency())},
			[2]string{"throughput", formatRange(res.Profile.ThroughputRange, "Mbps")},
		)
		if res.Slice != nil {
			pairs = append(pairs, [2]string{"slice override", StyleBlue.Render(res.Slice.Name)})
		}
	}
	return KeyValues(pairs)
}

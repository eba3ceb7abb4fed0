package profile

import (
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

// Axis selects which keyword table Categorize consults.
type Axis string

const (
	AxisCategory Axis = "category"
	AxisContext  Axis = "context"
)

type keywordGroup struct {
	result   string
	keywords []string
}

// Order matters: V2X must be tested before URLLC because strings such as
// "URLLC_Autonomous_Vehicles" match both.
var categoryGroups = []keywordGroup{
	{string(domain.CategoryV2X), []string{"v2x", "vehicle", "autonomous"}},
	{string(domain.CategoryURLLC), []string{"urllc", "critical", "industrial"}},
	{string(domain.CategoryMMTC), []string{"mmtc", "iot", "massive", "agriculture", "monitoring"}},
}

var contextGroups = []keywordGroup{
	{string(domain.ContextHighway), []string{"highway", "corridor", "road"}},
	{string(domain.ContextIndustrial), []string{"industrial", "manufacturing", "factory"}},
	{string(domain.ContextRural), []string{"rural", "farm", "agriculture"}},
}

// Categorize maps a free-form string onto a canonical value of the given axis.
// Unmatched input falls back to "eMBB" (category) or "urban" (context).
func Categorize(raw string, axis Axis) string {
	if axis == AxisContext {
		return firstMatch(raw, contextGroups, string(domain.ContextUrban))
	}
	return firstMatch(raw, categoryGroups, string(domain.CategoryEMBB))
}

// CategorizeCategory is Categorize on the category axis, typed.
func CategorizeCategory(raw string) domain.Category {
	return domain.Category(Categorize(raw, AxisCategory))
}

// CategorizeContext is Categorize on the context axis, typed.
func CategorizeContext(raw string) domain.ContextCategory {
	return domain.ContextCategory(Categorize(raw, AxisContext))
}

func firstMatch(raw string, groups []keywordGroup, fallback string) string {
	lower := strings.ToLower(raw)
	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.result
			}
		}
	}
	return fallback
}

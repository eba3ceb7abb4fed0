package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/aadhamashraf/intentgen/internal/cli/formatter"
	"github.com/aadhamashraf/intentgen/internal/config"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/export"
	"github.com/aadhamashraf/intentgen/internal/generation"
)

const anyKind = "any"

func intentgenHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// generateFields backs the interactive form. Inputs are strings so the form
// can hold partial text while the user types.
type generateFields struct {
	count  string
	seed   string
	kind   string
	format string
}

// newGenerateFields prefills the form from the flags, falling back to cfg.
func newGenerateFields(cfg config.Config, req generation.BatchRequest) *generateFields {
	f := &generateFields{
		count:  strconv.Itoa(domain.FromPtrWithDefault(cfg.Count, req.Count)),
		seed:   strconv.FormatUint(domain.FromPtrWithDefault(cfg.Seed, req.Seed), 10),
		kind:   anyKind,
		format: domain.CoalesceStr(strings.ToLower(req.Format), cfg.Format),
	}
	if k, err := domain.ParseRecordKind(req.Kind); err == nil {
		f.kind = string(k)
	}
	return f
}

func generateForm(f *generateFields) *huh.Form {
	kinds := []huh.Option[string]{huh.NewOption("Any type", anyKind)}
	for _, k := range domain.RecordKinds {
		kinds = append(kinds, huh.NewOption(k.Label(), string(k)))
	}
	formats := make([]huh.Option[string], 0, len(export.Formats))
	for _, ft := range export.Formats {
		formats = append(formats, huh.NewOption(string(ft), string(ft)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Records").
				Description(fmt.Sprintf("%d..%d", generation.MinBatchSize, generation.MaxBatchSize)).
				Value(&f.count).
				Validate(validateCount),
			huh.NewInput().
				Title("Seed").
				Value(&f.seed).
				Validate(validateSeed),
			huh.NewSelect[string]().
				Title("Intent type").
				Options(kinds...).
				Value(&f.kind),
			huh.NewSelect[string]().
				Title("Format").
				Options(formats...).
				Value(&f.format),
		),
	).WithTheme(intentgenHuhTheme()).WithShowHelp(false)
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < generation.MinBatchSize || n > generation.MaxBatchSize {
		return fmt.Errorf("enter a number from %d to %d", generation.MinBatchSize, generation.MaxBatchSize)
	}
	return nil
}

func validateSeed(s string) error {
	if _, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err != nil {
		return fmt.Errorf("enter a non-negative integer")
	}
	return nil
}

// request converts the form values into a batch request.
func (f *generateFields) request() (generation.BatchRequest, error) {
	if err := validateCount(f.count); err != nil {
		return generation.BatchRequest{}, fmt.Errorf("count: %w", err)
	}
	if err := validateSeed(f.seed); err != nil {
		return generation.BatchRequest{}, fmt.Errorf("seed: %w", err)
	}
	count, _ := strconv.Atoi(strings.TrimSpace(f.count))
	seed, _ := strconv.ParseUint(strings.TrimSpace(f.seed), 10, 64)

	req := generation.BatchRequest{Count: &count, Seed: &seed, Format: f.format}
	if f.kind != anyKind {
		req.Kind = f.kind
	}
	return req, nil
}

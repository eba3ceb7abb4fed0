// Package cli is the intentgen command line: cobra commands over the
// dataset and evaluation services, with lipgloss output and a bubbletea
// progress view when attached to a terminal.
package cli

import (
	"log/slog"

	"github.com/aadhamashraf/intentgen/internal/config"
	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/service"
	"github.com/spf13/cobra"
)

// App holds what the commands need. Evals carries an LLM client only when
// the judge is enabled in the configuration.
type App struct {
	Datasets service.DatasetService
	Evals    service.EvaluationService
	Registry *profile.Registry
	Config   config.Config
	Logger   *slog.Logger
	Version  string

	// IsInteractive reports whether stdout is a terminal. Nil means no.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "intentgen" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "intentgen",
		Short:         "Synthetic 3GPP intent-based networking dataset generator",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newCategorizeCmd(app),
		newProfilesCmd(app),
		newEvaluateCmd(app),
		newBatchesCmd(app),
		newServeCmd(app),
	)

	return root
}

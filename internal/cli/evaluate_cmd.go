package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aadhamashraf/intentgen/internal/cli/formatter"
	"github.com/aadhamashraf/intentgen/internal/evaluation"
	"github.com/aadhamashraf/intentgen/internal/service"
)

func newEvaluateCmd(app *App) *cobra.Command {
	var (
		opts     service.EvaluateOptions
		asJSON   bool
		markdown string
	)

	cmd := &cobra.Command{
		Use:   "evaluate FILE",
		Short: "Report diversity, balance and quality statistics for a dataset",
		Long: `Reads a JSON, JSONL or research dataset (or a .txt file with one
description per line) and reports lexical diversity, duplicates, label
balance and vague wording. With --llm a random sample is also reviewed by
the configured Ollama model.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var stop func()
			if opts.UseLLM && app.interactive() && !asJSON {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Reviewing sample with "+app.Config.LLM.Model)
			}
			report, err := app.Evals.EvaluateFile(cmd.Context(), args[0], opts)
			if stop != nil {
				stop()
			}
			if errors.Is(err, service.ErrJudgeDisabled) {
				return fmt.Errorf("%w (set INTENTGEN_LLM_ENABLED=true)", err)
			}
			if err != nil {
				return err
			}

			if markdown != "" {
				if err := writeMarkdown(markdown, report); err != nil {
					return err
				}
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.UseLLM, "llm", false, "review a sample with the LLM judge")
	cmd.Flags().IntVar(&opts.Sample, "sample", 0, "records to review (default from config)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for picking the review sample")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&markdown, "markdown", "", "also write a markdown analysis to this path")
	return cmd
}

func writeMarkdown(path string, report *evaluation.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating markdown report: %w", err)
	}
	if err := evaluation.WriteMarkdown(f, *report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aadhamashraf/intentgen/internal/cli/formatter"
	"github.com/aadhamashraf/intentgen/internal/export"
	"github.com/aadhamashraf/intentgen/internal/generation"
	"github.com/aadhamashraf/intentgen/internal/service"
)

// stdoutPath makes generate stream the dataset to stdout.
const stdoutPath = "-"

var errCancelled = errors.New("generation cancelled")

type generateFlags struct {
	count       int
	seed        uint64
	format      string
	output      string
	kind        string
	interactive bool
	quiet       bool
	preview     int
	augment     augmentFlags
}

func newGenerateCmd(app *App) *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dataset of intent records",
		Example: `  intentgen generate -n 500 --format csv
  intentgen generate --kind feasibility_check --seed 7 -o - --format jsonl
  intentgen generate -n 1000 --augment-typo 0.02 --augment-out-of-scope 0.05`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := generation.BatchRequest{Format: f.format, Kind: f.kind}
			if cmd.Flags().Changed("count") {
				req.Count = &f.count
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = &f.seed
			}

			if f.interactive {
				if !app.interactive() {
					return errors.New("--interactive needs a terminal")
				}
				fields := newGenerateFields(app.Config, req)
				if err := generateForm(fields).RunWithContext(cmd.Context()); err != nil {
					return err
				}
				var err error
				if req, err = fields.request(); err != nil {
					return err
				}
			}
			req.Augment = f.augment.apply(cmd.Flags(), app.Config.Augment)
			return runGenerate(cmd.Context(), cmd, app, req, f)
		},
	}

	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "number of records (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().StringVar(&f.format, "format", "", "json, jsonl, csv, research or sqlite (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", `output path, "-" for stdout (default under the output dir)`)
	cmd.Flags().StringVar(&f.kind, "kind", "", "restrict to one intent type, e.g. deployment")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "fill the options in a form")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "print only the output path")
	cmd.Flags().IntVar(&f.preview, "preview", 5, "records to preview after the summary")
	f.augment.register(cmd.Flags())

	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, app *App, req generation.BatchRequest, f generateFlags) error {
	out := cmd.OutOrStdout()
	info := out
	if f.output == stdoutPath {
		info = cmd.ErrOrStderr()
	}

	start := time.Now()
	var (
		res *service.GenerateResult
		err error
	)
	if !f.quiet && app.interactive() {
		res, err = generateWithProgress(ctx, app, req, info)
	} else {
		res, err = app.Datasets.Generate(ctx, req, nil)
	}
	if err != nil {
		return err
	}

	path := f.output
	switch path {
	case stdoutPath:
		if err := app.Datasets.ExportTo(ctx, res, out); err != nil {
			return err
		}
	case "":
		path = defaultOutputPath(app, res)
		fallthrough
	default:
		if err := app.Datasets.Export(ctx, res, path); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	if f.quiet {
		if path != stdoutPath {
			fmt.Fprintln(out, path)
		}
		return nil
	}
	fmt.Fprintln(info, formatter.FormatBatchSummary(formatter.BatchSummary{
		Batch:        res.Batch,
		Records:      res.Records,
		Format:       res.Plan.Format,
		Output:       path,
		Elapsed:      elapsed,
		Augmentation: res.Augmentation,
	}))
	if f.preview > 0 {
		fmt.Fprintln(info)
		fmt.Fprint(info, formatter.FormatRecordPreview(res.Records, f.preview))
	}
	return nil
}

func defaultOutputPath(app *App, res *service.GenerateResult) string {
	format := export.Format(res.Plan.Format)
	if format == export.FormatSQLite {
		return app.Config.DBPath
	}
	stamp := res.Batch.CreatedAt.Format("20060102_150405")
	return filepath.Join(app.Config.OutputDir, export.DefaultFilename(format, stamp))
}

// generateWithProgress runs the batch behind a bubbletea progress view.
func generateWithProgress(ctx context.Context, app *App, req generation.BatchRequest, w io.Writer) (*service.GenerateResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(), tea.WithOutput(w), tea.WithContext(ctx))
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		res, err := app.Datasets.Generate(ctx, req, func(done, total int) {
			p.Send(progressMsg{done: done, total: total})
		})
		p.Send(generateDoneMsg{result: res, err: err})
	}()

	// Generation checks ctx between records, so cancelling here stops the
	// batch before we return.
	final, err := p.Run()
	cancel()
	<-stopped
	if err != nil {
		return nil, err
	}
	m := final.(progressModel)
	if m.cancelled {
		return nil, errCancelled
	}
	return m.result, m.err
}

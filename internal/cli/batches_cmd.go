package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aadhamashraf/intentgen/internal/cli/formatter"
	"github.com/aadhamashraf/intentgen/internal/db"
	"github.com/aadhamashraf/intentgen/internal/repository"
)

func newBatchesCmd(app *App) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "batches",
		Short: "List the batches stored by --format sqlite",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.OpenDB(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()

			ctx := cmd.Context()
			batches, err := repository.NewSQLiteBatchRepo(database).List(ctx)
			if err != nil {
				return err
			}
			if len(batches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No batches stored.")
				return nil
			}

			records := repository.NewSQLiteRecordRepo(database)
			rows := make([][]string, 0, len(batches))
			for _, b := range batches {
				kinds, err := records.CountByKind(ctx, b.ID)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					formatter.Dim(formatter.Truncate(b.ID, 8)),
					b.CreatedAt.Local().Format("2006-01-02 15:04"),
					strconv.Itoa(b.RecordCount),
					strconv.Itoa(len(kinds)),
					strconv.FormatUint(b.Seed, 10),
					b.SessionID,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "CREATED", "RECORDS", "TYPES", "SEED", "SESSION"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", app.Config.DBPath, "SQLite dataset store")
	return cmd
}

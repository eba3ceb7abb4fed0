package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aadhamashraf/intentgen/internal/cli/formatter"
)

func newProfilesCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Show the domain profiles records are generated from",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := app.Registry.Profiles()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(profiles)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfiles(profiles))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the profiles as JSON")
	return cmd
}

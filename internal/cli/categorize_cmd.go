package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aadhamashraf/intentgen/internal/cli/formatter"
	"github.com/aadhamashraf/intentgen/internal/profile"
)

func newCategorizeCmd(app *App) *cobra.Command {
	axis := newEnumValue(string(profile.AxisCategory), string(profile.AxisCategory), string(profile.AxisContext))

	cmd := &cobra.Command{
		Use:   "categorize RAW",
		Short: "Map a free-form slice or location name onto its canonical value",
		Example: `  intentgen categorize URLLC_Autonomous_Vehicles
  intentgen categorize Factory_Floor --axis context`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := profile.Axis(axis.String())
			raw := args[0]
			canonical := profile.Categorize(raw, a)

			var res profile.Resolved
			if a == profile.AxisCategory {
				res = app.Registry.Resolve(raw, "")
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCategorization(raw, a, canonical, res))
			return nil
		},
	}

	cmd.Flags().Var(axis, "axis", "category or context")
	return cmd
}

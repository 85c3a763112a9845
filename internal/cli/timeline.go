package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the decade and timeframe aggregates as JSON",
		Args:  cobra.NoArgs,
		RunE:  runTimeline,
	}
	cmd.Flags().Int("birth-year", 0, "Birth year for memories stored without a year")

	RootCmd.AddCommand(cmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	tl, err := a.vault.Timeline(cmd.Context(), birthYearFlag(cmd, a.cfg))
	if err != nil {
		return err
	}
	return printJSON(tl)
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "infer-year [text]",
		Short: "Infer the year a memory took place",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInferYear,
	}
	cmd.Flags().Int("birth-year", 0, "Birth year (default: $USER_BIRTH_YEAR or config)")
	cmd.Flags().StringP("model", "m", "", "Model to use (default: config year_model)")

	RootCmd.AddCommand(cmd)
}

func runInferYear(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	modelID, _ := cmd.Flags().GetString("model")
	res := a.vault.InferYear(cmd.Context(), strings.Join(args, " "), birthYearFlag(cmd, a.cfg), modelID)
	return printJSON(map[string]any{"year": res.Ptr(), "source": res.Source})
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify memory text into a theme",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runClassify,
	}
	cmd.Flags().StringP("model", "m", "", "Model to use (default: config model)")

	RootCmd.AddCommand(cmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	modelID, _ := cmd.Flags().GetString("model")
	return printJSON(a.vault.ClassifyTheme(cmd.Context(), strings.Join(args, " "), modelID))
}

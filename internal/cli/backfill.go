package cli

import (
	"github.com/spf13/cobra"

	"github.com/agenthands/memoryvault/internal/core"
)

func init() {
	cmd := &cobra.Command{
		Use:   "backfill-years",
		Short: "Infer a year for every memory stored without one",
		Long: "Walks the stored memories one at a time, resolving missing years with the text " +
			"rules and then the LLM, and saves the result once at the end.",
		Args: cobra.NoArgs,
		RunE: runBackfill,
	}
	cmd.Flags().Int("birth-year", 0, "Birth year (default: $USER_BIRTH_YEAR or config)")
	cmd.Flags().Duration("delay", 0, "Pause between LLM calls (default: config, 500ms)")
	cmd.Flags().Bool("llm-only", false, "Skip the text rules and ask the LLM for every memory")
	cmd.Flags().StringP("model", "m", "", "Model for year inference (default: config year_model)")

	RootCmd.AddCommand(cmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	delay := a.cfg.Backfill.Delay.Std()
	if cmd.Flags().Changed("delay") {
		delay, _ = cmd.Flags().GetDuration("delay")
	}
	llmOnly := a.cfg.Backfill.LLMOnly
	if cmd.Flags().Changed("llm-only") {
		llmOnly, _ = cmd.Flags().GetBool("llm-only")
	}
	modelID, _ := cmd.Flags().GetString("model")

	birthYear := birthYearFlag(cmd, a.cfg)
	a.logger.Info("starting year backfill", "birth_year", birthYear, "delay", delay, "llm_only", llmOnly)

	report, err := a.vault.BackfillYears(cmd.Context(), core.BackfillOptions{
		BirthYear: birthYear,
		Model:     modelID,
		Delay:     delay,
		LLMOnly:   llmOnly,
	})
	if err != nil {
		return err
	}
	return printJSON(report)
}

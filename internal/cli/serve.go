package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agenthands/memoryvault/internal/core"
	"github.com/agenthands/memoryvault/internal/jobs"
	"github.com/agenthands/memoryvault/internal/server"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides config)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if spec := a.cfg.Backfill.Schedule; spec != "" {
		sched := jobs.NewScheduler(a.logger)
		err := sched.Register(&jobs.BackfillJob{
			Vault: a.vault,
			Spec:  spec,
			Options: core.BackfillOptions{
				BirthYear: a.cfg.Backfill.BirthYear,
				Delay:     a.cfg.Backfill.Delay.Std(),
				LLMOnly:   a.cfg.Backfill.LLMOnly,
			},
			Logger: a.logger,
		})
		if err != nil {
			return err
		}
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	}

	port := a.cfg.Server.Port
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}

	srv := server.NewServer(a.vault, a.cfg, a.logger)
	return srv.Run(ctx, ":"+port)
}

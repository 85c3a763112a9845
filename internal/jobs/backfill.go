package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/agenthands/memoryvault/internal/core"
)

// Backfiller is the part of the vault the backfill job needs.
type Backfiller interface {
	BackfillYears(ctx context.Context, opts core.BackfillOptions) (core.BackfillReport, error)
}

// BackfillJob fills in missing years on a schedule.
type BackfillJob struct {
	Vault   Backfiller
	Spec    string
	Options core.BackfillOptions
	Logger  *slog.Logger
}

func (j *BackfillJob) Name() string     { return "backfill-years" }
func (j *BackfillJob) Schedule() string { return j.Spec }

func (j *BackfillJob) Run(ctx context.Context) error {
	report, err := j.Vault.BackfillYears(ctx, j.Options)
	if errors.Is(err, core.ErrBackfillRunning) {
		if j.Logger != nil {
			j.Logger.Info("backfill already running, skipping scheduled run")
		}
		return nil
	}
	if err != nil {
		return err
	}
	if j.Logger != nil && report.Updated > 0 {
		j.Logger.Info("scheduled backfill updated memories", "updated", report.Updated, "failed", report.Failed)
	}
	return nil
}

package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/agenthands/memoryvault/internal/core/model"
	"github.com/agenthands/memoryvault/internal/core/years"
)

// DefaultBackfillDelay spaces LLM calls during a backfill.
const DefaultBackfillDelay = 500 * time.Millisecond

type BackfillOptions struct {
	BirthYear int
	Model     string
	// Delay is the minimum gap between LLM calls. Zero means
	// DefaultBackfillDelay, a negative value disables pacing.
	Delay time.Duration
	// LLMOnly skips the text rules and asks the model for every memory.
	LLMOnly bool
}

type BackfillReport struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	// Skipped memories already had a year, or were given one while the
	// backfill ran.
	Skipped int `json:"skipped"`
	// Failed memories got no year from the rules or the model.
	Failed  int `json:"failed"`
	ByRules int `json:"byRules"`
	ByLLM   int `json:"byLlm"`
}

// BackfillYears resolves a year for every memory stored without one.
// Memories are processed one at a time and LLM calls are paced by
// opts.Delay. Results are saved in one write at the end, also when the
// context is cancelled part way. Before saving, each memory is read again:
// memories deleted or given a year during the run are left alone, and only
// the year of the current record changes. Only one backfill runs at a time;
// a second call returns ErrBackfillRunning.
func (v *Vault) BackfillYears(ctx context.Context, opts BackfillOptions) (BackfillReport, error) {
	if !v.backfillMu.TryLock() {
		return BackfillReport{}, ErrBackfillRunning
	}
	defer v.backfillMu.Unlock()

	memories, err := v.Store.List(ctx)
	if err != nil {
		return BackfillReport{}, err
	}

	delay := opts.Delay
	if delay == 0 {
		delay = DefaultBackfillDelay
	}
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	modelID := opts.Model
	if modelID == "" {
		modelID = v.YearModel
	}

	report := BackfillReport{Total: len(memories)}
	var found []inferredYear
	var runErr error

	for i, m := range memories {
		if m.HasYear() {
			report.Skipped++
			continue
		}

		log := v.Logger.With("memory", m.ID, "progress", fmt.Sprintf("%d/%d", i+1, len(memories)))

		res := years.Result{Source: years.SourceNone}
		if !opts.LLMOnly {
			if y, ok := years.Extract(m.Text, opts.BirthYear); ok {
				res = years.Result{Year: y, Source: years.SourceRules}
			}
		}
		if !res.OK() {
			if err := limiter.Wait(ctx); err != nil {
				runErr = err
				break
			}
			if y, ok := v.Resolver.Inferrer.Infer(ctx, m.Text, opts.BirthYear, modelID); ok {
				res = years.Result{Year: y, Source: years.SourceLLM}
			}
		}

		if !res.OK() {
			report.Failed++
			log.Info("could not infer year")
			continue
		}
		found = append(found, inferredYear{id: m.ID, result: res})
		log.Info("inferred year", "year", res.Year, "source", res.Source)
	}

	if err := v.saveYears(context.WithoutCancel(ctx), found, &report); err != nil {
		return report, err
	}
	v.Logger.Info("year backfill complete",
		"total", report.Total, "updated", report.Updated, "skipped", report.Skipped, "failed", report.Failed)
	return report, runErr
}

type inferredYear struct {
	id     string
	result years.Result
}

// saveYears applies the inferred years to the current records in one write.
func (v *Vault) saveYears(ctx context.Context, found []inferredYear, report *BackfillReport) error {
	if len(found) == 0 {
		return nil
	}

	v.writeMu.Lock()
	defer v.writeMu.Unlock()

	updated := make([]model.Memory, 0, len(found))
	for _, f := range found {
		m, err := v.Store.Get(ctx, f.id)
		if errors.Is(err, ErrNotFound) {
			v.Logger.Info("memory deleted during backfill", "memory", f.id)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to reload memory %s: %w", f.id, err)
		}
		if m.HasYear() {
			report.Skipped++
			continue
		}

		m.Year = f.result.Ptr()
		updated = append(updated, m)
		report.Updated++
		if f.result.Source == years.SourceRules {
			report.ByRules++
		} else {
			report.ByLLM++
		}
	}

	if len(updated) == 0 {
		return nil
	}
	if err := v.Store.PutAll(ctx, updated); err != nil {
		return fmt.Errorf("failed to save backfilled years: %w", err)
	}
	return nil
}

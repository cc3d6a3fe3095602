package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"sales-insights-go/internal/insights"
	"sales-insights-go/internal/types"
)

// nightlySchedule recomputes analytics every night at 02:00 UTC.
const nightlySchedule = "0 2 * * *"

// Store is the persistence surface the recomputer needs.
type Store interface {
	ListCallIDs(ctx context.Context) ([]string, error)
	GetCall(ctx context.Context, callID string) (*types.Call, error)
	UpdateCallAnalytics(ctx context.Context, callID string, talkRatio, sentiment float64, embedding string) error
}

// Recomputer rebuilds every call's derived analytics wholesale. Each call is
// processed independently: one failure is logged and skipped, never aborting
// the batch.
type Recomputer struct {
	store Store
	proc  *insights.Processor
	log   *logrus.Entry
}

func NewRecomputer(store Store, proc *insights.Processor, log *logrus.Entry) *Recomputer {
	return &Recomputer{store: store, proc: proc, log: log}
}

// Run recomputes analytics for every stored call.
func (r *Recomputer) Run(ctx context.Context) (processed, failed int, err error) {
	ids, err := r.store.ListCallIDs(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list calls for recompute: %w", err)
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return processed, failed, err
		}
		if err := r.recomputeOne(ctx, id); err != nil {
			failed++
			r.log.WithField("call_id", id).WithField("error", err.Error()).Warn("recompute failed for call")
			continue
		}
		processed++
	}
	r.log.WithFields(logrus.Fields{"processed": processed, "failed": failed}).Info("analytics recompute finished")
	return processed, failed, nil
}

func (r *Recomputer) recomputeOne(ctx context.Context, callID string) error {
	call, err := r.store.GetCall(ctx, callID)
	if err != nil {
		return err
	}
	talkRatio, sentiment, embedding, err := r.proc.Process(call.Transcript)
	if err != nil {
		return err
	}
	return r.store.UpdateCallAnalytics(ctx, callID, talkRatio, sentiment, embedding)
}

// Schedule registers the nightly recompute on the given cron runner.
func (r *Recomputer) Schedule(c *cron.Cron) (cron.EntryID, error) {
	return c.AddFunc(nightlySchedule, func() {
		if _, _, err := r.Run(context.Background()); err != nil {
			r.log.WithField("error", err.Error()).Error("scheduled recompute aborted")
		}
	})
}

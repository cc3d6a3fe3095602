package ingest

import (
	"context"

	"github.com/sirupsen/logrus"

	"sales-insights-go/internal/insights"
	"sales-insights-go/internal/types"
)

// Store is the persistence surface the runner needs.
type Store interface {
	CreateCall(ctx context.Context, call *types.Call) error
}

// Runner derives analytics for incoming calls and persists them. Each record
// is processed independently; a failing record is logged and skipped.
type Runner struct {
	store Store
	proc  *insights.Processor
	log   *logrus.Entry
}

func NewRunner(store Store, proc *insights.Processor, log *logrus.Entry) *Runner {
	return &Runner{store: store, proc: proc, log: log}
}

// IngestRecords processes and stores a batch, returning the stored count.
func (r *Runner) IngestRecords(ctx context.Context, records []types.CallCreate) int {
	stored := 0
	for _, rec := range records {
		if err := r.ingestOne(ctx, rec); err != nil {
			r.log.WithField("call_id", rec.CallID).WithField("error", err.Error()).Warn("skipping call")
			continue
		}
		stored++
	}
	r.log.WithFields(logrus.Fields{"stored": stored, "total": len(records)}).Info("ingestion finished")
	return stored
}

// IngestSynthetic generates and stores n synthetic calls.
func (r *Runner) IngestSynthetic(ctx context.Context, gen *Generator, n int) int {
	records := make([]types.CallCreate, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, gen.Call())
	}
	return r.IngestRecords(ctx, records)
}

func (r *Runner) ingestOne(ctx context.Context, rec types.CallCreate) error {
	talkRatio, sentiment, embedding, err := r.proc.Process(rec.Transcript)
	if err != nil {
		return err
	}
	call := &types.Call{
		CallID:                 rec.CallID,
		AgentID:                rec.AgentID,
		CustomerID:             rec.CustomerID,
		Language:               rec.Language,
		StartTime:              rec.StartTime,
		DurationSeconds:        rec.DurationSeconds,
		Transcript:             rec.Transcript,
		AgentTalkRatio:         &talkRatio,
		CustomerSentimentScore: &sentiment,
		Embedding:              &embedding,
	}
	return r.store.CreateCall(ctx, call)
}

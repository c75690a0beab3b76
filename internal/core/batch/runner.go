// Package batch runs many documents through a processor one after another. Each document
// is isolated: its failure, timeout or panic becomes its own outcome and the run goes on.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/fuel-docs/constants"
	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/core"
)

// Processor is the per-document step; *core.Processor satisfies it.
type Processor interface {
	Process(ctx context.Context, doc core.Document) (core.Result, error)
}

// Outcome is the result of one document.
type Outcome struct {
	ID       string
	Document core.Document
	Status   constants.OutcomeStatus
	Result   core.Result
	Err      error
	Duration time.Duration
}

type Runner struct {
	proc    Processor
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*Runner)

// WithDocumentTimeout bounds the wall-clock time of each document. Zero means no bound.
func WithDocumentTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewRunner(proc Processor, opts ...Option) *Runner {
	r := &Runner{proc: proc, logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run processes docs in order and returns one outcome per document, in the same order.
// Once ctx is done the remaining documents are reported as failed without being read.
func (r *Runner) Run(ctx context.Context, docs []core.Document) []Outcome {
	runID := uuid.NewString()
	start := time.Now()
	r.logger.Info("batch.run.start", "run_id", runID, "documents", len(docs), "timeout", r.timeout)

	out := make([]Outcome, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			out = append(out, Outcome{ID: uuid.NewString(), Document: doc, Status: constants.OutcomeFailed, Err: err})
			continue
		}
		out = append(out, r.runOne(ctx, doc))
	}

	s := Summarize(out)
	r.logger.Info("batch.run.done",
		"run_id", runID,
		"ok", s[constants.OutcomeOK],
		"no_data", s[constants.OutcomeNoData],
		"no_record", s[constants.OutcomeNoRecord],
		"timeout", s[constants.OutcomeTimeout],
		"failed", s[constants.OutcomeFailed],
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out
}

type processed struct {
	res core.Result
	err error
}

func (r *Runner) runOne(parent context.Context, doc core.Document) Outcome {
	id := uuid.NewString()
	ctx := common.WithDocumentID(parent, id)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	done := make(chan processed, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- processed{err: fmt.Errorf("%w: panic: %v", common.ErrInternal, p)}
			}
		}()
		res, err := r.proc.Process(ctx, doc)
		done <- processed{res: res, err: err}
	}()

	var p processed
	select {
	case p = <-done:
	case <-ctx.Done():
		select {
		case p = <-done:
		default:
			// the abandoned call finishes in the background; its result is discarded
			p = processed{err: ctx.Err()}
		}
	}

	o := Outcome{ID: id, Document: doc, Result: p.res, Err: p.err, Duration: time.Since(start)}
	o.Status = Classify(p.err)
	if p.err != nil {
		r.logger.Warn("batch.document.failed", "doc_id", id, "path", doc.Path, "kind", string(doc.Kind),
			"status", string(o.Status), "error", p.err)
	} else {
		r.logger.Debug("batch.document.ok", "doc_id", id, "path", doc.Path, "elapsed_ms", o.Duration.Milliseconds())
	}
	return o
}

// Classify maps a processing error onto an outcome status.
func Classify(err error) constants.OutcomeStatus {
	switch {
	case err == nil:
		return constants.OutcomeOK
	case errors.Is(err, context.DeadlineExceeded):
		return constants.OutcomeTimeout
	case errors.Is(err, common.ErrNoData):
		return constants.OutcomeNoData
	case errors.Is(err, common.ErrNoRecord):
		return constants.OutcomeNoRecord
	default:
		return constants.OutcomeFailed
	}
}

// Summarize counts outcomes per status.
func Summarize(outcomes []Outcome) map[constants.OutcomeStatus]int {
	s := make(map[constants.OutcomeStatus]int, 5)
	for _, o := range outcomes {
		s[o.Status]++
	}
	return s
}

package insight

import (
	"context"
	"log"
	"time"

	"github.com/radhe-ai/ravi/internal/activity"
	"github.com/radhe-ai/ravi/internal/observability"
)

// Requester turns activity logs into a short safety summary. The strategy
// (demo or remote) is fixed when the Requester is built.
type Requester struct {
	gen     Generator
	timeout time.Duration
}

// New returns a Requester backed by gen. A nil gen selects demo mode.
// timeout bounds each remote call; zero means no deadline beyond ctx.
func New(gen Generator, timeout time.Duration) *Requester {
	return &Requester{gen: gen, timeout: timeout}
}

// DemoMode reports whether requests are answered without a remote call.
func (r *Requester) DemoMode() bool {
	return r.gen == nil
}

// Request returns an insight for logs. It never fails: demo mode yields
// DemoMessage, an empty completion NoInsightMessage, and any remote error
// is logged and replaced by FallbackMessage. Each call makes at most one
// remote request.
func (r *Requester) Request(ctx context.Context, logs []activity.Record) string {
	if r.gen == nil {
		observability.RecordInsight(observability.OutcomeDemo)
		return DemoMessage
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := r.gen.Generate(ctx, BuildPrompt(logs))
	observability.ObserveInsightLatency(time.Since(start))

	if err != nil {
		log.Printf("warning: insight request failed: %v", err)
		observability.RecordInsight(observability.OutcomeFailure)
		return FallbackMessage
	}
	if text == "" {
		observability.RecordInsight(observability.OutcomeEmpty)
		return NoInsightMessage
	}

	observability.RecordInsight(observability.OutcomeSuccess)
	return text
}

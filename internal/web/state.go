package web

import (
	"sync"

	"github.com/radhe-ai/ravi/internal/activity"
)

// DashboardState is the UI state the templates render from.
type DashboardState struct {
	Page     string
	View     activity.View
	Thinking bool
	Insight  string
	DemoMode bool
}

// Board holds the latest insight shown on the dashboard. Requests are
// numbered when they start; a result older than the one already shown is
// dropped, so overlapping requests cannot roll the panel back.
type Board struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
	insight string
}

// Begin registers a new in-flight request and returns its sequence number.
func (b *Board) Begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.issued++
	return b.issued
}

// Resolve stores text for request seq. It reports false when a newer
// request has already been applied and text was discarded.
func (b *Board) Resolve(seq uint64, text string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if seq <= b.applied {
		return false
	}
	b.applied = seq
	b.insight = text
	return true
}

// Snapshot returns the shown insight and whether a newer one is pending.
func (b *Board) Snapshot() (insight string, thinking bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insight, b.applied < b.issued
}

package service

import (
	"sync/atomic"
	"time"

	"github.com/mindforge-ai/noesis/internal/domain"
)

// confidence sums are accumulated in integer millis so the hot path stays a
// plain atomic add.
const confidenceScale = 1000

type modeCounters struct {
	calls           atomic.Int64
	conclusions     atomic.Int64
	confidenceMilli atomic.Int64
	degraded        atomic.Int64
}

// Metrics is the cross-cutting performance accumulator updated by every
// engine call. All writes are atomic read-modify-writes; reasoning calls on
// any number of goroutines never lose updates.
type Metrics struct {
	startedAt time.Time
	modes     map[domain.ReasoningMode]*modeCounters
	total     atomic.Int64
}

func NewMetrics() *Metrics {
	modes := make(map[domain.ReasoningMode]*modeCounters)
	for _, m := range []domain.ReasoningMode{
		domain.ModeClassical, domain.ModeModal, domain.ModeProbabilistic,
		domain.ModeQuantum, domain.ModeDecision, domain.ModeCrossDomain,
	} {
		modes[m] = &modeCounters{}
	}
	return &Metrics{startedAt: time.Now(), modes: modes}
}

// Record counts one finished engine call. The mode map is built once at
// construction and never written afterward, so lookups need no lock.
func (m *Metrics) Record(mode domain.ReasoningMode, conclusions int, confidence float64, degraded bool) {
	c, ok := m.modes[mode]
	if !ok {
		return
	}
	c.calls.Add(1)
	c.conclusions.Add(int64(conclusions))
	c.confidenceMilli.Add(int64(domain.Clamp01(confidence) * confidenceScale))
	if degraded {
		c.degraded.Add(1)
	}
	m.total.Add(1)
}

// RecordResult is the common path for engines returning a ReasoningResult.
func (m *Metrics) RecordResult(r domain.ReasoningResult) {
	m.Record(r.Mode, len(r.Conclusions), r.Confidence, len(r.Evidence) == 0 && len(r.Conclusions) == 0)
}

// ModeStats is the read-only snapshot of one mode's counters.
type ModeStats struct {
	Calls          int64   `json:"calls"`
	Conclusions    int64   `json:"conclusions"`
	Degraded       int64   `json:"degraded"`
	MeanConfidence float64 `json:"mean_confidence"`
}

// MetricsSnapshot is the read-only view returned to callers.
type MetricsSnapshot struct {
	StartedAt     time.Time            `json:"started_at"`
	UptimeSeconds float64              `json:"uptime_seconds"`
	TotalCalls    int64                `json:"total_calls"`
	Modes         map[string]ModeStats `json:"modes"`
}

// Snapshot copies the counters. Individual counters are read atomically;
// the snapshot as a whole is not a consistent cut, which is fine for
// monitoring counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		StartedAt:     m.startedAt,
		UptimeSeconds: time.Since(m.startedAt).Seconds(),
		TotalCalls:    m.total.Load(),
		Modes:         make(map[string]ModeStats, len(m.modes)),
	}
	for mode, c := range m.modes {
		calls := c.calls.Load()
		stats := ModeStats{
			Calls:       calls,
			Conclusions: c.conclusions.Load(),
			Degraded:    c.degraded.Load(),
		}
		if calls > 0 {
			stats.MeanConfidence = float64(c.confidenceMilli.Load()) / confidenceScale / float64(calls)
		}
		snap.Modes[string(mode)] = stats
	}
	return snap
}

package ivaltauth

import (
	"log/slog"
	"time"

	"github.com/vksharma7664/ivaltauth/assertion"
	"github.com/vksharma7664/ivaltauth/credstore"
)

// Engine drives the push-verification authentication and enrollment
// flows. It holds no per-attempt state; everything an in-flight attempt
// needs lives in the caller's session notes, so one engine serves any
// number of concurrent attempts and survives restarts between polls.
type Engine struct {
	config    Config
	verifier  Verifier
	creds     credstore.Store
	assertion *assertion.Manager
	audit     *auditDispatcher
	metrics   *Metrics
	logger    *slog.Logger
}

// Close flushes and stops the audit dispatcher. The engine must not be
// used after Close.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were dropped because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all engine metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil {
		return
	}
	e.metrics.Observe(id, d)
}

func (e *Engine) ready() bool {
	return e != nil && e.verifier != nil && e.creds != nil
}

func (e *Engine) warn(msg string, args ...any) {
	if e == nil || e.logger == nil {
		return
	}
	e.logger.Warn(msg, args...)
}

func (e *Engine) debug(msg string, args ...any) {
	if e == nil || e.logger == nil {
		return
	}
	e.logger.Debug(msg, args...)
}

package ivaltauth

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one engine counter or histogram.
type MetricID uint16

const (
	// MetricAuthChallengeSent counts push challenges submitted for
	// authentication.
	MetricAuthChallengeSent MetricID = iota
	// MetricAuthApproved counts approved authentications.
	MetricAuthApproved
	// MetricAuthRejected counts pushes denied on the device.
	MetricAuthRejected
	// MetricAuthPolicyDenied counts timezone and geofence denials.
	MetricAuthPolicyDenied
	// MetricAuthTimeout counts challenges that exhausted the poll
	// budget or wall-clock ceiling.
	MetricAuthTimeout
	// MetricAuthCancelled counts user-cancelled attempts.
	MetricAuthCancelled
	// MetricAuthSetupRequired counts attempts by users with no
	// enrolled credential.
	MetricAuthSetupRequired
	// MetricAuthError counts challenge submissions and status polls
	// that failed outside user or policy control.
	MetricAuthError
	// MetricEnrollStarted counts verification pushes submitted during
	// enrollment.
	MetricEnrollStarted
	// MetricEnrollPersisted counts credentials stored after a verified
	// number.
	MetricEnrollPersisted
	// MetricEnrollRejected counts verification pushes denied on the
	// device.
	MetricEnrollRejected
	// MetricEnrollPolicyDenied counts timezone and geofence denials
	// during enrollment.
	MetricEnrollPolicyDenied
	// MetricEnrollTimeout counts verifications that hit the wall-clock
	// ceiling.
	MetricEnrollTimeout
	// MetricEnrollCancelled counts user-cancelled enrollments.
	MetricEnrollCancelled
	// MetricEnrollInputInvalid counts capture submissions with missing
	// fields.
	MetricEnrollInputInvalid
	// MetricEnrollError counts enrollment failures outside user or
	// policy control.
	MetricEnrollError
	// MetricStatusCheckLatency is the status poll latency histogram.
	MetricStatusCheckLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is the lock-free in-process metric set. All methods are safe
// for concurrent use and cheap enough for the hot path.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all counters and
// histograms, suitable for handing to exporters.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics builds a metric set honoring the given config.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether latency histograms are being recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to a counter. No-op when metrics are disabled.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records one status check duration into the latency histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricStatusCheckLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current value of a single counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and histogram bucket.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricStatusCheckLatency].buckets[i])
		}
		s.Histograms[MetricStatusCheckLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}

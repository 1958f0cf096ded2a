// Package internaldefs carries the shared metric name table consumed by
// every exporter, so Prometheus and OTel renderings stay in lockstep.
package internaldefs

import (
	ivaltauth "github.com/vksharma7664/ivaltauth"
)

// CounterDef maps one engine counter to its exported name.
type CounterDef struct {
	ID   ivaltauth.MetricID
	Name string
	Help string
}

// HistogramDef maps one engine histogram to its exported name.
type HistogramDef struct {
	ID   ivaltauth.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a stable order.
var CounterDefs = []CounterDef{
	{ID: ivaltauth.MetricAuthChallengeSent, Name: "ivaltauth_auth_challenge_sent_total", Help: "Push authentication challenges submitted."},
	{ID: ivaltauth.MetricAuthApproved, Name: "ivaltauth_auth_approved_total", Help: "Approved push authentications."},
	{ID: ivaltauth.MetricAuthRejected, Name: "ivaltauth_auth_rejected_total", Help: "Push authentications denied on the device."},
	{ID: ivaltauth.MetricAuthPolicyDenied, Name: "ivaltauth_auth_policy_denied_total", Help: "Push authentications denied by timezone or geofence policy."},
	{ID: ivaltauth.MetricAuthTimeout, Name: "ivaltauth_auth_timeout_total", Help: "Push authentications that exhausted the poll budget or ceiling."},
	{ID: ivaltauth.MetricAuthCancelled, Name: "ivaltauth_auth_cancelled_total", Help: "Push authentications cancelled by the user."},
	{ID: ivaltauth.MetricAuthSetupRequired, Name: "ivaltauth_auth_setup_required_total", Help: "Authentication attempts by users without an enrolled credential."},
	{ID: ivaltauth.MetricAuthError, Name: "ivaltauth_auth_error_total", Help: "Push authentications that failed outside user or policy control."},
	{ID: ivaltauth.MetricEnrollStarted, Name: "ivaltauth_enroll_started_total", Help: "Enrollment verification challenges submitted."},
	{ID: ivaltauth.MetricEnrollPersisted, Name: "ivaltauth_enroll_persisted_total", Help: "Credentials stored after a verified number."},
	{ID: ivaltauth.MetricEnrollRejected, Name: "ivaltauth_enroll_rejected_total", Help: "Enrollment verifications denied on the device."},
	{ID: ivaltauth.MetricEnrollPolicyDenied, Name: "ivaltauth_enroll_policy_denied_total", Help: "Enrollment verifications denied by timezone or geofence policy."},
	{ID: ivaltauth.MetricEnrollTimeout, Name: "ivaltauth_enroll_timeout_total", Help: "Enrollment verifications that hit the wall-clock ceiling."},
	{ID: ivaltauth.MetricEnrollCancelled, Name: "ivaltauth_enroll_cancelled_total", Help: "Enrollments cancelled by the user."},
	{ID: ivaltauth.MetricEnrollInputInvalid, Name: "ivaltauth_enroll_input_invalid_total", Help: "Enrollment capture submissions with missing fields."},
	{ID: ivaltauth.MetricEnrollError, Name: "ivaltauth_enroll_error_total", Help: "Enrollments that failed outside user or policy control."},
}

// HistogramDefs lists every exported histogram in a stable order.
var HistogramDefs = []HistogramDef{
	{ID: ivaltauth.MetricStatusCheckLatency, Name: "ivaltauth_status_check_latency_seconds", Help: "Remote status check latency histogram."},
}

// HistogramBounds holds the upper bucket bounds in exposition form.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix holds instrument-name-safe forms of the bounds.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to cumulative counts.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}

package ivalt

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Outcome is the classification of one status-check response. It is a pure
// value; nothing in this package persists it.
type Outcome uint8

const (
	// OutcomeApproved means the user confirmed the push on their device.
	OutcomeApproved Outcome = iota
	// OutcomeRejected means the user explicitly declined on-device. The
	// remote protocol never reports this distinctly today, but the state
	// machines handle it so a future API revision slots in without changes.
	OutcomeRejected
	// OutcomePending means the remote verifier has not decided yet.
	OutcomePending
	// OutcomeInvalidTimezone is a policy denial: device timezone mismatch.
	OutcomeInvalidTimezone
	// OutcomeInvalidGeofence is a policy denial: device outside the
	// configured geofence.
	OutcomeInvalidGeofence
	// OutcomeError means the response could not be interpreted at all.
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApproved:
		return "approved"
	case OutcomeRejected:
		return "rejected"
	case OutcomePending:
		return "pending"
	case OutcomeInvalidTimezone:
		return "invalid_timezone"
	case OutcomeInvalidGeofence:
		return "invalid_geofence"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the current polling cycle.
func (o Outcome) Terminal() bool {
	return o != OutcomePending
}

type statusErrorBody struct {
	Error struct {
		Detail string `json:"detail"`
	} `json:"error"`
}

// Classify maps a raw status-check response to an [Outcome]. It is the single
// source of truth for outcome semantics; both the authentication and the
// enrollment state machines must use it identically.
//
// HTTP 200 is always [OutcomeApproved] regardless of body. Any other status
// is interpreted from the body: an error detail naming a timezone or
// geofence mismatch is a policy denial, an unparsable body is
// [OutcomeError], and everything else is [OutcomePending]. The remote
// verifier overloads its failure responses and offers no explicit
// pending/rejected distinction, so a non-specific failure is treated as
// "not yet decided" rather than "declined".
func Classify(statusCode int, body []byte) Outcome {
	if statusCode == http.StatusOK {
		return OutcomeApproved
	}

	var parsed statusErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return OutcomeError
	}

	detail := strings.ToLower(parsed.Error.Detail)
	if strings.Contains(detail, "timezone") {
		return OutcomeInvalidTimezone
	}
	if strings.Contains(detail, "geofence") || strings.Contains(detail, "geofencing") {
		return OutcomeInvalidGeofence
	}

	return OutcomePending
}

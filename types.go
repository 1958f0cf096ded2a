package ivaltauth

import (
	"context"

	"github.com/vksharma7664/ivaltauth/credstore"
	"github.com/vksharma7664/ivaltauth/internal/audit"
	"github.com/vksharma7664/ivaltauth/ivalt"
)

// MobileIdentity is the phone identity a credential binds to.
type MobileIdentity = credstore.MobileIdentity

// Credential is a stored push-verification enrollment.
type Credential = credstore.Credential

// AuditEvent is re-exported so hosts can consume audit sinks without
// importing the internal package path.
type AuditEvent = audit.Event

// AuditSink receives audit events emitted by the engine dispatcher.
type AuditSink = audit.Sink

// Verifier abstracts the remote push-verification service. The engine
// never polls on its own; it calls CheckStatus exactly once per host
// invocation.
type Verifier interface {
	// SubmitChallenge triggers a push to the device registered for the
	// given full mobile number and returns the transaction identifier
	// used for subsequent status checks.
	SubmitChallenge(ctx context.Context, mobile string) (string, error)

	// CheckStatus reports the current outcome of a previously submitted
	// challenge. A Pending outcome means the user has not acted yet.
	CheckStatus(ctx context.Context, transactionID string) (ivalt.Outcome, error)
}

// SessionNotes is the per-attempt key/value state owned by the host flow
// engine. The engine keeps all transaction state here so that every
// invocation is re-entrant.
type SessionNotes interface {
	GetNote(name string) string
	SetNote(name, value string)
	RemoveNote(name string)
}

// ActionCancel is the form action value that aborts an in-flight flow.
const ActionCancel = "cancel"

// AuthStatus is the host-facing disposition of one Authenticate call.
type AuthStatus uint8

const (
	// AuthChallenge means a push is in flight. The host renders the
	// waiting page and invokes Authenticate again on the next poll.
	AuthChallenge AuthStatus = iota

	// AuthApproved means the user approved the push on the device.
	AuthApproved

	// AuthFailed means the attempt ended in a terminal failure. The
	// Reason field carries the category.
	AuthFailed

	// AuthSetupRequired means the user has no enrolled credential and
	// must complete enrollment before authenticating.
	AuthSetupRequired

	// AuthFlowReset means the user cancelled and control returns to the
	// host flow engine.
	AuthFlowReset
)

func (s AuthStatus) String() string {
	switch s {
	case AuthChallenge:
		return "challenge"
	case AuthApproved:
		return "approved"
	case AuthFailed:
		return "failed"
	case AuthSetupRequired:
		return "setup_required"
	case AuthFlowReset:
		return "flow_reset"
	default:
		return "unknown"
	}
}

// FailureReason categorizes a terminal failure or a capture re-display.
// Remote transport failures never surface raw; they land here.
type FailureReason uint8

const (
	FailureNone FailureReason = iota

	// FailureRejected means the user denied the push on the device.
	FailureRejected

	// FailureInvalidTimezone means the device timezone failed the
	// remote policy check.
	FailureInvalidTimezone

	// FailureInvalidGeofence means the device location failed the
	// remote policy check.
	FailureInvalidGeofence

	// FailureTimeout means the poll budget or wall-clock ceiling ran
	// out before a terminal outcome arrived.
	FailureTimeout

	// FailureSendFailed means the challenge could not be submitted.
	FailureSendFailed

	// FailureStatusCheckFailed means a status poll failed at the
	// transport layer.
	FailureStatusCheckFailed

	// FailureMissingInput means a required enrollment form field was
	// empty. EnrollResult.Field names it.
	FailureMissingInput

	// FailureInternal covers everything the engine cannot attribute to
	// the user or the remote policy.
	FailureInternal
)

func (r FailureReason) String() string {
	switch r {
	case FailureNone:
		return "none"
	case FailureRejected:
		return "rejected"
	case FailureInvalidTimezone:
		return "invalid_timezone"
	case FailureInvalidGeofence:
		return "invalid_geofence"
	case FailureTimeout:
		return "timeout"
	case FailureSendFailed:
		return "send_failed"
	case FailureStatusCheckFailed:
		return "status_check_failed"
	case FailureMissingInput:
		return "missing_input"
	case FailureInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// AuthRequest carries one host invocation of the authentication flow.
type AuthRequest struct {
	// UserID identifies the authenticating user in the host realm.
	UserID string

	// Username is carried through to results and audit events.
	Username string

	// Action is the submitted form action. ActionCancel aborts.
	Action string

	// Notes is the per-attempt session note state. Required.
	Notes SessionNotes
}

// AuthResult is the outcome of one Authenticate call.
type AuthResult struct {
	Status AuthStatus

	// Reason is set when Status is AuthFailed.
	Reason FailureReason

	// MaskedMobile is the display form of the target number, set while
	// a challenge is in flight.
	MaskedMobile string

	// PollIntervalMillis is the advisory refresh cadence for the
	// waiting page, set while a challenge is in flight.
	PollIntervalMillis int64

	// Assertion is a signed approval token, set on AuthApproved when
	// assertion issuance is enabled.
	Assertion string
}

// EnrollStatus is the host-facing disposition of one Enroll call.
type EnrollStatus uint8

const (
	// EnrollCapture means the host renders the number capture form.
	// Reason and Field describe why a previous submission bounced.
	EnrollCapture EnrollStatus = iota

	// EnrollChallenge means a verification push is in flight and the
	// host renders the waiting page.
	EnrollChallenge

	// EnrollPersisted means the number was verified and the credential
	// stored.
	EnrollPersisted

	// EnrollSkipped means the user cancelled enrollment.
	EnrollSkipped
)

func (s EnrollStatus) String() string {
	switch s {
	case EnrollCapture:
		return "capture"
	case EnrollChallenge:
		return "challenge"
	case EnrollPersisted:
		return "persisted"
	case EnrollSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Enrollment form field names, echoed back in EnrollResult.Field when a
// required field is missing.
const (
	FieldMobileNumber = "mobileNumber"
	FieldCountryCode  = "countryCode"
)

// EnrollRequest carries one host invocation of the enrollment flow.
// MobileNumber and CountryCode are read only when no verification is in
// flight yet.
type EnrollRequest struct {
	UserID       string
	Username     string
	Action       string
	MobileNumber string
	CountryCode  string
	Notes        SessionNotes
}

// EnrollResult is the outcome of one Enroll call.
type EnrollResult struct {
	Status EnrollStatus

	// Reason is set when Status is EnrollCapture after a failed or
	// rejected verification, or FailureMissingInput on bad form input.
	Reason FailureReason

	// Field names the offending form field for FailureMissingInput.
	Field string

	// MaskedMobile is set while a verification challenge is in flight.
	MaskedMobile string

	// PollIntervalMillis is the advisory refresh cadence for the
	// waiting page, set while a challenge is in flight.
	PollIntervalMillis int64

	// Credential is set on EnrollPersisted.
	Credential *Credential
}

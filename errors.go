package ivaltauth

import (
	"errors"
	"fmt"
)

var (
	// ErrEngineNotReady is returned when an entry point is invoked on an
	// engine that was not assembled through the Builder.
	ErrEngineNotReady = errors.New("engine not ready")

	// ErrNilSessionNotes is returned when a request carries no session
	// note backing. Every flow invocation needs one to be re-entrant.
	ErrNilSessionNotes = errors.New("session notes are nil")

	// ErrMissingUserID is returned when a request does not identify the
	// authenticating user.
	ErrMissingUserID = errors.New("user id is required")

	// ErrTransactionCorrupt is returned when stored transaction notes
	// cannot be parsed back into a transaction.
	ErrTransactionCorrupt = errors.New("transaction state corrupt")

	// ErrCredentialUnavailable wraps credential store failures at the
	// engine boundary.
	ErrCredentialUnavailable = errors.New("credential store unavailable")

	// ErrChallengeSendFailed wraps verifier failures while submitting a
	// push challenge.
	ErrChallengeSendFailed = errors.New("challenge send failed")

	// ErrStatusCheckFailed wraps verifier transport failures while
	// polling for a challenge outcome.
	ErrStatusCheckFailed = errors.New("status check failed")

	// ErrAssertionIssue wraps assertion signing failures after an
	// approved authentication.
	ErrAssertionIssue = errors.New("assertion issue failed")
)

func wrapCredentialStoreError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrCredentialUnavailable, err)
}

func wrapChallengeSendError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrChallengeSendFailed, err)
}

func wrapStatusCheckError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStatusCheckFailed, err)
}

func wrapAssertionError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrAssertionIssue, err)
}

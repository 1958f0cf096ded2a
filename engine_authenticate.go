package ivaltauth

import (
	"context"
	"time"

	"github.com/vksharma7664/ivaltauth/ivalt"
)

// Authenticate runs one step of the push authentication flow. The host
// calls it once per HTTP interaction: the first call submits the
// challenge, every later call performs exactly one status poll. The
// returned status tells the host what to render next.
//
// Remote failures never escape as transport errors; they come back as
// AuthFailed with a FailureReason. The error return is reserved for
// programming mistakes such as a nil note store.
func (e *Engine) Authenticate(ctx context.Context, req AuthRequest) (*AuthResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	if req.Notes == nil {
		return nil, ErrNilSessionNotes
	}
	if req.UserID == "" {
		return nil, ErrMissingUserID
	}

	tx, err := loadAuthTransaction(req.Notes)
	if err != nil {
		clearAuthTransaction(req.Notes)
		e.warn("authentication transaction corrupt", "user_id", req.UserID, "error", err)
		return e.failAuth(ctx, req, FailureInternal), nil
	}

	if req.Action == ActionCancel {
		clearAuthTransaction(req.Notes)
		e.metricInc(MetricAuthCancelled)
		e.emitAudit(ctx, auditEventAuthCancelled, false, req.UserID, req.Username, FailureNone, nil)
		return &AuthResult{Status: AuthFlowReset}, nil
	}

	if tx == nil {
		return e.beginAuthChallenge(ctx, req)
	}
	return e.pollAuthChallenge(ctx, req, tx)
}

func (e *Engine) beginAuthChallenge(ctx context.Context, req AuthRequest) (*AuthResult, error) {
	cred, err := e.creds.FindAny(ctx, req.UserID)
	if err != nil {
		e.warn("credential lookup failed", "user_id", req.UserID, "error", wrapCredentialStoreError(err))
		return e.failAuth(ctx, req, FailureInternal), nil
	}
	if cred == nil {
		e.metricInc(MetricAuthSetupRequired)
		e.emitAudit(ctx, auditEventAuthSetupRequired, false, req.UserID, req.Username, FailureNone, nil)
		return &AuthResult{Status: AuthSetupRequired}, nil
	}

	mobile := cred.Mobile.Full()
	txID, err := e.verifier.SubmitChallenge(ctx, mobile)
	if err != nil {
		e.warn("challenge submit failed", "user_id", req.UserID, "error", wrapChallengeSendError(err))
		return e.failAuth(ctx, req, FailureSendFailed), nil
	}

	storeAuthTransaction(req.Notes, &authTransaction{
		transactionID: txID,
		pollCount:     0,
		startedAt:     time.Now(),
	})

	e.metricInc(MetricAuthChallengeSent)
	masked := MaskMobileNumber(mobile)
	e.emitAudit(ctx, auditEventAuthChallengeSent, true, req.UserID, req.Username, FailureNone, func() map[string]string {
		return map[string]string{"mobile": masked}
	})

	return e.challengeResult(masked), nil
}

func (e *Engine) pollAuthChallenge(ctx context.Context, req AuthRequest, tx *authTransaction) (*AuthResult, error) {
	if ttl := e.config.Auth.ChallengeTTL; ttl > 0 && !tx.startedAt.IsZero() && time.Since(tx.startedAt) > ttl {
		clearAuthTransaction(req.Notes)
		e.metricInc(MetricAuthTimeout)
		e.emitAudit(ctx, auditEventAuthTimeout, false, req.UserID, req.Username, FailureTimeout, nil)
		return &AuthResult{Status: AuthFailed, Reason: FailureTimeout}, nil
	}

	start := time.Now()
	outcome, err := e.verifier.CheckStatus(ctx, tx.transactionID)
	e.metricObserve(MetricStatusCheckLatency, time.Since(start))
	if err != nil {
		clearAuthTransaction(req.Notes)
		e.warn("status check failed", "user_id", req.UserID, "error", wrapStatusCheckError(err))
		return e.failAuth(ctx, req, FailureStatusCheckFailed), nil
	}

	switch outcome {
	case ivalt.OutcomeApproved:
		clearAuthTransaction(req.Notes)
		return e.approveAuth(ctx, req, tx)

	case ivalt.OutcomeRejected:
		clearAuthTransaction(req.Notes)
		return e.failAuth(ctx, req, FailureRejected), nil

	case ivalt.OutcomeInvalidTimezone:
		clearAuthTransaction(req.Notes)
		return e.failAuth(ctx, req, FailureInvalidTimezone), nil

	case ivalt.OutcomeInvalidGeofence:
		clearAuthTransaction(req.Notes)
		return e.failAuth(ctx, req, FailureInvalidGeofence), nil

	case ivalt.OutcomePending:
		tx.pollCount++
		if tx.pollCount >= e.config.Auth.MaxPollAttempts {
			clearAuthTransaction(req.Notes)
			e.metricInc(MetricAuthTimeout)
			e.emitAudit(ctx, auditEventAuthTimeout, false, req.UserID, req.Username, FailureTimeout, nil)
			return &AuthResult{Status: AuthFailed, Reason: FailureTimeout}, nil
		}
		storeAuthTransaction(req.Notes, tx)
		e.debug("challenge still pending", "user_id", req.UserID, "poll_count", tx.pollCount)
		return e.challengeResult(MaskMobileNumber(tx.transactionID)), nil

	default:
		clearAuthTransaction(req.Notes)
		return e.failAuth(ctx, req, FailureInternal), nil
	}
}

func (e *Engine) approveAuth(ctx context.Context, req AuthRequest, tx *authTransaction) (*AuthResult, error) {
	result := &AuthResult{Status: AuthApproved}

	if e.assertion != nil {
		token, err := e.assertion.Issue(req.UserID, MaskMobileNumber(tx.transactionID), time.Now())
		if err != nil {
			// Approval stands; the host just gets no token.
			e.warn("assertion issue failed", "user_id", req.UserID, "error", wrapAssertionError(err))
		} else {
			result.Assertion = token
		}
	}

	e.metricInc(MetricAuthApproved)
	e.emitAudit(ctx, auditEventAuthApproved, true, req.UserID, req.Username, FailureNone, nil)
	return result, nil
}

func (e *Engine) failAuth(ctx context.Context, req AuthRequest, reason FailureReason) *AuthResult {
	switch reason {
	case FailureRejected:
		e.metricInc(MetricAuthRejected)
	case FailureInvalidTimezone, FailureInvalidGeofence:
		e.metricInc(MetricAuthPolicyDenied)
	default:
		e.metricInc(MetricAuthError)
	}

	e.emitAudit(ctx, auditEventAuthFailure, false, req.UserID, req.Username, reason, nil)
	return &AuthResult{Status: AuthFailed, Reason: reason}
}

func (e *Engine) challengeResult(masked string) *AuthResult {
	return &AuthResult{
		Status:             AuthChallenge,
		MaskedMobile:       masked,
		PollIntervalMillis: e.config.API.PollInterval.Milliseconds(),
	}
}

package ivaltauth

import (
	"context"
	"strings"
	"time"

	"github.com/vksharma7664/ivaltauth/ivalt"
)

// Enroll runs one step of the number enrollment flow. With no
// verification in flight it validates the submitted number and sends a
// verification push; on later calls it performs one status poll. A
// verified number replaces any previously stored credential, keeping at
// most one credential per user.
func (e *Engine) Enroll(ctx context.Context, req EnrollRequest) (*EnrollResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	if req.Notes == nil {
		return nil, ErrNilSessionNotes
	}
	if req.UserID == "" {
		return nil, ErrMissingUserID
	}

	if req.Action == ActionCancel {
		clearEnrollTransaction(req.Notes)
		e.metricInc(MetricEnrollCancelled)
		e.emitAudit(ctx, auditEventEnrollCancelled, false, req.UserID, req.Username, FailureNone, nil)
		return &EnrollResult{Status: EnrollSkipped}, nil
	}

	tx, err := loadEnrollTransaction(req.Notes)
	if err != nil {
		clearEnrollTransaction(req.Notes)
		e.warn("enrollment transaction corrupt", "user_id", req.UserID, "error", err)
		return e.failEnroll(ctx, req, FailureInternal, ""), nil
	}

	if tx == nil {
		return e.beginEnrollment(ctx, req)
	}
	return e.pollEnrollment(ctx, req, tx)
}

func (e *Engine) beginEnrollment(ctx context.Context, req EnrollRequest) (*EnrollResult, error) {
	mobileNumber := strings.TrimSpace(req.MobileNumber)
	countryCode := strings.TrimSpace(req.CountryCode)

	if mobileNumber == "" {
		e.metricInc(MetricEnrollInputInvalid)
		return &EnrollResult{
			Status: EnrollCapture,
			Reason: FailureMissingInput,
			Field:  FieldMobileNumber,
		}, nil
	}
	if countryCode == "" {
		e.metricInc(MetricEnrollInputInvalid)
		return &EnrollResult{
			Status: EnrollCapture,
			Reason: FailureMissingInput,
			Field:  FieldCountryCode,
		}, nil
	}

	mobile := MobileIdentity{MobileNumber: mobileNumber, CountryCode: countryCode}
	txID, err := e.verifier.SubmitChallenge(ctx, mobile.Full())
	if err != nil {
		e.warn("verification submit failed", "user_id", req.UserID, "error", wrapChallengeSendError(err))
		return e.failEnroll(ctx, req, FailureSendFailed, ""), nil
	}

	storeEnrollTransaction(req.Notes, &enrollTransaction{
		transactionID: txID,
		startedAt:     time.Now(),
		mobile:        mobile,
	})

	e.metricInc(MetricEnrollStarted)
	masked := MaskMobileNumber(mobile.Full())
	e.emitAudit(ctx, auditEventEnrollStarted, true, req.UserID, req.Username, FailureNone, func() map[string]string {
		return map[string]string{"mobile": masked}
	})

	return e.enrollChallengeResult(masked), nil
}

func (e *Engine) pollEnrollment(ctx context.Context, req EnrollRequest, tx *enrollTransaction) (*EnrollResult, error) {
	if time.Since(tx.startedAt) > e.config.Enrollment.VerificationTTL {
		clearEnrollTransaction(req.Notes)
		e.metricInc(MetricEnrollTimeout)
		e.emitAudit(ctx, auditEventEnrollTimeout, false, req.UserID, req.Username, FailureTimeout, nil)
		return &EnrollResult{Status: EnrollCapture, Reason: FailureTimeout}, nil
	}

	start := time.Now()
	outcome, err := e.verifier.CheckStatus(ctx, tx.transactionID)
	e.metricObserve(MetricStatusCheckLatency, time.Since(start))
	if err != nil {
		clearEnrollTransaction(req.Notes)
		e.warn("verification status check failed", "user_id", req.UserID, "error", wrapStatusCheckError(err))
		return e.failEnroll(ctx, req, FailureStatusCheckFailed, ""), nil
	}

	switch outcome {
	case ivalt.OutcomeApproved:
		return e.persistEnrollment(ctx, req, tx)

	case ivalt.OutcomeRejected:
		clearEnrollTransaction(req.Notes)
		return e.failEnroll(ctx, req, FailureRejected, ""), nil

	case ivalt.OutcomeInvalidTimezone:
		clearEnrollTransaction(req.Notes)
		return e.failEnroll(ctx, req, FailureInvalidTimezone, ""), nil

	case ivalt.OutcomeInvalidGeofence:
		clearEnrollTransaction(req.Notes)
		return e.failEnroll(ctx, req, FailureInvalidGeofence, ""), nil

	default:
		// Pending and anything unrecognized keep the waiting page up
		// until the user acts or the ceiling hits.
		e.debug("verification still pending", "user_id", req.UserID)
		return e.enrollChallengeResult(MaskMobileNumber(tx.mobile.Full())), nil
	}
}

func (e *Engine) persistEnrollment(ctx context.Context, req EnrollRequest, tx *enrollTransaction) (*EnrollResult, error) {
	if err := e.creds.DeleteAll(ctx, req.UserID); err != nil {
		clearEnrollTransaction(req.Notes)
		e.warn("credential replace failed", "user_id", req.UserID, "error", wrapCredentialStoreError(err))
		return e.failEnroll(ctx, req, FailureInternal, ""), nil
	}

	cred, err := e.creds.Create(ctx, req.UserID, tx.mobile, e.config.Enrollment.CredentialLabel)
	if err != nil {
		clearEnrollTransaction(req.Notes)
		e.warn("credential create failed", "user_id", req.UserID, "error", wrapCredentialStoreError(err))
		return e.failEnroll(ctx, req, FailureInternal, ""), nil
	}

	clearEnrollTransaction(req.Notes)
	e.metricInc(MetricEnrollPersisted)
	e.emitAudit(ctx, auditEventEnrollPersisted, true, req.UserID, req.Username, FailureNone, func() map[string]string {
		return map[string]string{"mobile": MaskMobileNumber(tx.mobile.Full())}
	})

	return &EnrollResult{Status: EnrollPersisted, Credential: cred}, nil
}

func (e *Engine) failEnroll(ctx context.Context, req EnrollRequest, reason FailureReason, field string) *EnrollResult {
	switch reason {
	case FailureRejected:
		e.metricInc(MetricEnrollRejected)
	case FailureInvalidTimezone, FailureInvalidGeofence:
		e.metricInc(MetricEnrollPolicyDenied)
	default:
		e.metricInc(MetricEnrollError)
	}

	e.emitAudit(ctx, auditEventEnrollFailure, false, req.UserID, req.Username, reason, nil)
	return &EnrollResult{Status: EnrollCapture, Reason: reason, Field: field}
}

func (e *Engine) enrollChallengeResult(masked string) *EnrollResult {
	return &EnrollResult{
		Status:             EnrollChallenge,
		MaskedMobile:       masked,
		PollIntervalMillis: e.config.API.PollInterval.Milliseconds(),
	}
}

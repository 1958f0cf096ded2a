package ivaltauth

import (
	"context"
	"time"
)

const (
	auditEventAuthChallengeSent = "push_auth_challenge_sent"
	auditEventAuthApproved      = "push_auth_approved"
	auditEventAuthFailure       = "push_auth_failure"
	auditEventAuthTimeout       = "push_auth_timeout"
	auditEventAuthCancelled     = "push_auth_cancelled"
	auditEventAuthSetupRequired = "push_auth_setup_required"
	auditEventEnrollStarted     = "enrollment_challenge_sent"
	auditEventEnrollPersisted   = "enrollment_persisted"
	auditEventEnrollFailure     = "enrollment_failure"
	auditEventEnrollTimeout     = "enrollment_timeout"
	auditEventEnrollCancelled   = "enrollment_cancelled"
)

// AuditErrorCode is the stable failure vocabulary carried on audit
// events.
type AuditErrorCode string

const (
	auditErrRejected         AuditErrorCode = "rejected"
	auditErrInvalidTimezone  AuditErrorCode = "invalid_timezone"
	auditErrInvalidGeofence  AuditErrorCode = "invalid_geofence"
	auditErrTimeout          AuditErrorCode = "timeout"
	auditErrSendFailed       AuditErrorCode = "send_failed"
	auditErrStatusCheck      AuditErrorCode = "status_check_failed"
	auditErrMissingInput     AuditErrorCode = "missing_input"
	auditErrInternal         AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	username string,
	reason FailureReason,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Username:  username,
		Realm:     realmFromContext(ctx),
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditReasonCode(reason); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditReasonCode(reason FailureReason) AuditErrorCode {
	switch reason {
	case FailureNone:
		return ""
	case FailureRejected:
		return auditErrRejected
	case FailureInvalidTimezone:
		return auditErrInvalidTimezone
	case FailureInvalidGeofence:
		return auditErrInvalidGeofence
	case FailureTimeout:
		return auditErrTimeout
	case FailureSendFailed:
		return auditErrSendFailed
	case FailureStatusCheckFailed:
		return auditErrStatusCheck
	case FailureMissingInput:
		return auditErrMissingInput
	default:
		return auditErrInternal
	}
}

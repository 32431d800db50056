package domain

import (
	"context"
	"errors"
	"time"
)

// AuditAction represents a type-safe action identifier for the audit log.
type AuditAction string

// Session Audit Actions
const (
	ActionAssessmentUpdated AuditAction = "ASSESSMENT_UPDATED"
	ActionCodeApplied       AuditAction = "CODE_APPLIED"
	ActionCodeRejected      AuditAction = "CODE_REJECTED"
	ActionSessionReset      AuditAction = "SESSION_RESET"
	ActionReportGenerated   AuditAction = "REPORT_GENERATED"
	ActionFindingSaved      AuditAction = "FINDING_SAVED"
	ActionInfo              AuditAction = "INFO"
)

// Domain Errors
var (
	ErrInvalidAction = errors.New("invalid audit action")
	ErrMissingActor  = errors.New("actor identification is required for auditing")
)

// AuditLog records a change to the shared assessment state.
// Persistence metadata lives in the storage adapter, not here.
type AuditLog struct {
	ID        uint        `json:"id"`
	Actor     string      `json:"actor"`
	Action    AuditAction `json:"action"`
	Target    string      `json:"target"` // share string, finding ref or session key
	Details   string      `json:"details"`
	IPAddress string      `json:"ip_address"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAuditLog is the designated factory for creating valid AuditLog entities.
func NewAuditLog(actor string, action AuditAction, target, details, ip string) (*AuditLog, error) {
	if actor == "" {
		return nil, ErrMissingActor
	}

	if !isValidAction(action) {
		return nil, ErrInvalidAction
	}

	return &AuditLog{
		Actor:     actor,
		Action:    action,
		Target:    target,
		Details:   details,
		IPAddress: ip,
		Timestamp: time.Now().UTC(),
	}, nil
}

func isValidAction(action AuditAction) bool {
	switch action {
	case ActionAssessmentUpdated, ActionCodeApplied, ActionCodeRejected,
		ActionSessionReset, ActionReportGenerated, ActionFindingSaved, ActionInfo:
		return true
	}
	return false
}

// SystemActor is recorded when no caller identity is attached to the context.
const SystemActor = "system"

type auditActorKey struct{}

// AuditActor identifies who triggered an audited action.
type AuditActor struct {
	Name string
	IP   string
}

// WithAuditActor attaches the caller identity to ctx.
func WithAuditActor(ctx context.Context, actor AuditActor) context.Context {
	return context.WithValue(ctx, auditActorKey{}, actor)
}

// AuditActorFromContext returns the caller identity, or the system actor.
func AuditActorFromContext(ctx context.Context) AuditActor {
	if a, ok := ctx.Value(auditActorKey{}).(AuditActor); ok && a.Name != "" {
		return a
	}
	return AuditActor{Name: SystemActor}
}

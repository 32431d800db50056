package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/ports"
	"github.com/lcalzada-xor/prr/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Service holds the current assessment of a single-user session. Scoring and
// encoding stay pure; this type only owns state, persistence and fan-out.
type Service struct {
	scorer ports.Scorer
	codec  ports.ShareCodec
	store  ports.SessionStore
	audit  ports.AuditService

	notifier ports.SessionNotifier

	// writeMu orders writers from the state swap through persist and notify,
	// so the stored state and the last broadcast match memory.
	writeMu sync.Mutex

	mu    sync.RWMutex
	state domain.SessionState
}

// NewService creates a session at the default assessment. store and audit may be nil.
func NewService(scorer ports.Scorer, codec ports.ShareCodec, store ports.SessionStore, audit ports.AuditService) *Service {
	return &Service{
		scorer: scorer,
		codec:  codec,
		store:  store,
		audit:  audit,
		state:  domain.SessionState{Assessment: domain.DefaultAssessment()},
	}
}

// SetNotifier installs the receiver of session changes. It must not block.
func (s *Service) SetNotifier(n ports.SessionNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Restore loads the persisted session. A missing or unreadable entry leaves the
// defaults in place; only store failures are returned.
func (s *Service) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	data, err := s.store.LoadState(ctx, domain.SessionStateKey)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	var st domain.SessionState
	if err := json.Unmarshal(data, &st); err != nil {
		log.Printf("Session: ignoring unreadable stored state: %v", err)
		return nil
	}

	s.mu.Lock()
	s.state = normalize(st)
	s.mu.Unlock()
	return nil
}

// Current returns the current session view.
func (s *Service) Current() domain.SessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewOf(s.state)
}

// Update replaces the assessment and reference wholesale. The in-memory session
// changes even if persisting fails; the persistence error is returned.
func (s *Service) Update(ctx context.Context, a domain.Assessment, findingRef string) (domain.SessionView, error) {
	ctx, span := telemetry.Tracer("session-service").Start(ctx, "Update")
	defer span.End()

	view, err := s.replace(ctx, domain.SessionState{Assessment: a, FindingRef: findingRef})
	span.SetAttributes(attribute.String("prr.band", view.Scores.OverallBand.String()))

	s.logAudit(ctx, domain.ActionAssessmentUpdated, view.Shared, "band="+view.Scores.OverallBand.String())
	return view, err
}

// ApplyCode decodes a shared string and makes it the current assessment.
// Rejected input leaves the session untouched.
func (s *Service) ApplyCode(ctx context.Context, shared string) (domain.SessionView, error) {
	ctx, span := telemetry.Tracer("session-service").Start(ctx, "ApplyCode")
	defer span.End()

	ref, code := s.codec.ParseShared(shared)
	a, err := s.codec.Decode(code)
	telemetry.ObserveDecode(telemetry.SourceSession, err)
	if err != nil {
		span.RecordError(err)
		s.logAudit(ctx, domain.ActionCodeRejected, shared, domain.DecodeFailureReason(err))
		return s.Current(), err
	}

	view, err := s.replace(ctx, domain.SessionState{Assessment: a, FindingRef: ref})
	s.logAudit(ctx, domain.ActionCodeApplied, view.Shared, "band="+view.Scores.OverallBand.String())
	return view, err
}

// Reset returns to the default assessment and drops the stored state.
func (s *Service) Reset(ctx context.Context) (domain.SessionView, error) {
	ctx, span := telemetry.Tracer("session-service").Start(ctx, "Reset")
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.state = domain.SessionState{Assessment: domain.DefaultAssessment()}
	view := s.viewOf(s.state)
	notifier := s.notifier
	s.mu.Unlock()

	var err error
	if s.store != nil {
		if err = s.store.DeleteState(ctx, domain.SessionStateKey); err != nil {
			err = fmt.Errorf("delete session: %w", err)
		}
	}

	s.logAudit(ctx, domain.ActionSessionReset, domain.SessionStateKey, "")
	if notifier != nil {
		notifier.BroadcastSession(view)
	}
	return view, err
}

func (s *Service) replace(ctx context.Context, st domain.SessionState) (domain.SessionView, error) {
	st = normalize(st)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.state = st
	view := s.viewOf(st)
	notifier := s.notifier
	s.mu.Unlock()

	telemetry.ObserveScores(view.Scores)
	telemetry.ObserveEncode(telemetry.SourceSession)

	err := s.persist(ctx, st)
	if notifier != nil {
		notifier.BroadcastSession(view)
	}
	return view, err
}

func (s *Service) persist(ctx context.Context, st domain.SessionState) error {
	if s.store == nil {
		return nil
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.SaveState(ctx, domain.SessionStateKey, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Service) viewOf(st domain.SessionState) domain.SessionView {
	code := s.codec.Encode(st.Assessment)
	return domain.SessionView{
		Assessment: st.Assessment,
		FindingRef: st.FindingRef,
		Scores:     s.scorer.Score(st.Assessment),
		Code:       code,
		Shared:     s.codec.Share(st.FindingRef, code),
	}
}

func (s *Service) logAudit(ctx context.Context, action domain.AuditAction, target, details string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Log(ctx, action, target, details); err != nil {
		log.Printf("Session: audit %s failed: %v", action, err)
	}
}

func normalize(st domain.SessionState) domain.SessionState {
	return domain.SessionState{
		Assessment: st.Assessment.Clamp(),
		FindingRef: domain.SanitizeFindingRef(st.FindingRef),
	}
}

package ports

import (
	"context"

	"github.com/lcalzada-xor/prr/internal/core/domain"
)

// Scorer reduces an assessment to display bands. Implementations are pure.
type Scorer interface {
	Score(a domain.Assessment) domain.Scores
}

// ShareCodec maps assessments to share codes and wraps them with a finding reference.
type ShareCodec interface {
	Encode(a domain.Assessment) string
	Decode(code string) (domain.Assessment, error)

	// Share returns "<ref>-<code>", or the bare code when ref is empty.
	Share(findingRef, code string) string
	// ParseShared splits a shared string into reference and code.
	ParseShared(text string) (findingRef, code string)
}

// SessionService owns the current assessment.
type SessionService interface {
	Current() domain.SessionView
	Update(ctx context.Context, a domain.Assessment, findingRef string) (domain.SessionView, error)
	// ApplyCode replaces the current assessment with a decoded one. On error the
	// current assessment is left untouched.
	ApplyCode(ctx context.Context, shared string) (domain.SessionView, error)
	Reset(ctx context.Context) (domain.SessionView, error)
}

// SessionNotifier receives every new session view.
type SessionNotifier interface {
	BroadcastSession(view domain.SessionView)
}

// FindingService keeps the register of shared findings.
type FindingService interface {
	Save(ctx context.Context, shared string) (*domain.FindingEntry, error)
	Get(ctx context.Context, id string) (*domain.FindingEntry, error)
	List(ctx context.Context, limit int) ([]domain.FindingEntry, error)
}

// ReportService builds assessment reports.
type ReportService interface {
	Build(ctx context.Context, a domain.Assessment, findingRef string) (*domain.AssessmentReport, error)
}

// ReportExporter renders a report into a document format.
type ReportExporter interface {
	Export(report *domain.AssessmentReport) ([]byte, error)
}

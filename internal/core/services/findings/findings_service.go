package findings

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/ports"
	"github.com/lcalzada-xor/prr/internal/telemetry"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Service keeps a register of shared findings. Only codes that decode are saved.
type Service struct {
	repo   ports.FindingRepository
	scorer ports.Scorer
	codec  ports.ShareCodec
	audit  ports.AuditService
}

func NewService(repo ports.FindingRepository, scorer ports.Scorer, codec ports.ShareCodec, audit ports.AuditService) *Service {
	return &Service{repo: repo, scorer: scorer, codec: codec, audit: audit}
}

// Save decodes and scores a shared string and stores it in canonical form.
func (s *Service) Save(ctx context.Context, shared string) (*domain.FindingEntry, error) {
	ctx, span := telemetry.Tracer("findings-service").Start(ctx, "Save")
	defer span.End()

	ref, code := s.codec.ParseShared(shared)
	a, err := s.codec.Decode(code)
	telemetry.ObserveDecode(telemetry.SourceFinding, err)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	scores := s.scorer.Score(a)
	telemetry.ObserveScores(scores)

	// re-encode so the stored code is canonical even if the input carried padding
	code = s.codec.Encode(a)
	entry := domain.FindingEntry{
		ID:         uuid.New().String(),
		FindingRef: ref,
		Code:       code,
		Shared:     s.codec.Share(ref, code),
		Likelihood: scores.Likelihood,
		Impact:     scores.Impact,
		Band:       scores.OverallBand,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.SaveFinding(ctx, entry); err != nil {
		return nil, fmt.Errorf("save finding: %w", err)
	}

	if s.audit != nil {
		if err := s.audit.Log(ctx, domain.ActionFindingSaved, entry.Shared, "id="+entry.ID); err != nil {
			log.Printf("Findings: audit %s failed: %v", domain.ActionFindingSaved, err)
		}
	}
	return &entry, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.FindingEntry, error) {
	return s.repo.GetFinding(ctx, id)
}

// List returns the newest entries first. Limits outside 1..MaxListLimit fall back
// to the default or the cap.
func (s *Service) List(ctx context.Context, limit int) ([]domain.FindingEntry, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.repo.ListFindings(ctx, limit)
}

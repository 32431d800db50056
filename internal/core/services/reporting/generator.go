package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/ports"
	"github.com/lcalzada-xor/prr/internal/telemetry"
)

const maxDrivers = 5

// Generator builds assessment reports
type Generator struct {
	scorer      ports.Scorer
	codec       ports.ShareCodec
	audit       ports.AuditService
	drivers     *DriverAnalyzer
	recommender *RecommendationEngine
	generatedBy string
}

// NewGenerator creates a new report generator. audit may be nil.
func NewGenerator(scorer ports.Scorer, codec ports.ShareCodec, audit ports.AuditService) *Generator {
	return &Generator{
		scorer:      scorer,
		codec:       codec,
		audit:       audit,
		drivers:     NewDriverAnalyzer(),
		recommender: NewRecommendationEngine(),
		generatedBy: "prr",
	}
}

// Build creates a report for an assessment and its finding reference.
func (g *Generator) Build(ctx context.Context, a domain.Assessment, findingRef string) (*domain.AssessmentReport, error) {
	ctx, span := telemetry.Tracer("report-generator").Start(ctx, "Build")
	defer span.End()

	a = a.Clamp()
	ref := domain.SanitizeFindingRef(findingRef)
	scores := g.scorer.Score(a)
	code := g.codec.Encode(a)
	drivers := g.drivers.TopDrivers(a, maxDrivers)

	report := &domain.AssessmentReport{
		ID:              uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		GeneratedBy:     g.generatedBy,
		FindingRef:      ref,
		Code:            code,
		Shared:          g.codec.Share(ref, code),
		Assessment:      a,
		Scores:          scores,
		Inputs:          Inputs(a),
		Drivers:         drivers,
		Warnings:        Warnings(a, scores),
		Recommendations: g.recommender.GenerateRecommendations(drivers, scores.OverallBand),
	}

	if g.audit != nil {
		if err := g.audit.Log(ctx, domain.ActionReportGenerated, report.Shared, "id="+report.ID); err != nil {
			return nil, fmt.Errorf("audit report: %w", err)
		}
	}
	return report, nil
}

// Inputs lists the labelled inputs of an assessment. Privacy rows only appear when
// the scope includes privacy, and only for attacks the data type admits.
func Inputs(a domain.Assessment) []domain.ReportField {
	a = a.Clamp()
	fields := []domain.ReportField{
		{Section: "Context", Name: "Scope", Value: a.Scope.String()},
		{Section: "Context", Name: "Data type", Value: a.DataType.String()},
		{Section: "Likelihood", Name: "Ease", Value: fmt.Sprintf("%d - %s", a.Ease, domain.EaseLabel(a.Ease))},
	}

	if a.Scope.IncludesSecurity() {
		fields = append(fields,
			domain.ReportField{Section: "Security impact", Name: "Confidentiality", Value: domain.SeverityLabel(a.Confidentiality)},
			domain.ReportField{Section: "Security impact", Name: "Integrity", Value: domain.SeverityLabel(a.Integrity)},
			domain.ReportField{Section: "Security impact", Name: "Availability", Value: domain.SeverityLabel(a.Availability)},
		)
	}

	if a.Scope.IncludesPrivacy() {
		if a.DataType.IncludesAggregated() {
			fields = append(fields,
				domain.ReportField{Section: "Privacy attacks", Name: "Averaging", Value: fmt.Sprintf("%d/%d", a.Averaging, domain.MaxAveraging)},
				domain.ReportField{Section: "Privacy attacks", Name: "Inference", Value: fmt.Sprintf("%d/%d", a.Inference, domain.MaxInference)},
			)
		}
		if a.DataType.IncludesNonAggregated() {
			fields = append(fields, domain.ReportField{Section: "Privacy attacks", Name: "Singling out", Value: yesNo(a.Singling)})
		}
		fields = append(fields,
			domain.ReportField{Section: "Privacy attacks", Name: "Linkage internal to external", Value: yesNo(a.LinkageInternalToExternal)},
			domain.ReportField{Section: "Privacy attacks", Name: "Linkage external to internal", Value: yesNo(a.LinkageExternalToInternal)},
			domain.ReportField{Section: "Privacy attacks", Name: "Re-identification", Value: yesNo(a.Reidentification)},
		)
	}

	fields = append(fields,
		domain.ReportField{Section: "Mitigation", Name: "Prevention", Value: a.Prevention.String()},
		domain.ReportField{Section: "Mitigation", Name: "Detection", Value: a.Detection.String()},
		domain.ReportField{Section: "Mitigation", Name: "Response", Value: a.Response.String()},
	)
	if a.BudgetApplies() {
		fields = append(fields, domain.ReportField{Section: "Mitigation", Name: "Privacy budget", Value: a.PrivacyBudget.String()})
	}

	fields = append(fields,
		domain.ReportField{Section: "Overrides", Name: "Likelihood", Value: levelOverrideLabel(a.OverrideLikelihood)},
		domain.ReportField{Section: "Overrides", Name: "Impact", Value: levelOverrideLabel(a.OverrideImpact)},
		domain.ReportField{Section: "Overrides", Name: "Overall", Value: overallOverrideLabel(a.OverrideOverall)},
	)
	return fields
}

// Warnings lists the conditions a reader of the rating must not miss.
func Warnings(a domain.Assessment, s domain.Scores) []string {
	var out []string
	if s.Flags.ForcedCriticalEligible {
		out = append(out, "Re-identification on aggregated privacy data forces the overall band to Critical.")
	}
	if s.Flags.OverallLoweredFromCritical {
		out = append(out, fmt.Sprintf("Overall override lowers a forced Critical rating to %s.", s.OverallBand))
	}
	if s.OverallBand != s.BaseOverallBand && !s.Flags.OverallLoweredFromCritical {
		out = append(out, fmt.Sprintf("Overrides change the computed band from %s to %s.", s.BaseOverallBand, s.OverallBand))
	}
	for _, c := range []struct {
		name string
		ctrl domain.Control
	}{{"Prevention", a.Prevention}, {"Detection", a.Detection}, {"Response", a.Response}} {
		if c.ctrl == domain.ControlNegated {
			out = append(out, fmt.Sprintf("%s control is negated and increases attacker ease.", c.name))
		}
	}
	return out
}

func levelOverrideLabel(v uint8) string {
	if v == 0 {
		return "Auto"
	}
	return domain.Level(v).String()
}

func overallOverrideLabel(v uint8) string {
	b, ok := domain.BandFromOverride(v)
	if !ok {
		return "Auto"
	}
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

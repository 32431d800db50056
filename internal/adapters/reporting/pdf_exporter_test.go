package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/lcalzada-xor/prr/internal/core/domain"
)

func sampleReport() *domain.AssessmentReport {
	return &domain.AssessmentReport{
		ID:          "test-report-123",
		GeneratedAt: time.Now(),
		GeneratedBy: "Test Suite",
		FindingRef:  "PRIV-7",
		Code:        "AyEAEAAAsw",
		Shared:      "PRIV-7-AyEAEAAAsw",
		Assessment:  domain.Assessment{Scope: domain.ScopePrivacy, DataType: domain.DataAggregated, Ease: 3, Reidentification: true},
		Scores: domain.Scores{
			Likelihood:      domain.LevelMedium,
			Impact:          domain.LevelHigh,
			OverallBand:     domain.BandCritical,
			BaseLikelihood:  domain.LevelMedium,
			BaseImpact:      domain.LevelHigh,
			BaseOverallBand: domain.BandCritical,
			Flags:           domain.ScoreFlags{ForcedCriticalEligible: true, ReidTrue: true},
			Breakdown:       domain.ScoreBreakdown{PrivacyRaw: 1, ImpactRaw: 1, EaseMultiplier: 1, EffectiveEase: 3},
		},
		Inputs: []domain.ReportField{
			{Section: "Context", Name: "Scope", Value: "Privacy"},
			{Section: "Context", Name: "Data type", Value: "Aggregated"},
			{Section: "Privacy attacks", Name: "Re-identification", Value: "Yes"},
		},
		Drivers: []domain.RiskDriver{
			{Rank: 1, Name: "REIDENTIFICATION", Contribution: 1, Description: "Records can be re-identified"},
		},
		Warnings: []string{"Re-identification on aggregated privacy data forces the overall band to Critical."},
		Recommendations: []domain.Recommendation{
			{
				Driver:      "REIDENTIFICATION",
				Priority:    "critical",
				Title:       "Remove Re-identification Paths",
				Description: "Released records can be tied back to individuals.",
				Actions: []string{
					"Drop or generalize quasi-identifiers",
					"Enforce minimum group sizes on every released cell",
				},
				EstimatedEffort: "1-2 weeks",
			},
		},
	}
}

func TestPDFExporterExport(t *testing.T) {
	exporter := NewPDFExporter()

	pdfData, err := exporter.Export(sampleReport())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// Verify PDF header (PDF files start with %PDF-)
	if !bytes.HasPrefix(pdfData, []byte("%PDF-")) {
		t.Error("Generated data does not have PDF header")
	}

	// Verify reasonable file size
	if len(pdfData) < 1000 {
		t.Errorf("PDF file size %d bytes seems too small", len(pdfData))
	}
	if len(pdfData) > 1000000 {
		t.Errorf("PDF file size %d bytes seems too large", len(pdfData))
	}
}

func TestPDFExporterExport_MinimalReport(t *testing.T) {
	exporter := NewPDFExporter()

	// Short ID, no drivers, no recommendations
	report := &domain.AssessmentReport{ID: "x", GeneratedAt: time.Now(), Code: "AyAAAAAAAA", Shared: "AyAAAAAAAA"}

	pdfData, err := exporter.Export(report)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.HasPrefix(pdfData, []byte("%PDF-")) {
		t.Error("Generated data does not have PDF header")
	}
}

func TestPDFExporterExport_ManyRecommendationsPaginates(t *testing.T) {
	exporter := NewPDFExporter()
	report := sampleReport()
	for i := 0; i < 12; i++ {
		report.Recommendations = append(report.Recommendations, report.Recommendations[0])
	}

	if _, err := exporter.Export(report); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
}

func TestPDFExporterExport_NilReport(t *testing.T) {
	if _, err := NewPDFExporter().Export(nil); err == nil {
		t.Error("Expected error for nil report")
	}
}

func TestGetBandColor(t *testing.T) {
	exporter := NewPDFExporter()

	r, g, b := exporter.getBandColor(domain.BandCritical)
	if r != 220 || g != 53 || b != 69 {
		t.Errorf("Critical color = (%d,%d,%d)", r, g, b)
	}
	r, g, b = exporter.getBandColor(domain.BandInformational)
	if r != 120 || g != 144 || b != 156 {
		t.Errorf("Informational color = (%d,%d,%d)", r, g, b)
	}
}

package reporting

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/lcalzada-xor/prr/internal/core/domain"
)

// PDFExporter exports reports to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export renders an assessment report as a one or two page PDF
func (e *PDFExporter) Export(report *domain.AssessmentReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("failed to generate PDF: nil report")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addBand(pdf, report)
	e.addWarnings(pdf, report)
	e.addInputs(pdf, report)
	e.addDrivers(pdf, report)
	e.addRecommendations(pdf, report)
	e.addFooter(pdf, report)

	// Output to bytes
	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// addHeader adds the report header
func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report *domain.AssessmentReport) {
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	title := "Risk Assessment"
	if report.FindingRef != "" {
		title += ": " + report.FindingRef
	}
	pdf.CellFormat(0, 14, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")

	pdf.SetFont("Courier", "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 6, "Code: "+report.Shared, "", 1, "L", false, 0, "")

	pdf.Ln(6)
}

// addBand adds the prominent overall band display
func (e *PDFExporter) addBand(pdf *gofpdf.Fpdf, report *domain.AssessmentReport) {
	r, g, b := e.getBandColor(report.Scores.OverallBand)

	pdf.SetFillColor(r, g, b)
	pdf.Rect(20, pdf.GetY(), 170, 28, "F")

	y := pdf.GetY()

	pdf.SetFont("Arial", "B", 26)
	pdf.SetTextColor(255, 255, 255) // White
	pdf.SetXY(25, y+4)
	pdf.CellFormat(90, 20, report.Scores.OverallBand.String(), "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetXY(115, y+6)
	pdf.CellFormat(70, 7, "Likelihood: "+report.Scores.Likelihood.String(), "", 2, "L", false, 0, "")
	pdf.CellFormat(70, 7, "Impact: "+report.Scores.Impact.String(), "", 0, "L", false, 0, "")

	pdf.SetY(y + 32)

	bd := report.Scores.Breakdown
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, fmt.Sprintf(
		"Effective ease %.2f (x%.2f)   Fundamentals %.2f   Privacy %.2f   Impact %.2f",
		bd.EffectiveEase, bd.EaseMultiplier, bd.FundamentalsRaw, bd.PrivacyRaw, bd.ImpactRaw,
	), "", 1, "L", false, 0, "")
	if report.Scores.OverallBand != report.Scores.BaseOverallBand {
		pdf.CellFormat(0, 5, fmt.Sprintf("Computed band before overrides: %s", report.Scores.BaseOverallBand), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

// getBandColor returns RGB color for an overall band
func (e *PDFExporter) getBandColor(band domain.Band) (r, g, b int) {
	switch band {
	case domain.BandCritical:
		return 220, 53, 69 // Red
	case domain.BandHigh:
		return 255, 149, 0 // Orange
	case domain.BandMedium:
		return 230, 180, 0 // Yellow
	case domain.BandLow:
		return 52, 199, 89 // Green
	default:
		return 120, 144, 156 // Gray
	}
}

func (e *PDFExporter) addWarnings(pdf *gofpdf.Fpdf, report *domain.AssessmentReport) {
	if len(report.Warnings) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(220, 53, 69)
	for _, w := range report.Warnings {
		pdf.MultiCell(0, 5, "! "+w, "", "L", false)
	}
	pdf.Ln(4)
}

// addInputs adds the assessment inputs table
func (e *PDFExporter) addInputs(pdf *gofpdf.Fpdf, report *domain.AssessmentReport) {
	e.sectionTitle(pdf, "Assessment Inputs")

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(50, 7, "Section", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, "Input", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, "Value", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, f := range report.Inputs {
		pdf.CellFormat(50, 6, f.Section, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 6, f.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, f.Value, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

// addDrivers adds the ranked risk drivers table
func (e *PDFExporter) addDrivers(pdf *gofpdf.Fpdf, report *domain.AssessmentReport) {
	e.sectionTitle(pdf, "Risk Drivers")

	if len(report.Drivers) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No contributing inputs", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(15, 7, "Rank", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Driver", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Weight", "1", 0, "C", true, 0, "")
	pdf.CellFormat(85, 7, "Detail", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, d := range report.Drivers {
		desc := d.Description
		if len(desc) > 55 {
			desc = desc[:52] + "..."
		}
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", d.Rank), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, d.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.0f%%", d.Contribution*100), "1", 0, "C", false, 0, "")
		pdf.CellFormat(85, 6, desc, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

// addRecommendations adds the recommendations section
func (e *PDFExporter) addRecommendations(pdf *gofpdf.Fpdf, report *domain.AssessmentReport) {
	e.sectionTitle(pdf, "Recommendations")

	for _, rec := range report.Recommendations {
		// Priority badge
		r, g, b := e.getPriorityColor(rec.Priority)
		pdf.SetFillColor(r, g, b)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(25, 6, rec.Priority, "", 0, "C", true, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(0, 51, 102)
		pdf.CellFormat(0, 6, "  "+rec.Title, "", 1, "L", false, 0, "")
		pdf.Ln(1)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(60, 60, 60)
		pdf.MultiCell(0, 5, rec.Description, "", "L", false)

		for _, action := range rec.Actions {
			pdf.CellFormat(5, 5, "", "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5, "- "+action, "", 1, "L", false, 0, "")
		}

		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 5, fmt.Sprintf("Estimated Effort: %s", rec.EstimatedEffort), "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}
}

// getPriorityColor returns RGB color based on priority
func (e *PDFExporter) getPriorityColor(priority string) (r, g, b int) {
	switch priority {
	case "critical":
		return 220, 53, 69 // Red
	case "high":
		return 255, 149, 0 // Orange
	case "medium":
		return 230, 180, 0 // Yellow
	default:
		return 52, 199, 89 // Green
	}
}

func (e *PDFExporter) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

// addFooter adds the report footer to the last page
func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, report *domain.AssessmentReport) {
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetY(-20)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)

	id := report.ID
	if len(id) > 8 {
		id = id[:8]
	}
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated by %s | Report ID: %s", report.GeneratedBy, id), "", 1, "C", false, 0, "")
}

package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/lcalzada-xor/prr/internal/core/ports"
	"github.com/lcalzada-xor/prr/internal/telemetry"
)

// ReportHandler handles report generation
type ReportHandler struct {
	Session   ports.SessionService
	Codec     ports.ShareCodec
	Generator ports.ReportService
	Exporter  ports.ReportExporter
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(session ports.SessionService, codec ports.ShareCodec, generator ports.ReportService, exporter ports.ReportExporter) *ReportHandler {
	return &ReportHandler{
		Session:   session,
		Codec:     codec,
		Generator: generator,
		Exporter:  exporter,
	}
}

// HandleGenerateReport builds a report for ?shared= or, without it, for the current
// session. ?format=pdf downloads a PDF, anything else returns JSON.
func (h *ReportHandler) HandleGenerateReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	format := query.Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "pdf" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "unsupported format " + format})
		return
	}

	view := h.Session.Current()
	a, ref := view.Assessment, view.FindingRef
	if shared := query.Get("shared"); shared != "" {
		var code string
		ref, code = h.Codec.ParseShared(shared)
		decoded, err := h.Codec.Decode(code)
		telemetry.ObserveDecode(telemetry.SourceAPI, err)
		if err != nil {
			writeError(w, r, err)
			return
		}
		a = decoded
	}

	report, err := h.Generator.Build(r.Context(), a, ref)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if format == "json" {
		writeJSON(w, http.StatusOK, report)
		return
	}

	if h.Exporter == nil {
		http.Error(w, "PDF export not available", http.StatusNotImplemented)
		return
	}

	pdfBytes, err := h.Exporter.Export(report)
	if err != nil {
		log.Printf("Failed to export PDF: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("prr-report-%s.pdf", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

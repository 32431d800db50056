package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	reportingAdapter "github.com/lcalzada-xor/prr/internal/adapters/reporting"
	"github.com/lcalzada-xor/prr/internal/adapters/web"
	"github.com/lcalzada-xor/prr/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/services/codec"
	"github.com/lcalzada-xor/prr/internal/core/services/reporting"
	"github.com/lcalzada-xor/prr/internal/core/services/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, h http.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func criticalAssessment() domain.Assessment {
	a := domain.DefaultAssessment()
	a.Scope = domain.ScopePrivacySecurity
	a.DataType = domain.DataBoth
	a.Ease = domain.MaxEase
	a.Confidentiality = domain.MaxCIA
	a.Reidentification = true
	return a
}

func TestCodecHandler_Score(t *testing.T) {
	h := handlers.NewCodecHandler(scoring.NewEngine(), codec.New())

	a := criticalAssessment()
	rr := doJSON(t, h.HandleScore, http.MethodPost, "/api/score", a)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp handlers.ScoreResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, scoring.NewEngine().Score(a), resp.Scores)
	assert.Equal(t, a, resp.Assessment)
}

func TestCodecHandler_ScoreClampsInput(t *testing.T) {
	h := handlers.NewCodecHandler(scoring.NewEngine(), codec.New())

	a := domain.DefaultAssessment()
	a.Ease = 9
	rr := doJSON(t, h.HandleScore, http.MethodPost, "/api/score", a)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp handlers.ScoreResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, uint8(domain.MaxEase), resp.Assessment.Ease)
}

func TestCodecHandler_RejectsUnknownFields(t *testing.T) {
	h := handlers.NewCodecHandler(scoring.NewEngine(), codec.New())

	rr := doJSON(t, h.HandleScore, http.MethodPost, "/api/score", map[string]int{"bogus": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCodecHandler_EncodeDecode(t *testing.T) {
	c := codec.New()
	h := handlers.NewCodecHandler(scoring.NewEngine(), c)

	a := criticalAssessment()
	rr := doJSON(t, h.HandleEncode, http.MethodPost, "/api/encode", handlers.EncodeRequest{
		Assessment: a,
		FindingRef: "AUTH-2024<07>",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var enc handlers.CodeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &enc))
	assert.Equal(t, c.Encode(a), enc.Code)
	assert.Equal(t, "AUTH-202407", enc.FindingRef)
	assert.Equal(t, "AUTH-202407-"+enc.Code, enc.Shared)

	rr = doJSON(t, h.HandleDecode, http.MethodPost, "/api/decode", handlers.DecodeRequest{Shared: enc.Shared})
	require.Equal(t, http.StatusOK, rr.Code)

	var dec handlers.CodeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dec))
	assert.Equal(t, enc, dec)
}

func TestCodecHandler_DecodeErrors(t *testing.T) {
	c := codec.New()
	h := handlers.NewCodecHandler(scoring.NewEngine(), c)

	code := c.Encode(domain.DefaultAssessment())
	flipped := []byte(code)
	if flipped[5] == 'A' {
		flipped[5] = 'B'
	} else {
		flipped[5] = 'A'
	}

	tests := []struct {
		name       string
		shared     string
		wantReason string
	}{
		{"too short", "abc", "invalid_length"},
		{"corrupted", string(flipped), "checksum_mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, h.HandleDecode, http.MethodPost, "/api/decode", handlers.DecodeRequest{Shared: tt.shared})
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantReason, resp.Reason)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, handlers.StatusFor(fmt.Errorf("decode: %w", domain.ErrUnsupportedVersion)))
	assert.Equal(t, http.StatusNotFound, handlers.StatusFor(domain.ErrFindingNotFound))
	assert.Equal(t, http.StatusInternalServerError, handlers.StatusFor(errors.New("disk full")))
}

func TestSessionHandler(t *testing.T) {
	svc := new(web.MockSessionService)
	h := handlers.NewSessionHandler(svc)
	view := domain.SessionView{Assessment: criticalAssessment(), FindingRef: "F-9", Code: "code"}

	t.Run("get", func(t *testing.T) {
		svc.On("Current").Return(view).Once()

		rr := doJSON(t, h.HandleGet, http.MethodGet, "/api/session", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"findingRef":"F-9"`)
	})

	t.Run("update", func(t *testing.T) {
		svc.On("Update", mock.Anything, view.Assessment, "F-9").Return(view, nil).Once()

		rr := doJSON(t, h.HandleUpdate, http.MethodPut, "/api/session", handlers.UpdateSessionRequest{
			Assessment: view.Assessment,
			FindingRef: "F-9",
		})
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("apply rejected", func(t *testing.T) {
		svc.On("ApplyCode", mock.Anything, "junk").Return(domain.SessionView{}, domain.ErrInvalidLength).Once()

		rr := doJSON(t, h.HandleApply, http.MethodPost, "/api/session/apply", handlers.ApplyRequest{Shared: "junk"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("reset store failure", func(t *testing.T) {
		svc.On("Reset", mock.Anything).Return(domain.SessionView{}, errors.New("db locked")).Once()

		rr := doJSON(t, h.HandleReset, http.MethodPost, "/api/session/reset", nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "db locked")
	})

	svc.AssertExpectations(t)
}

func TestFindingsHandler(t *testing.T) {
	svc := new(web.MockFindingService)
	h := handlers.NewFindingsHandler(svc)
	entry := &domain.FindingEntry{ID: "id-1", FindingRef: "F-1", Band: domain.BandHigh}

	t.Run("save", func(t *testing.T) {
		svc.On("Save", mock.Anything, "F-1-code").Return(entry, nil).Once()

		rr := doJSON(t, h.HandleSave, http.MethodPost, "/api/findings", handlers.SaveFindingRequest{Shared: "F-1-code"})
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("list with limit", func(t *testing.T) {
		svc.On("List", mock.Anything, 5).Return([]domain.FindingEntry{*entry}, nil).Once()

		rr := doJSON(t, h.HandleList, http.MethodGet, "/api/findings?limit=5", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"findings"`)
	})

	t.Run("list bad limit", func(t *testing.T) {
		rr := doJSON(t, h.HandleList, http.MethodGet, "/api/findings?limit=x", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("get missing", func(t *testing.T) {
		svc.On("Get", mock.Anything, "nope").Return(nil, domain.ErrFindingNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/findings/nope", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "nope"})
		rr := httptest.NewRecorder()
		h.HandleGet(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	svc.AssertExpectations(t)
}

func TestAuditHandler(t *testing.T) {
	svc := new(web.MockAuditService)
	h := handlers.NewAuditHandler(svc)

	svc.On("GetLogs", mock.Anything, 100).Return([]domain.AuditLog{{Actor: "api-key", Action: domain.ActionCodeApplied}}, nil).Once()
	rr := doJSON(t, h.HandleGetLogs, http.MethodGet, "/api/audit-logs", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "CODE_APPLIED")

	svc.On("GetLogs", mock.Anything, 1000).Return(nil, errors.New("boom")).Once()
	rr = doJSON(t, h.HandleGetLogs, http.MethodGet, "/api/audit-logs?limit=99999", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	svc.AssertExpectations(t)
}

func newReportHandler(session *web.MockSessionService) *handlers.ReportHandler {
	c := codec.New()
	engine := scoring.NewEngine()
	return handlers.NewReportHandler(session, c, reporting.NewGenerator(engine, c, nil), reportingAdapter.NewPDFExporter())
}

func TestReportHandler_JSONFromSession(t *testing.T) {
	session := new(web.MockSessionService)
	session.On("Current").Return(domain.SessionView{Assessment: criticalAssessment(), FindingRef: "F-7"})
	h := newReportHandler(session)

	rr := doJSON(t, h.HandleGenerateReport, http.MethodGet, "/api/report", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var report domain.AssessmentReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, "F-7", report.FindingRef)
	assert.Equal(t, criticalAssessment(), report.Assessment)
	assert.NotEmpty(t, report.Drivers)
}

func TestReportHandler_SharedParamOverridesSession(t *testing.T) {
	session := new(web.MockSessionService)
	session.On("Current").Return(domain.SessionView{Assessment: domain.DefaultAssessment()})
	h := newReportHandler(session)

	shared := "X-1-" + codec.New().Encode(criticalAssessment())
	rr := doJSON(t, h.HandleGenerateReport, http.MethodGet, "/api/report?shared="+shared, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var report domain.AssessmentReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, "X-1", report.FindingRef)
	assert.Equal(t, shared, report.Shared)
}

func TestReportHandler_PDF(t *testing.T) {
	session := new(web.MockSessionService)
	session.On("Current").Return(domain.SessionView{Assessment: criticalAssessment()})
	h := newReportHandler(session)

	rr := doJSON(t, h.HandleGenerateReport, http.MethodGet, "/api/report?format=pdf", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "prr-report-")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))
}

func TestReportHandler_BadFormat(t *testing.T) {
	h := newReportHandler(new(web.MockSessionService))

	rr := doJSON(t, h.HandleGenerateReport, http.MethodGet, "/api/report?format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

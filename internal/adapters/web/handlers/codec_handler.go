package handlers

import (
	"net/http"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/ports"
	"github.com/lcalzada-xor/prr/internal/telemetry"
)

// CodecHandler exposes the stateless scoring and share-code operations.
type CodecHandler struct {
	Scorer ports.Scorer
	Codec  ports.ShareCodec
}

// NewCodecHandler creates a new CodecHandler
func NewCodecHandler(scorer ports.Scorer, codec ports.ShareCodec) *CodecHandler {
	return &CodecHandler{Scorer: scorer, Codec: codec}
}

// EncodeRequest is the body of /api/encode.
type EncodeRequest struct {
	Assessment domain.Assessment `json:"assessment"`
	FindingRef string            `json:"findingRef,omitempty"`
}

// DecodeRequest is the body of /api/decode. Shared may carry a finding reference.
type DecodeRequest struct {
	Shared string `json:"shared"`
}

// ScoreResponse is the body returned by /api/score.
type ScoreResponse struct {
	Assessment domain.Assessment `json:"assessment"`
	Scores     domain.Scores     `json:"scores"`
}

// CodeResponse is returned by /api/encode and /api/decode.
type CodeResponse struct {
	FindingRef string            `json:"findingRef,omitempty"`
	Code       string            `json:"code"`
	Shared     string            `json:"shared"`
	Assessment domain.Assessment `json:"assessment"`
	Scores     domain.Scores     `json:"scores"`
}

// HandleScore scores an assessment after clamping it.
func (h *CodecHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	var a domain.Assessment
	if !decodeBody(w, r, &a) {
		return
	}

	a = a.Clamp()
	scores := h.Scorer.Score(a)
	telemetry.ObserveScores(scores)

	writeJSON(w, http.StatusOK, ScoreResponse{Assessment: a, Scores: scores})
}

// HandleEncode produces the share code and shared string of an assessment.
func (h *CodecHandler) HandleEncode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a := req.Assessment.Clamp()
	ref := domain.SanitizeFindingRef(req.FindingRef)
	code := h.Codec.Encode(a)
	telemetry.ObserveEncode(telemetry.SourceAPI)

	writeJSON(w, http.StatusOK, h.response(ref, code, a))
}

// HandleDecode validates a shared string and returns the assessment it carries.
func (h *CodecHandler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ref, code := h.Codec.ParseShared(req.Shared)
	a, err := h.Codec.Decode(code)
	telemetry.ObserveDecode(telemetry.SourceAPI, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.response(ref, h.Codec.Encode(a), a))
}

func (h *CodecHandler) response(ref, code string, a domain.Assessment) CodeResponse {
	scores := h.Scorer.Score(a)
	telemetry.ObserveScores(scores)
	return CodeResponse{
		FindingRef: ref,
		Code:       code,
		Shared:     h.Codec.Share(ref, code),
		Assessment: a,
		Scores:     scores,
	}
}

package grpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/ports"
	"github.com/lcalzada-xor/prr/internal/telemetry"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ScoreRequest is the Score request document.
type ScoreRequest struct {
	Assessment domain.Assessment `json:"assessment"`
}

// EncodeRequest is the Encode request document.
type EncodeRequest struct {
	Assessment domain.Assessment `json:"assessment"`
	FindingRef string            `json:"findingRef,omitempty"`
}

// DecodeRequest is the Decode request document.
type DecodeRequest struct {
	Shared string `json:"shared"`
}

// CodeResponse is returned by every method. Score leaves the code fields empty.
type CodeResponse struct {
	FindingRef string            `json:"findingRef,omitempty"`
	Code       string            `json:"code,omitempty"`
	Shared     string            `json:"shared,omitempty"`
	Assessment domain.Assessment `json:"assessment"`
	Scores     domain.Scores     `json:"scores"`
}

// RiskCodeService implements RiskCodeServer over the scoring engine and codec.
type RiskCodeService struct {
	scorer ports.Scorer
	codec  ports.ShareCodec
}

func NewRiskCodeService(scorer ports.Scorer, codec ports.ShareCodec) *RiskCodeService {
	return &RiskCodeService{scorer: scorer, codec: codec}
}

func (s *RiskCodeService) Score(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ScoreRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, err
	}

	a := req.Assessment.Clamp()
	return toStruct(CodeResponse{Assessment: a, Scores: s.score(a)})
}

func (s *RiskCodeService) Encode(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req EncodeRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, err
	}

	a := req.Assessment.Clamp()
	ref := domain.SanitizeFindingRef(req.FindingRef)
	code := s.codec.Encode(a)
	telemetry.ObserveEncode(telemetry.SourceGRPC)

	return toStruct(CodeResponse{
		FindingRef: ref,
		Code:       code,
		Shared:     s.codec.Share(ref, code),
		Assessment: a,
		Scores:     s.score(a),
	})
}

func (s *RiskCodeService) Decode(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req DecodeRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, err
	}

	ref, code := s.codec.ParseShared(req.Shared)
	a, err := s.codec.Decode(code)
	telemetry.ObserveDecode(telemetry.SourceGRPC, err)
	if err != nil {
		return nil, statusFromError(err)
	}

	code = s.codec.Encode(a)
	return toStruct(CodeResponse{
		FindingRef: ref,
		Code:       code,
		Shared:     s.codec.Share(ref, code),
		Assessment: a,
		Scores:     s.score(a),
	})
}

func (s *RiskCodeService) score(a domain.Assessment) domain.Scores {
	scores := s.scorer.Score(a)
	telemetry.ObserveScores(scores)
	return scores
}

func fromStruct(in *structpb.Struct, v interface{}) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "read request: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	return nil
}

func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// statusFromError maps domain errors onto gRPC status codes.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidLength),
		errors.Is(err, domain.ErrUnsupportedVersion),
		errors.Is(err, domain.ErrChecksumMismatch):
		return status.Errorf(codes.InvalidArgument, "%s: %v", domain.DecodeFailureReason(err), err)
	case errors.Is(err, domain.ErrFindingNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

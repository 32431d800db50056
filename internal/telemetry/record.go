package telemetry

import (
	"github.com/lcalzada-xor/prr/internal/core/domain"
)

// Sources label where a code was encoded or decoded.
const (
	SourceSession = "session"
	SourceAPI     = "api"
	SourceGRPC    = "grpc"
	SourceFinding = "finding"
)

// ObserveScores records the outcome of one scoring run.
func ObserveScores(s domain.Scores) {
	AssessmentsScored.WithLabelValues(s.OverallBand.String()).Inc()
	if s.Flags.ForcedCriticalEligible {
		ForcedCritical.Inc()
	}
	if s.Flags.OverallLoweredFromCritical {
		LoweredFromCritical.Inc()
	}
}

// ObserveDecode records a decode attempt. err is the codec error, if any.
func ObserveDecode(source string, err error) {
	if err != nil {
		DecodeFailures.WithLabelValues(source, domain.DecodeFailureReason(err)).Inc()
		return
	}
	CodesDecoded.WithLabelValues(source).Inc()
}

// ObserveEncode records a produced share code.
func ObserveEncode(source string) {
	CodesEncoded.WithLabelValues(source).Inc()
}

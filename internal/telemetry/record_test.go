package telemetry

import (
	"fmt"
	"testing"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveScores(t *testing.T) {
	critical := AssessmentsScored.WithLabelValues("Critical")
	before := testutil.ToFloat64(critical)
	forcedBefore := testutil.ToFloat64(ForcedCritical)
	loweredBefore := testutil.ToFloat64(LoweredFromCritical)

	ObserveScores(domain.Scores{
		OverallBand: domain.BandCritical,
		Flags:       domain.ScoreFlags{ForcedCriticalEligible: true},
	})
	ObserveScores(domain.Scores{
		OverallBand: domain.BandLow,
		Flags:       domain.ScoreFlags{ForcedCriticalEligible: true, OverallLoweredFromCritical: true},
	})

	assert.Equal(t, before+1, testutil.ToFloat64(critical))
	assert.Equal(t, forcedBefore+2, testutil.ToFloat64(ForcedCritical))
	assert.Equal(t, loweredBefore+1, testutil.ToFloat64(LoweredFromCritical))
}

func TestObserveDecode(t *testing.T) {
	ok := CodesDecoded.WithLabelValues(SourceAPI)
	bad := DecodeFailures.WithLabelValues(SourceAPI, "checksum_mismatch")
	okBefore, badBefore := testutil.ToFloat64(ok), testutil.ToFloat64(bad)

	ObserveDecode(SourceAPI, nil)
	ObserveDecode(SourceAPI, fmt.Errorf("wrapped: %w", domain.ErrChecksumMismatch))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, badBefore+1, testutil.ToFloat64(bad))
}

func TestInitMetrics_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		InitMetrics()
		InitMetrics()
	})
}

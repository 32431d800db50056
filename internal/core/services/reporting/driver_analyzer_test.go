package reporting

import (
	"testing"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func driverNames(ds []domain.RiskDriver) []string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.Name
	}
	return names
}

func TestTopDrivers(t *testing.T) {
	da := NewDriverAnalyzer()

	tests := []struct {
		name string
		a    domain.Assessment
		want []string
	}{
		{
			name: "re-identification dominates",
			a:    domain.Assessment{Scope: domain.ScopePrivacy, DataType: domain.DataAggregated, Ease: 3, Reidentification: true},
			want: []string{DriverReidentification, DriverNoMitigation},
		},
		{
			name: "security finding with negated prevention",
			a: domain.Assessment{
				Scope: domain.ScopeSecurity, DataType: domain.DataNonAggregated, Ease: 5,
				Confidentiality: 3, Integrity: 1, Prevention: domain.ControlNegated,
			},
			want: []string{DriverConfidentiality, DriverLowAttackerCost, DriverIntegrity, DriverNegatedControls},
		},
		{
			name: "aggregate release without budget",
			a: domain.Assessment{
				Scope: domain.ScopePrivacy, DataType: domain.DataAggregated, Ease: 3,
				Averaging: 2, Inference: 3,
			},
			want: []string{DriverNoPrivacyBudget, DriverNoMitigation, DriverInference, DriverAveraging},
		},
		{
			name: "privacy attacks ignored in security scope",
			a: domain.Assessment{
				Scope: domain.ScopeSecurity, DataType: domain.DataBoth, Ease: 3,
				Reidentification: true, Singling: true, Detection: domain.ControlStrong,
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := da.TopDrivers(tt.a, 10)
			assert.Equal(t, tt.want, driverNames(got))
			for i, d := range got {
				assert.Equal(t, i+1, d.Rank)
				assert.Greater(t, d.Contribution, 0.0)
				assert.LessOrEqual(t, d.Contribution, 1.0)
				assert.NotEmpty(t, d.Description)
			}
		})
	}
}

func TestTopDrivers_Limit(t *testing.T) {
	a := domain.Assessment{
		Scope: domain.ScopePrivacySecurity, DataType: domain.DataBoth, Ease: 5,
		Confidentiality: 2, Integrity: 2, Availability: 2,
		Averaging: 1, Inference: 1, Singling: true, LinkageInternalToExternal: true,
	}

	got := NewDriverAnalyzer().TopDrivers(a, 3)
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[2].Rank)
	assert.GreaterOrEqual(t, got[0].Contribution, got[1].Contribution)
	assert.GreaterOrEqual(t, got[1].Contribution, got[2].Contribution)
}

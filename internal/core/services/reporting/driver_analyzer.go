package reporting

import (
	"fmt"
	"math"
	"sort"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/services/scoring"
)

// Risk driver identifiers
const (
	DriverReidentification = "REIDENTIFICATION"
	DriverLinkage          = "LINKAGE"
	DriverSinglingOut      = "SINGLING-OUT"
	DriverInference        = "INFERENCE"
	DriverAveraging        = "AVERAGING"
	DriverConfidentiality  = "CONFIDENTIALITY"
	DriverIntegrity        = "INTEGRITY"
	DriverAvailability     = "AVAILABILITY"
	DriverNegatedControls  = "NEGATED-CONTROLS"
	DriverNoMitigation     = "NO-MITIGATION"
	DriverNoPrivacyBudget  = "NO-PRIVACY-BUDGET"
	DriverLowAttackerCost  = "LOW-ATTACKER-COST"
)

// DriverAnalyzer explains which inputs of an assessment drive its rating.
type DriverAnalyzer struct{}

// NewDriverAnalyzer creates a new driver analyzer instance
func NewDriverAnalyzer() *DriverAnalyzer {
	return &DriverAnalyzer{}
}

// TopDrivers ranks contributing inputs by contribution, highest first, and keeps
// at most limit of them. Inputs that contribute nothing are left out.
func (da *DriverAnalyzer) TopDrivers(a domain.Assessment, limit int) []domain.RiskDriver {
	a = a.Clamp()
	var drivers []domain.RiskDriver
	add := func(name string, contribution float64, desc string) {
		if contribution <= 0 {
			return
		}
		drivers = append(drivers, domain.RiskDriver{
			Name:         name,
			Contribution: math.Min(contribution, 1),
			Description:  desc,
		})
	}

	if a.Scope.IncludesPrivacy() {
		da.privacyDrivers(a, add)
	}
	if a.Scope.IncludesSecurity() {
		add(DriverConfidentiality, float64(a.Confidentiality)/domain.MaxCIA,
			fmt.Sprintf("Confidentiality impact %s", domain.SeverityLabel(a.Confidentiality)))
		add(DriverIntegrity, float64(a.Integrity)/domain.MaxCIA,
			fmt.Sprintf("Integrity impact %s", domain.SeverityLabel(a.Integrity)))
		add(DriverAvailability, float64(a.Availability)/domain.MaxCIA,
			fmt.Sprintf("Availability impact %s", domain.SeverityLabel(a.Availability)))
	}

	multiplier := scoring.EaseMultiplier(a)
	switch {
	case multiplier > 1:
		add(DriverNegatedControls, multiplier-1, fmt.Sprintf("Negated controls raise attacker ease by %.0f%%", (multiplier-1)*100))
	case a.Prevention == domain.ControlNA && a.Detection == domain.ControlNA && a.Response == domain.ControlNA:
		add(DriverNoMitigation, 0.2, "No prevention, detection or response control is recorded")
	}
	if a.BudgetApplies() && a.PrivacyBudget == domain.BudgetNA && (a.Averaging > 0 || a.Inference > 0) {
		add(DriverNoPrivacyBudget, 0.3, "Aggregate releases are not protected by a privacy budget")
	}
	if a.Ease > domain.DefaultEase {
		add(DriverLowAttackerCost, float64(a.Ease-domain.DefaultEase)/float64(domain.MaxEase-domain.DefaultEase)*0.5,
			fmt.Sprintf("Attack effort rated %s", domain.EaseLabel(a.Ease)))
	}

	// Sort by contribution descending, name breaks ties for a stable order
	sort.SliceStable(drivers, func(i, j int) bool {
		if drivers[i].Contribution != drivers[j].Contribution {
			return drivers[i].Contribution > drivers[j].Contribution
		}
		return drivers[i].Name < drivers[j].Name
	})

	if limit > 0 && len(drivers) > limit {
		drivers = drivers[:limit]
	}
	for i := range drivers {
		drivers[i].Rank = i + 1
	}
	return drivers
}

// privacyDrivers isolates each privacy attack: its contribution is the privacy
// severity the assessment would have with only that attack observed.
func (da *DriverAnalyzer) privacyDrivers(a domain.Assessment, add func(string, float64, string)) {
	bare := a
	bare.Averaging, bare.Inference = 0, 0
	bare.Singling, bare.Reidentification = false, false
	bare.LinkageInternalToExternal, bare.LinkageExternalToInternal = false, false

	only := func(set func(*domain.Assessment)) float64 {
		x := bare
		set(&x)
		return scoring.PrivacyRaw(x)
	}

	add(DriverReidentification, only(func(x *domain.Assessment) { x.Reidentification = a.Reidentification }),
		"Records can be re-identified")
	add(DriverLinkage, only(func(x *domain.Assessment) {
		x.LinkageInternalToExternal = a.LinkageInternalToExternal
		x.LinkageExternalToInternal = a.LinkageExternalToInternal
	}), "Records can be linked with other datasets")
	add(DriverSinglingOut, only(func(x *domain.Assessment) { x.Singling = a.Singling }),
		"Individuals can be singled out")
	add(DriverInference, only(func(x *domain.Assessment) { x.Inference = a.Inference }),
		"Attributes can be inferred from released data")
	add(DriverAveraging, only(func(x *domain.Assessment) { x.Averaging = a.Averaging }),
		"Repeated aggregate queries can be averaged out")
}

package domain

// Scope selects which risk families apply to a finding.
type Scope uint8

const (
	ScopeSecurity        Scope = 1
	ScopePrivacy         Scope = 2
	ScopePrivacySecurity Scope = 3
)

// IncludesPrivacy reports whether privacy attacks contribute to impact.
func (s Scope) IncludesPrivacy() bool { return s == ScopePrivacy || s == ScopePrivacySecurity }

// IncludesSecurity reports whether the CIA fundamentals contribute to impact.
func (s Scope) IncludesSecurity() bool { return s == ScopeSecurity || s == ScopePrivacySecurity }

func (s Scope) String() string {
	switch s {
	case ScopeSecurity:
		return "Security"
	case ScopePrivacy:
		return "Privacy"
	case ScopePrivacySecurity:
		return "Privacy & Security"
	}
	return "Unknown"
}

// DataType describes the shape of the data under assessment.
type DataType uint8

const (
	DataAggregated    DataType = 1
	DataNonAggregated DataType = 2
	DataBoth          DataType = 3
)

func (d DataType) IncludesAggregated() bool    { return d == DataAggregated || d == DataBoth }
func (d DataType) IncludesNonAggregated() bool { return d == DataNonAggregated || d == DataBoth }

func (d DataType) String() string {
	switch d {
	case DataAggregated:
		return "Aggregated"
	case DataNonAggregated:
		return "Non-aggregated"
	case DataBoth:
		return "Both"
	}
	return "Unknown"
}

// Control is the strength of a prevention, detection or response mitigation.
type Control uint8

const (
	ControlNA Control = iota
	ControlNegated
	ControlWeak
	ControlMedium
	ControlStrong
)

var controlLabels = [...]string{"N/A", "Negated", "Weak", "Medium", "Strong"}

func (c Control) String() string {
	if int(c) < len(controlLabels) {
		return controlLabels[c]
	}
	return "Unknown"
}

// Budget is the strength of a differential-privacy style budget, nested under prevention.
type Budget uint8

const (
	BudgetNA Budget = iota
	BudgetLoose
	BudgetModerate
	BudgetTight
	BudgetStrict
)

var budgetLabels = [...]string{"N/A", "Loose", "Moderate", "Tight", "Strict"}

func (b Budget) String() string {
	if int(b) < len(budgetLabels) {
		return budgetLabels[b]
	}
	return "Unknown"
}

// Field domains. Every bounded field is clamped into these before use.
const (
	MinScope, MaxScope       = 1, 3
	MinDataType, MaxDataType = 1, 3
	MinEase, MaxEase         = 1, 5
	MaxCIA                   = 3
	MaxAveraging             = 2
	MaxInference             = 3
	MaxControl               = 4
	MaxBudget                = 4
	MaxLevelOverride         = 3
	MaxOverallOverride       = 5
	MaxFindingRefLen         = 40
	DefaultEase              = 3
)

var easeLabels = [...]string{"Expert", "Advanced", "Medium", "Easy", "Trivial"}

// EaseLabel returns the attacker-effort label for an ease value (5 = Trivial).
func EaseLabel(ease uint8) string {
	if ease < MinEase || ease > MaxEase {
		return "Unknown"
	}
	return easeLabels[ease-1]
}

var severityLabels = [...]string{"N/A", "Low", "Medium", "High"}

// SeverityLabel returns the label of a CIA severity value.
func SeverityLabel(v uint8) string {
	if int(v) < len(severityLabels) {
		return severityLabels[v]
	}
	return "Unknown"
}

// Assessment is the structured record rated by the scoring engine and carried by share codes.
// It is a value type: copy it freely, replace it wholesale.
type Assessment struct {
	Scope    Scope    `json:"scope"`
	DataType DataType `json:"dataType"`
	Ease     uint8    `json:"ease"`

	Confidentiality uint8 `json:"c"`
	Integrity       uint8 `json:"i"`
	Availability    uint8 `json:"a"`

	Averaging                 uint8 `json:"avg"`
	Inference                 uint8 `json:"inference"`
	Singling                  bool  `json:"singling"`
	LinkageInternalToExternal bool  `json:"linkage_internal_to_external"`
	LinkageExternalToInternal bool  `json:"linkage_external_to_internal"`
	Reidentification          bool  `json:"reid"`

	Prevention    Control `json:"prevention"`
	Detection     Control `json:"detection"`
	Response      Control `json:"response"`
	PrivacyBudget Budget  `json:"privacyBudget"`

	OverrideLikelihood uint8 `json:"overrideLikelihood"`
	OverrideImpact     uint8 `json:"overrideImpact"`
	OverrideOverall    uint8 `json:"overrideOverall"`
}

// DefaultAssessment is the record a fresh or reset session starts from.
func DefaultAssessment() Assessment {
	return Assessment{
		Scope:    ScopeSecurity,
		DataType: DataAggregated,
		Ease:     DefaultEase,
	}
}

// Clamp returns a copy with every bounded field forced into its domain.
func (a Assessment) Clamp() Assessment {
	a.Scope = Scope(clampU8(uint8(a.Scope), MinScope, MaxScope))
	a.DataType = DataType(clampU8(uint8(a.DataType), MinDataType, MaxDataType))
	a.Ease = clampU8(a.Ease, MinEase, MaxEase)
	a.Confidentiality = clampU8(a.Confidentiality, 0, MaxCIA)
	a.Integrity = clampU8(a.Integrity, 0, MaxCIA)
	a.Availability = clampU8(a.Availability, 0, MaxCIA)
	a.Averaging = clampU8(a.Averaging, 0, MaxAveraging)
	a.Inference = clampU8(a.Inference, 0, MaxInference)
	a.Prevention = Control(clampU8(uint8(a.Prevention), 0, MaxControl))
	a.Detection = Control(clampU8(uint8(a.Detection), 0, MaxControl))
	a.Response = Control(clampU8(uint8(a.Response), 0, MaxControl))
	a.PrivacyBudget = Budget(clampU8(uint8(a.PrivacyBudget), 0, MaxBudget))
	a.OverrideLikelihood = clampU8(a.OverrideLikelihood, 0, MaxLevelOverride)
	a.OverrideImpact = clampU8(a.OverrideImpact, 0, MaxLevelOverride)
	a.OverrideOverall = clampU8(a.OverrideOverall, 0, MaxOverallOverride)
	return a
}

// CIAMax is the worst fundamentals axis.
func (a Assessment) CIAMax() uint8 {
	return max(a.Confidentiality, a.Integrity, a.Availability)
}

// BudgetApplies reports whether the privacy budget participates in mitigation.
func (a Assessment) BudgetApplies() bool {
	return a.Scope.IncludesPrivacy() && a.DataType.IncludesAggregated()
}

func clampU8(v, lo, hi uint8) uint8 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

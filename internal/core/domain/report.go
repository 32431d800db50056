package domain

import "time"

// AssessmentReport aggregates everything needed to render an assessment summary.
type AssessmentReport struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	GeneratedBy string    `json:"generated_by"`

	FindingRef string     `json:"finding_ref,omitempty"`
	Code       string     `json:"code"`
	Shared     string     `json:"shared"`
	Assessment Assessment `json:"assessment"`
	Scores     Scores     `json:"scores"`

	Inputs          []ReportField    `json:"inputs"`
	Drivers         []RiskDriver     `json:"drivers,omitempty"`
	Warnings        []string         `json:"warnings,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Recommendation is an actionable remediation step for a risk driver.
type Recommendation struct {
	Driver          string   `json:"driver"`
	Priority        string   `json:"priority"` // critical, high, medium, low
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Actions         []string `json:"actions"`
	EstimatedEffort string   `json:"estimated_effort"`
}

// ReportField is one labelled input row of a report.
type ReportField struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	Value   string `json:"value"`
}

// RiskDriver is one input that pushes the rating up, ranked by contribution.
type RiskDriver struct {
	Rank         int     `json:"rank"`
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"` // 0..1
	Description  string  `json:"description"`
}

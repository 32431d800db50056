package reporting

import (
	"fmt"

	"github.com/lcalzada-xor/prr/internal/core/domain"
)

// RecommendationEngine generates actionable remediation steps
type RecommendationEngine struct{}

// NewRecommendationEngine creates a new recommendation engine instance
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// GenerateRecommendations creates prioritized recommendations for the ranked drivers
// of an assessment rated in band.
func (re *RecommendationEngine) GenerateRecommendations(drivers []domain.RiskDriver, band domain.Band) []domain.Recommendation {
	var recommendations []domain.Recommendation

	for _, d := range drivers {
		if rec := re.getRecommendationForDriver(d.Name, band); rec != nil {
			recommendations = append(recommendations, *rec)
		}
	}

	// Add general recommendations if we have fewer than 3
	if len(recommendations) < 3 {
		recommendations = append(recommendations, re.getGeneralRecommendations()...)
	}

	// Limit to top 5 recommendations
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	return recommendations
}

// priorityFor maps an overall band to a recommendation priority.
func priorityFor(band domain.Band) string {
	switch band {
	case domain.BandCritical:
		return "critical"
	case domain.BandHigh:
		return "high"
	case domain.BandMedium:
		return "medium"
	}
	return "low"
}

// getRecommendationForDriver returns a specific recommendation for a risk driver
func (re *RecommendationEngine) getRecommendationForDriver(driver string, band domain.Band) *domain.Recommendation {
	priority := priorityFor(band)

	recommendations := map[string]domain.Recommendation{
		DriverReidentification: {
			Priority:    "critical",
			Title:       "Remove Re-identification Paths",
			Description: "Released records can be tied back to individuals. On aggregated privacy data this pins the rating to Critical.",
			Actions: []string{
				"Drop or generalize quasi-identifiers (dates, postcodes, rare attributes)",
				"Enforce minimum group sizes on every released cell",
				"Re-run a re-identification test on the sanitized release",
				"Restrict raw record access to named analysts",
			},
			EstimatedEffort: "1-2 weeks",
		},
		DriverLinkage: {
			Priority:    priority,
			Title:       "Break Cross-dataset Linkage",
			Description: "Records can be joined with internal or external datasets to enrich or identify them.",
			Actions: []string{
				"Use per-release pseudonyms instead of stable identifiers",
				"Strip join keys that are not needed downstream",
				"Review which external datasets share attributes with this release",
			},
			EstimatedEffort: "3-5 days",
		},
		DriverSinglingOut: {
			Priority:    priority,
			Title:       "Prevent Singling Out",
			Description: "Individual records can be isolated even without a name attached.",
			Actions: []string{
				"Suppress or bucket outlier values",
				"Apply k-anonymity or l-diversity thresholds before release",
				"Limit row-level exports",
			},
			EstimatedEffort: "2-4 days",
		},
		DriverInference: {
			Priority:    priority,
			Title:       "Reduce Attribute Inference",
			Description: "Sensitive attributes can be inferred from correlated released values.",
			Actions: []string{
				"Remove attributes strongly correlated with sensitive ones",
				"Add calibrated noise to released statistics",
				"Review aggregates for small-cell disclosure",
			},
			EstimatedEffort: "2-3 days",
		},
		DriverAveraging: {
			Priority:    "medium",
			Title:       "Limit Repeated Aggregate Queries",
			Description: "Noise on aggregates can be averaged away by issuing the same query repeatedly.",
			Actions: []string{
				"Cache and replay noisy answers for identical queries",
				"Rate-limit aggregate queries per consumer",
				"Track cumulative privacy loss per dataset",
			},
			EstimatedEffort: "1-2 days",
		},
		DriverConfidentiality: {
			Priority:    priority,
			Title:       "Protect Data Confidentiality",
			Description: "The finding exposes data to unauthorized readers.",
			Actions: []string{
				"Encrypt the affected data at rest and in transit",
				"Tighten access control to least privilege",
				"Rotate any credentials that may have been exposed",
			},
			EstimatedEffort: "1-3 days",
		},
		DriverIntegrity: {
			Priority:    priority,
			Title:       "Protect Data Integrity",
			Description: "The finding allows unauthorized modification of data.",
			Actions: []string{
				"Validate and authorize every write path",
				"Sign or checksum critical records",
				"Keep tamper-evident audit logs for changes",
			},
			EstimatedEffort: "1-3 days",
		},
		DriverAvailability: {
			Priority:    priority,
			Title:       "Protect Service Availability",
			Description: "The finding can degrade or deny access to the service.",
			Actions: []string{
				"Add rate limiting and resource quotas",
				"Verify backup and restore procedures",
				"Add alerting on saturation signals",
			},
			EstimatedEffort: "1-2 days",
		},
		DriverNegatedControls: {
			Priority:    "high",
			Title:       "Fix Controls That Work Against You",
			Description: "At least one recorded control is negated and makes the attack easier.",
			Actions: []string{
				"Identify the negated prevention, detection or response control",
				"Disable or reconfigure it",
				"Re-assess once the control is neutral or effective",
			},
			EstimatedEffort: "1 day",
		},
		DriverNoMitigation: {
			Priority:    "medium",
			Title:       "Add Compensating Controls",
			Description: "No prevention, detection or response control is recorded for this finding.",
			Actions: []string{
				"Add a preventive control on the attack path",
				"Alert on exploitation attempts",
				"Write a response runbook for this finding",
			},
			EstimatedEffort: "2-5 days",
		},
		DriverNoPrivacyBudget: {
			Priority:    "medium",
			Title:       "Introduce a Privacy Budget",
			Description: "Aggregate releases are not bounded by a differential privacy budget.",
			Actions: []string{
				"Choose an epsilon per dataset and release cadence",
				"Account every query against the budget",
				"Refuse queries once the budget is spent",
			},
			EstimatedEffort: "1-2 weeks",
		},
		DriverLowAttackerCost: {
			Priority:    priority,
			Title:       "Raise Attacker Cost",
			Description: "Exploiting this finding requires little skill or effort.",
			Actions: []string{
				"Remove public exposure of the affected component",
				"Require authentication in front of the attack surface",
				"Add monitoring for automated exploitation",
			},
			EstimatedEffort: "1-3 days",
		},
	}

	if rec, exists := recommendations[driver]; exists {
		rec.Driver = driver
		return &rec
	}

	// Generic recommendation for unknown drivers
	return &domain.Recommendation{
		Driver:      driver,
		Priority:    priority,
		Title:       fmt.Sprintf("Address %s", driver),
		Description: fmt.Sprintf("%s contributes to the %s rating. Review and remediate.", driver, band),
		Actions: []string{
			"Confirm the input with the finding owner",
			"Identify a control that reduces it",
			"Re-assess after remediation",
		},
		EstimatedEffort: "Varies",
	}
}

// getGeneralRecommendations returns general assessment hygiene steps
func (re *RecommendationEngine) getGeneralRecommendations() []domain.Recommendation {
	return []domain.Recommendation{
		{
			Priority:    "low",
			Title:       "Record the Rating With the Finding",
			Description: "Keep the shared code next to the finding so the rating can be reproduced and reviewed.",
			Actions: []string{
				"Paste the shared code into the finding ticket",
				"Note any manual override and its reason",
			},
			EstimatedEffort: "5 minutes",
		},
		{
			Priority:    "low",
			Title:       "Re-assess After Remediation",
			Description: "Ratings go stale as controls change.",
			Actions: []string{
				"Re-open the shared code after each fix",
				"Update controls and compare the new band",
			},
			EstimatedEffort: "15 minutes",
		},
		{
			Priority:    "low",
			Title:       "Peer Review High Ratings",
			Description: "A second assessor catches mis-scoped findings early.",
			Actions: []string{
				"Send the shared code to a reviewer",
				"Agree on scope and data type before debating controls",
			},
			EstimatedEffort: "30 minutes",
		},
	}
}

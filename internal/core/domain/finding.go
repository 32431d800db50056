package domain

import "time"

// FindingEntry is a shared code saved to the findings register.
type FindingEntry struct {
	ID         string    `json:"id"`
	FindingRef string    `json:"finding_ref,omitempty"`
	Code       string    `json:"code"`
	Shared     string    `json:"shared"`
	Likelihood Level     `json:"likelihood"`
	Impact     Level     `json:"impact"`
	Band       Band      `json:"band"`
	CreatedAt  time.Time `json:"created_at"`
}

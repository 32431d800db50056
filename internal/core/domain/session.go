package domain

// SessionStateKey is the storage key of the persisted current assessment.
const SessionStateKey = "prr.v3.state"

// SessionState is what gets persisted for the current session.
type SessionState struct {
	Assessment Assessment `json:"assessment"`
	FindingRef string     `json:"findingRef,omitempty"`
}

// SessionView is the current assessment together with everything derived from it.
type SessionView struct {
	Assessment Assessment `json:"assessment"`
	FindingRef string     `json:"findingRef,omitempty"`
	Scores     Scores     `json:"scores"`
	Code       string     `json:"code"`
	Shared     string     `json:"shared"`
}

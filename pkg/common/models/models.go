package models

import "time"

// Genetics predisposition levels accepted on a record.
const (
	GeneticsNone     = "none"
	GeneticsModerate = "moderate"
	GeneticsHigh     = "high"
)

// Environment flags (checkbox-style set field).
const (
	EnvPolluted = "polluted"
	EnvUrban    = "urban"
	EnvGreen    = "green"
	EnvRural    = "rural"
)

// Smoking statuses.
const (
	SmokingNone    = "none"
	SmokingFormer  = "former"
	SmokingCurrent = "current"
)

// Activity levels.
const (
	ActivityLow      = "low"
	ActivityModerate = "moderate"
	ActivityHigh     = "high"
)

// Medical condition flags (checkbox-style set field).
const (
	CondDiabetes     = "diabetes"
	CondHypertension = "hypertension"
	CondCVD          = "cvd"
	CondCancer       = "cancer"
	CondAsthma       = "asthma"
	CondObesity      = "obesity"
	CondKidney       = "kidney"
)

// Work exposure flags.
const (
	WorkShift = "shift"
	WorkNight = "night"
)

// Record is the canonical shape of one health entry. Numeric inputs stay
// string-encoded exactly as entered; missing or invalid values degrade to the
// documented defaults during normalization. Risk is always derived, never
// accepted from outside.
type Record struct {
	Fullname    string   `json:"fullname"`
	Age         string   `json:"age"`
	Genetics    string   `json:"genetics"`
	Diet        string   `json:"diet"`
	Environment []string `json:"environment"`
	Smoking     string   `json:"smoking"`
	Alcohol     string   `json:"alcohol"`
	Activity    string   `json:"activity"`
	Sleep       string   `json:"sleep"`
	Height      string   `json:"height"`
	Weight      string   `json:"weight"`
	Stress      string   `json:"stress"`
	Conditions  []string `json:"conditions"`
	SBP         string   `json:"sbp"`
	Chol        string   `json:"chol"`
	Glucose     string   `json:"glucose"`
	Fruits      string   `json:"fruits"`
	Vegetables  string   `json:"vegetables"`
	Noise       bool     `json:"noise"`
	Work        []string `json:"work"`
	Created     string   `json:"created"`
	Risk        int      `json:"risk"`
}

// EntrySummary is the per-record row consumed by the dashboard collaborator.
type EntrySummary struct {
	Fullname       string `json:"fullname"`
	Age            string `json:"age"`
	Risk           int    `json:"risk"`
	Tier           string `json:"tier"`
	Recommendation string `json:"recommendation"`
}

// DashboardSummary aggregates a record collection for display. AverageRisk is
// nil when the collection is empty so the consumer can render a placeholder
// instead of a bogus zero.
type DashboardSummary struct {
	Count       int            `json:"count"`
	AverageRisk *int           `json:"average_risk"`
	AverageTier string         `json:"average_tier,omitempty"`
	RiskSeries  []int          `json:"risk_series"`
	Entries     []EntrySummary `json:"entries"`
}

// Event types published to the events topic.
const (
	EventRecordScored       = "record.scored"
	EventCollectionImported = "collection.imported"
)

// Event is the envelope on both the events topic and the intake topic. An
// intake event carries the submitted record under Data["record"].
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

type ImportResult struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

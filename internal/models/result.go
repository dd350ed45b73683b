package models

import (
	"encoding/json"
	"time"
)

// TestResult is one completed typing test. Rows are immutable once written;
// there is no update path. UserID is nil for anonymous submissions and is
// nulled out when the owning account is deleted.
type TestResult struct {
	ID           int64           `json:"id"`
	UserID       *int64          `json:"userId"`
	Wpm          float64         `json:"wpm"`
	RawWpm       float64         `json:"rawWpm"`
	Accuracy     float64         `json:"accuracy"`
	Consistency  float64         `json:"consistency"`
	CharsCorrect int             `json:"charsCorrect"`
	CharsWrong   int             `json:"charsWrong"`
	Duration     int             `json:"duration"` // seconds
	CharErrors   json.RawMessage `json:"charErrors"`
	WpmTimeline  json.RawMessage `json:"wpmTimeline"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// StatsSummary aggregates a user's stored results. A user with no history gets
// the zero value rather than an error.
type StatsSummary struct {
	BestWpm          float64 `json:"bestWpm"`
	AvgWpm           int     `json:"avgWpm"`
	Avg10Wpm         int     `json:"avg10Wpm"`
	BestAccuracy     float64 `json:"bestAccuracy"`
	AvgAccuracy      float64 `json:"avgAccuracy"`
	TotalTests       int     `json:"totalTests"`
	TotalTimeSeconds int     `json:"totalTimeSeconds"`
	TotalCharsTyped  int     `json:"totalCharsTyped"`
}

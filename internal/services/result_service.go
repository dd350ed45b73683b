package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/isdelr/typetester-be/internal/models"
)

// ResultPayload carries a finished test as submitted by the client. Zero
// values double as "absent": the defaulting below cannot tell a literal 0
// apart from a missing field, and a submission with wpm or accuracy of 0 is
// rejected as incomplete. That matches the deployed behavior and stays until
// the API is revised.
type ResultPayload struct {
	Wpm          float64         `json:"wpm"`
	RawWpm       float64         `json:"rawWpm"`
	Accuracy     float64         `json:"accuracy"`
	Consistency  float64         `json:"consistency"`
	CharsCorrect int             `json:"charsCorrect"`
	CharsWrong   int             `json:"charsWrong"`
	Duration     int             `json:"duration"`
	CharErrors   json.RawMessage `json:"charErrors"`
	WpmTimeline  json.RawMessage `json:"wpmTimeline"`
}

// ResultServiceProvider defines the interface for result services.
type ResultServiceProvider interface {
	Submit(ctx context.Context, userID *int64, payload ResultPayload) (models.TestResult, error)
	ListByUser(ctx context.Context, userID int64, limit int, sort string) ([]models.TestResult, error)
	Stats(ctx context.Context, userID int64) (models.StatsSummary, error)
}

// ResultService persists typing-test results and computes per-user stats.
type ResultService struct {
	db *sql.DB
}

// NewResultService creates a new ResultService.
func NewResultService(db *sql.DB) *ResultService {
	return &ResultService{db: db}
}

const (
	defaultListLimit = 50
	maxListLimit     = 100
	statsWindow      = 10 // results counted into avg10Wpm
)

// Submit stores one completed test. userID nil means anonymous; the row is
// still written, just unowned. Optional fields default: rawWpm to wpm,
// consistency to 100, duration to 30 seconds, the char counters to 0, the
// opaque blobs to empty JSON.
func (s *ResultService) Submit(ctx context.Context, userID *int64, p ResultPayload) (models.TestResult, error) {
	if p.Wpm == 0 || p.Accuracy == 0 {
		return models.TestResult{}, ErrMissingResultFields
	}

	result := models.TestResult{
		UserID:       userID,
		Wpm:          p.Wpm,
		RawWpm:       p.RawWpm,
		Accuracy:     p.Accuracy,
		Consistency:  p.Consistency,
		CharsCorrect: p.CharsCorrect,
		CharsWrong:   p.CharsWrong,
		Duration:     p.Duration,
		CharErrors:   p.CharErrors,
		WpmTimeline:  p.WpmTimeline,
		CreatedAt:    time.Now().UTC(),
	}
	if result.RawWpm == 0 {
		result.RawWpm = result.Wpm
	}
	if result.Consistency == 0 {
		result.Consistency = 100
	}
	if result.Duration == 0 {
		result.Duration = 30
	}
	if result.CharErrors == nil {
		result.CharErrors = json.RawMessage(`{}`)
	}
	if result.WpmTimeline == nil {
		result.WpmTimeline = json.RawMessage(`[]`)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO test_results
			(user_id, wpm, raw_wpm, accuracy, consistency,
			 chars_correct, chars_wrong, duration, char_errors, wpm_timeline, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableID(result.UserID), result.Wpm, result.RawWpm, result.Accuracy, result.Consistency,
		result.CharsCorrect, result.CharsWrong, result.Duration,
		string(result.CharErrors), string(result.WpmTimeline), result.CreatedAt)
	if err != nil {
		return models.TestResult{}, fmt.Errorf("inserting result: %w", err)
	}

	result.ID, err = res.LastInsertId()
	if err != nil {
		return models.TestResult{}, fmt.Errorf("reading new result id: %w", err)
	}
	return result, nil
}

// ListByUser returns the user's results, newest first by default. sort "wpm"
// orders by speed instead; any other value falls back to creation time rather
// than failing the request. limit is clamped to (0, 100], defaulting to 50.
func (s *ResultService) ListByUser(ctx context.Context, userID int64, limit int, sort string) ([]models.TestResult, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	order := "created_at DESC, id DESC"
	if sort == "wpm" {
		order = "wpm DESC, id DESC"
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, wpm, raw_wpm, accuracy, consistency,
		       chars_correct, chars_wrong, duration, char_errors, wpm_timeline, created_at
		FROM test_results
		WHERE user_id = ?
		ORDER BY `+order+`
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// Stats folds every stored result for the user into a summary. No history is
// a valid state and yields the zero summary. The whole set is recomputed on
// each call; result sets are small enough that caching would buy nothing.
//
// avgWpm and avg10Wpm round half away from zero (math.Round), which for the
// non-negative WPM domain is plain round-half-up: [60, 81] averages to 71.
func (s *ResultService) Stats(ctx context.Context, userID int64) (models.StatsSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, wpm, raw_wpm, accuracy, consistency,
		       chars_correct, chars_wrong, duration, char_errors, wpm_timeline, created_at
		FROM test_results
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return models.StatsSummary{}, fmt.Errorf("loading results for stats: %w", err)
	}
	defer rows.Close()

	results, err := scanResults(rows)
	if err != nil {
		return models.StatsSummary{}, err
	}
	if len(results) == 0 {
		return models.StatsSummary{}, nil
	}

	var summary models.StatsSummary
	var wpmSum, accSum float64
	for _, r := range results {
		if r.Wpm > summary.BestWpm {
			summary.BestWpm = r.Wpm
		}
		if r.Accuracy > summary.BestAccuracy {
			summary.BestAccuracy = r.Accuracy
		}
		wpmSum += r.Wpm
		accSum += r.Accuracy
		summary.TotalTimeSeconds += r.Duration
		summary.TotalCharsTyped += r.CharsCorrect + r.CharsWrong
	}

	recent := results
	if len(recent) > statsWindow {
		recent = recent[:statsWindow]
	}
	var recentSum float64
	for _, r := range recent {
		recentSum += r.Wpm
	}

	summary.TotalTests = len(results)
	summary.AvgWpm = int(math.Round(wpmSum / float64(len(results))))
	summary.Avg10Wpm = int(math.Round(recentSum / float64(len(recent))))
	summary.BestAccuracy = roundTenth(summary.BestAccuracy)
	summary.AvgAccuracy = roundTenth(accSum / float64(len(results)))
	return summary, nil
}

func scanResults(rows *sql.Rows) ([]models.TestResult, error) {
	results := []models.TestResult{}
	for rows.Next() {
		var r models.TestResult
		var userID sql.NullInt64
		var charErrors, wpmTimeline string
		err := rows.Scan(&r.ID, &userID, &r.Wpm, &r.RawWpm, &r.Accuracy, &r.Consistency,
			&r.CharsCorrect, &r.CharsWrong, &r.Duration, &charErrors, &wpmTimeline, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		if userID.Valid {
			id := userID.Int64
			r.UserID = &id
		}
		r.CharErrors = json.RawMessage(charErrors)
		r.WpmTimeline = json.RawMessage(wpmTimeline)
		results = append(results, r)
	}
	return results, rows.Err()
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func roundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

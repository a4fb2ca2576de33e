// Package dashboard computes the admin console views over stored feedback.
// Every function is pure; callers load the records and pass them in.
package dashboard

import (
	"math"
	"sort"
	"time"

	"feedback-console/internal/analyzer"
	"feedback-console/internal/models"
)

const (
	DefaultActionLimit = 5
	CriticalRating     = 2
)

// Overview holds the headline metrics of the console.
type Overview struct {
	Total         int         `json:"total"`
	AverageRating float64     `json:"average_rating"`
	CriticalCount int         `json:"critical_count"`
	FallbackCount int         `json:"fallback_count"`
	LatestAt      string      `json:"latest_at"`
	Distribution  map[int]int `json:"distribution"`
}

type TrendPoint struct {
	Timestamp string `json:"timestamp"`
	Rating    int    `json:"rating"`
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// Summarize builds the Overview. LatestAt is the maximum parseable timestamp;
// records whose timestamp does not parse are still counted everywhere else.
func Summarize(records []models.FeedbackRecord, loc *time.Location) Overview {
	ov := Overview{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	if len(records) == 0 {
		return ov
	}

	var sum int
	var latest time.Time
	for _, rec := range records {
		ov.Total++
		sum += rec.Rating
		ov.Distribution[rec.Rating]++
		if rec.Rating <= CriticalRating {
			ov.CriticalCount++
		}
		if analyzer.IsFallback(rec.AISummary, rec.AIAction) {
			ov.FallbackCount++
		}
		if ts, err := rec.ParsedTime(loc); err == nil && ts.After(latest) {
			latest = ts
			ov.LatestAt = rec.Timestamp
		}
	}
	ov.AverageRating = math.Round(float64(sum)/float64(ov.Total)*100) / 100
	return ov
}

// Trend returns rating points in ascending time order. Unparseable timestamps
// sort first, keeping their stored order.
func Trend(records []models.FeedbackRecord, loc *time.Location) []TrendPoint {
	sorted := sortByTime(records, loc)
	points := make([]TrendPoint, 0, len(sorted))
	for _, rec := range sorted {
		points = append(points, TrendPoint{Timestamp: rec.Timestamp, Rating: rec.Rating})
	}
	return points
}

// TopActions ranks ai_action values by frequency; an empty action is its own
// bucket. Ties keep first-appearance order. Fallback rows are excluded unless
// includeFallback is set.
func TopActions(records []models.FeedbackRecord, limit int, includeFallback bool) []ActionCount {
	if limit <= 0 {
		limit = DefaultActionLimit
	}
	counts := map[string]int{}
	var order []string
	for _, rec := range records {
		if !includeFallback && analyzer.IsFallback(rec.AISummary, rec.AIAction) {
			continue
		}
		if _, seen := counts[rec.AIAction]; !seen {
			order = append(order, rec.AIAction)
		}
		counts[rec.AIAction]++
	}

	out := make([]ActionCount, 0, len(order))
	for _, action := range order {
		out = append(out, ActionCount{Action: action, Count: counts[action]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Reviews filters by minimum rating and returns newest first.
func Reviews(records []models.FeedbackRecord, minRating int, loc *time.Location) []models.FeedbackRecord {
	var filtered []models.FeedbackRecord
	for _, rec := range records {
		if rec.Rating >= minRating {
			filtered = append(filtered, rec)
		}
	}
	sorted := sortByTime(filtered, loc)
	out := make([]models.FeedbackRecord, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		out = append(out, sorted[i])
	}
	return out
}

func sortByTime(records []models.FeedbackRecord, loc *time.Location) []models.FeedbackRecord {
	type keyed struct {
		rec models.FeedbackRecord
		ts  time.Time
	}
	items := make([]keyed, len(records))
	for i, rec := range records {
		ts, _ := rec.ParsedTime(loc)
		items[i] = keyed{rec: rec, ts: ts}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].ts.Before(items[j].ts) })

	out := make([]models.FeedbackRecord, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out
}

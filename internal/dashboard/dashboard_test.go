package dashboard

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"feedback-console/internal/analyzer"
	"feedback-console/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(ts string, rating int, action string) models.FeedbackRecord {
	return models.FeedbackRecord{
		Timestamp:  ts,
		Rating:     rating,
		Review:     "review at " + ts,
		AIResponse: "Thanks",
		AISummary:  "summary",
		AIAction:   action,
	}
}

func fallbackRec(ts string, rating int) models.FeedbackRecord {
	fb := analyzer.Fallback()
	return models.FeedbackRecord{
		Timestamp:  ts,
		Rating:     rating,
		Review:     "api was down",
		AIResponse: fb.UserResponse,
		AISummary:  fb.Summary,
		AIAction:   fb.Action,
	}
}

func fixture() []models.FeedbackRecord {
	return []models.FeedbackRecord{
		rec("2025-01-02 09:00:00", 5, "Keep it up."),
		rec("2025-01-01 12:00:00", 1, "Retrain staff."),
		fallbackRec("2025-01-03 08:30:00", 2),
		rec("2025-01-02 18:45:00", 4, "Retrain staff."),
		fallbackRec("2025-01-01 07:00:00", 3),
	}
}

func TestSummarizeEmpty(t *testing.T) {
	ov := Summarize(nil, time.UTC)
	assert.Zero(t, ov.Total)
	assert.Zero(t, ov.AverageRating)
	assert.Zero(t, ov.CriticalCount)
	assert.Empty(t, ov.LatestAt)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, ov.Distribution)
}

func TestSummarize(t *testing.T) {
	ov := Summarize(fixture(), time.UTC)

	assert.Equal(t, 5, ov.Total)
	assert.Equal(t, 3.0, ov.AverageRating)
	assert.Equal(t, 2, ov.CriticalCount)
	assert.Equal(t, 2, ov.FallbackCount)
	assert.Equal(t, "2025-01-03 08:30:00", ov.LatestAt)
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1}, ov.Distribution)
}

func TestSummarizeRoundsAndSkipsBadTimestamps(t *testing.T) {
	records := []models.FeedbackRecord{
		rec("not a time", 5, "a"),
		rec("2025-02-01 10:00:00", 4, "b"),
		rec("2025-01-01 10:00:00", 4, "c"),
	}
	ov := Summarize(records, time.UTC)
	assert.Equal(t, 4.33, ov.AverageRating)
	assert.Equal(t, "2025-02-01 10:00:00", ov.LatestAt)
}

func TestTrend(t *testing.T) {
	points := Trend(fixture(), time.UTC)
	require.Len(t, points, 5)
	assert.Equal(t, TrendPoint{Timestamp: "2025-01-01 07:00:00", Rating: 3}, points[0])
	assert.Equal(t, TrendPoint{Timestamp: "2025-01-03 08:30:00", Rating: 2}, points[4])
	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i-1].Timestamp, points[i].Timestamp)
	}
}

func TestTopActions(t *testing.T) {
	got := TopActions(fixture(), 0, false)
	assert.Equal(t, []ActionCount{
		{Action: "Retrain staff.", Count: 2},
		{Action: "Keep it up.", Count: 1},
	}, got)

	withFallback := TopActions(fixture(), 5, true)
	require.Len(t, withFallback, 3)
	assert.Equal(t, ActionCount{Action: analyzer.FallbackAction, Count: 2}, withFallback[1])

	limited := TopActions(fixture(), 1, true)
	assert.Equal(t, []ActionCount{{Action: "Retrain staff.", Count: 2}}, limited)
}

func TestTopActionsTieKeepsFirstAppearance(t *testing.T) {
	records := []models.FeedbackRecord{
		rec("2025-01-01 00:00:00", 3, "b"),
		rec("2025-01-01 00:00:01", 3, "a"),
		rec("2025-01-01 00:00:02", 3, ""),
	}
	assert.Equal(t, []ActionCount{{"b", 1}, {"a", 1}, {"", 1}}, TopActions(records, 5, false))
}

func TestTopActionsCountsEmptyAction(t *testing.T) {
	records := []models.FeedbackRecord{
		rec("2025-01-01 00:00:00", 3, ""),
		rec("2025-01-01 00:00:01", 3, "a"),
		rec("2025-01-01 00:00:02", 3, ""),
	}
	assert.Equal(t, []ActionCount{{"", 2}, {"a", 1}}, TopActions(records, 5, false))
}

func TestReviews(t *testing.T) {
	got := Reviews(fixture(), 3, time.UTC)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-01-02 18:45:00", got[0].Timestamp)
	assert.Equal(t, "2025-01-02 09:00:00", got[1].Timestamp)
	assert.Equal(t, "2025-01-01 07:00:00", got[2].Timestamp)

	assert.Len(t, Reviews(fixture(), 1, time.UTC), 5)
	assert.Empty(t, Reviews(fixture(), 6, time.UTC))
}

func TestWriteCSV(t *testing.T) {
	records := fixture()
	records[0].Review = "comma, \"quote\" and\nnewline"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)
	assert.Equal(t, []string{"timestamp", "rating", "review", "ai_response", "ai_summary", "ai_action"}, rows[0])
	assert.Equal(t, []string{records[0].Timestamp, "5", records[0].Review, "Thanks", "summary", "Keep it up."}, rows[1])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "timestamp,rating,review,ai_response,ai_summary,ai_action\n", buf.String())
}

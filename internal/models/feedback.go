package models

import "time"

// TimestampLayout is the fixed-precision local date-time format of FeedbackRecord.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// FeedbackRecord is one stored submission plus its AI annotations. Records are
// written once and never updated.
type FeedbackRecord struct {
	Timestamp  string `bson:"timestamp" json:"timestamp"`
	Rating     int    `bson:"rating" json:"rating"`
	Review     string `bson:"review" json:"review"`
	AIResponse string `bson:"ai_response" json:"ai_response"`
	AISummary  string `bson:"ai_summary" json:"ai_summary"`
	AIAction   string `bson:"ai_action" json:"ai_action"`
}

// FormatTimestamp renders t in the record layout using t's location.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParsedTime parses Timestamp in loc. Records written by older deployments may
// carry anything in that field, so callers must handle the error.
func (r FeedbackRecord) ParsedTime(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(TimestampLayout, r.Timestamp, loc)
}

// IsCritical reports a low rating that warrants operator attention.
func (r FeedbackRecord) IsCritical() bool {
	return r.Rating <= 2
}

package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"feedback-console/internal/models"
)

// ExportFilename is the suggested attachment name of the CSV report.
const ExportFilename = "feedback_report.csv"

var csvHeader = []string{"timestamp", "rating", "review", "ai_response", "ai_summary", "ai_action"}

// WriteCSV writes every record, in stored order, after a header row.
func WriteCSV(w io.Writer, records []models.FeedbackRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Timestamp,
			strconv.Itoa(rec.Rating),
			rec.Review,
			rec.AIResponse,
			rec.AISummary,
			rec.AIAction,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

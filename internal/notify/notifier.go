package notify

import (
	"context"
	"fmt"
	"strings"

	"feedback-console/internal/models"
)

// Notifier defines the interface for publishing messages to an operator channel.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}

// FormatCriticalAlert renders a low-rated submission for operators.
func FormatCriticalAlert(rec models.FeedbackRecord) string {
	var b strings.Builder
	b.WriteString("New critical feedback\n")
	fmt.Fprintf(&b, "Time: %s\n", rec.Timestamp)
	fmt.Fprintf(&b, "Rating: %s (%d/5)\n", strings.Repeat("★", rec.Rating), rec.Rating)
	fmt.Fprintf(&b, "Review: %s\n", rec.Review)
	fmt.Fprintf(&b, "Summary: %s\n", rec.AISummary)
	fmt.Fprintf(&b, "Recommended action: %s", rec.AIAction)
	return b.String()
}

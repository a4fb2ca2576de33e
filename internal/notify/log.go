package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes alerts to the service log. Used when email alerts are
// not configured.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Publish(ctx context.Context, message string) error {
	n.log.Info().Str("message", message).Msg("alert published")
	return nil
}

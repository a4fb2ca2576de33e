package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

const alertSubject = "Critical customer feedback received"

type emailSender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendNotifier emails alerts through Resend.
type ResendNotifier struct {
	emails emailSender
	from   string
	to     []string
	log    zerolog.Logger
}

func NewResendNotifier(apiKey, from, to string, log zerolog.Logger) *ResendNotifier {
	client := resend.NewClient(apiKey)
	return newResendNotifier(client.Emails, from, to, log)
}

func newResendNotifier(emails emailSender, from, to string, log zerolog.Logger) *ResendNotifier {
	var recipients []string
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return &ResendNotifier{
		emails: emails,
		from:   from,
		to:     recipients,
		log:    log.With().Str("component", "resend_notifier").Logger(),
	}
}

func (n *ResendNotifier) Publish(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(n.to) == 0 {
		return fmt.Errorf("resend: no recipients configured")
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: alertSubject,
		Text:    message,
		Html:    renderHTML(message),
	}
	sent, err := n.emails.Send(params)
	if err != nil {
		return fmt.Errorf("resend: send email: %w", err)
	}
	n.log.Info().Str("email_id", sent.Id).Strs("to", n.to).Msg("alert email sent")
	return nil
}

func renderHTML(message string) string {
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		lines[i] = html.EscapeString(line)
	}
	return `<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto; padding: 24px;">` +
		strings.Join(lines, "<br>") +
		`</div>`
}

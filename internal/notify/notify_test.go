package notify

import (
	"context"
	"errors"
	"testing"

	"feedback-console/internal/models"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	got []*resend.SendEmailRequest
	err error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.got = append(f.got, params)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func TestFormatCriticalAlert(t *testing.T) {
	msg := FormatCriticalAlert(models.FeedbackRecord{
		Timestamp: "2025-01-02 10:11:12",
		Rating:    2,
		Review:    "Cold food",
		AISummary: "Food served cold",
		AIAction:  "Audit kitchen pass timing.",
	})

	assert.Contains(t, msg, "Rating: ★★ (2/5)")
	assert.Contains(t, msg, "Review: Cold food")
	assert.Contains(t, msg, "Recommended action: Audit kitchen pass timing.")
}

func TestResendNotifierPublish(t *testing.T) {
	sender := &fakeSender{}
	n := newResendNotifier(sender, "alerts@example.com", "ops@example.com, lead@example.com,", zerolog.Nop())

	require.NoError(t, n.Publish(context.Background(), "line <1>\nline 2"))
	require.Len(t, sender.got, 1)
	req := sender.got[0]
	assert.Equal(t, "alerts@example.com", req.From)
	assert.Equal(t, []string{"ops@example.com", "lead@example.com"}, req.To)
	assert.Equal(t, "line <1>\nline 2", req.Text)
	assert.Contains(t, req.Html, "line &lt;1&gt;<br>line 2")
}

func TestResendNotifierErrors(t *testing.T) {
	sender := &fakeSender{err: errors.New("rate limited")}
	n := newResendNotifier(sender, "a@example.com", "b@example.com", zerolog.Nop())
	assert.ErrorContains(t, n.Publish(context.Background(), "x"), "rate limited")

	empty := newResendNotifier(&fakeSender{}, "a@example.com", " , ", zerolog.Nop())
	assert.Error(t, empty.Publish(context.Background(), "x"))
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier(zerolog.Nop()).Publish(context.Background(), "hello"))
}

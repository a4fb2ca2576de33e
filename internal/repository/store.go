package repository

import (
	"context"

	"feedback-console/internal/models"
)

// Store is the append-only feedback log. Load returns records in insertion
// order; an absent or corrupt backing resource reads as empty.
type Store interface {
	Load(ctx context.Context) ([]models.FeedbackRecord, error)
	Append(ctx context.Context, record models.FeedbackRecord) error
}

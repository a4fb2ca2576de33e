package repository

import (
	"context"
	"fmt"
	"time"

	"feedback-console/internal/metrics"
	"feedback-console/internal/models"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	backendMongo       = "mongo"
	feedbackCollection = "feedbacks"
)

// documentCollection is the subset of *mongo.Collection the repo reads and writes through.
type documentCollection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
}

// FeedbackRepo is the MongoDB Store. Documents are only ever inserted; _id
// order is insertion order.
type FeedbackRepo struct {
	collection documentCollection
	indexes    func() mongo.IndexView
	log        zerolog.Logger
}

func NewFeedbackRepo(db *mongo.Database, log zerolog.Logger) *FeedbackRepo {
	coll := db.Collection(feedbackCollection)
	repo := newFeedbackRepo(coll, log)
	repo.indexes = coll.Indexes
	return repo
}

func newFeedbackRepo(coll documentCollection, log zerolog.Logger) *FeedbackRepo {
	return &FeedbackRepo{
		collection: coll,
		log:        log.With().Str("component", "feedback_repo").Logger(),
	}
}

func (r *FeedbackRepo) Append(ctx context.Context, record models.FeedbackRecord) error {
	start := time.Now()
	_, err := r.collection.InsertOne(ctx, record)
	metrics.ObserveStore(backendMongo, "append", start, err)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// Load skips documents that no longer decode into a FeedbackRecord.
func (r *FeedbackRepo) Load(ctx context.Context) ([]models.FeedbackRecord, error) {
	start := time.Now()
	records, err := r.load(ctx)
	metrics.ObserveStore(backendMongo, "load", start, err)
	return records, err
}

func insertionOrder() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
}

func (r *FeedbackRepo) load(ctx context.Context) ([]models.FeedbackRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, insertionOrder())
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.FeedbackRecord{}
	for cursor.Next(ctx) {
		var rec models.FeedbackRecord
		if err := cursor.Decode(&rec); err != nil {
			r.log.Warn().Err(err).Msg("skipping corrupt feedback document")
			continue
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return records, nil
}

// EnsureIndexes creates necessary indexes for the feedbacks collection
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	if r.indexes == nil {
		return nil
	}
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "rating", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "ai_action", Value: 1}},
		},
	}
	_, err := r.indexes().CreateMany(ctx, indexes)
	return err
}

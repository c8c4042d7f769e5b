package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"innsikt/internal/logger"
	"innsikt/internal/metrics"
	"innsikt/internal/model"
)

// FeedbackRepo handles MongoDB operations for feedback records
type FeedbackRepo interface {
	Create(ctx context.Context, record model.FeedbackRecord) error
	// Fetch returns every record matching the predicate in submission order.
	// Documents that cannot be parsed are skipped, not returned as errors.
	Fetch(ctx context.Context, pred model.AggregationPredicate) ([]model.FeedbackRecord, error)
}

type feedbackRepo struct {
	collection *mongo.Collection
}

// NewFeedbackRepo creates a new feedback repository
func NewFeedbackRepo(db *mongo.Database) FeedbackRepo {
	return &feedbackRepo{
		collection: db.Collection("feedback"),
	}
}

func (r *feedbackRepo) Create(ctx context.Context, record model.FeedbackRecord) error {
	_, err := r.collection.InsertOne(ctx, toDoc(record))
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepo) Fetch(ctx context.Context, pred model.AggregationPredicate) ([]model.FeedbackRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, predicateFilter(pred), opts)
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var records []model.FeedbackRecord
	for cursor.Next(ctx) {
		var doc feedbackDoc
		if err := cursor.Decode(&doc); err != nil {
			skip(ctx, "decode", cursor.Current.Lookup("_id").String(), err)
			continue
		}
		rec, err := fromDoc(doc)
		if err != nil {
			skip(ctx, "invalid", doc.ID, err)
			continue
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return records, nil
}

func skip(ctx context.Context, reason, id string, err error) {
	metrics.RecordSkippedRecord(reason)
	logger.WithCtx(ctx).Warn().Err(err).Str("id", id).Str("reason", reason).Msg("skipping feedback document")
}

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"innsikt/internal/logger"
)

// EnsureIndexes creates the indexes the report queries rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	feedback := db.Collection("feedback")
	createIndex(ctx, feedback, bson.D{
		{Key: "team", Value: 1},
		{Key: "submittedAt", Value: 1},
	}, false)
	createIndex(ctx, feedback, bson.D{
		{Key: "team", Value: 1},
		{Key: "surveyId", Value: 1},
		{Key: "submittedAt", Value: 1},
	}, false)

	themes := db.Collection("text_themes")
	createIndex(ctx, themes, bson.D{
		{Key: "team", Value: 1},
		{Key: "analysisContext", Value: 1},
	}, false)
	createIndex(ctx, themes, bson.D{
		{Key: "team", Value: 1},
		{Key: "name", Value: 1},
		{Key: "analysisContext", Value: 1},
	}, true)

	createIndex(ctx, db.Collection("surveys"), bson.D{{Key: "team", Value: 1}}, false)

	logger.Logger.Info().Msg("mongo indexes ensured")
}

func createIndex(ctx context.Context, coll *mongo.Collection, keys bson.D, unique bool) {
	opts := options.Index().SetUnique(unique)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts})
	if err != nil {
		logger.Logger.Warn().Err(err).Str("collection", coll.Name()).Msg("failed to create index")
	}
}

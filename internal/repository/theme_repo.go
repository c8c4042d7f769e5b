package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"innsikt/internal/model"
)

// ErrNotFound is returned by updates and deletes of missing documents
var ErrNotFound = errors.New("not found")

// ThemeRepo handles MongoDB operations for text themes
type ThemeRepo interface {
	Create(ctx context.Context, theme *model.TextTheme) error
	GetByID(ctx context.Context, id string) (*model.TextTheme, error)
	ListByTeam(ctx context.Context, team string) ([]*model.TextTheme, error)
	ForTeam(ctx context.Context, team string, actx model.AnalysisContext) ([]model.TextTheme, error)
	Update(ctx context.Context, theme *model.TextTheme) error
	Delete(ctx context.Context, id string) error
}

type themeRepo struct {
	collection *mongo.Collection
}

// NewThemeRepo creates a new theme repository
func NewThemeRepo(db *mongo.Database) ThemeRepo {
	return &themeRepo{
		collection: db.Collection("text_themes"),
	}
}

var themeOrder = bson.D{{Key: "priority", Value: -1}, {Key: "name", Value: 1}}

func (r *themeRepo) Create(ctx context.Context, theme *model.TextTheme) error {
	now := time.Now().UTC()
	theme.CreatedAt = now
	theme.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, theme)
	return err
}

func (r *themeRepo) GetByID(ctx context.Context, id string) (*model.TextTheme, error) {
	var theme model.TextTheme
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&theme)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepo) ListByTeam(ctx context.Context, team string) ([]*model.TextTheme, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"team": team}, options.Find().SetSort(themeOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var themes []*model.TextTheme
	if err := cursor.All(ctx, &themes); err != nil {
		return nil, err
	}
	return themes, nil
}

// ForTeam returns the team's themes for one analysis context. Themes stored
// without a context count as general feedback.
func (r *themeRepo) ForTeam(ctx context.Context, team string, actx model.AnalysisContext) ([]model.TextTheme, error) {
	filter := bson.M{"team": team, "analysisContext": actx}
	if actx == model.ContextGeneralFeedback {
		filter["analysisContext"] = bson.M{"$in": bson.A{actx, "", nil}}
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(themeOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var themes []model.TextTheme
	if err := cursor.All(ctx, &themes); err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *themeRepo) Update(ctx context.Context, theme *model.TextTheme) error {
	theme.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":            theme.Name,
		"keywords":        theme.Keywords,
		"color":           theme.Color,
		"priority":        theme.Priority,
		"analysisContext": theme.AnalysisContext,
		"updatedAt":       theme.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": theme.ID, "team": theme.Team}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *themeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

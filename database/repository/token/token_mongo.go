package tokenRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/Azarenkov/aitu-web-app/config"
	"github.com/Azarenkov/aitu-web-app/database"
	"github.com/Azarenkov/aitu-web-app/database/repository"
	"github.com/Azarenkov/aitu-web-app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTokenRepo implements TokenRepository using MongoDB.
type MongoTokenRepo struct {
	coll *mongo.Collection
}

// NewMongoTokenRepo creates a new instance of TokenRepository using MongoDB.
func NewMongoTokenRepo() TokenRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("tokens")
	return &MongoTokenRepo{coll: coll}
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Save inserts a new account document keyed by the Moodle token.
func (r *MongoTokenRepo) Save(ctx context.Context, token *models.Token) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, token); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// FindAll returns one page of registered accounts sorted by token.
func (r *MongoTokenRepo) FindAll(ctx context.Context, limit, skip int64) ([]models.Token, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer cursor.Close(ctx)

	var tokens []models.Token
	for cursor.Next(ctx) {
		var t models.Token
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode token: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("token cursor failed: %w", err)
	}
	return tokens, nil
}

// Delete removes an account document by token.
func (r *MongoTokenRepo) Delete(ctx context.Context, token string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": token})
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrDataIsEmpty
	}
	return nil
}

package deadlineRepo

import (
	"context"
	"errors"
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

// MongoDeadlineRepo implements DeadlineRepository using MongoDB.
type MongoDeadlineRepo struct {
	coll *mongo.Collection
}

// NewMongoDeadlineRepo creates a new instance of DeadlineRepository using MongoDB.
func NewMongoDeadlineRepo() DeadlineRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("deadlines")
	return &MongoDeadlineRepo{coll: coll}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Save upserts the deadline list document for the token (full replace).
func (r *MongoDeadlineRepo) Save(ctx context.Context, token string, deadlines []models.Deadline) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"deadlines": deadlines}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": token}, update, opts); err != nil {
		return fmt.Errorf("failed to save deadlines: %w", err)
	}
	return nil
}

// FindByToken retrieves the stored deadline list for the token.
func (r *MongoDeadlineRepo) FindByToken(ctx context.Context, token string) ([]models.Deadline, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Deadlines []models.Deadline `bson:"deadlines"`
	}
	if err := r.coll.FindOne(ctx, bson.M{"_id": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrDataIsEmpty
		}
		return nil, fmt.Errorf("failed to fetch deadlines: %w", err)
	}
	return doc.Deadlines, nil
}

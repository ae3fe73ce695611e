package courseRepo

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

// MongoCourseRepo implements CourseRepository using MongoDB.
type MongoCourseRepo struct {
	coll *mongo.Collection
}

// NewMongoCourseRepo creates a new instance of CourseRepository using MongoDB.
func NewMongoCourseRepo() CourseRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("courses")
	return &MongoCourseRepo{coll: coll}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Save upserts the course list document for the token (full replace).
func (r *MongoCourseRepo) Save(ctx context.Context, token string, courses []models.Course) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"courses": courses}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": token}, update, opts); err != nil {
		return fmt.Errorf("failed to save courses: %w", err)
	}
	return nil
}

// FindByToken retrieves the stored course list for the token.
func (r *MongoCourseRepo) FindByToken(ctx context.Context, token string) ([]models.Course, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Courses []models.Course `bson:"courses"`
	}
	if err := r.coll.FindOne(ctx, bson.M{"_id": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrDataIsEmpty
		}
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}
	return doc.Courses, nil
}

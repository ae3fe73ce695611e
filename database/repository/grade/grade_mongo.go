package gradeRepo

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

// MongoGradeRepo implements GradeRepository using MongoDB. Grades and the
// overview live in separate collections, both keyed by token.
type MongoGradeRepo struct {
	grades   *mongo.Collection
	overview *mongo.Collection
}

// NewMongoGradeRepo creates a new instance of GradeRepository using MongoDB.
func NewMongoGradeRepo() GradeRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoGradeRepo{
		grades:   db.Collection("grades"),
		overview: db.Collection("grades_overview"),
	}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// SaveGrades upserts the grade list document for the token (full replace).
func (r *MongoGradeRepo) SaveGrades(ctx context.Context, token string, grades []models.Grade) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"grades": grades}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.grades.UpdateOne(ctx, bson.M{"_id": token}, update, opts); err != nil {
		return fmt.Errorf("failed to save grades: %w", err)
	}
	return nil
}

// FindGradesByToken retrieves the stored grade list for the token.
func (r *MongoGradeRepo) FindGradesByToken(ctx context.Context, token string) ([]models.Grade, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Grades []models.Grade `bson:"grades"`
	}
	if err := r.grades.FindOne(ctx, bson.M{"_id": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrDataIsEmpty
		}
		return nil, fmt.Errorf("failed to fetch grades: %w", err)
	}
	return doc.Grades, nil
}

// SaveGradesOverview upserts the overview document for the token (full replace).
func (r *MongoGradeRepo) SaveGradesOverview(ctx context.Context, token string, overview []models.GradeOverview) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"grades": overview}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.overview.UpdateOne(ctx, bson.M{"_id": token}, update, opts); err != nil {
		return fmt.Errorf("failed to save grades overview: %w", err)
	}
	return nil
}

// FindGradesOverviewByToken retrieves the stored overview for the token.
func (r *MongoGradeRepo) FindGradesOverviewByToken(ctx context.Context, token string) ([]models.GradeOverview, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Grades []models.GradeOverview `bson:"grades"`
	}
	if err := r.overview.FindOne(ctx, bson.M{"_id": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrDataIsEmpty
		}
		return nil, fmt.Errorf("failed to fetch grades overview: %w", err)
	}
	return doc.Grades, nil
}

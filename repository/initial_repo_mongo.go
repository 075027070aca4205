package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

type MongoInitialRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoInitialRepo(db *mongo.Client, database string) *MongoInitialRepo {
	if database == "" {
		database = DefaultMongoDatabase
	}
	return &MongoInitialRepo{DB: db, Database: database}
}

func (r *MongoInitialRepo) SaveInitial(ctx context.Context, initial *models.InitialSetup) error {
	if initial.CreatedAt.IsZero() {
		initial.CreatedAt = time.Now().UTC()
	}
	if initial.ID == 0 {
		initial.ID = initial.CreatedAt.UnixNano()
	}
	_, err := r.DB.Database(r.Database).Collection("initial_setup").
		ReplaceOne(ctx, bson.M{"_id": initial.ID}, initial, options.Replace().SetUpsert(true))
	return err
}

// GetInitial returns the most recent profile, or nil when none is saved.
func (r *MongoInitialRepo) GetInitial(ctx context.Context) (*models.InitialSetup, error) {
	var initial models.InitialSetup
	err := r.DB.Database(r.Database).Collection("initial_setup").
		FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).
		Decode(&initial)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &initial, nil
}

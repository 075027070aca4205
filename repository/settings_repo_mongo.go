package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSettingsRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoSettingsRepo(db *mongo.Client, database string) *MongoSettingsRepo {
	if database == "" {
		database = DefaultMongoDatabase
	}
	return &MongoSettingsRepo{DB: db, Database: database}
}

type settingDoc struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (r *MongoSettingsRepo) collection() *mongo.Collection {
	return r.DB.Database(r.Database).Collection("report_setting")
}

func (r *MongoSettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var doc settingDoc
	err := r.collection().FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Value, true, nil
}

func (r *MongoSettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value, "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

// DefaultMongoDatabase is used when no database name is configured.
const DefaultMongoDatabase = "zms"

type MongoConsignmentRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoConsignmentRepo(db *mongo.Client, database string) *MongoConsignmentRepo {
	if database == "" {
		database = DefaultMongoDatabase
	}
	return &MongoConsignmentRepo{DB: db, Database: database}
}

func (r *MongoConsignmentRepo) collection() *mongo.Collection {
	return r.DB.Database(r.Database).Collection("consignment")
}

// CreateConsignment stores the consignment with its items embedded.
func (r *MongoConsignmentRepo) CreateConsignment(ctx context.Context, c *models.ConsignmentRecord) error {
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection().InsertOne(ctx, c)
	return err
}

func (r *MongoConsignmentRepo) GetAllConsignment(ctx context.Context, page, pageSize int) ([]models.ConsignmentRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset(page, pageSize))).
		SetLimit(int64(pageSize))

	cur, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ConsignmentRecord
	for cur.Next(ctx) {
		var c models.ConsignmentRecord
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

type MongoPaymentRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoPaymentRepo(db *mongo.Client, database string) *MongoPaymentRepo {
	if database == "" {
		database = DefaultMongoDatabase
	}
	return &MongoPaymentRepo{DB: db, Database: database}
}

func (r *MongoPaymentRepo) collection() *mongo.Collection {
	return r.DB.Database(r.Database).Collection("payment_abl")
}

func (r *MongoPaymentRepo) CreatePayment(ctx context.Context, p *models.PaymentRecord) error {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection().InsertOne(ctx, p)
	return err
}

func (r *MongoPaymentRepo) GetAllPaymentABL(ctx context.Context, page, pageSize int) ([]models.PaymentRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset(page, pageSize))).
		SetLimit(int64(pageSize))

	cur, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PaymentRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

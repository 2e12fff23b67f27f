package repository

import (
	"context"
	"time"

	"github.com/saikrishna7004/campus-360-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepository stores one cart document per user.
type CartRepository interface {
	// Replace overwrites items and documents wholesale, creating the cart if needed.
	Replace(ctx context.Context, user primitive.ObjectID, items []models.CartItem, documents []models.CartDocument, at time.Time) error
	FindByUser(ctx context.Context, user primitive.ObjectID) (*models.Cart, error)
}

type MongoCartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{collection: db.Collection(CartsCollection)}
}

func (r *MongoCartRepository) Replace(ctx context.Context, user primitive.ObjectID, items []models.CartItem, documents []models.CartDocument, at time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"items":     items,
			"documents": documents,
			"updatedAt": at,
		},
		"$setOnInsert": bson.M{
			"user":      user,
			"createdAt": at,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"user": user}, update, options.Update().SetUpsert(true))
	return translate(err)
}

func (r *MongoCartRepository) FindByUser(ctx context.Context, user primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.collection.FindOne(ctx, bson.M{"user": user}).Decode(&cart); err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

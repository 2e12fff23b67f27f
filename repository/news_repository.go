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

type NewsRepository interface {
	FindActive(ctx context.Context) ([]models.News, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.News, error)
	Create(ctx context.Context, news *models.News) error
	Replace(ctx context.Context, news *models.News) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// ClearBanners unsets the banner flag on every item except keep.
	ClearBanners(ctx context.Context, keep primitive.ObjectID, at time.Time) error
}

type MongoNewsRepository struct {
	collection *mongo.Collection
}

func NewNewsRepository(db *mongo.Database) *MongoNewsRepository {
	return &MongoNewsRepository{collection: db.Collection(NewsCollection)}
}

func (r *MongoNewsRepository) FindActive(ctx context.Context) ([]models.News, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.News{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoNewsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.News, error) {
	var item models.News
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *MongoNewsRepository) Create(ctx context.Context, news *models.News) error {
	if news.ID.IsZero() {
		news.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, news)
	return translate(err)
}

func (r *MongoNewsRepository) Replace(ctx context.Context, news *models.News) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": news.ID}, news)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoNewsRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoNewsRepository) ClearBanners(ctx context.Context, keep primitive.ObjectID, at time.Time) error {
	filter := bson.M{"isBanner": true, "_id": bson.M{"$ne": keep}}
	update := bson.M{"$set": bson.M{"isBanner": false, "updatedAt": at}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

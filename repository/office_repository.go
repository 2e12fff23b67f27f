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

type OfficeRequestRepository interface {
	Create(ctx context.Context, req *models.OfficeRequest) error
	FindPending(ctx context.Context, userID, requestType string) (*models.OfficeRequest, error)
	FindByUser(ctx context.Context, userID string) ([]models.OfficeRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OfficeRequestStatus, at time.Time) (*models.OfficeRequest, error)
}

type MongoOfficeRequestRepository struct {
	collection *mongo.Collection
}

func NewOfficeRequestRepository(db *mongo.Database) *MongoOfficeRequestRepository {
	return &MongoOfficeRequestRepository{collection: db.Collection(OfficeRequestsCollection)}
}

func (r *MongoOfficeRequestRepository) Create(ctx context.Context, req *models.OfficeRequest) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, req)
	return translate(err)
}

func (r *MongoOfficeRequestRepository) FindPending(ctx context.Context, userID, requestType string) (*models.OfficeRequest, error) {
	filter := bson.M{"userId": userID, "type": requestType, "status": models.OfficePending}
	var req models.OfficeRequest
	if err := r.collection.FindOne(ctx, filter).Decode(&req); err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *MongoOfficeRequestRepository) FindByUser(ctx context.Context, userID string) ([]models.OfficeRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reqs := []models.OfficeRequest{}
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *MongoOfficeRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OfficeRequestStatus, at time.Time) (*models.OfficeRequest, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": at}}

	var req models.OfficeRequest
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&req); err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

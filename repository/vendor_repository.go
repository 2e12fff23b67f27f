package repository

import (
	"context"
	"time"

	"github.com/saikrishna7004/campus-360-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VendorRepository stores outlet availability.
type VendorRepository interface {
	FindByType(ctx context.Context, vendorType models.VendorType) (*models.Vendor, error)
	// FindOrCreate returns the outlet record, creating it offline when absent.
	FindOrCreate(ctx context.Context, vendorType models.VendorType) (*models.Vendor, error)
	SetAvailability(ctx context.Context, vendorType models.VendorType, available bool) (*models.Vendor, error)
}

type MongoVendorRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewVendorRepository(db *mongo.Database) *MongoVendorRepository {
	return &MongoVendorRepository{collection: db.Collection(VendorsCollection), now: time.Now}
}

func (r *MongoVendorRepository) FindByType(ctx context.Context, vendorType models.VendorType) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.collection.FindOne(ctx, bson.M{"type": vendorType}).Decode(&vendor); err != nil {
		return nil, translate(err)
	}
	return &vendor, nil
}

func (r *MongoVendorRepository) FindOrCreate(ctx context.Context, vendorType models.VendorType) (*models.Vendor, error) {
	now := r.now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"isAvailable": false,
		"createdAt":   now,
		"updatedAt":   now,
	}}
	return r.upsert(ctx, vendorType, update)
}

func (r *MongoVendorRepository) SetAvailability(ctx context.Context, vendorType models.VendorType, available bool) (*models.Vendor, error) {
	now := r.now().UTC()
	update := bson.M{
		"$set":         bson.M{"isAvailable": available, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	return r.upsert(ctx, vendorType, update)
}

func (r *MongoVendorRepository) upsert(ctx context.Context, vendorType models.VendorType, update bson.M) (*models.Vendor, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var vendor models.Vendor
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"type": vendorType}, update, opts).Decode(&vendor); err != nil {
		return nil, translate(err)
	}
	return &vendor, nil
}

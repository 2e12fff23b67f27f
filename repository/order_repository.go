package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/saikrishna7004/campus-360-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Page bounds a listing. Limit 0 means unbounded.
type Page struct {
	Skip  int64
	Limit int64
}

// OrderRepository defines the data access used by the order and analytics services.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	// FindByRef resolves either a document _id (hex) or an ORD… order id.
	FindByRef(ctx context.Context, ref string) (*models.Order, error)
	Find(ctx context.Context, filter models.OrderFilter, page Page) ([]models.Order, error)
	Count(ctx context.Context, filter models.OrderFilter) (int64, error)
	Summarize(ctx context.Context, filter models.OrderFilter) (models.HistorySummary, error)
	// SumSales totals non-cancelled orders matching filter.
	SumSales(ctx context.Context, filter models.OrderFilter) (float64, error)
	// UpdateStatus sets the status; when from is non-nil the write only applies if the
	// stored status still equals *from. ErrNotFound means nothing matched.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from *models.OrderStatus, to models.OrderStatus, at time.Time) (*models.Order, error)
}

type MongoOrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{collection: db.Collection(OrdersCollection)}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, order)
	return translate(err)
}

func (r *MongoOrderRepository) FindByRef(ctx context.Context, ref string) (*models.Order, error) {
	filter := bson.M{"orderId": ref}
	if oid, err := primitive.ObjectIDFromHex(ref); err == nil {
		filter = bson.M{"_id": oid}
	}

	var order models.Order
	if err := r.collection.FindOne(ctx, filter).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *MongoOrderRepository) Find(ctx context.Context, filter models.OrderFilter, page Page) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if page.Skip > 0 {
		opts.SetSkip(page.Skip)
	}
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}

	cursor, err := r.collection.Find(ctx, orderFilterDoc(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoOrderRepository) Count(ctx context.Context, filter models.OrderFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, orderFilterDoc(filter))
}

func (r *MongoOrderRepository) Summarize(ctx context.Context, filter models.OrderFilter) (models.HistorySummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: orderFilterDoc(filter)}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalOrders":  bson.M{"$sum": 1},
			"totalRevenue": bson.M{"$sum": "$totalAmount"},
		}}},
	}

	var rows []struct {
		TotalOrders  int64   `bson:"totalOrders"`
		TotalRevenue float64 `bson:"totalRevenue"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return models.HistorySummary{}, err
	}

	var summary models.HistorySummary
	if len(rows) > 0 {
		summary.TotalOrders = rows[0].TotalOrders
		summary.TotalRevenue = rows[0].TotalRevenue
		if summary.TotalOrders > 0 {
			summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
		}
	}
	return summary, nil
}

func (r *MongoOrderRepository) SumSales(ctx context.Context, filter models.OrderFilter) (float64, error) {
	match := orderFilterDoc(filter)
	if _, ok := match["status"]; !ok {
		match["status"] = bson.M{"$ne": models.StatusCancelled}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalAmount"}}}},
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from *models.OrderStatus, to models.OrderStatus, at time.Time) (*models.Order, error) {
	filter := bson.M{"_id": id}
	if from != nil {
		filter["status"] = *from
	}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *MongoOrderRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("aggregate orders: %w", err)
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// orderFilterDoc translates an OrderFilter into a query document.
func orderFilterDoc(f models.OrderFilter) bson.M {
	doc := bson.M{}
	if f.User != nil {
		doc["user"] = *f.User
	}
	if f.Vendor != "" {
		doc["vendor"] = f.Vendor
	}
	switch len(f.Statuses) {
	case 0:
	case 1:
		doc["status"] = f.Statuses[0]
	default:
		doc["status"] = bson.M{"$in": f.Statuses}
	}
	if f.UpdatedAfter != nil {
		doc["updatedAt"] = bson.M{"$gt": *f.UpdatedAfter}
	}
	if f.CreatedFrom != nil || f.CreatedBefore != nil {
		created := bson.M{}
		if f.CreatedFrom != nil {
			created["$gte"] = *f.CreatedFrom
		}
		if f.CreatedBefore != nil {
			created["$lt"] = *f.CreatedBefore
		}
		doc["createdAt"] = created
	}
	return doc
}

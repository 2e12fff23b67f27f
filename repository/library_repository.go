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

type BookRepository interface {
	FindAll(ctx context.Context) ([]models.Book, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// TakeCopy decrements the count only while it is positive; false means none left.
	TakeCopy(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error)
	ReturnCopy(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

type BookTrackRepository interface {
	CountActive(ctx context.Context, user primitive.ObjectID) (int64, error)
	FindActive(ctx context.Context, user, book primitive.ObjectID) (*models.BookTrack, error)
	ListActive(ctx context.Context, user primitive.ObjectID) ([]models.BookTrack, error)
	Create(ctx context.Context, track *models.BookTrack) error
	MarkReturned(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.BookTrack, error)
}

type MongoBookRepository struct {
	collection *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *MongoBookRepository {
	return &MongoBookRepository{collection: db.Collection(BooksCollection)}
}

func (r *MongoBookRepository) FindAll(ctx context.Context) ([]models.Book, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoBookRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&book); err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

func (r *MongoBookRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Book, error) {
	if len(ids) == 0 {
		return []models.Book{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoBookRepository) Create(ctx context.Context, book *models.Book) error {
	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, book)
	return translate(err)
}

func (r *MongoBookRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookRepository) TakeCopy(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	filter := bson.M{"_id": id, "count": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"count": -1}, "$set": bson.M{"updatedAt": at}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *MongoBookRepository) ReturnCopy(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	update := bson.M{"$inc": bson.M{"count": 1}, "$set": bson.M{"updatedAt": at}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *MongoBookRepository) find(ctx context.Context, filter bson.M) ([]models.Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

type MongoBookTrackRepository struct {
	collection *mongo.Collection
}

func NewBookTrackRepository(db *mongo.Database) *MongoBookTrackRepository {
	return &MongoBookTrackRepository{collection: db.Collection(BookTracksCollection)}
}

func activeBorrows(user primitive.ObjectID) bson.M {
	return bson.M{"userId": user, "returnDate": nil}
}

func (r *MongoBookTrackRepository) CountActive(ctx context.Context, user primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, activeBorrows(user))
}

func (r *MongoBookTrackRepository) FindActive(ctx context.Context, user, book primitive.ObjectID) (*models.BookTrack, error) {
	filter := activeBorrows(user)
	filter["bookId"] = book

	var track models.BookTrack
	if err := r.collection.FindOne(ctx, filter).Decode(&track); err != nil {
		return nil, translate(err)
	}
	return &track, nil
}

func (r *MongoBookTrackRepository) ListActive(ctx context.Context, user primitive.ObjectID) ([]models.BookTrack, error) {
	opts := options.Find().SetSort(bson.D{{Key: "borrowedDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, activeBorrows(user), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tracks := []models.BookTrack{}
	if err := cursor.All(ctx, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *MongoBookTrackRepository) Create(ctx context.Context, track *models.BookTrack) error {
	if track.ID.IsZero() {
		track.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, track)
	return translate(err)
}

func (r *MongoBookTrackRepository) MarkReturned(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.BookTrack, error) {
	filter := bson.M{"_id": id, "returnDate": nil}
	update := bson.M{"$set": bson.M{"returnDate": at, "updatedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var track models.BookTrack
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&track); err != nil {
		return nil, translate(err)
	}
	return &track, nil
}

package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// Collection names.
const (
	OrdersCollection         = "orders"
	CartsCollection          = "carts"
	VendorsCollection        = "vendors"
	UsersCollection          = "users"
	ProductsCollection       = "products"
	NewsCollection           = "news"
	BooksCollection          = "books"
	BookTracksCollection     = "booktracks"
	OfficeRequestsCollection = "officerequests"
)

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxActiveBorrows is how many unreturned books a user may hold.
const MaxActiveBorrows = 2

type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Author      string             `bson:"author" json:"author"`
	Image       string             `bson:"image" json:"image"`
	Count       int                `bson:"count" json:"count"`
	PdfURL      string             `bson:"pdfUrl,omitempty" json:"pdfUrl,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BookTrack records one borrow; ReturnDate is nil while the book is out.
type BookTrack struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	BookID       primitive.ObjectID `bson:"bookId" json:"bookId"`
	BorrowedDate time.Time          `bson:"borrowedDate" json:"borrowedDate"`
	ReturnDate   *time.Time         `bson:"returnDate" json:"returnDate"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BorrowedBook is an active borrow with its book populated.
type BorrowedBook struct {
	BookTrack
	Book *Book `json:"book,omitempty"`
}

type BookRequest struct {
	Title       string   `json:"title" binding:"required"`
	Author      string   `json:"author" binding:"required"`
	Image       string   `json:"image" binding:"required"`
	Description string   `json:"description"`
	Count       int      `json:"count" binding:"gte=0"`
	PdfURL      string   `json:"pdfUrl"`
	Tags        []string `json:"tags"`
}

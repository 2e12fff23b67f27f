package services

import (
	"context"
	"time"

	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/common/logger"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// LibraryService lends physical books.
type LibraryService interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	AddBook(ctx context.Context, req *models.BookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, id string) error
	Borrow(ctx context.Context, p auth.Principal, bookID string) (*models.BookTrack, error)
	Return(ctx context.Context, p auth.Principal, bookID string) (*models.BookTrack, error)
	Borrowed(ctx context.Context, p auth.Principal) ([]models.BorrowedBook, error)
}

type libraryServiceImpl struct {
	books  repository.BookRepository
	tracks repository.BookTrackRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewLibraryService(books repository.BookRepository, tracks repository.BookTrackRepository, logger *zap.Logger) LibraryService {
	return &libraryServiceImpl{books: books, tracks: tracks, now: time.Now, logger: logger}
}

func (s *libraryServiceImpl) ListBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.books.FindAll(ctx)
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch books", err)
	}
	return books, nil
}

func (s *libraryServiceImpl) AddBook(ctx context.Context, req *models.BookRequest) (*models.Book, error) {
	now := s.now().UTC()
	book := &models.Book{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		Image:       req.Image,
		Count:       req.Count,
		PdfURL:      req.PdfURL,
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, apperrors.ServerError("Failed to add book", err)
	}
	return book, nil
}

func (s *libraryServiceImpl) DeleteBook(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, "book")
	if err != nil {
		return err
	}
	if err := s.books.Delete(ctx, oid); err != nil {
		return notFoundOr(err, "Book not found", "Failed to delete book")
	}
	return nil
}

// Borrow takes one copy of a book for the caller, up to models.MaxActiveBorrows at a time.
func (s *libraryServiceImpl) Borrow(ctx context.Context, p auth.Principal, bookID string) (*models.BookTrack, error) {
	userID, err := principalUserID(p)
	if err != nil {
		return nil, err
	}
	oid, err := parseObjectID(bookID, "book")
	if err != nil {
		return nil, err
	}

	active, err := s.tracks.CountActive(ctx, userID)
	if err != nil {
		return nil, apperrors.ServerError("Failed to borrow book", err)
	}
	if active >= models.MaxActiveBorrows {
		return nil, apperrors.InvalidRequest("User cannot borrow more than 2 books")
	}

	if _, err := s.books.FindByID(ctx, oid); err != nil {
		return nil, notFoundOr(err, "Book not found", "Failed to borrow book")
	}

	now := s.now().UTC()
	taken, err := s.books.TakeCopy(ctx, oid, now)
	if err != nil {
		return nil, apperrors.ServerError("Failed to borrow book", err)
	}
	if !taken {
		return nil, apperrors.InvalidRequest("Book not available")
	}

	track := &models.BookTrack{
		UserID:       userID,
		BookID:       oid,
		BorrowedDate: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.tracks.Create(ctx, track); err != nil {
		if rerr := s.books.ReturnCopy(ctx, oid, now); rerr != nil {
			logger.Error(ctx, s.logger, "Failed to restore book count", rerr, zap.String("book_id", bookID))
		}
		return nil, apperrors.ServerError("Failed to borrow book", err)
	}

	logger.Info(ctx, s.logger, "Book borrowed", zap.String("book_id", bookID), zap.String("user_id", p.ID))
	return track, nil
}

func (s *libraryServiceImpl) Return(ctx context.Context, p auth.Principal, bookID string) (*models.BookTrack, error) {
	userID, err := principalUserID(p)
	if err != nil {
		return nil, err
	}
	oid, err := parseObjectID(bookID, "book")
	if err != nil {
		return nil, err
	}

	track, err := s.tracks.FindActive(ctx, userID, oid)
	if err != nil {
		return nil, notFoundOr(err, "Borrow record not found", "Failed to return book")
	}

	now := s.now().UTC()
	returned, err := s.tracks.MarkReturned(ctx, track.ID, now)
	if err != nil {
		return nil, notFoundOr(err, "Borrow record not found", "Failed to return book")
	}
	if err := s.books.ReturnCopy(ctx, oid, now); err != nil {
		return nil, apperrors.ServerError("Failed to return book", err)
	}

	logger.Info(ctx, s.logger, "Book returned", zap.String("book_id", bookID), zap.String("user_id", p.ID))
	return returned, nil
}

// Borrowed lists the caller's unreturned books with book details.
func (s *libraryServiceImpl) Borrowed(ctx context.Context, p auth.Principal) ([]models.BorrowedBook, error) {
	userID, err := principalUserID(p)
	if err != nil {
		return nil, err
	}
	tracks, err := s.tracks.ListActive(ctx, userID)
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch borrowed books", err)
	}

	ids := make([]primitive.ObjectID, 0, len(tracks))
	for _, t := range tracks {
		ids = append(ids, t.BookID)
	}
	books, err := s.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.ServerError("Failed to fetch borrowed books", err)
	}
	byID := make(map[primitive.ObjectID]*models.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}

	borrowed := make([]models.BorrowedBook, 0, len(tracks))
	for _, t := range tracks {
		borrowed = append(borrowed, models.BorrowedBook{BookTrack: t, Book: byID[t.BookID]})
	}
	return borrowed, nil
}

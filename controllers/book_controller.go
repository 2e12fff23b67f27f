package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/services"
)

// BookController handles the library catalog and borrowing.
type BookController struct {
	libraryService services.LibraryService
}

func NewBookController(libraryService services.LibraryService) *BookController {
	return &BookController{libraryService: libraryService}
}

// ListBooks handles GET /books.
func (bc *BookController) ListBooks(ctx *gin.Context) {
	books, err := bc.libraryService.ListBooks(ctx.Request.Context())
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, books)
}

// AddBook handles POST /books (admin only).
func (bc *BookController) AddBook(ctx *gin.Context) {
	var req models.BookRequest
	if !bindJSON(ctx, &req) {
		return
	}
	book, err := bc.libraryService.AddBook(ctx.Request.Context(), &req)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, book)
}

// DeleteBook handles DELETE /books/:id (admin only).
func (bc *BookController) DeleteBook(ctx *gin.Context) {
	if err := bc.libraryService.DeleteBook(ctx.Request.Context(), ctx.Param("id")); err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

// Borrow handles POST /books/:id/borrow.
func (bc *BookController) Borrow(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	track, err := bc.libraryService.Borrow(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, track)
}

// Return handles POST /books/:id/return.
func (bc *BookController) Return(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	track, err := bc.libraryService.Return(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, track)
}

// Borrowed handles GET /books/borrowed.
func (bc *BookController) Borrowed(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	books, err := bc.libraryService.Borrowed(ctx.Request.Context(), p)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, books)
}

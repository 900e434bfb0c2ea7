package repository

import (
	"context"

	"github.com/Prograto/BookReviewsPlatform/internal/model"
)

// BookRepository defines data access for books using SQL queries only.
// No business logic here — strictly persistence operations.
type BookRepository interface {
	// Create inserts a new book record.
	// The caller provides required fields (ID, OwnerID, CreatedAt, UpdatedAt).
	// Returns the stored book (may include values set by the DB).
	Create(ctx context.Context, book *model.Book) (*model.Book, error)

	// FindByID returns a book by its ID.
	FindByID(ctx context.Context, id string) (*model.Book, error)

	// List returns one page of books, newest first, each joined to its
	// reviews for average rating and review count, plus the total book count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.BookSummary], error)

	// Update overwrites the mutable columns of an existing book.
	// Returns sql.ErrNoRows if the book does not exist.
	Update(ctx context.Context, book *model.Book) (*model.Book, error)

	// DeleteWithReviews removes the book and every review referencing it in
	// a single transaction, so a crash cannot leave half-deleted state.
	// Returns sql.ErrNoRows if the book does not exist.
	DeleteWithReviews(ctx context.Context, id string) error
}

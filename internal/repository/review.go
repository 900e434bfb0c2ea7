package repository

import (
	"context"

	"github.com/Prograto/BookReviewsPlatform/internal/model"
)

// ReviewRepository defines data access for reviews using SQL queries only.
type ReviewRepository interface {
	// Upsert inserts the review, or overwrites rating/comment/user_name when
	// a review by the same user for the same book already exists. The unique
	// (book_id, user_id) index makes this atomic: two concurrent submissions
	// can never produce duplicate rows. Returns ErrBookMissing when the
	// referenced book does not exist.
	Upsert(ctx context.Context, review *model.Review) (*model.Review, error)

	// FindByID returns a review by its ID.
	FindByID(ctx context.Context, id string) (*model.Review, error)

	// ListByBook returns all reviews for a book, newest first.
	ListByBook(ctx context.Context, bookID string) ([]model.Review, error)

	// Update overwrites rating and comment of an existing review.
	// Returns sql.ErrNoRows if the review does not exist.
	Update(ctx context.Context, review *model.Review) (*model.Review, error)

	// Delete removes a review by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

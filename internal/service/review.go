package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Prograto/BookReviewsPlatform/internal/model"
	"github.com/Prograto/BookReviewsPlatform/internal/repository"
)

// ReviewInput carries the fields a caller may set when submitting a review.
type ReviewInput struct {
	BookID  string
	Rating  float64
	Comment string
}

// ReviewUpdate carries the mutable review fields; nil means "leave
// untouched".
type ReviewUpdate struct {
	Rating  *float64
	Comment *string
}

// ReviewService defines the use cases for handling reviews.
type ReviewService interface {
	// Submit creates the caller's review for a book, or overwrites their
	// existing one. Exactly one review per (book, user) pair can result.
	// Returns ErrNotFound when the book does not exist.
	Submit(ctx context.Context, principal model.Principal, in ReviewInput) (*model.Review, error)

	// Update changes rating and/or comment; only the author may call it.
	Update(ctx context.Context, principal model.Principal, id string, in ReviewUpdate) (*model.Review, error)

	// Delete removes a review; only the author may call it.
	Delete(ctx context.Context, principal model.Principal, id string) error
}

type reviewService struct {
	reviews repository.ReviewRepository
}

// NewReviewService constructs a new ReviewService.
func NewReviewService(reviews repository.ReviewRepository) ReviewService {
	return &reviewService{reviews: reviews}
}

func (s *reviewService) Submit(ctx context.Context, principal model.Principal, in ReviewInput) (*model.Review, error) {
	now := time.Now().UTC()
	review := &model.Review{
		ID:        uuid.New().String(),
		BookID:    in.BookID,
		UserID:    principal.ID,
		UserName:  principal.DisplayName(),
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The upsert is atomic on (book_id, user_id) and the book_id foreign
	// key stands in for an existence pre-check, so neither concurrent
	// submissions nor a concurrent book delete can slip through.
	stored, err := s.reviews.Upsert(ctx, review)
	if err != nil {
		if errors.Is(err, repository.ErrBookMissing) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return stored, nil
}

func (s *reviewService) Update(ctx context.Context, principal model.Principal, id string, in ReviewUpdate) (*model.Review, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := authorize(principal, review.UserID); err != nil {
		return nil, err
	}

	if in.Rating != nil {
		review.Rating = *in.Rating
	}
	if in.Comment != nil {
		review.Comment = *in.Comment
	}
	review.UpdatedAt = time.Now().UTC()

	stored, err := s.reviews.Update(ctx, review)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return stored, nil
}

func (s *reviewService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := authorize(principal, review.UserID); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}

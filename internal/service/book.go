package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Prograto/BookReviewsPlatform/internal/model"
	"github.com/Prograto/BookReviewsPlatform/internal/repository"
	"github.com/Prograto/BookReviewsPlatform/internal/storage"
)

// BookInput carries the fields a caller may set when creating a book.
type BookInput struct {
	Title       string
	Genre       string
	Image       string
	Description string
	Author      string
	Year        int
}

// BookUpdate carries the allow-listed mutable fields; nil means "leave
// untouched".
type BookUpdate struct {
	Title       *string
	Genre       *string
	Image       *string
	Description *string
	Author      *string
	Year        *int
}

// BookListResult is the listing response shape: one page of books plus
// pagination bookkeeping.
type BookListResult struct {
	Books      []model.BookSummary `json:"books"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
	Total      int                 `json:"total"`
}

// BookService defines the use cases for handling books.
type BookService interface {
	// Create persists a new book with the caller as owner.
	Create(ctx context.Context, principal model.Principal, in BookInput) (*model.Book, error)

	// List returns one page of books with review statistics, newest first.
	// Page and limit floor to 1 (limit defaults to 10 upstream).
	List(ctx context.Context, page, limit int) (*BookListResult, error)

	// Get returns a single book with its reviews, newest first.
	Get(ctx context.Context, id string) (*model.BookDetails, error)

	// Update applies the allow-listed fields; only the owner may call it.
	Update(ctx context.Context, principal model.Principal, id string, in BookUpdate) (*model.Book, error)

	// Delete removes the book and all its reviews; only the owner may call it.
	Delete(ctx context.Context, principal model.Principal, id string) error
}

type bookService struct {
	books   repository.BookRepository
	reviews repository.ReviewRepository
	covers  storage.Storage // nil when cover offload is not configured
}

// NewBookService constructs a new BookService. covers may be nil, in which
// case images are stored inline unchanged.
func NewBookService(books repository.BookRepository, reviews repository.ReviewRepository, covers storage.Storage) BookService {
	return &bookService{books: books, reviews: reviews, covers: covers}
}

func (s *bookService) Create(ctx context.Context, principal model.Principal, in BookInput) (*model.Book, error) {
	image, coverKey, err := s.storeImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	book := &model.Book{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Genre:       in.Genre,
		Image:       image,
		Description: in.Description,
		Author:      in.Author,
		Year:        in.Year,
		OwnerID:     principal.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := s.books.Create(ctx, book)
	if err != nil {
		// Rollback an offloaded cover so the bucket holds no orphans.
		if coverKey != "" {
			if delErr := s.covers.Delete(ctx, coverKey); delErr != nil {
				return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	stored.Image = presentCover(ctx, s.covers, stored.Image)
	return stored, nil
}

func (s *bookService) List(ctx context.Context, page, limit int) (*BookListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	res, err := s.books.List(ctx, repository.PageQuery{Limit: limit, Offset: (page - 1) * limit})
	if err != nil {
		return nil, err
	}

	for i := range res.Items {
		res.Items[i].Image = presentCover(ctx, s.covers, res.Items[i].Image)
	}

	return &BookListResult{
		Books:      res.Items,
		Page:       page,
		TotalPages: (res.Total + limit - 1) / limit,
		Total:      res.Total,
	}, nil
}

func (s *bookService) Get(ctx context.Context, id string) (*model.BookDetails, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reviews, err := s.reviews.ListByBook(ctx, id)
	if err != nil {
		return nil, err
	}

	var avg *float64
	if len(reviews) > 0 {
		var sum float64
		for _, r := range reviews {
			sum += r.Rating
		}
		mean := sum / float64(len(reviews))
		avg = &mean
	}

	book.Image = presentCover(ctx, s.covers, book.Image)
	return &model.BookDetails{
		Book:          *book,
		Reviews:       reviews,
		AverageRating: avg,
		ReviewsCount:  len(reviews),
	}, nil
}

func (s *bookService) Update(ctx context.Context, principal model.Principal, id string, in BookUpdate) (*model.Book, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := authorize(principal, book.OwnerID); err != nil {
		return nil, err
	}

	oldCover := ""
	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Genre != nil {
		book.Genre = *in.Genre
	}
	if in.Image != nil {
		image, coverKey, err := s.storeImage(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		if coverKey != "" && isCoverKey(book.Image) {
			oldCover = book.Image
		}
		book.Image = image
	}
	if in.Description != nil {
		book.Description = *in.Description
	}
	if in.Author != nil {
		book.Author = *in.Author
	}
	if in.Year != nil {
		book.Year = *in.Year
	}
	book.UpdatedAt = time.Now().UTC()

	stored, err := s.books.Update(ctx, book)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Replaced cover objects are removed best effort; a leftover object is
	// unreferenced and harmless.
	if oldCover != "" {
		_ = s.covers.Delete(ctx, oldCover)
	}

	stored.Image = presentCover(ctx, s.covers, stored.Image)
	return stored, nil
}

func (s *bookService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := authorize(principal, book.OwnerID); err != nil {
		return err
	}

	if err := s.books.DeleteWithReviews(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if s.covers != nil && isCoverKey(book.Image) {
		_ = s.covers.Delete(ctx, book.Image)
	}
	return nil
}

// storeImage offloads a base64 data URL to object storage when configured.
// It returns the value to persist and, when an upload happened, the object
// key for rollback.
func (s *bookService) storeImage(ctx context.Context, image string) (stored, coverKey string, err error) {
	if s.covers == nil {
		return image, "", nil
	}
	contentType, data, ok := parseDataURL(image)
	if !ok {
		return image, "", nil
	}
	key, err := offloadCover(ctx, s.covers, contentType, data)
	if err != nil {
		return "", "", err
	}
	return key, key, nil
}

func isCoverKey(image string) bool {
	return strings.HasPrefix(image, coverPrefix) && len(image) > len(coverPrefix)
}

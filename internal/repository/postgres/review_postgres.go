package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Prograto/BookReviewsPlatform/internal/model"
	"github.com/Prograto/BookReviewsPlatform/internal/repository"
)

// pgForeignKeyViolation is the PostgreSQL error code raised when an insert
// references a missing book.
const pgForeignKeyViolation = "23503"

// ReviewPostgres is a PostgreSQL implementation of repository.ReviewRepository.
type ReviewPostgres struct {
	db *sql.DB
}

// NewReviewPostgres creates a new ReviewPostgres repository.
func NewReviewPostgres(db *sql.DB) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

var _ repository.ReviewRepository = (*ReviewPostgres)(nil)

const reviewColumns = `id, book_id, user_id, user_name, rating, comment, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }, rv *model.Review) error {
	return row.Scan(
		&rv.ID,
		&rv.BookID,
		&rv.UserID,
		&rv.UserName,
		&rv.Rating,
		&rv.Comment,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
}

// Upsert inserts the review or, when the (book_id, user_id) pair already
// exists, overwrites its rating/comment/user_name in the same statement.
func (r *ReviewPostgres) Upsert(ctx context.Context, review *model.Review) (*model.Review, error) {
	const q = `
		INSERT INTO reviews (id, book_id, user_id, user_name, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (book_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment,
		              user_name = EXCLUDED.user_name, updated_at = EXCLUDED.updated_at
		RETURNING ` + reviewColumns
	row := r.db.QueryRowContext(ctx, q,
		review.ID,
		review.BookID,
		review.UserID,
		review.UserName,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	var out model.Review
	if err := scanReview(row, &out); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, repository.ErrBookMissing
		}
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single review by its ID.
func (r *ReviewPostgres) FindByID(ctx context.Context, id string) (*model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	var rv model.Review
	if err := scanReview(r.db.QueryRowContext(ctx, q, id), &rv); err != nil {
		return nil, err
	}
	return &rv, nil
}

// ListByBook returns all reviews for a book sorted newest-first.
func (r *ReviewPostgres) ListByBook(ctx context.Context, bookID string) ([]model.Review, error) {
	const q = `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE book_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, err
		}
		items = append(items, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update overwrites rating and comment of an existing review.
func (r *ReviewPostgres) Update(ctx context.Context, review *model.Review) (*model.Review, error) {
	const q = `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + reviewColumns
	row := r.db.QueryRowContext(ctx, q,
		review.ID,
		review.Rating,
		review.Comment,
		review.UpdatedAt,
	)
	var out model.Review
	if err := scanReview(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a review by ID. It does not return an error if the row does not exist.
func (r *ReviewPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM reviews WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

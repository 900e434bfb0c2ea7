package postgres

import (
	"context"
	"database/sql"

	"github.com/Prograto/BookReviewsPlatform/internal/model"
	"github.com/Prograto/BookReviewsPlatform/internal/repository"
)

// BookPostgres is a PostgreSQL implementation of repository.BookRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type BookPostgres struct {
	db *sql.DB
}

// NewBookPostgres creates a new BookPostgres repository.
func NewBookPostgres(db *sql.DB) *BookPostgres {
	return &BookPostgres{db: db}
}

var _ repository.BookRepository = (*BookPostgres)(nil)

const bookColumns = `id, title, genre, image, description, author, year, owner_id, created_at, updated_at`

func scanBook(row interface{ Scan(...any) error }, b *model.Book) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.Genre,
		&b.Image,
		&b.Description,
		&b.Author,
		&b.Year,
		&b.OwnerID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

// Create inserts a new book row and returns the stored record.
func (r *BookPostgres) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	const q = `
		INSERT INTO books (id, title, genre, image, description, author, year, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + bookColumns
	row := r.db.QueryRowContext(ctx, q,
		book.ID,
		book.Title,
		book.Genre,
		book.Image,
		book.Description,
		book.Author,
		book.Year,
		book.OwnerID,
		book.CreatedAt,
		book.UpdatedAt,
	)
	var out model.Book
	if err := scanBook(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single book by its ID.
func (r *BookPostgres) FindByID(ctx context.Context, id string) (*model.Book, error) {
	const q = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	var b model.Book
	if err := scanBook(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns one page of books joined to their reviews. The LEFT JOIN
// keeps books with zero reviews; their average scans as NULL and stays nil.
func (r *BookPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.BookSummary], error) {
	const qCount = `SELECT COUNT(*) FROM books`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT b.id, b.title, b.genre, b.image, b.description, b.author, b.year, b.owner_id, b.created_at, b.updated_at,
		       AVG(r.rating), COUNT(r.id)
		FROM books b
		LEFT JOIN reviews r ON r.book_id = b.id
		GROUP BY b.id
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.BookSummary, 0)
	for rows.Next() {
		var s model.BookSummary
		var avg sql.NullFloat64
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Genre,
			&s.Image,
			&s.Description,
			&s.Author,
			&s.Year,
			&s.OwnerID,
			&s.CreatedAt,
			&s.UpdatedAt,
			&avg,
			&s.ReviewsCount,
		); err != nil {
			return nil, err
		}
		if avg.Valid {
			s.AverageRating = &avg.Float64
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.BookSummary]{
		Items: items,
		Total: total,
	}, nil
}

// Update overwrites the mutable columns of a book.
func (r *BookPostgres) Update(ctx context.Context, book *model.Book) (*model.Book, error) {
	const q = `
		UPDATE books
		SET title = $2, genre = $3, image = $4, description = $5, author = $6, year = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + bookColumns
	row := r.db.QueryRowContext(ctx, q,
		book.ID,
		book.Title,
		book.Genre,
		book.Image,
		book.Description,
		book.Author,
		book.Year,
		book.UpdatedAt,
	)
	var out model.Book
	if err := scanBook(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWithReviews deletes the book's reviews and the book itself inside
// one transaction.
func (r *BookPostgres) DeleteWithReviews(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE book_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

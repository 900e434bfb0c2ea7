package model

import "time"

// Book represents a catalog entry owned by the user who created it.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre,omitempty"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	Year        int       `json:"year,omitempty"`
	OwnerID     string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookSummary is a Book enriched with review statistics, as produced by the
// listing aggregation. AverageRating is nil when the book has no reviews.
type BookSummary struct {
	Book
	AverageRating *float64 `json:"averageRating"`
	ReviewsCount  int      `json:"reviewsCount"`
}

// BookDetails is a single book together with its reviews, newest first.
type BookDetails struct {
	Book
	Reviews       []Review `json:"reviews"`
	AverageRating *float64 `json:"averageRating"`
	ReviewsCount  int      `json:"reviewsCount"`
}

package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/Prograto/BookReviewsPlatform/internal/http/middleware"
	"github.com/Prograto/BookReviewsPlatform/internal/service"
	"github.com/Prograto/BookReviewsPlatform/internal/validation"
)

// RegisterRoutes wires every HTTP endpoint onto the app. Read endpoints
// are public; mutations sit behind the bearer-token gate.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	verifier middleware.TokenVerifier,
	books service.BookService,
	reviews service.ReviewService,
	v *validation.Validator,
) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Book Reviews API running")
	})
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	authd := middleware.Auth(verifier)

	api := app.Group("/api")

	api.Get("/books", ListBooks(books))
	api.Get("/books/:id", GetBook(books))
	api.Post("/books", authd, CreateBook(books, v))
	api.Put("/books/:id", authd, UpdateBook(books))
	api.Delete("/books/:id", authd, DeleteBook(books))

	api.Post("/reviews", authd, CreateReview(reviews, v))
	api.Put("/reviews/:id", authd, UpdateReview(reviews))
	api.Delete("/reviews/:id", authd, DeleteReview(reviews))
}

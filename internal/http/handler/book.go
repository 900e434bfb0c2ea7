package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Prograto/BookReviewsPlatform/internal/http/middleware"
	"github.com/Prograto/BookReviewsPlatform/internal/model"
	"github.com/Prograto/BookReviewsPlatform/internal/service"
	"github.com/Prograto/BookReviewsPlatform/internal/validation"
)

type createBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Genre       string `json:"genre"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Year        int    `json:"year"`
}

// updateBookRequest is the allow-list for book mutation; nil fields are
// left untouched.
type updateBookRequest struct {
	Title       *string `json:"title"`
	Genre       *string `json:"genre"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	Author      *string `json:"author"`
	Year        *int    `json:"year"`
}

// principalFromCtx fetches the identity attached by the auth gate. Routes
// using it are always registered behind middleware.Auth.
func principalFromCtx(c *fiber.Ctx) (model.Principal, error) {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return model.Principal{}, writeError(c, fiber.StatusUnauthorized, "NO_TOKEN", "no token")
	}
	return p, nil
}

// CreateBook persists a new book owned by the caller.
func CreateBook(svc service.BookService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := principalFromCtx(c)
		if err != nil {
			return err
		}

		var req createBookRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := v.Validate(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		book, err := svc.Create(c.UserContext(), principal, service.BookInput{
			Title:       req.Title,
			Genre:       req.Genre,
			Image:       req.Image,
			Description: req.Description,
			Author:      req.Author,
			Year:        req.Year,
		})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(book)
	}
}

// ListBooks returns one page of books with review statistics. Page and
// limit floor to 1 when missing or unparsable, limit defaulting to 10.
func ListBooks(svc service.BookService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			page = 1
		}
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			limit = 10
		}

		res, err := svc.List(c.UserContext(), page, limit)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetBook returns one book with its reviews attached.
func GetBook(svc service.BookService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		details, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "book not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(details)
	}
}

// UpdateBook applies allow-listed fields; only the owner may call it.
func UpdateBook(svc service.BookService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := principalFromCtx(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			// A malformed id cannot name an existing book.
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "book not found")
		}

		var req updateBookRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		book, err := svc.Update(c.UserContext(), principal, id, service.BookUpdate{
			Title:       req.Title,
			Genre:       req.Genre,
			Image:       req.Image,
			Description: req.Description,
			Author:      req.Author,
			Year:        req.Year,
		})
		if err != nil {
			return writeBookMutationError(c, err)
		}
		return c.JSON(book)
	}
}

// DeleteBook removes a book and all of its reviews; only the owner may call it.
func DeleteBook(svc service.BookService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := principalFromCtx(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "book not found")
		}

		if err := svc.Delete(c.UserContext(), principal, id); err != nil {
			return writeBookMutationError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Deleted"})
	}
}

func writeBookMutationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "book not found")
	case errors.Is(err, service.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "forbidden")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Prograto/BookReviewsPlatform/internal/service"
	"github.com/Prograto/BookReviewsPlatform/internal/validation"
)

type createReviewRequest struct {
	BookID  string  `json:"bookId" validate:"required"`
	Rating  float64 `json:"rating" validate:"required"`
	Comment string  `json:"comment"`
}

type updateReviewRequest struct {
	Rating  *float64 `json:"rating"`
	Comment *string  `json:"comment"`
}

// CreateReview records the caller's review of a book, replacing any
// earlier review by the same caller.
func CreateReview(svc service.ReviewService, v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := principalFromCtx(c)
		if err != nil {
			return err
		}

		var req createReviewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := v.Validate(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}
		if _, err := uuid.Parse(req.BookID); err != nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "book not found")
		}

		review, err := svc.Submit(c.UserContext(), principal, service.ReviewInput{
			BookID:  req.BookID,
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "book not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(review)
	}
}

// UpdateReview edits the caller's own review.
func UpdateReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := principalFromCtx(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "review not found")
		}

		var req updateReviewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		review, err := svc.Update(c.UserContext(), principal, id, service.ReviewUpdate{
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		if err != nil {
			return writeReviewMutationError(c, err)
		}
		return c.JSON(review)
	}
}

// DeleteReview removes the caller's own review.
func DeleteReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := principalFromCtx(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "review not found")
		}

		if err := svc.Delete(c.UserContext(), principal, id); err != nil {
			return writeReviewMutationError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Deleted"})
	}
}

func writeReviewMutationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "review not found")
	case errors.Is(err, service.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "forbidden")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

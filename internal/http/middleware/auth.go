package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Prograto/BookReviewsPlatform/internal/model"
)

// PrincipalLocalKey is the key under which the authenticated principal is
// stored in Fiber's context locals.
const PrincipalLocalKey = "principal"

// TokenVerifier checks a bearer credential and returns the principal it
// identifies. Implemented by auth.TokenService.
type TokenVerifier interface {
	Verify(token string) (model.Principal, error)
}

// Auth is the authentication gate. It extracts the bearer credential from
// the Authorization header, verifies it, and attaches the decoded principal
// to the request context. Requests without a valid credential never reach
// the handler.
func Auth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return writeAuthError(c, "NO_TOKEN", "no token")
		}

		// The token is the segment after the scheme, e.g. "Bearer <token>".
		parts := strings.SplitN(header, " ", 2)
		if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
			return writeAuthError(c, "MALFORMED_TOKEN", "malformed token")
		}

		principal, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return writeAuthError(c, "INVALID_TOKEN", "invalid or expired token")
		}

		c.Locals(PrincipalLocalKey, principal)
		return c.Next()
	}
}

// PrincipalFromCtx returns the principal stored by Auth, if any.
func PrincipalFromCtx(c *fiber.Ctx) (model.Principal, bool) {
	p, ok := c.Locals(PrincipalLocalKey).(model.Principal)
	return p, ok
}

// writeAuthError mirrors the handler package's error envelope; the gate
// runs before handlers so it writes the response itself.
func writeAuthError(c *fiber.Ctx, code, message string) error {
	rid, _ := c.Locals(RequestIDLocalKey).(string)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"request_id": rid,
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

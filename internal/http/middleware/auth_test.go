package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prograto/BookReviewsPlatform/internal/auth"
	"github.com/Prograto/BookReviewsPlatform/internal/model"
)

func authTestApp(t *testing.T) (*fiber.App, *auth.TokenService) {
	t.Helper()

	svc, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(RequestID())
	app.Get("/protected", Auth(svc), func(c *fiber.Ctx) error {
		p, ok := PrincipalFromCtx(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"id": p.ID, "email": p.Email})
	})
	return app, svc
}

func decodeAuthError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		RequestID string `json:"request_id"`
		Error     struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.RequestID)
	return body.Error.Code
}

func TestAuth(t *testing.T) {
	app, svc := authTestApp(t)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "NO_TOKEN", decodeAuthError(t, resp))
	})

	t.Run("scheme without token segment", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "MALFORMED_TOKEN", decodeAuthError(t, resp))
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := svc.Sign(model.Principal{ID: "user-1", Email: "a@example.com"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token[:len(token)-4]+"dead")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_TOKEN", decodeAuthError(t, resp))
	})

	t.Run("expired token", func(t *testing.T) {
		short, err := auth.NewTokenService("test-secret", time.Millisecond)
		require.NoError(t, err)
		token, err := short.Sign(model.Principal{ID: "user-1"})
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_TOKEN", decodeAuthError(t, resp))
	})

	t.Run("valid token attaches principal", func(t *testing.T) {
		token, err := svc.Sign(model.Principal{ID: "user-1", Email: "a@example.com"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "user-1", body["id"])
		assert.Equal(t, "a@example.com", body["email"])
	})
}

package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobtrack/pkg/auth"
)

const (
	testSecret = "test-secret"
	testIssuer = "jobtrack"
)

func testUser() auth.User {
	return auth.User{
		ID:       uuid.MustParse("3f0a1c2d-4e5b-6a7c-8d9e-0f1a2b3c4d5e"),
		Email:    "alice@example.com",
		Username: "alice",
	}
}

func newProtectedApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/me", NewAuthMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"email":  c.Locals("email"),
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestMiddlewareAcceptsGeneratedToken(t *testing.T) {
	gen := NewGenerator(testSecret, testIssuer, time.Hour)
	token, err := gen.Generate(context.Background(), testUser())
	require.NoError(t, err)

	app := newProtectedApp(testSecret, testIssuer)

	t.Run("bearer prefix", func(t *testing.T) {
		resp := doRequest(t, app, "Bearer "+token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("bare token", func(t *testing.T) {
		resp := doRequest(t, app, token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestMiddlewareRejections(t *testing.T) {
	gen := NewGenerator(testSecret, testIssuer, time.Hour)
	token, err := gen.Generate(context.Background(), testUser())
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		resp := doRequest(t, newProtectedApp(testSecret, testIssuer), "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := doRequest(t, newProtectedApp(testSecret, testIssuer), "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		resp := doRequest(t, newProtectedApp("other-secret", testIssuer), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		resp := doRequest(t, newProtectedApp(testSecret, "someone-else"), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredGen := NewGenerator(testSecret, testIssuer, -time.Minute)
		expired, err := expiredGen.Generate(context.Background(), testUser())
		require.NoError(t, err)
		resp := doRequest(t, newProtectedApp(testSecret, testIssuer), "Bearer "+expired)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestMiddlewareSetsLocals(t *testing.T) {
	gen := NewGenerator(testSecret, testIssuer, time.Hour)
	token, err := gen.Generate(context.Background(), testUser())
	require.NoError(t, err)

	var gotUserID, gotEmail string
	app := fiber.New()
	app.Get("/me", NewAuthMiddleware(testSecret, testIssuer), func(c *fiber.Ctx) error {
		gotUserID, _ = c.Locals("userId").(string)
		gotEmail, _ = c.Locals("email").(string)
		return c.SendStatus(http.StatusOK)
	})

	resp := doRequest(t, app, "Bearer "+token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUser().ID.String(), gotUserID)
	assert.Equal(t, "alice@example.com", gotEmail)
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/voidrp/community-backend/pkg/util"
)

func newTestApp(middleware fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code}})
		},
	})
	app.Get("/whoami", middleware, func(c *fiber.Ctx) error {
		if playerID, ok := PlayerIDFromContext(c); ok {
			return c.SendString(strconv.FormatInt(playerID, 10))
		}
		return c.SendString("anonymous")
	})
	return app
}

func TestAuthMiddlewareHandle(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	token, err := tm.Issue(42)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: "42"},
		{name: "scheme is case-insensitive", header: "bearer " + token, wantStatus: http.StatusOK, wantBody: "42"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
	}

	app := newTestApp(NewAuthMiddleware(tm).Handle)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			if tc.wantBody != "" {
				body := make([]byte, 16)
				n, _ := resp.Body.Read(body)
				assert.Equal(t, tc.wantBody, string(body[:n]))
			}
		})
	}
}

func TestAuthMiddlewareOptional(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	token, err := tm.Issue(42)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantBody string
	}{
		{name: "valid token attaches identity", header: "Bearer " + token, wantBody: "42"},
		{name: "no header proceeds anonymously", header: "", wantBody: "anonymous"},
		{name: "broken token proceeds anonymously", header: "Bearer nope", wantBody: "anonymous"},
	}

	app := newTestApp(NewAuthMiddleware(tm).Optional)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			body := make([]byte, 16)
			n, _ := resp.Body.Read(body)
			assert.Equal(t, tc.wantBody, string(body[:n]))
		})
	}
}

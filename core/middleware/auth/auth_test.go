package auth_test

import (
	"net/http/httptest"
	"testing"

	"s3lib/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg auth.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(cfg))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("up")
	})
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(auth.Config{
		ApiKey: "secret",
		Next:   func(c *fiber.Ctx) bool { return c.Path() == "/health" },
	})

	tests := []struct {
		name   string
		target string
		header string
		want   int
	}{
		{"ValidHeader", "/ok", "secret", fiber.StatusOK},
		{"ValidQuery", "/ok?api_key=secret", "", fiber.StatusOK},
		{"WrongKey", "/ok", "nope", fiber.StatusUnauthorized},
		{"MissingKey", "/ok", "", fiber.StatusUnauthorized},
		{"Skipped", "/health", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				req.Header.Set(auth.HeaderName, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := newApp(auth.Config{})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

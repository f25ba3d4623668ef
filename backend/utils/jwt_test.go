package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"bilingui/backend/config"
)

func tokenTestApp(cfg *config.Config, captured *uint, capturedErr *error) *fiber.App {
	app := fiber.New()
	app.Get("/protected", func(c *fiber.Ctx) error {
		id, err := ExtractUserIDFromToken(c, cfg)
		*captured = id
		*capturedErr = err
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestGenerateAndExtractToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	token, err := GenerateJWTToken(42, cfg)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	var gotID uint
	var gotErr error
	app := tokenTestApp(cfg, &gotID, &gotErr)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, err = app.Test(req)
	assert.NoError(t, err)

	assert.NoError(t, gotErr)
	assert.Equal(t, uint(42), gotID)
}

func TestExtractTokenWithoutBearerPrefix(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	token, err := GenerateJWTToken(7, cfg)
	assert.NoError(t, err)

	var gotID uint
	var gotErr error
	app := tokenTestApp(cfg, &gotID, &gotErr)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", token)
	_, err = app.Test(req)
	assert.NoError(t, err)

	assert.NoError(t, gotErr)
	assert.Equal(t, uint(7), gotID)
}

func TestExtractTokenMissingHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	var gotID uint
	var gotErr error
	app := tokenTestApp(cfg, &gotID, &gotErr)

	req := httptest.NewRequest("GET", "/protected", nil)
	_, err := app.Test(req)
	assert.NoError(t, err)

	assert.Error(t, gotErr)
	assert.Equal(t, uint(0), gotID)
}

func TestExtractTokenWrongSecret(t *testing.T) {
	token, err := GenerateJWTToken(1, &config.Config{JWTSecret: "original"})
	assert.NoError(t, err)

	var gotID uint
	var gotErr error
	app := tokenTestApp(&config.Config{JWTSecret: "different"}, &gotID, &gotErr)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, err = app.Test(req)
	assert.NoError(t, err)

	assert.Error(t, gotErr)
}

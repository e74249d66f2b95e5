package auth

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(secret, "user-1", "clerk@school.af", "school-1", []string{"accountant"})
	require.NoError(t, err)

	claims, err := ValidateJWT(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "school-1", claims.SchoolID)
	assert.True(t, claims.HasRole("admin", "accountant"))
	assert.False(t, claims.HasRole("teacher"))
}

func TestValidateJWTRejects(t *testing.T) {
	valid, err := GenerateJWT(secret, "user-1", "", "", nil)
	require.NoError(t, err)
	expired, err := generateJWT(secret, "user-1", "", "", nil, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "other", valid},
		{"expired", secret, expired},
		{"garbage", secret, "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.secret, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerateJWTRequiresSecret(t *testing.T) {
	_, err := GenerateJWT("", "user-1", "", "", nil)
	assert.Error(t, err)
}

func newApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api/schools/:schoolId", AuthMiddleware(secret), SchoolScope("schoolId"))
	api.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(Claims(c).UserID)
	})
	api.Post("/reconcile", RoleMiddleware("admin", "accountant"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func bearer(t *testing.T, schoolID string, roles ...string) string {
	token, err := GenerateJWT(secret, "user-1", "u@school.af", schoolID, roles)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest("GET", "/api/schools/school-1/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/schools/school-1/whoami", nil)
	req.Header.Set("Authorization", "Bearer junk")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/schools/school-1/whoami", nil)
	req.Header.Set("Authorization", bearer(t, "school-1", "teacher"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "user-1", string(body))
}

func TestAuthMiddlewareReadsCookie(t *testing.T) {
	token, err := GenerateJWT(secret, "user-1", "", "", nil)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/schools/school-1/whoami", nil)
	req.Header.Set("Cookie", "jwt_token="+token)
	resp, err := newApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleMiddleware(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest("POST", "/api/schools/school-1/reconcile", nil)
	req.Header.Set("Authorization", bearer(t, "school-1", "teacher"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("POST", "/api/schools/school-1/reconcile", nil)
	req.Header.Set("Authorization", bearer(t, "school-1", "accountant"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestSchoolScope(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest("GET", "/api/schools/school-2/whoami", nil)
	req.Header.Set("Authorization", bearer(t, "school-1", "accountant"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/schools/school-2/whoami", nil)
	req.Header.Set("Authorization", bearer(t, "school-1", "admin"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

package http_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tarjetas-api/internal/application/dto"
	"github.com/jhoicas/Tarjetas-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Tarjetas-api/internal/interfaces/http"
	"github.com/jhoicas/Tarjetas-api/pkg/jwt"
)

const secreto = "secreto-de-prueba"

func tokenPara(t *testing.T, userID int64, username string, roles ...string) string {
	t.Helper()
	token, err := jwt.Generate(secreto, userID, username, roles, "tarjetas-api", 60)
	require.NoError(t, err)
	return token
}

// appProtegida app mínima con el middleware de auth y dos rutas con RBAC.
func appProtegida() *fiber.App {
	app := fiber.New()
	protected := app.Group("/", apphttp.AuthMiddleware(secreto))
	protected.Get("/quien-soy", func(c *fiber.Ctx) error {
		return c.JSON(apphttp.GetPrincipal(c))
	})
	protected.Get("/solo-admin", apphttp.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	app := appProtegida()

	t.Run("sin header Authorization responde 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/quien-soy", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "MISSING_TOKEN", body.Code)
	})

	t.Run("header sin esquema Bearer responde 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/quien-soy", nil)
		req.Header.Set("Authorization", "Basic abc123")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token con firma de otro secreto responde 401", func(t *testing.T) {
		ajeno, err := jwt.Generate("otro-secreto", 7, "alice", []string{entity.RoleUser}, "tarjetas-api", 60)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/quien-soy", nil)
		req.Header.Set("Authorization", "Bearer "+ajeno)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "INVALID_TOKEN", body.Code)
	})

	t.Run("token expirado responde 401", func(t *testing.T) {
		vencido, err := jwt.Generate(secreto, 7, "alice", []string{entity.RoleUser}, "tarjetas-api", -5)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/quien-soy", nil)
		req.Header.Set("Authorization", "Bearer "+vencido)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token válido deja el principal en el contexto", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/quien-soy", nil)
		req.Header.Set("Authorization", "Bearer "+tokenPara(t, 7, "alice", entity.RoleUser))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var p entity.Principal
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
		assert.Equal(t, int64(7), p.UserID)
		assert.Equal(t, "alice", p.Username)
		assert.Equal(t, []string{entity.RoleUser}, p.Roles)
	})
}

func TestRequireRole(t *testing.T) {
	app := appProtegida()

	t.Run("rol suficiente pasa", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/solo-admin", nil)
		req.Header.Set("Authorization", "Bearer "+tokenPara(t, 1, "root", entity.RoleAdmin))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("rol insuficiente responde 403", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/solo-admin", nil)
		req.Header.Set("Authorization", "Bearer "+tokenPara(t, 7, "alice", entity.RoleUser))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "FORBIDDEN", body.Code)
	})

	t.Run("token sin roles responde 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/solo-admin", nil)
		req.Header.Set("Authorization", "Bearer "+tokenPara(t, 9, "fantasma"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "MISSING_ROLE", body.Code)
	})
}

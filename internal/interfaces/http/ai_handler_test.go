package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/application/usecase"
	apphttp "github.com/spekmx/cotizador-api/internal/interfaces/http"
)

type fakeLLM struct {
	description string
	err         error
}

func (f *fakeLLM) GenerateItemDescription(_ context.Context, _, _ string) (string, error) {
	return f.description, f.err
}

// buildAIApp monta la ruta de descripciones con el usuario ya autenticado.
func buildAIApp(llm *fakeLLM, enabled bool) *fiber.App {
	handler := apphttp.NewAIHandler(usecase.NewAIUseCase(llm), enabled)
	app := fiber.New()
	app.Post("/ai/describe",
		func(c *fiber.Ctx) error {
			c.Locals(apphttp.LocalUserID, testUserID)
			return c.Next()
		},
		handler.GenerateDescription,
	)
	return app
}

func postDescribe(t *testing.T, app *fiber.App, body dto.GenerateDescriptionRequest) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/ai/describe", bytes.NewReader(raw))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAIHandler_GeneraDescripcion(t *testing.T) {
	app := buildAIApp(&fakeLLM{description: "Diseño a la medida."}, true)

	resp := postDescribe(t, app, dto.GenerateDescriptionRequest{Name: "Diseño UX"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.GenerateDescriptionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Diseño a la medida.", out.Description)
}

func TestAIHandler_NombreEnBlanco_Devuelve400(t *testing.T) {
	app := buildAIApp(&fakeLLM{description: "no debe llegar aquí"}, true)

	resp := postDescribe(t, app, dto.GenerateDescriptionRequest{Name: "   "})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"un concepto vacío es error del cliente, no del proveedor")

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestAIHandler_FallaDelProveedor_Devuelve502(t *testing.T) {
	app := buildAIApp(&fakeLLM{err: errors.New("upstream caído")}, true)

	resp := postDescribe(t, app, dto.GenerateDescriptionRequest{Name: "Diseño UX"})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "AI_UPSTREAM", out.Code)
}

func TestAIHandler_SinAPIKey_Devuelve503(t *testing.T) {
	app := buildAIApp(&fakeLLM{}, false)

	resp := postDescribe(t, app, dto.GenerateDescriptionRequest{Name: "Diseño UX"})
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "AI_DISABLED", out.Code)
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/bootstrap"
	apphttp "github.com/RaphaCalixto/garantia-tech-flow/internal/interfaces/http"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/config"
	"github.com/RaphaCalixto/garantia-tech-flow/pkg/logger"
)

// newAPI arma la API completa sobre el store en memoria, igual que cmd/api.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.Nop()
	c, err := bootstrap.New(context.Background(), &config.Config{
		App:     config.AppConfig{Name: "garantia-test"},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
		JWT:     config.JWTConfig{Secret: testJWTSecret, Expiration: testExpMin, Issuer: testIssuer},
		Metrics: config.MetricsConfig{Enabled: true},
	}, log)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, c.RouterDeps())
	return app
}

type apiResponse struct {
	status int
	header http.Header
	raw    []byte
}

func (r apiResponse) json(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(r.raw, &out), string(r.raw))
	return out
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) apiResponse {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return apiResponse{status: resp.StatusCode, header: resp.Header, raw: raw}
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	res := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{"email": email, "password": "secreto1"})
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))
	res = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{"email": email, "password": "secreto1"})
	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	tok, _ := res.json(t)["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func TestHealthYMetrics(t *testing.T) {
	app := newAPI(t)
	res := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "ok", res.json(t)["status"])

	res = call(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, string(res.raw), "go_goroutines")
}

func TestAuth_RegistroDuplicadoYLoginInvalido(t *testing.T) {
	app := newAPI(t)
	login(t, app, "ana@example.com")

	res := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{"email": "ana@example.com", "password": "secreto1"})
	assert.Equal(t, http.StatusConflict, res.status)
	assert.Equal(t, "EMAIL_EXISTS", res.json(t)["code"])

	res = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ana@example.com", "password": "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, res.status)

	res = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{"email": "no-es-email", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, res.status)
	body := res.json(t)
	assert.Equal(t, "VALIDATION", body["code"])
	details, _ := body["details"].(map[string]any)
	assert.Equal(t, "email", details["Email"])
	assert.Equal(t, "min", details["Password"])
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	app := newAPI(t)
	for _, path := range []string{"/api/customers", "/api/equipments", "/api/maintenances", "/api/dashboard", "/api/reports/equipments"} {
		res := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.status, path)
	}
}

func TestFlujoCompleto(t *testing.T) {
	app := newAPI(t)
	tok := login(t, app, "tecnico@example.com")

	// cliente
	res := call(t, app, http.MethodPost, "/api/customers", tok, map[string]any{"company_name": "Clínica São José", "tax_id": "12.345.678/0001-90"})
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))
	customerID, _ := res.json(t)["id"].(string)

	res = call(t, app, http.MethodPost, "/api/customers", tok, map[string]any{"company_name": "Otra", "tax_id": "12.345.678/0001-90"})
	assert.Equal(t, http.StatusConflict, res.status)
	assert.Equal(t, "DUPLICATE", res.json(t)["code"])

	// equipo con SKU generado
	res = call(t, app, http.MethodPost, "/api/equipments", tok, map[string]any{
		"name": "Monitor multiparamétrico", "model": "MX-40", "quantity": 2,
		"customer_id": customerID, "warranty_until": "2099-01-01",
	})
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))
	eq := res.json(t)
	equipmentID, _ := eq["id"].(string)
	code, _ := eq["sku"].(string)
	assert.True(t, strings.HasPrefix(code, "EQ-"), code)
	assert.Equal(t, "valid", eq["warranty"].(map[string]any)["status"])

	// per-unit con garantía propia → 400
	res = call(t, app, http.MethodPost, "/api/equipments", tok, map[string]any{
		"name": "Bomba", "quantity": 1, "per_unit": true, "warranty_until": "2099-01-01",
		"units": []map[string]any{{"serial": "B-1"}},
	})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "VALIDATION", res.json(t)["code"])

	// salida mayor que el stock → 409 con disponible/solicitado
	res = call(t, app, http.MethodPost, "/api/equipments/"+equipmentID+"/movements", tok, map[string]any{
		"kind": "outgoing", "quantity": 5, "customer_id": customerID,
	})
	require.Equal(t, http.StatusConflict, res.status, string(res.raw))
	body := res.json(t)
	assert.Equal(t, "INSUFFICIENT_QUANTITY", body["code"])
	details, _ := body["details"].(map[string]any)
	assert.EqualValues(t, 2, details["available"])
	assert.EqualValues(t, 5, details["requested"])

	// cliente que tiene equipos no se puede borrar
	res = call(t, app, http.MethodDelete, "/api/customers/"+customerID, tok, nil)
	assert.Equal(t, http.StatusConflict, res.status)

	// entrada: el equipo vuelve a la empresa
	res = call(t, app, http.MethodPost, "/api/equipments/"+equipmentID+"/movements", tok, map[string]any{
		"kind": "incoming", "quantity": 3, "date": "2024-05-02",
	})
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))
	assert.Equal(t, "2024-05-02", res.json(t)["date"])

	res = call(t, app, http.MethodGet, "/api/equipments/"+equipmentID, tok, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.EqualValues(t, 5, res.json(t)["quantity"])

	res = call(t, app, http.MethodGet, "/api/equipments/"+equipmentID+"/movements", tok, nil)
	require.Equal(t, http.StatusOK, res.status)
	var movements []map[string]any
	require.NoError(t, json.Unmarshal(res.raw, &movements))
	require.Len(t, movements, 1)
	assert.Equal(t, "incoming", movements[0]["kind"])

	// orden de servicio
	res = call(t, app, http.MethodPost, "/api/maintenances", tok, map[string]any{
		"equipment_id": equipmentID, "problem": "No enciende", "technician": "Rui",
	})
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))
	assert.Equal(t, "OS-000001", res.json(t)["order_number"])

	res = call(t, app, http.MethodGet, "/api/maintenances?status=pending", tok, nil)
	require.Equal(t, http.StatusOK, res.status)
	var orders []map[string]any
	require.NoError(t, json.Unmarshal(res.raw, &orders))
	assert.Len(t, orders, 1)

	// rastreo QR
	res = call(t, app, http.MethodGet, "/api/equipments/lookup?sku="+code, tok, nil)
	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	lookup := res.json(t)
	assert.Equal(t, equipmentID, lookup["equipment"].(map[string]any)["id"])
	assert.Len(t, lookup["maintenances"], 1)

	res = call(t, app, http.MethodGet, "/api/equipments/lookup?sku=EQ-NOPE", tok, nil)
	assert.Equal(t, http.StatusNotFound, res.status)

	// listado con búsqueda sin acentos
	res = call(t, app, http.MethodGet, "/api/equipments?search=multiparametrico&limit=10", tok, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.json(t)["items"], 1)

	// dashboard
	res = call(t, app, http.MethodGet, "/api/dashboard", tok, nil)
	require.Equal(t, http.StatusOK, res.status, string(res.raw))

	// etiqueta y reportes
	res = call(t, app, http.MethodGet, "/api/equipments/"+equipmentID+"/label.pdf", tok, nil)
	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	assert.True(t, bytes.HasPrefix(res.raw, []byte("%PDF")))
	assert.Contains(t, res.header.Get("Content-Disposition"), "label-"+code+".pdf")

	res = call(t, app, http.MethodGet, "/api/reports/customers?format=xlsx", tok, nil)
	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	assert.Contains(t, res.header.Get("Content-Disposition"), "customers-")
	assert.True(t, bytes.HasPrefix(res.raw, []byte("PK")))

	res = call(t, app, http.MethodGet, "/api/reports/invoices", tok, nil)
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = call(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Contains(t, string(res.raw), `garantia_equipment_created_total{generated="true"} 1`)
	assert.Contains(t, string(res.raw), `garantia_movements_rejected_total`)
}

func TestAislamientoPorDueno(t *testing.T) {
	app := newAPI(t)
	a := login(t, app, "a@example.com")
	b := login(t, app, "b@example.com")

	res := call(t, app, http.MethodPost, "/api/equipments", a, map[string]any{"name": "Autoclave", "quantity": 1})
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))
	id, _ := res.json(t)["id"].(string)

	res = call(t, app, http.MethodGet, "/api/equipments/"+id, b, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
	res = call(t, app, http.MethodPost, "/api/equipments/"+id+"/movements", b, map[string]any{"kind": "incoming", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestIDNoUUID_Responde404(t *testing.T) {
	app := newAPI(t)
	tok := login(t, app, "ids@example.com")

	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/equipments/not-a-uuid", nil},
		{http.MethodGet, "/api/equipments/not-a-uuid/units", nil},
		{http.MethodGet, "/api/equipments/not-a-uuid/movements", nil},
		{http.MethodGet, "/api/equipments/not-a-uuid/label.pdf", nil},
		{http.MethodPost, "/api/equipments/not-a-uuid/movements", map[string]any{
			"kind": "incoming", "quantity": 1, "date": "2024-05-02",
		}},
		{http.MethodGet, "/api/customers/not-a-uuid", nil},
		{http.MethodDelete, "/api/customers/not-a-uuid", nil},
		{http.MethodDelete, "/api/maintenances/not-a-uuid", nil},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			res := call(t, app, tc.method, tc.path, tok, tc.body)
			assert.Equal(t, http.StatusNotFound, res.status, string(res.raw))
			assert.Equal(t, "NOT_FOUND", res.json(t)["code"])
		})
	}
}

package handlers_test

import (
	"Purchase-Tracker/internal/api/handlers"
	"Purchase-Tracker/internal/api/routes"
	"Purchase-Tracker/internal/middleware"
	"Purchase-Tracker/internal/testutil"
	"Purchase-Tracker/internal/utils"
	"Purchase-Tracker/internal/view"
	"Purchase-Tracker/pkg/category"
	"Purchase-Tracker/pkg/maps"
	"Purchase-Tracker/pkg/product"
	"Purchase-Tracker/pkg/share"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://tracker.test"

type testApp struct {
	app   *fiber.App
	store *testutil.MemoryStore
	s3    *testutil.FakeS3
	calls *testutil.Calls
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	utils.InitValidator()

	calls := &testutil.Calls{}
	store := testutil.NewMemoryStore(calls)
	s3 := testutil.NewFakeS3(calls)
	engine, err := view.NewEngine()
	require.NoError(t, err)

	categoryService := category.NewCategoryService(store)
	productService := product.NewProductService(store, store, s3)
	shareService := share.NewShareService(store, nil)

	app := fiber.New()
	cfg := routes.Config{
		App:             app,
		CategoryHandler: handlers.NewCategoryHandler(categoryService, utils.Validate),
		ProductHandler:  handlers.NewProductHandler(productService, utils.Validate),
		ShareHandler:    handlers.NewShareHandler(shareService, utils.Validate, testOrigin),
		PageHandler:     handlers.NewPageHandler(categoryService, productService, shareService, engine, utils.Validate, maps.DefaultConfig(), testOrigin),
		Middleware:      middleware.NewMiddleware(""),
	}
	cfg.Setup()

	return &testApp{app: app, store: store, s3: s3, calls: calls}
}

func (a *testApp) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	res, err := a.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, body
}

func (a *testApp) json(t *testing.T, method string, target string, payload any) (*http.Response, envelope) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	res, raw := a.do(t, req)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return res, env
}

func (a *testApp) form(t *testing.T, target string, values url.Values) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	res, body := a.do(t, req)
	return res, string(body)
}

func (a *testApp) get(t *testing.T, target string) (*http.Response, string) {
	t.Helper()
	res, body := a.do(t, httptest.NewRequest(http.MethodGet, target, nil))
	return res, string(body)
}

func multipartRequest(t *testing.T, method string, target string, fields map[string]string, fileName string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG fake image"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func noodlesJSON() map[string]any {
	return map[string]any{
		"name":          "Instant Noodles",
		"purchase_date": "2024-01-10",
		"store":         "Lotus",
		"price":         "7.00",
		"quantity":      "55",
		"quantity_unit": "g",
	}
}

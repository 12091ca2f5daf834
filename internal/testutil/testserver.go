package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"portfolio_backend/internal/app"
	"portfolio_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// PNGHeader - минимальная сигнатура PNG, которой достаточно для определения типа
var PNGHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

// TestServer - API на httptest с хранилищем в памяти
type TestServer struct {
	Server *httptest.Server
	Config *config.Config
}

// File - файл для multipart-запроса
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewTestServer создает сервер и закрывает его по завершении теста
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Server.Env = "test"

	router, err := app.SetupRouter(cfg)
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{Server: server, Config: cfg}
}

// URL возвращает абсолютный адрес для пути
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// SendRequest отправляет запрос и возвращает ответ и тело строкой
func (ts *TestServer) SendRequest(t *testing.T, method, path string, body io.Reader, contentType string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL(path), body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(raw)
}

// SendPortfolio отправляет multipart с полем data и файлами
func (ts *TestServer) SendPortfolio(t *testing.T, method, path string, data interface{}, files map[string]File) (*http.Response, string) {
	t.Helper()
	body, contentType := BuildMultipart(t, data, files)
	return ts.SendRequest(t, method, path, body, contentType)
}

// DecodeJSON разбирает тело ответа
func DecodeJSON(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), body)
}

// BuildMultipart собирает тело multipart/form-data.
// data: строка уходит как есть, остальное кодируется в JSON.
func BuildMultipart(t *testing.T, data interface{}, files map[string]File) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if data != nil {
		var raw string
		switch v := data.(type) {
		case string:
			raw = v
		default:
			b, err := json.Marshal(v)
			require.NoError(t, err)
			raw = string(b)
		}
		require.NoError(t, w.WriteField("data", raw))
	}

	for field, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+f.Name+`"`)
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.Data)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

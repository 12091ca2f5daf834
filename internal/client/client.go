// Package client is the HTTP client for the portfolio API used by the wizard,
// the views and the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/templates"

	"github.com/pkg/errors"
)

// DefaultTimeout is applied when no timeout is configured.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound matches any 404 response.
	ErrNotFound = errors.New("not found")
	// ErrNetwork wraps transport failures and timeouts.
	ErrNetwork = errors.New("network error")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// File is an image attached to a create or update request.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Files maps images onto multipart fields: Projects is keyed by project index.
type Files struct {
	Profile  *File
	Projects map[int]*File
}

// Client talks to the portfolio API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL.
func New(baseURL string, timeout time.Duration) (client *Client) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client = NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
	return client
}

// NewWithHTTPClient creates a client over a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the server root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ImageURL maps an image id to the URL serving its bytes.
func ImageURL(baseURL, imageID string) string {
	return strings.TrimRight(baseURL, "/") + "/api/portfolios/image/" + url.PathEscape(imageID)
}

// ImageURL resolves a nullable image id; nil or empty gives "".
func (c *Client) ImageURL(imageID *string) string {
	if imageID == nil || *imageID == "" {
		return ""
	}
	return ImageURL(c.baseURL, *imageID)
}

// MessageOf returns the server-provided error text, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// ListPortfolios returns every portfolio in insertion order.
func (c *Client) ListPortfolios(ctx context.Context) (portfolios []models.Portfolio, err error) {
	err = c.doJSON(ctx, http.MethodGet, "/api/portfolios", &portfolios)
	if err != nil {
		err = errors.Wrap(err, "list portfolios")
	}
	return portfolios, err
}

// GetPortfolio fetches one portfolio.
func (c *Client) GetPortfolio(ctx context.Context, id string) (portfolio *models.Portfolio, err error) {
	portfolio = &models.Portfolio{}
	err = c.doJSON(ctx, http.MethodGet, "/api/portfolios/"+url.PathEscape(id), portfolio)
	if err != nil {
		err = errors.Wrapf(err, "get portfolio %s", id)
		return nil, err
	}
	return portfolio, err
}

// FilterPortfolios calls the server-side filter. filterType is "skills" or "role".
func (c *Client) FilterPortfolios(ctx context.Context, filterType, value string) (portfolios []models.Portfolio, err error) {
	path := "/api/portfolios/filter/" + url.PathEscape(filterType) + "/" + url.PathEscape(value)
	err = c.doJSON(ctx, http.MethodGet, path, &portfolios)
	if err != nil {
		err = errors.Wrap(err, "filter portfolios")
	}
	return portfolios, err
}

// CreatePortfolio submits payload as the data field plus any files.
func (c *Client) CreatePortfolio(ctx context.Context, payload interface{}, files *Files) (portfolio *models.Portfolio, err error) {
	portfolio = &models.Portfolio{}
	err = c.doMultipart(ctx, http.MethodPost, "/api/portfolios", payload, files, portfolio)
	if err != nil {
		err = errors.Wrap(err, "create portfolio")
		return nil, err
	}
	return portfolio, err
}

// UpdatePortfolio sends a partial update. Sections missing from payload are kept.
func (c *Client) UpdatePortfolio(ctx context.Context, id string, payload interface{}, files *Files) (portfolio *models.Portfolio, err error) {
	portfolio = &models.Portfolio{}
	err = c.doMultipart(ctx, http.MethodPut, "/api/portfolios/"+url.PathEscape(id), payload, files, portfolio)
	if err != nil {
		err = errors.Wrapf(err, "update portfolio %s", id)
		return nil, err
	}
	return portfolio, err
}

// DeletePortfolio removes the portfolio and its images.
func (c *Client) DeletePortfolio(ctx context.Context, id string) (err error) {
	var resp dto.MessageResponse
	err = c.doJSON(ctx, http.MethodDelete, "/api/portfolios/"+url.PathEscape(id), &resp)
	if err != nil {
		err = errors.Wrapf(err, "delete portfolio %s", id)
	}
	return err
}

// FetchImage downloads image bytes and their MIME type.
func (c *Client) FetchImage(ctx context.Context, imageID string) (data []byte, mimeType string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, ImageURL(c.baseURL, imageID), nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, mimeType, err
	}

	var resp *http.Response
	resp, err = c.send(req)
	if err != nil {
		return data, mimeType, err
	}
	defer resp.Body.Close()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrapf(ErrNetwork, "read image %s: %v", imageID, err)
		return nil, "", err
	}
	mimeType = resp.Header.Get("Content-Type")
	return data, mimeType, err
}

// Templates returns the template catalog.
func (c *Client) Templates(ctx context.Context) (list []templates.Template, err error) {
	err = c.doJSON(ctx, http.MethodGet, "/api/templates", &list)
	if err != nil {
		err = errors.Wrap(err, "list templates")
	}
	return list, err
}

// Health calls the liveness endpoint.
func (c *Client) Health(ctx context.Context) (health dto.HealthResponse, err error) {
	err = c.doJSON(ctx, http.MethodGet, "/api/health", &health)
	if err != nil {
		err = errors.Wrap(err, "health check")
	}
	return health, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, out interface{}) (err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.sendAndDecode(req, out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, payload interface{}, files *Files, out interface{}) (err error) {
	var body *bytes.Buffer
	var contentType string
	body, contentType, err = encodeMultipart(payload, files)
	if err != nil {
		return err
	}

	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	return c.sendAndDecode(req, out)
}

func (c *Client) sendAndDecode(req *http.Request, out interface{}) (err error) {
	var resp *http.Response
	resp, err = c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		err = errors.Wrap(err, "failed to decode response")
	}
	return err
}

// send performs the request and turns non-2xx statuses into *APIError.
// The caller closes the body on success.
func (c *Client) send(req *http.Request) (resp *http.Response, err error) {
	resp, err = c.httpClient.Do(req)
	if err != nil {
		err = errors.Wrapf(ErrNetwork, "%s %s: %v", req.Method, req.URL.Path, err)
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		apiErr := &APIError{Status: resp.StatusCode}

		var body struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Message = body.Error
		}
		return nil, apiErr
	}
	return resp, nil
}

func encodeMultipart(payload interface{}, files *Files) (body *bytes.Buffer, contentType string, err error) {
	body = &bytes.Buffer{}
	w := multipart.NewWriter(body)

	var data []byte
	data, err = json.Marshal(payload)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal payload")
		return nil, "", err
	}
	if err = w.WriteField(dto.FieldData, string(data)); err != nil {
		err = errors.Wrap(err, "failed to write data field")
		return nil, "", err
	}

	if files != nil {
		if err = writeFile(w, dto.FieldProfileImage, files.Profile); err != nil {
			return nil, "", err
		}
		for i := 0; i < dto.MaxProjectImages; i++ {
			if err = writeFile(w, dto.ProjectImageField(i), files.Projects[i]); err != nil {
				return nil, "", err
			}
		}
	}

	if err = w.Close(); err != nil {
		err = errors.Wrap(err, "failed to close multipart writer")
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, field string, f *File) error {
	if f == nil {
		return nil
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+escapeQuotes(f.Name)+`"`)
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return errors.Wrapf(err, "failed to create part %s", field)
	}
	if _, err := part.Write(f.Data); err != nil {
		return errors.Wrapf(err, "failed to write part %s", field)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio_backend/internal/client"
	"portfolio_backend/internal/testutil"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *client.Client {
	ts := testutil.NewTestServer(t)
	return client.New(ts.Server.URL, 5*time.Second)
}

func strPtr(s string) *string { return &s }

func TestImageURL(t *testing.T) {
	assert.Equal(t, "http://api.local/api/portfolios/image/abc-1-2", client.ImageURL("http://api.local/", "abc-1-2"))

	c := client.New("http://api.local", 0)
	assert.Equal(t, "", c.ImageURL(nil))
	assert.Equal(t, "", c.ImageURL(strPtr("")))
	assert.Equal(t, "http://api.local/api/portfolios/image/x", c.ImageURL(strPtr("x")))
}

func TestRoundTrip_ImageBytesAndMime(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	gif := append([]byte("GIF89a"), 0x01, 0x00, 0x01, 0x00, 0x80, 0x00, 0x00)
	created, err := c.CreatePortfolio(ctx, map[string]interface{}{
		"hero":      map[string]string{"name": "Round", "title": "Trip"},
		"portfolio": []map[string]interface{}{{"title": "P", "description": "D", "technologies": []string{"Go"}}},
	}, &client.Files{
		Profile: &client.File{Name: "me.png", ContentType: "image/png", Data: testutil.PNGHeader},
		Projects: map[int]*client.File{
			0: {Name: "p.gif", ContentType: "image/gif", Data: gif},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, created.ProfileImageID)
	require.NotNil(t, created.Projects[0].ImageID)

	fetched, err := c.GetPortfolio(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ProfileImageID, fetched.ProfileImageID)

	data, mime, err := c.FetchImage(ctx, *fetched.ProfileImageID)
	require.NoError(t, err)
	assert.Equal(t, testutil.PNGHeader, data)
	assert.Equal(t, "image/png", mime)

	data, mime, err = c.FetchImage(ctx, *fetched.Projects[0].ImageID)
	require.NoError(t, err)
	assert.Equal(t, gif, data)
	assert.Equal(t, "image/gif", mime)
}

func TestClient_CRUD(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	created, err := c.CreatePortfolio(ctx, map[string]interface{}{
		"hero":   map[string]string{"name": "Jane", "title": "React Developer"},
		"skills": []string{"React"},
	}, nil)
	require.NoError(t, err)

	list, err := c.ListPortfolios(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	filtered, err := c.FilterPortfolios(ctx, "skills", "react")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	updated, err := c.UpdatePortfolio(ctx, created.ID, map[string]interface{}{
		"skills": []string{"React", "Go"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"React", "Go"}, updated.Skills)
	assert.Equal(t, "Jane", updated.Hero.Name)

	require.NoError(t, c.DeletePortfolio(ctx, created.ID))

	_, err = c.GetPortfolio(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrNotFound))
	assert.Equal(t, "Portfolio not found", client.MessageOf(err, "fallback"))

	tpls, err := c.Templates(ctx)
	require.NoError(t, err)
	assert.Len(t, tpls, 2)

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "OK", health.Status)
}

func TestClient_ServerMessageSurfaced(t *testing.T) {
	c := newClient(t)

	_, err := c.CreatePortfolio(context.Background(), map[string]string{"template": "modern"}, &client.Files{
		Profile: &client.File{Name: "doc.txt", ContentType: "text/plain", Data: []byte("hello")},
	})
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnsupportedMediaType, apiErr.Status)
	assert.Equal(t, "Only image files are allowed!", client.MessageOf(err, "fallback"))
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := client.New(url, time.Second)
	_, err := c.ListPortfolios(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrNetwork))
	assert.Equal(t, "fallback", client.MessageOf(err, "fallback"))
}

func TestClient_ErrorWithoutJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := client.New(srv.URL, time.Second)
	_, err := c.ListPortfolios(context.Background())

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Message)
	assert.Equal(t, "fallback", client.MessageOf(err, "fallback"))
}

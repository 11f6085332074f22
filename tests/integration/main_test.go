// tests/integration/main_test.go
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shelfmate/internal/assistant"
	"shelfmate/internal/embedded"
)

// queryResponse mirrors the POST /api/query body.
type queryResponse struct {
	Intent   string `json:"intent"`
	Entities struct {
		Title      *string `json:"title"`
		Author     *string `json:"author"`
		Category   *string `json:"category"`
		SearchTerm *string `json:"search_term"`
	} `json:"entities"`
	Books []struct {
		BookID    string `json:"book_id"`
		Title     string `json:"title"`
		Author    string `json:"author"`
		Available int    `json:"available"`
	} `json:"books"`
	NaturalResponse string `json:"natural_response"`
	Message         string `json:"message"`
}

func newQueryServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := embedded.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Seed(context.Background()))

	svc := assistant.NewService(
		assistant.NewRuleExtractor(),
		assistant.NewResolver(store),
		nil, // no generative backend in tests
		time.Second,
		600, 100,
		zap.NewNop(),
	)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/api/query", assistant.NewHandler(svc).HandleQuery)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func postQuery(t *testing.T, server *httptest.Server, query string) (*http.Response, queryResponse) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"query": query})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/query", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed queryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestQueryPipelineEndToEnd(t *testing.T) {
	server := newQueryServer(t)

	t.Run("quoted title search", func(t *testing.T) {
		resp, parsed := postQuery(t, server, `Do you have "The Great Gatsby"?`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "search", parsed.Intent)
		require.NotNil(t, parsed.Entities.Title)
		assert.Equal(t, "The Great Gatsby", *parsed.Entities.Title)
		require.Len(t, parsed.Books, 1)
		assert.Equal(t, "FIC001", parsed.Books[0].BookID)
		assert.Equal(t, "Query processed successfully", parsed.Message)
	})

	t.Run("availability by category", func(t *testing.T) {
		resp, parsed := postQuery(t, server, "Are any fiction books available?")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "availability", parsed.Intent)
		require.NotNil(t, parsed.Entities.Category)
		assert.Equal(t, "fiction", *parsed.Entities.Category)
		assert.Len(t, parsed.Books, 2)
		assert.Contains(t, parsed.NaturalResponse, "available")
	})

	t.Run("author search", func(t *testing.T) {
		resp, parsed := postQuery(t, server, "Show me books by Stephen Hawking")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, parsed.Entities.Author)
		assert.Equal(t, "stephen hawking", *parsed.Entities.Author)
		require.Len(t, parsed.Books, 1)
		assert.Equal(t, "A Brief History of Time", parsed.Books[0].Title)
	})

	t.Run("borrow intent", func(t *testing.T) {
		resp, parsed := postQuery(t, server, `I want to borrow "Python Programming"`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "borrow", parsed.Intent)
		require.Len(t, parsed.Books, 1)
		assert.Contains(t, parsed.NaturalResponse, "Python Programming")
	})

	t.Run("no matches", func(t *testing.T) {
		resp, parsed := postQuery(t, server, `Do you have "Finnegans Wake"?`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, parsed.Books)
		assert.Equal(t, "I couldn't find any books matching your query.", parsed.NaturalResponse)
	})

	t.Run("empty query matches nothing", func(t *testing.T) {
		resp, parsed := postQuery(t, server, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, parsed.Books)
		assert.Equal(t, "I couldn't find any books matching your query.", parsed.NaturalResponse)
	})
}

func TestQueryRejectsMalformedBody(t *testing.T) {
	server := newQueryServer(t)

	resp, err := http.Post(server.URL+"/api/query", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid request body", body["error"])
}

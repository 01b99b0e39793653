package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koopa0/kusari/internal/pipeline"
	"github.com/koopa0/kusari/internal/testutil"
)

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	c, err := NewClient(endpoint, DefaultTimeout, testutil.DiscardLogger())
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	t.Run("empty endpoint", func(t *testing.T) {
		_, err := NewClient("", DefaultTimeout, nil)
		assert.Error(t, err)
	})

	t.Run("defaults applied", func(t *testing.T) {
		c, err := NewClient("https://indexer.example/graphql", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
		assert.NotNil(t, c.logger)
	})
}

func TestExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "query { transfers { id } }", req.Query)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"transfers":[{"id":"t1"}]}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	got, err := c.Execute(context.Background(), "query { transfers { id } }")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"transfers":[{"id":"t1"}]}}`, string(got))
}

// A 2xx response with a GraphQL errors field is data, not a failure.
func TestExecute_ErrorsPayloadIsData(t *testing.T) {
	body := `{"errors":[{"message":"Cannot query field \"amounts\" on type \"Transfer\""}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	got, err := c.Execute(context.Background(), "query { transfers { amounts } }")
	require.NoError(t, err)
	assert.JSONEq(t, body, string(got))
}

func TestExecute_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "bad gateway", status: http.StatusBadGateway},
		{name: "not found", status: http.StatusNotFound},
		{name: "internal error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("upstream unhappy"))
			}))
			defer server.Close()

			c := newTestClient(t, server.URL)
			_, err := c.Execute(context.Background(), "query { accounts { id } }")
			require.Error(t, err)
			assert.ErrorIs(t, err, pipeline.ErrExecution)
			assert.Contains(t, err.Error(), strconv.Itoa(tt.status))
		})
	}
}

func TestExecute_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>gateway error</html>"},
		{name: "json array", body: `[1,2,3]`},
		{name: "truncated json", body: `{"data":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := newTestClient(t, server.URL)
			_, err := c.Execute(context.Background(), "query { accounts { id } }")
			assert.ErrorIs(t, err, pipeline.ErrExecution)
		})
	}
}

func TestExecute_EmptyQuery(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Execute(context.Background(), "   ")
	assert.ErrorIs(t, err, pipeline.ErrExecution)
	assert.Equal(t, int32(0), requests.Load(), "no request should reach the endpoint")
}

func TestExecute_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close() // immediately, so the port refuses connections

	c := newTestClient(t, server.URL)
	_, err := c.Execute(context.Background(), "query { accounts { id } }")
	assert.ErrorIs(t, err, pipeline.ErrExecution)
}

func TestExecute_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL, 20*time.Millisecond, testutil.DiscardLogger())
	require.NoError(t, err)

	_, err = c.Execute(context.Background(), "query { accounts { id } }")
	assert.ErrorIs(t, err, pipeline.ErrExecution)
}

func TestExecute_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, server.URL)
	_, err := c.Execute(ctx, "query { accounts { id } }")
	assert.ErrorIs(t, err, pipeline.ErrExecution)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{name: "short", input: "hello", n: 10, want: "hello"},
		{name: "exact", input: "hello", n: 5, want: "hello"},
		{name: "truncated", input: "hello world", n: 5, want: "hello..."},
		{name: "empty", input: "", n: 5, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.n); got != tt.want {
				t.Errorf("truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

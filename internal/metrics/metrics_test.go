package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathPattern(t *testing.T) {
	assert.Equal(t, "/products/{id}", PathPattern("/products/42"))
	assert.Equal(t, "/products/{id}/review", PathPattern("/products/42/review"))
	assert.Equal(t, "/users/me", PathPattern("/users/me"))
	assert.Equal(t, "/", PathPattern("/"))
}

func TestRoundTripper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	client := &http.Client{Transport: RoundTripper(http.DefaultTransport)}
	before := testutil.ToFloat64(clientRequestsTotal.WithLabelValues("418", http.MethodGet, "/cart/{id}"))

	resp, err := client.Get(server.URL + "/cart/9")
	require.NoError(t, err)
	resp.Body.Close()

	after := testutil.ToFloat64(clientRequestsTotal.WithLabelValues("418", http.MethodGet, "/cart/{id}"))
	assert.Equal(t, before+1, after)
	assert.Equal(t, 0.0, testutil.ToFloat64(clientRequestsInFlight))
}

func TestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}

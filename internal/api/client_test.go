package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, baseURL string, store storage.TokenStore) *api.Client {
	t.Helper()

	client, err := api.New(&config.API{BaseURL: baseURL, Timeout: 2 * time.Second, UserAgent: "storefront-test"}, store, nil)
	require.NoError(t, err)

	return client
}

func storeWithToken(t *testing.T, token string) storage.TokenStore {
	t.Helper()

	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(t.Context(), &models.StoredSession{Token: token, TokenType: "bearer"}))

	return store
}

func TestNew(t *testing.T) {
	t.Run("Failure - Invalid scheme", func(t *testing.T) {
		_, err := api.New(&config.API{BaseURL: "ftp://shop"}, nil, nil)
		assert.Error(t, err)
	})

	t.Run("Success - Trailing slash trimmed", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := newClient(t, server.URL+"/api/", nil)
		require.NoError(t, client.Do(t.Context(), &api.Request{Method: http.MethodGet, Path: "/cart"}, nil))

		assert.Equal(t, "/api/cart", gotPath)
	})
}

func TestDo(t *testing.T) {
	t.Run("Success - Attaches bearer token and headers", func(t *testing.T) {
		// Arrange
		var header http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header = r.Header.Clone()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": 1, "email": "a@b.co", "role": "user"}`))
		}))
		defer server.Close()

		client := newClient(t, server.URL, storeWithToken(t, "abc.def.ghi"))

		// Act
		var user models.User
		err := client.Do(t.Context(), &api.Request{Method: http.MethodGet, Path: "/users/me"}, &user)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc.def.ghi", header.Get("Authorization"))
		assert.Equal(t, "storefront-test", header.Get("User-Agent"))
		assert.NotEmpty(t, header.Get(api.RequestIDHeader))
		assert.Equal(t, "a@b.co", user.Email)
	})

	t.Run("Success - No token no header", func(t *testing.T) {
		var authHeader string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := newClient(t, server.URL, storage.NewMemoryStore())
		require.NoError(t, client.Do(t.Context(), &api.Request{Method: http.MethodDelete, Path: "/cart"}, nil))

		assert.Empty(t, authHeader)
	})

	t.Run("Success - Body precedence", func(t *testing.T) {
		// Arrange
		var contentType, body string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType = r.Header.Get("Content-Type")
			raw, _ := io.ReadAll(r.Body)
			body = string(raw)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := newClient(t, server.URL, nil)

		// Act & Assert: form wins over JSON
		err := client.Do(t.Context(), &api.Request{
			Method: http.MethodPost,
			Path:   "/x",
			JSON:   map[string]string{"ignored": "yes"},
			Form:   map[string][]string{"a": {"1"}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "application/x-www-form-urlencoded", contentType)
		assert.Equal(t, "a=1", body)

		// multipart wins over form
		err = client.Do(t.Context(), &api.Request{
			Method:    http.MethodPost,
			Path:      "/x",
			Form:      map[string][]string{"a": {"1"}},
			Multipart: &api.Multipart{Fields: map[string][]string{"name": {"Lamp"}}},
		}, nil)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="))
		assert.Contains(t, body, `name="name"`)

		// JSON alone
		err = client.Do(t.Context(), &api.Request{Method: http.MethodPost, Path: "/x", JSON: map[string]int{"n": 2}}, nil)
		require.NoError(t, err)
		assert.Equal(t, "application/json", contentType)
		assert.JSONEq(t, `{"n":2}`, body)
	})

	t.Run("Failure - Detail message normalized", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail": "Товар не найден"}`))
		}))
		defer server.Close()

		client := newClient(t, server.URL, nil)

		// Act
		err := client.Do(t.Context(), &api.Request{Method: http.MethodGet, Path: "/products/9"}, &models.Product{})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Товар не найден", appErr.Message)
	})

	t.Run("Failure - 401 clears token and runs hook", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "Could not validate credentials"}`))
		}))
		defer server.Close()

		store := storeWithToken(t, "stale")
		client := newClient(t, server.URL, store)

		hookCalls := 0
		client.SetUnauthorizedHandler(func(context.Context) { hookCalls++ })

		// Act
		err := client.Do(t.Context(), &api.Request{Method: http.MethodGet, Path: "/cart"}, &[]models.CartLine{})

		// Assert
		assert.True(t, appErrors.IsStatus(err, http.StatusUnauthorized))
		assert.Equal(t, 1, hookCalls)

		_, loadErr := store.Load(t.Context())
		assert.ErrorIs(t, loadErr, storage.ErrNoSession)
	})

	t.Run("Failure - Undecodable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		}))
		defer server.Close()

		client := newClient(t, server.URL, nil)
		err := client.Do(t.Context(), &api.Request{Method: http.MethodGet, Path: "/products"}, &[]models.Product{})

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})

	t.Run("Failure - Transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := server.URL
		server.Close()

		client := newClient(t, url, nil)
		err := client.Do(t.Context(), &api.Request{Method: http.MethodGet, Path: "/products"}, nil)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeTransport, appErr.Code)
	})

	t.Run("Failure - Context timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		client := newClient(t, server.URL, nil)
		ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()

		err := client.Do(ctx, &api.Request{Method: http.MethodGet, Path: "/products"}, nil)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestLoginRetrieveError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid Credentials"})
	}))
	defer server.Close()

	client := newClient(t, server.URL, nil)

	_, err := client.Login(t.Context(), "a@b.co", "wrong")

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.StatusCode)
	assert.Equal(t, "Invalid Credentials", appErr.Message)
}

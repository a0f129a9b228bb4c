package sentinel

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostWithRetrySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tiff bytes"))
	}))
	defer server.Close()

	content, err := postWithRetry(server.Client(), server.URL, []byte(`{}`), 1)
	require.NoError(t, err)
	assert.Equal(t, "tiff bytes", string(content))
}

func TestPostWithRetryRecoversAfterFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("tiff bytes"))
	}))
	defer server.Close()

	content, err := postWithRetry(server.Client(), server.URL, []byte(`{}`), 2)
	require.NoError(t, err)
	assert.Equal(t, "tiff bytes", string(content))
	assert.Equal(t, 2, attempts)
}

func TestPostWithRetryKeepsServerDiagnostics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "processing quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := postWithRetry(server.Client(), server.URL, []byte(`{}`), 1)
	require.Error(t, err)
	// The server's error text must survive into the returned error.
	assert.Contains(t, err.Error(), "processing quota exceeded")
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "1 attempts")
}

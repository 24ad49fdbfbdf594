package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient()
	require.NotNil(t, client)
	require.NotNil(t, client.Client)
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()
	assert.NotSame(t, client1.Client, client2.Client)
}

func TestNewHTTPClient_DefaultHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Accept"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := NewHTTPClient().R().Get(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
}

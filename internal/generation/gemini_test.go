package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGeminiClient(context.Background(), zerolog.Nop(), srv.URL+"/", "api-key", "gemini-1.5-flash", 5*time.Second)
	require.NoError(t, err)
	return client
}

func TestGeminiClient_Generate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-1.5-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "api-key", r.Header.Get("x-goog-api-key"))

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if assert.Len(t, req.Contents, 1) && assert.Len(t, req.Contents[0].Parts, 1) {
			assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Item Details: "},{"text":"..."}]}}]}`))
	})

	text, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Item Details: ...", text)
}

func TestGeminiClient_Generate_Errors(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"http error": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
		},
		"no candidates": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		},
		"empty text": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[]}}]}`))
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{`))
		},
	}
	for name, handler := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := newTestClient(t, handler).Generate(context.Background(), "hello")
			assert.Error(t, err)
		})
	}
}

func TestGeminiClient_Generate_EmptyIsSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`))
	})

	_, err := client.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

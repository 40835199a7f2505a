package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeminiGenerate_NormalizesResponseShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [
				{"content": {"parts": [{"text": "{\"country\": "}, {"text": "\"Chile\"}"}]}}
			]
		}`))
	}))
	defer srv.Close()

	g := NewGemini(GeminiConfig{Endpoint: srv.URL, Model: "gemini-test", APIKey: "test-key"})
	out, err := g.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, `{"country": "Chile"}`, out)
}

func TestGeminiGenerate_ErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "invalid key"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	g := NewGemini(GeminiConfig{Endpoint: srv.URL, Model: "gemini-test", APIKey: "bad"})
	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestGeminiGenerate_NoCandidates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	g := NewGemini(GeminiConfig{Endpoint: srv.URL, Model: "gemini-test", APIKey: "k"})
	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
}

func TestGeminiGenerate_Misconfigured(t *testing.T) {
	t.Parallel()

	g := NewGemini(GeminiConfig{})
	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
}

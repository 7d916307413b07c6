package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-querychat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Generate(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"db.users.find({})"}}]}`))
	}))
	defer server.Close()

	p := NewProvider("groq", "secret", server.URL, "llama", time.Second)
	out, err := p.Generate(context.Background(), "list users", llm.WithTemperature(0))

	require.NoError(t, err)
	assert.Equal(t, "db.users.find({})", out)
	assert.Equal(t, "llama", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "list users", got.Messages[0].Content)
}

func TestProvider_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"upstream error status", http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`},
		{"error payload", http.StatusOK, `{"error":{"message":"bad model"}}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"not json", http.StatusOK, `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewProvider("groq", "", server.URL, "llama", time.Second)
			_, err := p.Generate(context.Background(), "x")
			assert.Error(t, err)
		})
	}
}

func TestProvider_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	p := NewProvider("groq", "", server.URL, "llama", 50*time.Millisecond)
	_, err := p.Generate(context.Background(), "x")
	assert.Error(t, err)
}

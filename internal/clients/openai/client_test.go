package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigured(t *testing.T) {
	assert.False(t, NewClient(Config{}, zerolog.Nop()).Configured())
	assert.True(t, NewClient(Config{APIKey: "sk-test"}, zerolog.Nop()).Configured())
}

func TestCompleteParsesResponse(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "Momentum is strong."}}],
			"usage": {"total_tokens": 42}
		}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-3.5-turbo"}, zerolog.Nop())

	completion, err := c.Complete(context.Background(), "system", "user", 150, 0.3)
	require.NoError(t, err)

	assert.Equal(t, "Momentum is strong.", completion.Text)
	assert.Equal(t, 42, completion.TotalTokens)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-3.5-turbo", gotReq.Model)
	assert.Equal(t, 150, gotReq.MaxTokens)
	assert.Len(t, gotReq.Messages, 2)
}

func TestCompleteNon200Fails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, zerolog.Nop())

	_, err := c.Complete(context.Background(), "system", "user", 150, 0.3)
	assert.Error(t, err)
}

func TestCompleteEmptyChoicesFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [], "usage": {"total_tokens": 0}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, zerolog.Nop())

	_, err := c.Complete(context.Background(), "system", "user", 150, 0.3)
	assert.Error(t, err)
}

func TestCompleteWithoutKeyFails(t *testing.T) {
	c := NewClient(Config{}, zerolog.Nop())

	_, err := c.Complete(context.Background(), "system", "user", 150, 0.3)
	assert.Error(t, err)
}

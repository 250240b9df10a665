package intent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenAIBackendExtract(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		assert.Equal(t, 50, req.MaxTokens)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, "my tap drips at night", req.Messages[1].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"skill\": \"Plumbing\", \"time\": \"Evening\"}"}}]}`))
	}))
	defer ts.Close()

	b := NewOpenAIBackend("sk-test", ts.URL, "", ts.Client())
	i, err := b.Extract(context.Background(), "my tap drips at night")
	assert.NoError(t, err)
	assert.Equal(t, &Intent{Skill: "Plumbing", TimeWindow: "Evening"}, i)
}

func TestOpenAIBackendHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer ts.Close()

	b := NewOpenAIBackend("sk-test", ts.URL, "", ts.Client())
	_, err := b.Extract(context.Background(), "anything")
	assert.Error(t, err)
}

func TestOpenAIBackendNotConfigured(t *testing.T) {
	assert.Nil(t, NewOpenAIBackend("", "", "", nil))
	assert.Nil(t, NewOpenAIBackend("your_openai_api_key_here", "", "", nil))
}

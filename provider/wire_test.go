package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completionHandler returns an OpenAI-compatible success response and records
// the request for inspection.
func completionHandler(t *testing.T, captured *map[string]any, body string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			var req map[string]any
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			*captured = req
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

const successBody = `{
	"model": "gpt-4.1-2025-04-14",
	"choices": [{"message": {"role": "assistant", "content": "hello"}, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17},
	"cost": 0.00042
}`

func TestRouterComplete(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(completionHandler(t, &captured, successBody))
	defer srv.Close()

	router, err := NewRouter(Config{BaseURL: srv.URL, APIKey: "sk-test"})
	require.NoError(t, err)

	resp, err := router.Complete(context.Background(), Request{
		Model:     "gpt-4.1",
		Messages:  []Message{NewMessage(RoleUser, "hi")},
		MaxTokens: 200,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, 5, resp.Usage.OutputTokens)
	assert.Equal(t, 17, resp.Usage.TotalTokens)
	assert.Equal(t, 0.00042, resp.CostUSD)

	// The router prefixes the model for gateway routing.
	assert.Equal(t, "openai/gpt-4.1", captured["model"])
	assert.Equal(t, float64(200), captured["max_tokens"])
}

func TestDirectComplete(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(completionHandler(t, &captured, successBody))
	defer srv.Close()

	direct, err := NewDirect(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	resp, err := direct.Complete(context.Background(), Request{
		Model:    "gpt-4o",
		Messages: []Message{NewMessage(RoleUser, "hi")},
	})
	require.NoError(t, err)

	// No prefix and no native cost on the direct path.
	assert.Equal(t, "gpt-4o", captured["model"])
	assert.Zero(t, resp.CostUSD)
	assert.Equal(t, "hello", resp.Content)
}

func TestCompleteMissingTotalTokens(t *testing.T) {
	body := `{
		"choices": [{"message": {"role": "assistant", "content": "ok"}}],
		"usage": {"prompt_tokens": 3, "completion_tokens": 4}
	}`
	srv := httptest.NewServer(completionHandler(t, nil, body))
	defer srv.Close()

	direct, err := NewDirect(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	resp, err := direct.Complete(context.Background(), Request{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
}

func TestCompleteAPIErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		recoverable bool
	}{
		{
			name:        "model not found",
			status:      http.StatusNotFound,
			body:        `{"error": {"message": "The model does not exist", "type": "invalid_request_error", "code": "model_not_found"}}`,
			recoverable: true,
		},
		{
			name:        "invalid api key",
			status:      http.StatusUnauthorized,
			body:        `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`,
			recoverable: false,
		},
		{
			name:        "quota exceeded",
			status:      http.StatusTooManyRequests,
			body:        `{"error": {"message": "You exceeded your current quota", "type": "insufficient_quota", "code": "insufficient_quota"}}`,
			recoverable: false,
		},
		{
			name:        "no choices",
			status:      http.StatusOK,
			body:        `{"choices": [], "usage": {"prompt_tokens": 1, "completion_tokens": 0}}`,
			recoverable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			direct, err := NewDirect(Config{BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = direct.Complete(context.Background(), Request{Model: "gpt-4o"})
			require.Error(t, err)
			assert.Equal(t, tt.recoverable, Recoverable(err))
		})
	}
}

func TestNewTransportValidation(t *testing.T) {
	if _, err := NewRouter(Config{}); err == nil {
		t.Error("NewRouter with empty base_url should fail")
	}
	if _, err := NewDirect(Config{}); err == nil {
		t.Error("NewDirect with empty base_url should fail")
	}
}

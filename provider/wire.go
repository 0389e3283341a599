package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// chatCompletionsPath is the OpenAI-compatible completion route served by
// both the direct endpoint and normalizing gateways.
const chatCompletionsPath = "/chat/completions"

// chatResponse is the OpenAI-compatible wire shape shared by both transports.
// The cost field is only populated by normalizing gateways.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Cost  float64   `json:"cost,omitempty"`
	Error *apiError `json:"error,omitempty"`
}

// apiError is the error envelope returned by OpenAI-compatible endpoints.
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

func (e *apiError) String() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

// recoverableAPIError reports whether an endpoint error indicates the model
// (not the credentials or quota) is the problem. This is the throw-site
// classification that tags *Error values.
func recoverableAPIError(e *apiError) bool {
	if e == nil {
		return false
	}
	if e.Code == "model_not_found" {
		return true
	}
	text := strings.ToLower(e.Message)
	for _, phrase := range recoverablePhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// completeChat performs one chat-completion round trip. The transport name is
// used for error attribution only.
func completeChat(ctx context.Context, name string, cfg Config, req Request) (*Response, error) {
	model := req.Model
	if cfg.ModelPrefix != "" {
		model = cfg.ModelPrefix + req.Model
	}

	payload := struct {
		Model     string    `json:"model"`
		Messages  []Message `json:"messages"`
		MaxTokens int       `json:"max_tokens,omitempty"`
	}{
		Model:     model,
		Messages:  req.Messages,
		MaxTokens: req.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewError(name, "complete", fmt.Errorf("encode request: %w", err), false)
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + chatCompletionsPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, NewError(name, "complete", err, false)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}

	httpResp, err := cfg.httpClient().Do(httpReq)
	if err != nil {
		// Network-level failures are not model-specific; a different model on
		// the same endpoint will fail the same way.
		return nil, NewError(name, "complete", err, false)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, 10<<20))
	if err != nil {
		return nil, NewError(name, "complete", fmt.Errorf("read response: %w", err), false)
	}

	var wire chatResponse
	if decodeErr := json.Unmarshal(raw, &wire); decodeErr != nil && httpResp.StatusCode == http.StatusOK {
		return nil, NewError(name, "complete", fmt.Errorf("decode response: %w", decodeErr), false)
	}

	if httpResp.StatusCode != http.StatusOK {
		if wire.Error != nil {
			return nil, NewError(name, "complete",
				fmt.Errorf("HTTP %d: %s", httpResp.StatusCode, wire.Error),
				recoverableAPIError(wire.Error))
		}
		return nil, NewError(name, "complete",
			fmt.Errorf("HTTP %d: %s", httpResp.StatusCode, strings.TrimSpace(string(raw))), false)
	}

	if wire.Error != nil {
		return nil, NewError(name, "complete", fmt.Errorf("endpoint error: %s", wire.Error),
			recoverableAPIError(wire.Error))
	}
	if len(wire.Choices) == 0 {
		return nil, NewError(name, "complete",
			fmt.Errorf("no content returned for model %q", req.Model), true)
	}

	respModel := wire.Model
	if respModel == "" {
		respModel = req.Model
	}

	return &Response{
		Content: wire.Choices[0].Message.Content,
		Model:   respModel,
		CostUSD: wire.Cost,
		Usage: TokenUsage{
			InputTokens:  wire.Usage.PromptTokens,
			OutputTokens: wire.Usage.CompletionTokens,
			TotalTokens:  totalTokens(wire.Usage.PromptTokens, wire.Usage.CompletionTokens, wire.Usage.TotalTokens),
		},
	}, nil
}

// totalTokens falls back to in+out when the endpoint omits the total.
func totalTokens(in, out, total int) int {
	if total > 0 {
		return total
	}
	return in + out
}

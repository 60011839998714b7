package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ChatCompletionsProvider calls any OpenAI-compatible /chat/completions
// endpoint (DeepSeek, Qwen compatible mode, local gateways).
type ChatCompletionsProvider struct {
	BaseURL    string // e.g. https://api.deepseek.com
	Model      string
	APIKey     string
	APIKeyEnv  string // consulted when APIKey is empty
	HTTPClient *http.Client
}

var _ Provider = (*ChatCompletionsProvider)(nil)

// NewDeepSeekProvider returns a provider for the DeepSeek chat API.
func NewDeepSeekProvider() *ChatCompletionsProvider {
	return &ChatCompletionsProvider{
		BaseURL:   "https://api.deepseek.com",
		Model:     "deepseek-chat",
		APIKeyEnv: "DEEPSEEK_API_KEY",
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *ChatCompletionsProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey, err := resolveKey(p.APIKey, p.APIKeyEnv)
	if err != nil {
		return "", err
	}

	var messages []chatMessage
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       stringOption(options, OptionModel, p.Model),
		Messages:    messages,
		Temperature: temperatureOption(options, 0.2),
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := strings.TrimSuffix(p.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat api call: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat api error: status=%d body=%s", res.StatusCode, string(raw))
	}

	var response chatResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("chat api returned no choices")
	}
	return response.Choices[0].Message.Content, nil
}

func (p *ChatCompletionsProvider) AdaptInstructions(raw string) string {
	return raw
}

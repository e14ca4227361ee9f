package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DietaryTags is the fixed tag vocabulary. Gateway suggestions outside
// this list are dropped.
var DietaryTags = []string{
	"Vegetarian", "Vegan", "Halal", "Kosher",
	"Gluten-Free", "Dairy-Free", "Egg-Free", "Nut-Free",
	"Contains Dairy", "Contains Eggs", "Contains Gluten", "Contains Nuts",
	"Spicy", "Low-Carb", "High-Protein",
}

var ErrAIRateLimited = errors.New("rate limit exceeded")

// AIClient calls an OpenAI-compatible chat-completions gateway to suggest
// dietary tags for a dish. Callers treat any error as "no suggestions".
type AIClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewAIClient(baseURL, apiKey, model string) *AIClient {
	return &AIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type chatMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	ToolCalls []chatToolCall `json:"tool_calls,omitempty"`
}

type chatToolCall struct {
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Tools      []chatTool    `json:"tools,omitempty"`
	ToolChoice any           `json:"tool_choice,omitempty"`
}

type chatTool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Parameters  map[string]any `json:"parameters"`
	} `json:"function"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const tagSystemPrompt = `You are a food analysis expert. Analyze the given dish name and description to identify dietary tags.
Return ONLY valid dietary tags from this list:
- Vegetarian
- Vegan
- Halal
- Kosher
- Gluten-Free
- Dairy-Free
- Egg-Free
- Nut-Free
- Contains Dairy
- Contains Eggs
- Contains Gluten
- Contains Nuts
- Spicy
- Low-Carb
- High-Protein

Be conservative and only include tags you're confident about based on the dish name and description.`

// SuggestTags asks the gateway for dietary tags via a forced tool call
// and filters the answer against the fixed vocabulary.
func (c *AIClient) SuggestTags(ctx context.Context, dishName, description string) ([]string, error) {
	if c.apiKey == "" {
		return nil, errors.New("AI API key not configured")
	}
	if description == "" {
		description = "No description provided"
	}

	var tool chatTool
	tool.Type = "function"
	tool.Function.Name = "suggest_tags"
	tool.Function.Description = "Return dietary tags for the dish"
	tool.Function.Parameters = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tags": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Array of dietary tags that apply to this dish",
			},
		},
		"required":             []string{"tags"},
		"additionalProperties": false,
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: tagSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Analyze this dish:\nName: %s\nDescription: %s", dishName, description)},
		},
		Tools: []chatTool{tool},
		ToolChoice: map[string]any{
			"type":     "function",
			"function": map[string]any{"name": "suggest_tags"},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, ErrAIRateLimited
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status: %d, body: %s", resp.StatusCode, string(respBody))
	}

	var res chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(res.Choices) == 0 || len(res.Choices[0].Message.ToolCalls) == 0 {
		return nil, errors.New("no tool call in response")
	}

	var args struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(res.Choices[0].Message.ToolCalls[0].Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w", err)
	}

	return filterVocabulary(args.Tags), nil
}

func filterVocabulary(tags []string) []string {
	known := make(map[string]bool, len(DietaryTags))
	for _, t := range DietaryTags {
		known[t] = true
	}

	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if known[t] {
			out = append(out, t)
		}
	}
	return out
}

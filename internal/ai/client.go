// Package ai talks to an OpenAI-compatible chat-completion endpoint to
// generate the portuguese daily challenge. The selector core is never
// involved for this type: the model's JSON output is parsed and returned.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"concurseiro-challenge-service/internal/domain"
)

// Client calls a chat-completion API (OpenAI, Ollama, vLLM and friends).
type Client struct {
	url    string
	model  string
	apiKey string
	client *http.Client
}

// NewClient builds a completion client for the given endpoint.
func NewClient(url, model, apiKey string) *Client {
	return &Client{
		url:    url,
		model:  model,
		apiKey: apiKey,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

const portuguesePrompt = `Gere um array JSON com %d questões de múltipla escolha de língua portuguesa
no nível de concurso público. Cada questão é um objeto com os campos:
"id" (string), "statement" (enunciado), "options" (lista de 5 alternativas),
"correctAnswer" (deve ser igual a uma das alternativas) e "justification".
Responda SOMENTE com o array JSON, sem markdown e sem explicações.`

// maxAttempts retries once on parse failure; small models occasionally wrap
// the array in prose on the first try.
const maxAttempts = 2

// GeneratePortugueseQuestions asks the model for count questions and parses
// the response as a JSON array. A response that is not array-shaped surfaces
// as an error to the handler boundary.
func (c *Client) GeneratePortugueseQuestions(ctx context.Context, count int) ([]domain.Question, error) {
	prompt := fmt.Sprintf(portuguesePrompt, count)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		content, err := c.complete(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		jsonStr := extractJSONArray(content)
		if jsonStr == "" {
			lastErr = fmt.Errorf("no JSON array found in model response")
			continue
		}

		var questions []domain.Question
		if err := json.Unmarshal([]byte(jsonStr), &questions); err != nil {
			lastErr = fmt.Errorf("invalid JSON from model: %w", err)
			continue
		}
		return questions, nil
	}
	return nil, fmt.Errorf("portuguese generation failed after %d attempts: %w", maxAttempts, lastErr)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("completion endpoint returned no content")
	}
	return parsed.Choices[0].Message.Content, nil
}

// extractJSONArray finds the outermost JSON array in a string, skipping
// brackets inside quoted strings.
func extractJSONArray(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == '[' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == ']' {
			depth--
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// Package aiclient talks to the OpenAI Chat Completions API on behalf of
// the AI commander. The model receives a serialized battle situation and
// answers with a short tactical directive; the service layer maps that
// directive onto legal engine commands and falls back to its own heuristics
// when the API is unavailable.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hexmech/hexmech/internal/constants"
	"github.com/hexmech/hexmech/internal/logging"
)

// promptTemplate can be set at application startup to customize the prompt
// used when asking for a battle plan. Use the token "{{situation}}" where
// the serialized battle summary will be substituted.
var promptTemplate string

// SetPromptTemplate sets a custom prompt template for AI turn planning.
// Call from main after loading configuration.
func SetPromptTemplate(t string) {
	promptTemplate = strings.TrimSpace(t)
}

const defaultPrompt = "You are commanding one side of a hex-grid mech battle. " +
	"Situation: {{situation}}. Reply with one short directive such as " +
	"'advance', 'hold', 'focus fire' or 'retreat'. Return only the directive."

// Available reports whether an API key is configured. The AI commander
// degrades to pure heuristics without one.
func Available() bool {
	return os.Getenv(constants.EnvOpenAIAPIKey) != ""
}

// RequestDirective asks the model for a one-line tactical directive for the
// given situation summary.
func RequestDirective(ctx context.Context, situation string) (string, error) {
	apiKey := os.Getenv(constants.EnvOpenAIAPIKey)
	if apiKey == "" {
		return "", fmt.Errorf("%s not set", constants.EnvOpenAIAPIKey)
	}

	prompt := promptTemplate
	if prompt == "" {
		prompt = defaultPrompt
	}
	prompt = strings.ReplaceAll(prompt, "{{situation}}", situation)

	payload := map[string]interface{}{
		"model": constants.OpenAIChatModel,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a terse tactical advisor for a turn-based wargame."},
			{"role": "user", "content": prompt},
		},
		"max_completion_tokens": 100,
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", constants.OpenAIBaseURL+constants.OpenAIChatCompletionsPath, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai error: %d %s", resp.StatusCode, string(body))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	directive := strings.TrimSpace(out.Choices[0].Message.Content)
	if idx := strings.Index(directive, "\n"); idx >= 0 {
		directive = directive[:idx]
	}
	directive = strings.Trim(directive, "\"' ")
	logging.Info("ai directive received", logging.Fields{"directive": directive})
	return directive, nil
}

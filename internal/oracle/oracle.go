// Package oracle wraps the external code-generation service: an
// OpenAI-compatible chat-completion endpoint (OpenRouter by default) that
// turns an instruction payload into structured JSON. Two operations exist:
// planning a project and generating a single file. Failures at this boundary
// are not retried; the caller treats them as fatal to the run.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tonyc973/ForgeSwarm/internal/templates"
	"github.com/tonyc973/ForgeSwarm/internal/types"
)

// ErrNoChoices is returned when the endpoint answers without any completion
// choices.
var ErrNoChoices = errors.New("oracle returned no choices")

// MalformedResponseError is returned when a completion arrives but its body
// cannot be decoded into the expected structure.
type MalformedResponseError struct {
	Body string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed oracle response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// completer is the slice of the go-openai client the oracle uses; tests
// substitute a stub.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client calls the oracle with two model bindings: a planning (architect)
// model and a per-file coder model.
type Client struct {
	api            completer
	coderModel     string
	architectModel string
}

// New builds a Client against baseURL with apiKey. OpenRouter-hosted models
// use the vendor-prefixed names (e.g. qwen/qwen-2.5-coder-32b-instruct).
func New(baseURL, apiKey, coderModel, architectModel string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{
		api:            openai.NewClientWithConfig(cfg),
		coderModel:     coderModel,
		architectModel: architectModel,
	}
}

// Plan asks the architect model for a structured project plan covering
// requirement. The plan must contain at least one file; an empty or
// undecodable plan is a planning failure.
func (c *Client) Plan(ctx context.Context, requirement string) (*types.ProjectPlan, error) {
	prompt, err := templates.RenderPlanPrompt(templates.PlanPrompt{Requirement: requirement})
	if err != nil {
		return nil, fmt.Errorf("render plan prompt: %w", err)
	}

	body, err := c.complete(ctx, c.architectModel, prompt)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	var plan types.ProjectPlan
	if err := json.Unmarshal([]byte(body), &plan); err != nil {
		return nil, &MalformedResponseError{Body: body, Err: err}
	}
	if len(plan.Files) == 0 {
		return nil, &MalformedResponseError{Body: body, Err: errors.New("plan contains no files")}
	}
	return &plan, nil
}

// GenerateFile asks the coder model to implement one file from the fully
// assembled instruction payload. The response must decode to a CodeFile with
// a non-empty filename.
func (c *Client) GenerateFile(ctx context.Context, instruction string) (*types.CodeFile, error) {
	body, err := c.complete(ctx, c.coderModel, instruction)
	if err != nil {
		return nil, fmt.Errorf("generate file: %w", err)
	}

	var file types.CodeFile
	if err := json.Unmarshal([]byte(body), &file); err != nil {
		return nil, &MalformedResponseError{Body: body, Err: err}
	}
	if file.Filename == "" {
		return nil, &MalformedResponseError{Body: body, Err: errors.New("filename is empty")}
	}
	return &file, nil
}

// complete performs one JSON-mode chat completion and returns the message
// content with any stray code fencing removed.
func (c *Client) complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return stripJSONFence(resp.Choices[0].Message.Content), nil
}

// stripJSONFence removes a Markdown fence wrapping the JSON body, which some
// models emit even in JSON mode.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 1 {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

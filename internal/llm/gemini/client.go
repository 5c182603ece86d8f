package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"brea-backend/internal/llm"
)

const defaultModel = "gemini-3-flash-preview"

// Config carries the explicit settings for the Gemini client. The API key
// is injected here rather than read from ambient process environment.
type Config struct {
	APIKey string
	Model  string
}

// Client implements llm.Client using the official genai SDK with a strict
// response schema. It performs a single attempt per call; retry policy, if
// any, belongs to the caller.
type Client struct {
	cli    *genai.Client
	apiKey string
	model  string
}

// NewClient constructs a Gemini client. A missing API key is a
// constructor-time failure, not a deferred runtime surprise.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &llm.InferenceError{Code: llm.CodeMissingCredential, Err: errors.New("GEMINI_API_KEY is required")}
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{cli: cli, apiKey: cfg.APIKey, model: model}, nil
}

// AnalyzeProperty sends the built request with the response schema and
// returns the model's raw textual output.
func (c *Client) AnalyzeProperty(ctx context.Context, input llm.AnalyzeInput) (string, error) {
	if c.cli == nil || strings.TrimSpace(c.apiKey) == "" {
		return "", &llm.InferenceError{Code: llm.CodeMissingCredential, Err: errors.New("GEMINI_API_KEY is required")}
	}

	parts, err := buildParts(input)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: parts}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   analysisSchema,
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: llm.SystemInstruction()}},
			},
		},
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &llm.InferenceError{Code: llm.CodeTimeout, Err: err}
		}
		return "", &llm.InferenceError{Code: llm.CodeTransport, Err: err}
	}
	logCall(c.model, input, time.Since(start))

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &llm.InferenceError{Code: llm.CodeEmptyResponse, Err: errors.New("no candidates in response")}
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", &llm.InferenceError{Code: llm.CodeEmptyResponse, Err: errors.New("empty response body")}
	}
	return text, nil
}

func buildParts(input llm.AnalyzeInput) ([]*genai.Part, error) {
	parts := []*genai.Part{{Text: llm.UserText(input)}}
	if input.File != nil {
		data, err := base64.StdEncoding.DecodeString(input.File.Content)
		if err != nil {
			return nil, &llm.InferenceError{Code: llm.CodeTransport, Err: fmt.Errorf("decode file payload: %w", err)}
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: input.File.MediaType,
				Data:     data,
			},
		})
		if text := strings.TrimSpace(input.FileText); text != "" {
			parts = append(parts, &genai.Part{Text: "Texto extraído del documento:\n" + text})
		}
	}
	return parts, nil
}

var _ llm.Client = (*Client)(nil)

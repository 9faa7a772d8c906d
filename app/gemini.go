package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// ContentPart is one segment of the content handed to the generation service:
// either plain text or inline bytes with a declared media type.
type ContentPart struct {
	Text     string
	Data     []byte
	MIMEType string
}

// GenerateRequest is the closed request shape handlers build per action kind.
type GenerateRequest struct {
	Instruction string
	Parts       []ContentPart
	Temperature float32
	// JSONOutput asks the model for a bare JSON object response.
	JSONOutput bool
	// UseSearch enables web-search grounding for the request.
	UseSearch bool
}

// Generator is the external generation collaborator consumed by handlers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

const (
	generateAttempts  = 3
	generateBaseDelay = 500 * time.Millisecond
)

type geminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator builds the production Generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiGenerator{client: client, model: model}, nil
}

// Generate calls the model with bounded retries. Transient failures back off
// with growing delay; 4xx API errors and caller cancellation are not retried.
func (g *geminiGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.Text != "" {
			parts = append(parts, &genai.Part{Text: p.Text})
			continue
		}
		if len(p.Data) > 0 {
			parts = append(parts, &genai.Part{InlineData: &genai.Blob{
				MIMEType: p.MIMEType,
				Data:     p.Data,
			}})
		}
	}
	if len(parts) == 0 {
		return "", errors.New("no content parts to send")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(req.Temperature),
		SystemInstruction: genai.NewContentFromText(req.Instruction, genai.RoleUser),
	}
	if req.JSONOutput {
		cfg.ResponseMIMEType = "application/json"
	}
	if req.UseSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var lastErr error
	for attempt := 0; attempt < generateAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(generateBaseDelay << (attempt - 1)):
			}
		}

		resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
		if err != nil {
			lastErr = err
			if !retryableGenerateError(ctx, err) {
				return "", err
			}
			continue
		}

		text := strings.TrimSpace(resp.Text())
		if text == "" {
			// Response arrived but the text field is missing or empty.
			lastErr = errors.New("empty model response")
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("after %d attempts: %w", generateAttempts, lastErr)
}

// retryableGenerateError reports whether another attempt could help. Client
// misuse (auth, malformed input) and cancellation never get retried.
func retryableGenerateError(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != 429 {
			return false
		}
	}
	return true
}

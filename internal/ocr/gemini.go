package ocr

import (
	"context"
	"errors"
	"fmt"

	genai "google.golang.org/genai"
)

const geminiPrompt = "Transcribe the text in this image exactly as written. " +
	"Return only the transcribed text, no commentary, no code fences."

// GeminiRecognizer recognizes text with a Gemini multimodal model. Each call
// sends the region image inline; the remote call is treated as flaky and is
// retried by the scheduler, not here.
type GeminiRecognizer struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed recognizer.
func NewGemini(ctx context.Context, apiKey, model string) (*GeminiRecognizer, error) {
	if apiKey == "" {
		return nil, errors.New("missing Gemini API key")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiRecognizer{client: client, model: model}, nil
}

// Recognize implements Recognizer.
func (g *GeminiRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	content := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: geminiPrompt},
			{InlineData: &genai.Blob{MIMEType: "image/png", Data: image}},
		},
	}
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return cleanText(res.Text()), nil
}

// Close implements Recognizer. The genai client holds no local resources.
func (g *GeminiRecognizer) Close() error { return nil }

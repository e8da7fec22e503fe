package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"placements-assistant/internal/domain/entity"

	"google.golang.org/genai"
)

// NewGenAIClient targets Vertex AI when apiKey is empty and the Gemini API otherwise.
func NewGenAIClient(ctx context.Context, project, location, apiKey string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		Project:  project,
		Location: location,
		Backend:  genai.BackendVertexAI,
	}
	if apiKey != "" {
		cfg = &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return client, nil
}

// GeminiCompleter generates answers with a Gemini model.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

func NewGeminiCompleter(c *genai.Client, model string) *GeminiCompleter {
	return &GeminiCompleter{client: c, model: model}
}

func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", completionError(err)
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no candidate text", entity.ErrMalformedCompletion)
	}
	return text, nil
}

// completionError maps API errors onto the status error; everything else is a transport failure.
func completionError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &entity.CompletionStatusError{StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	return fmt.Errorf("calling gemini: %w", err)
}

// Embedder creates embeddings with a genai embedding model, e.g. text-embedding-004.
type Embedder struct {
	client    *genai.Client
	model     string
	dimension int32
}

// NewEmbedderFromClient requests dimension-sized vectors; 0 keeps the model default.
func NewEmbedderFromClient(c *genai.Client, model string, dimension int32) *Embedder {
	return &Embedder{
		client:    c,
		model:     model,
		dimension: dimension,
	}
}

func (e *Embedder) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	var cfg *genai.EmbedContentConfig
	if e.dimension > 0 {
		cfg = &genai.EmbedContentConfig{OutputDimensionality: genai.Ptr(e.dimension)}
	}
	res, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), cfg)
	if err != nil {
		return nil, err
	}
	if len(res.Embeddings) == 0 || len(res.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("model %s returned no embedding", e.model)
	}
	return res.Embeddings[0].Values, nil
}

const nerInstruction = `Extract named entities from the user text as a JSON array of objects with "text" and "label".
Use label "ORG" for companies and organizations and "DATE" for dates and years.
Copy the entity text exactly as it appears. Return [] when nothing is found. Do not explain.
Example: "Did Infosys hire in 2023?" -> [{"text": "Infosys", "label": "ORG"}, {"text": "2023", "label": "DATE"}]`

// GeminiRecognizer is the NER collaborator, backed by a Gemini model in JSON mode.
type GeminiRecognizer struct {
	client *genai.Client
	model  string
}

func NewGeminiRecognizer(client *genai.Client, model string) *GeminiRecognizer {
	return &GeminiRecognizer{client: client, model: model}
}

func (r *GeminiRecognizer) Recognize(ctx context.Context, text string) ([]entity.Span, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	}
	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(nerInstruction+"\nText: "+text), cfg)
	if err != nil {
		return nil, fmt.Errorf("ner request: %w", err)
	}
	return parseSpans(resp.Text())
}

func parseSpans(raw string) ([]entity.Span, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "```"), "```")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var spans []entity.Span
	if err := json.Unmarshal([]byte(raw), &spans); err != nil {
		return nil, fmt.Errorf("decoding ner output: %w", err)
	}
	return spans, nil
}

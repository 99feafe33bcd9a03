package ai

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/config"
)

// GeminiClient is the Gateway implementation over the Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGeminiClient connects to the Gemini API with the configured key and
// model.
func NewGeminiClient(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}, nil
}

func (g *GeminiClient) generateConfig(req Request) *genai.GenerateContentConfig {
	if req.JSONSchema == nil {
		return nil
	}
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenaiSchema(req.JSONSchema),
	}
}

func (g *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), g.generateConfig(req))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	g.logger.Debug("gemini generate",
		zap.String("model", g.model),
		zap.Duration("elapsed", time.Since(start)))
	return resp.Text(), nil
}

func (g *GeminiClient) GenerateStream(ctx context.Context, req Request, onChunk func(text string) error) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(req.Prompt), g.generateConfig(req)) {
		if err != nil {
			return fmt.Errorf("generate content stream: %w", err)
		}
		if text := resp.Text(); text != "" {
			if err := onChunk(text); err != nil {
				return err
			}
		}
	}
	return nil
}

var genaiTypes = map[string]genai.Type{
	"object":  genai.TypeObject,
	"array":   genai.TypeArray,
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiTypes[s.Type],
		Description: s.Description,
		Required:    s.Required,
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toGenaiSchema(p)
		}
	}
	return out
}

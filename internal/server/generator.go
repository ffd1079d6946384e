package server

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	ollama "github.com/JexSrs/go-ollama"
)

// Generator produces text for a prompt. maxLength bounds the returned
// text; implementations may enforce it on the result when the backing
// model API carries no length parameter.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxLength int) (string, error)
}

// OllamaGenerator calls a local Ollama host for text generation.
type OllamaGenerator struct {
	client *ollama.Ollama
	model  string
}

func NewOllamaGenerator(host, model string) (*OllamaGenerator, error) {
	parsed, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}

	return &OllamaGenerator{
		client: ollama.New(*parsed),
		model:  model,
	}, nil
}

func (g *OllamaGenerator) Generate(ctx context.Context, prompt string, maxLength int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	res, err := g.client.Generate(
		g.client.Generate.WithModel(g.model),
		g.client.Generate.WithPrompt(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if !res.Done {
		return "", fmt.Errorf("generation did not complete")
	}

	// Models occasionally wrap output in fences.
	text := strings.TrimSpace(strings.Trim(res.Response, "`"))
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	if runes := []rune(text); maxLength > 0 && len(runes) > maxLength {
		text = string(runes[:maxLength])
	}

	return text, nil
}

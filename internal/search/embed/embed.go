// Package embed adapts an OpenAI-compatible embeddings endpoint to the
// search.Encoder boundary.
package embed

import (
	"context"
	"fmt"

	openaiembedding "github.com/cloudwego/eino-ext/components/embedding/openai"
)

type Encoder struct {
	embedder *openaiembedding.Embedder
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

func New(ctx context.Context, cfg Config) (*Encoder, error) {
	embedder, err := openaiembedding.NewEmbedder(ctx, &openaiembedding.EmbeddingConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	return &Encoder{embedder: embedder}, nil
}

// Encode embeds texts in one batch call and narrows the vectors to float32
// for the store.
func (e *Encoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := e.embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, err
	}
	out := make([][]float32, len(vectors))
	for i, v := range vectors {
		out[i] = make([]float32, len(v))
		for j, x := range v {
			out[i][j] = float32(x)
		}
	}
	return out, nil
}

// Package gemini is an alternate recognizer engine backed by Gemini vision,
// for deployments without a local CLIP4STR worker.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/thuuthuyy/wine-scanner-v2/internal/artifact"
	"github.com/thuuthuyy/wine-scanner-v2/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string { return "gemini" }

const prompt = `The image is a cropped fragment of a wine label containing a single ` +
	`piece of text. Transcribe the text exactly as printed. Reply with the ` +
	`text only: no quotes, no explanations, no formatting.`

// Recognize transcribes each crop in filename-sorted order, one request per
// crop, so the joined output matches the worker engine's ordering contract.
func (e *Engine) Recognize(ctx context.Context, cropDir string) ([]string, error) {
	if e.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	crops, err := artifact.ListImages(cropDir)
	if err != nil {
		return nil, err
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return nil, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{Temperature: ptrFloat32(0)}

	texts := make([]string, 0, len(crops))
	for _, crop := range crops {
		data, err := os.ReadFile(crop)
		if err != nil {
			return nil, err
		}
		resp, err := m.GenerateContent(ctx,
			genai.Text(prompt),
			&genai.Blob{MIMEType: util.SniffMimeHTTP(data), Data: data},
		)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		texts = append(texts, firstText(resp))
	}
	return texts, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String())
}

func ptrFloat32(v float32) *float32 { return &v }

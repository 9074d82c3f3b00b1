// Package recognize talks to the text-recognition worker (a long-lived
// CLIP4STR service) over HTTP.
package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

type Worker struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) *Worker {
	return &Worker{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 120 * time.Second},
	}
}

func (w *Worker) Name() string { return "worker" }

type recognizeRequest struct {
	ImagesPath string `json:"images_path"`
}

type recognizeResponse struct {
	Texts []string `json:"texts"`
}

// Recognize submits the whole crop directory as one batch. The worker reads
// the crops in filename-sorted order and returns one transcription per crop.
func (w *Worker) Recognize(ctx context.Context, cropDir string) ([]string, error) {
	absCrops, err := filepath.Abs(cropDir)
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(recognizeRequest{ImagesPath: absCrops})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/recognize", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("recognizer worker %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("recognizer worker: bad response: %w", err)
	}
	return out.Texts, nil
}

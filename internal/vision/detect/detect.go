// Package detect talks to the text-detection worker (a long-lived CRAFT
// service) over HTTP.
package detect

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
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

type detectRequest struct {
	ImagePath string `json:"image_path"`
	OutputDir string `json:"output_dir"`
}

// Detect submits one image to the worker. The worker writes its crops into
// outputDir; HTTP 200 stands in for the old subprocess exit code 0.
func (w *Worker) Detect(ctx context.Context, imagePath, cropDir string) error {
	absImage, err := filepath.Abs(imagePath)
	if err != nil {
		return err
	}
	absCrops, err := filepath.Abs(cropDir)
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(detectRequest{ImagePath: absImage, OutputDir: absCrops})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/detect", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("detector worker %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

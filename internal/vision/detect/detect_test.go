package detect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSubmitsTask(t *testing.T) {
	var got struct {
		ImagePath string `json:"image_path"`
		OutputDir string `json:"output_dir"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/detect", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := New(srv.URL)
	err := w.Detect(context.Background(), "/scratch/ws/label.jpg", "/scratch/ws/crops")
	require.NoError(t, err)
	assert.Equal(t, "/scratch/ws/label.jpg", got.ImagePath)
	assert.Equal(t, "/scratch/ws/crops", got.OutputDir)
}

func TestDetectWorkerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	w := New(srv.URL)
	err := w.Detect(context.Background(), "/scratch/ws/label.jpg", "/scratch/ws/crops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "model not loaded")
}

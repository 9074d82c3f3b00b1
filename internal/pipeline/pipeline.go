// Package pipeline sequences the recognition stages: download the label
// image, detect text regions, recognize every crop, join the results.
// No stage is retried; any failure aborts the request with no partial text.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thuuthuyy/wine-scanner-v2/internal/artifact"
	"github.com/thuuthuyy/wine-scanner-v2/internal/vision"
)

// Result is the output of one successful run.
type Result struct {
	Text   string
	Crops  int
	Engine string
}

type Pipeline struct {
	store      *artifact.Store
	detector   vision.Detector
	recognizer vision.Recognizer
	httpc      *http.Client
	log        *logrus.Entry
}

func New(store *artifact.Store, detector vision.Detector, recognizer vision.Recognizer) *Pipeline {
	return &Pipeline{
		store:      store,
		detector:   detector,
		recognizer: recognizer,
		httpc:      &http.Client{Timeout: 30 * time.Second},
		log:        logrus.WithField("component", "pipeline"),
	}
}

// Recognize runs the full chain for one image URL inside a private
// workspace. The workspace is removed on every exit path.
func (p *Pipeline) Recognize(ctx context.Context, imageURL string) (Result, error) {
	ws, err := p.store.Begin()
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			p.log.WithError(err).WithField("workspace", ws.ID).Warn("workspace cleanup failed")
		}
	}()

	if err := p.download(ctx, imageURL, ws); err != nil {
		return Result{}, err
	}

	if err := p.detector.Detect(ctx, ws.ImagePath, ws.CropDir); err != nil {
		return Result{}, &DetectionError{Err: err}
	}

	crops, err := ws.Crops()
	if err != nil {
		return Result{}, &DetectionError{Err: err}
	}
	if len(crops) == 0 {
		return Result{}, ErrNoRegions
	}

	texts, err := p.recognizer.Recognize(ctx, ws.CropDir)
	if err != nil {
		return Result{}, &RecognitionError{Engine: p.recognizer.Name(), Err: err}
	}

	res := Result{
		Text:   strings.Join(texts, " "),
		Crops:  len(crops),
		Engine: p.recognizer.Name(),
	}
	p.log.WithFields(logrus.Fields{
		"workspace": ws.ID,
		"crops":     res.Crops,
		"engine":    res.Engine,
	}).Info("recognition complete")
	return res, nil
}

func (p *Pipeline) download(ctx context.Context, imageURL string, ws *artifact.Workspace) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return &DownloadError{URL: imageURL, Err: err}
	}
	resp, err := p.httpc.Do(req)
	if err != nil {
		return &DownloadError{URL: imageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DownloadError{URL: imageURL, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if err := ws.SaveImage(resp.Body); err != nil {
		return &DownloadError{URL: imageURL, Err: err}
	}
	return nil
}

// Package vision defines the boundaries to the external text-detection and
// text-recognition models. The models run out of process as long-lived
// workers; an adapter submits one task and reports success or failure.
package vision

import (
	"context"
	"fmt"
)

// Detector localizes text regions on one image and writes the cropped
// regions into cropDir. A nil error means the detector ran and its crops
// (possibly none) are on disk.
type Detector interface {
	Detect(ctx context.Context, imagePath, cropDir string) error
}

// Recognizer transcribes every crop in cropDir, one string per crop, in
// filename-sorted order. The ordering is part of the contract: repeated
// runs over the same crop set must return the same sequence.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, cropDir string) ([]string, error)
}

// Engines holds the configured recognizer engines keyed by name.
type Engines struct {
	byName map[string]Recognizer
}

func NewEngines(engines ...Recognizer) *Engines {
	m := make(map[string]Recognizer, len(engines))
	for _, e := range engines {
		m[e.Name()] = e
	}
	return &Engines{byName: m}
}

func (e *Engines) Get(name string) (Recognizer, error) {
	if eng, ok := e.byName[name]; ok {
		return eng, nil
	}
	return nil, fmt.Errorf("unknown recognizer engine %q", name)
}

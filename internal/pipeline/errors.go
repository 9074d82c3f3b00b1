package pipeline

import (
	"errors"
	"fmt"
)

// ErrNoRegions means the detector ran fine but found no text on the image.
var ErrNoRegions = errors.New("no text regions detected")

// DownloadError: the label image could not be fetched from its URL.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// DetectionError: the detector worker failed.
type DetectionError struct {
	Err error
}

func (e *DetectionError) Error() string { return fmt.Sprintf("text detection: %v", e.Err) }
func (e *DetectionError) Unwrap() error { return e.Err }

// RecognitionError: the recognizer engine failed.
type RecognitionError struct {
	Engine string
	Err    error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("text recognition (%s): %v", e.Engine, e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

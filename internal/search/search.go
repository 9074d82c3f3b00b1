// Package search resolves a recognized wine name against the catalog:
// vector similarity first, fuzzy string matching only when the vector tier
// returns nothing at all.
package search

import (
	"context"
	"fmt"

	"github.com/thuuthuyy/wine-scanner-v2/internal/catalog"
)

// Encoder turns text into fixed-dimension embedding vectors.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// Candidate is one ranked hit from the vector tier.
type Candidate struct {
	Record catalog.Record
	Score  float32
}

// Point is one record ready for upsert.
type Point struct {
	ID     uint64
	Vector []float32
	Record catalog.Record
}

// VectorStore is the nearest-neighbor store boundary.
type VectorStore interface {
	Search(ctx context.Context, vector []float32, limit int) ([]Candidate, error)
	Upsert(ctx context.Context, points []Point) error
	ScrollAll(ctx context.Context, limit int) ([]catalog.Record, error)
}

// BackendError marks encoder or store unavailability, as opposed to an
// empty-but-valid search outcome.
type BackendError struct {
	Stage string
	Err   error
}

func (e *BackendError) Error() string { return fmt.Sprintf("search backend (%s): %v", e.Stage, e.Err) }
func (e *BackendError) Unwrap() error { return e.Err }

// Package qdrant implements the search.VectorStore boundary on top of the
// official Qdrant gRPC client.
package qdrant

import (
	"context"
	"fmt"
	"time"

	qd "github.com/qdrant/go-client/qdrant"

	"github.com/thuuthuyy/wine-scanner-v2/internal/catalog"
	"github.com/thuuthuyy/wine-scanner-v2/internal/search"
)

// callTimeout bounds every store call.
const callTimeout = 30 * time.Second

type Store struct {
	client     *qd.Client
	collection string
}

type Config struct {
	Host       string
	Port       int
	APIKey     string
	Collection string
}

func New(cfg Config) (*Store, error) {
	client, err := qd.NewClient(&qd.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("connect qdrant: %w", err)
	}
	return &Store{client: client, collection: cfg.Collection}, nil
}

// EnsureCollection creates the collection if it does not exist yet
// (cosine distance, the encoder's vector size).
func (s *Store) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.CreateCollection(ctx, &qd.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qd.NewVectorsConfig(&qd.VectorParams{
			Size:     vectorSize,
			Distance: qd.Distance_Cosine,
		}),
	})
}

func (s *Store) Search(ctx context.Context, vector []float32, limit int) ([]search.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	points, err := s.client.Query(ctx, &qd.QueryPoints{
		CollectionName: s.collection,
		Query:          qd.NewQuery(vector...),
		Limit:          qd.PtrOf(uint64(limit)),
		Offset:         qd.PtrOf(uint64(0)),
		WithPayload:    qd.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]search.Candidate, 0, len(points))
	for _, p := range points {
		candidates = append(candidates, search.Candidate{
			Record: recordFromPayload(p.GetPayload()),
			Score:  p.GetScore(),
		})
	}
	return candidates, nil
}

func (s *Store) Upsert(ctx context.Context, points []search.Point) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	qdPoints := make([]*qd.PointStruct, 0, len(points))
	for _, p := range points {
		qdPoints = append(qdPoints, &qd.PointStruct{
			Id:      qd.NewIDNum(p.ID),
			Vectors: qd.NewVectors(p.Vector...),
			Payload: qd.NewValueMap(p.Record.Payload()),
		})
	}
	_, err := s.client.Upsert(ctx, &qd.UpsertPoints{
		CollectionName: s.collection,
		Points:         qdPoints,
		Wait:           qd.PtrOf(true),
	})
	return err
}

// ScrollAll reads up to limit records from the collection for the fuzzy
// snapshot.
func (s *Store) ScrollAll(ctx context.Context, limit int) ([]catalog.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	points, err := s.client.Scroll(ctx, &qd.ScrollPoints{
		CollectionName: s.collection,
		Limit:          qd.PtrOf(uint32(limit)),
		WithPayload:    qd.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}
	records := make([]catalog.Record, 0, len(points))
	for _, p := range points {
		records = append(records, recordFromPayload(p.GetPayload()))
	}
	return records, nil
}

func recordFromPayload(payload map[string]*qd.Value) catalog.Record {
	fields := make(map[string]string, len(payload))
	for k, v := range payload {
		fields[k] = v.GetStringValue()
	}
	return catalog.FromPayload(fields)
}

package search

import (
	"context"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/sirupsen/logrus"

	"github.com/thuuthuyy/wine-scanner-v2/internal/catalog"
)

// Query carries the incoming search request. Only Name participates in
// matching; the other fields are accepted for forward compatibility.
type Query struct {
	Name     string `json:"name"`
	Producer string `json:"producer,omitempty"`
	Vintage  string `json:"vintage,omitempty"`
	Region   string `json:"region,omitempty"`
	Type     string `json:"type,omitempty"`
}

type ResolutionKind int

const (
	// KindRanked: the vector tier returned candidates.
	KindRanked ResolutionKind = iota
	// KindFuzzy: vector tier empty, fuzzy match above threshold.
	KindFuzzy
	// KindNone: no match in either tier. A valid outcome, not an error.
	KindNone
)

// Match is a fuzzy-tier hit.
type Match struct {
	Name   string
	Score  int
	Record catalog.Record
}

// Resolution is the outcome of one search.
type Resolution struct {
	Kind   ResolutionKind
	Ranked []Candidate
	Match  *Match
}

const (
	vectorLimit    = 5
	fuzzyThreshold = 70
)

// Resolver implements the two-tier waterfall. The vector tier is
// authoritative whenever it returns anything, with no score threshold;
// the fuzzy tier applies a strict >70 gate on a 0-100 ratio.
type Resolver struct {
	encoder  Encoder
	store    VectorStore
	snapshot *catalog.Snapshot
	scorer   func(a, b string) int
	log      *logrus.Entry
}

func NewResolver(encoder Encoder, store VectorStore, snapshot *catalog.Snapshot) *Resolver {
	return &Resolver{
		encoder:  encoder,
		store:    store,
		snapshot: snapshot,
		scorer:   fuzzy.Ratio,
		log:      logrus.WithField("component", "resolver"),
	}
}

func (r *Resolver) Resolve(ctx context.Context, q Query) (Resolution, error) {
	name := strings.TrimSpace(q.Name)

	vectors, err := r.encoder.Encode(ctx, []string{name})
	if err != nil {
		return Resolution{}, &BackendError{Stage: "encoder", Err: err}
	}

	candidates, err := r.store.Search(ctx, vectors[0], vectorLimit)
	if err != nil {
		return Resolution{}, &BackendError{Stage: "store", Err: err}
	}
	if len(candidates) > 0 {
		return Resolution{Kind: KindRanked, Ranked: candidates}, nil
	}

	// Vector tier came back empty: consult the catalog snapshot.
	best, bestScore := "", -1
	for _, known := range r.snapshot.Names() {
		if score := r.scorer(name, known); score > bestScore {
			best, bestScore = known, score
		}
	}
	if bestScore > fuzzyThreshold {
		if record, ok := r.snapshot.Get(best); ok {
			r.log.WithFields(logrus.Fields{"query": name, "match": best, "score": bestScore}).
				Info("fuzzy fallback hit")
			return Resolution{Kind: KindFuzzy, Match: &Match{Name: best, Score: bestScore, Record: record}}, nil
		}
	}

	return Resolution{Kind: KindNone}, nil
}

package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointIDStable(t *testing.T) {
	url := "https://www.vivino.com/wines/1234"
	first := PointID(url)
	second := PointID(url)
	assert.Equal(t, first, second)
	assert.Less(t, first, uint64(1_000_000_000_000))
}

func TestPointIDDiffersAcrossURLs(t *testing.T) {
	assert.NotEqual(t,
		PointID("https://example.com/wine/a"),
		PointID("https://example.com/wine/b"))
}

func TestBatchesExcludeRecordsWithoutURL(t *testing.T) {
	records := []Record{
		{Name: "A", URL: "https://example.com/a"},
		{Name: "B"}, // no URL, must never reach the store
		{Name: "C", URL: "https://example.com/c"},
	}
	batches := Batches(records, 1000)
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 2)
	for _, r := range batches[0] {
		assert.NotEmpty(t, r.URL)
	}
}

func TestBatchesSplitBySize(t *testing.T) {
	records := make([]Record, 5)
	for i := range records {
		records[i] = Record{Name: "w", URL: "https://example.com/w"}
	}
	batches := Batches(records, 2)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[1], 2)
	assert.Len(t, batches[2], 1)
}

func TestPayloadRoundTrip(t *testing.T) {
	r := Record{
		WineID:   "42",
		Name:     "Chateau Margaux",
		Winery:   "Chateau Margaux",
		Vintage:  "2015",
		WineType: "Red",
		Region:   "Margaux",
		URL:      "https://example.com/margaux",
	}
	p := r.Payload()
	asStrings := make(map[string]string, len(p))
	for k, v := range p {
		asStrings[k] = v.(string)
	}
	assert.Equal(t, r, FromPayload(asStrings))
}

type fakeLister struct {
	records []Record
	err     error
	calls   int
}

func (f *fakeLister) ScrollAll(_ context.Context, _ int) ([]Record, error) {
	f.calls++
	return f.records, f.err
}

func TestSnapshotRefresh(t *testing.T) {
	lister := &fakeLister{records: []Record{
		{Name: "Chateau Margaux", URL: "https://example.com/a"},
		{Name: "Opus One", URL: "https://example.com/b"},
	}}
	snap := NewSnapshot(lister, 1000)
	require.NoError(t, snap.Refresh(context.Background()))

	assert.ElementsMatch(t, []string{"Chateau Margaux", "Opus One"}, snap.Names())
	r, ok := snap.Get("Opus One")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/b", r.URL)

	_, ok = snap.Get("Screaming Eagle")
	assert.False(t, ok)
}

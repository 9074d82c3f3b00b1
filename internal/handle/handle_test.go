package handle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thuuthuyy/wine-scanner-v2/internal/catalog"
	"github.com/thuuthuyy/wine-scanner-v2/internal/pipeline"
	"github.com/thuuthuyy/wine-scanner-v2/internal/search"
)

type fakeExtractor struct {
	result pipeline.Result
	err    error
	calls  int
}

func (f *fakeExtractor) Recognize(_ context.Context, _ string) (pipeline.Result, error) {
	f.calls++
	return f.result, f.err
}

type fakeResolver struct {
	resolution search.Resolution
	err        error
}

func (f *fakeResolver) Resolve(_ context.Context, _ search.Query) (search.Resolution, error) {
	return f.resolution, f.err
}

func newRouter(extractor TextExtractor, resolver WineResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(extractor, resolver, nil)
	r := gin.New()
	r.POST("/extract_text/", h.ExtractText)
	r.POST("/search_wine/", h.SearchWine)
	return r
}

func post(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestExtractTextEmptyURL(t *testing.T) {
	ext := &fakeExtractor{}
	r := newRouter(ext, &fakeResolver{})

	w := post(t, r, "/extract_text/", gin.H{"image_url": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No image URL provided!", decode(t, w)["detail"])
	assert.Zero(t, ext.calls, "pipeline must not run for an empty URL")
}

func TestExtractTextDownloadFailure(t *testing.T) {
	url := "http://example.com/gone.jpg"
	ext := &fakeExtractor{err: &pipeline.DownloadError{URL: url, Err: errors.New("status 404")}}
	r := newRouter(ext, &fakeResolver{})

	w := post(t, r, "/extract_text/", gin.H{"image_url": url})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Failed to download image from URL: "+url, decode(t, w)["detail"])
}

func TestExtractTextNoRegions(t *testing.T) {
	ext := &fakeExtractor{err: pipeline.ErrNoRegions}
	r := newRouter(ext, &fakeResolver{})

	w := post(t, r, "/extract_text/", gin.H{"image_url": "http://example.com/label.jpg"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No cropped images found!", decode(t, w)["detail"])
}

func TestExtractTextStageFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		msg  string
	}{
		{"detection", &pipeline.DetectionError{Err: errors.New("boom")}, "Text detection failed!"},
		{"recognition", &pipeline.RecognitionError{Engine: "worker", Err: errors.New("boom")}, "Text recognition failed!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&fakeExtractor{err: tc.err}, &fakeResolver{})
			w := post(t, r, "/extract_text/", gin.H{"image_url": "http://example.com/l.jpg"})
			assert.Equal(t, http.StatusBadGateway, w.Code)
			assert.Equal(t, tc.msg, decode(t, w)["detail"])
		})
	}
}

func TestExtractTextSuccess(t *testing.T) {
	ext := &fakeExtractor{result: pipeline.Result{Text: "CHATEAU MARGAUX 2015", Crops: 3, Engine: "worker"}}
	r := newRouter(ext, &fakeResolver{})

	w := post(t, r, "/extract_text/", gin.H{"image_url": "http://example.com/label.jpg"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CHATEAU MARGAUX 2015", decode(t, w)["recognized_text"])
}

func TestSearchWineRanked(t *testing.T) {
	res := search.Resolution{
		Kind: search.KindRanked,
		Ranked: []search.Candidate{{
			Record: catalog.Record{
				Name:         "Opus One",
				Winery:       "Opus One Winery",
				WineType:     "Red",
				Region:       "Napa Valley",
				Vintage:      "2018",
				Price:        "399",
				FoodPairings: "Beef",
				URL:          "https://example.com/opus",
			},
			Score: 0.93,
		}},
	}
	r := newRouter(&fakeExtractor{}, &fakeResolver{resolution: res})

	w := post(t, r, "/search_wine/", search.Query{Name: "Opus One"})
	require.Equal(t, http.StatusOK, w.Code)

	out := decode(t, w)
	results, ok := out["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "Opus One", first["Name"])
	details := first["Details"].(map[string]any)
	assert.Equal(t, "Opus One Winery", details["Producer"])
	assert.Equal(t, "Red", details["Wine Type"])
	assert.Equal(t, "Beef", details["Food Pairings"])
	assert.Equal(t, "https://example.com/opus", details["URL"])
}

func TestSearchWineFuzzy(t *testing.T) {
	res := search.Resolution{
		Kind: search.KindFuzzy,
		Match: &search.Match{
			Name:   "Chateau Margaux",
			Score:  86,
			Record: catalog.Record{Name: "Chateau Margaux", URL: "https://example.com/margaux"},
		},
	}
	r := newRouter(&fakeExtractor{}, &fakeResolver{resolution: res})

	w := post(t, r, "/search_wine/", search.Query{Name: "Chateu Margaux"})
	require.Equal(t, http.StatusOK, w.Code)

	out := decode(t, w)
	assert.Equal(t, "Chateau Margaux", out["name"])
	assert.Equal(t, float64(86), out["score"])
	details := out["details"].(map[string]any)
	assert.Equal(t, "https://example.com/margaux", details["url"])
}

func TestSearchWineNotFound(t *testing.T) {
	r := newRouter(&fakeExtractor{}, &fakeResolver{resolution: search.Resolution{Kind: search.KindNone}})

	w := post(t, r, "/search_wine/", search.Query{Name: "nothing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No matching wine found!", decode(t, w)["detail"])
}

func TestSearchWineBackendError(t *testing.T) {
	resolver := &fakeResolver{err: &search.BackendError{Stage: "store", Err: errors.New("down")}}
	r := newRouter(&fakeExtractor{}, resolver)

	w := post(t, r, "/search_wine/", search.Query{Name: "x"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Search backend unavailable!", decode(t, w)["detail"])
}

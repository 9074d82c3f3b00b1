package handle

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thuuthuyy/wine-scanner-v2/internal/pipeline"
	"github.com/thuuthuyy/wine-scanner-v2/internal/store"
)

type extractRequest struct {
	ImageURL string `json:"image_url"`
}

type extractResponse struct {
	RecognizedText string `json:"recognized_text"`
}

// ExtractText handles POST /extract_text/.
func (h *Handle) ExtractText(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		detail(c, http.StatusBadRequest, "No image URL provided!")
		return
	}

	res, err := h.extractor.Recognize(c.Request.Context(), imageURL)
	if err != nil {
		h.log.WithError(err).WithField("image_url", imageURL).Warn("extract failed")

		var dlErr *pipeline.DownloadError
		switch {
		case errors.As(err, &dlErr):
			detail(c, http.StatusBadRequest, "Failed to download image from URL: "+dlErr.URL)
		case errors.Is(err, pipeline.ErrNoRegions):
			detail(c, http.StatusNotFound, "No cropped images found!")
		case isDetection(err):
			detail(c, http.StatusBadGateway, "Text detection failed!")
		case isRecognition(err):
			detail(c, http.StatusBadGateway, "Text recognition failed!")
		default:
			detail(c, http.StatusInternalServerError, "Internal error!")
		}
		return
	}

	if h.scans != nil {
		scan := store.Scan{
			ImageURL:       imageURL,
			RecognizedText: res.Text,
			CropCount:      res.Crops,
			Engine:         res.Engine,
		}
		if err := h.scans.Insert(c.Request.Context(), scan); err != nil {
			h.log.WithError(err).Warn("scan history insert failed")
		}
	}

	c.JSON(http.StatusOK, extractResponse{RecognizedText: res.Text})
}

func isDetection(err error) bool {
	var e *pipeline.DetectionError
	return errors.As(err, &e)
}

func isRecognition(err error) bool {
	var e *pipeline.RecognitionError
	return errors.As(err, &e)
}

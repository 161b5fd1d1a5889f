package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"primaland/server/internal/imaging"
)

// UploadResult reports the outcome for one file in a batch upload.
type UploadResult struct {
	FileName string `json:"file_name"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UploadImages processes a multipart batch of listing photos. Each file is
// converted and uploaded independently: one file's failure is reported in
// its own result entry and never aborts the files queued after it.
func (h *Handler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse multipart form")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photos in request"})
		return
	}

	results := make([]UploadResult, 0, len(files))
	succeeded := 0
	for _, header := range files {
		result := UploadResult{FileName: header.Filename}

		url, err := h.processUpload(header)
		if err != nil {
			h.logger.WithError(err).WithField("file", header.Filename).
				Error("Photo upload failed")
			if errors.Is(err, imaging.ErrDecode) {
				result.Error = "File is not a valid image"
			} else {
				result.Error = "Upload failed"
			}
		} else {
			result.URL = url
			succeeded++
		}

		results = append(results, result)
	}

	c.JSON(http.StatusOK, gin.H{
		"uploaded": succeeded,
		"failed":   len(files) - succeeded,
		"results":  results,
	})
}

func (h *Handler) processUpload(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	converted, err := h.pipeline.Process(header.Filename, file)
	if err != nil {
		return "", err
	}

	return h.store.Upload(converted.Data, converted.Name, converted.ContentType)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dvorakchen/number-extracter/internal/images"
	"github.com/dvorakchen/number-extracter/internal/models"
)

// MaxBatchSize caps the number of images in one request
const MaxBatchSize = 100

func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Check if this is a JSON request with image URLs
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		h.handleURLExtract(w, r)
		return
	}

	h.handleFileExtract(w, r)
}

func (h *Handler) handleURLExtract(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ImageURLs []string `json:"image_urls"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(request.ImageURLs) == 0 {
		h.writeError(w, "image_urls is required", http.StatusBadRequest)
		return
	}
	if len(request.ImageURLs) > MaxBatchSize {
		h.writeError(w, "Too many images in one batch", http.StatusBadRequest)
		return
	}

	files := make([]models.File, 0, len(request.ImageURLs))
	for _, u := range request.ImageURLs {
		file, err := h.fetcher.FetchURL(r.Context(), u)
		if err != nil {
			h.writeError(w, "Failed to process image URL: "+err.Error(), http.StatusBadRequest)
			return
		}
		files = append(files, file)
	}

	batch := h.runBatch(r, files)
	h.writeJSON(w, map[string]any{
		"batch_id": batch.ID,
		"result":   batch.Result,
		"source":   "url",
	})
}

func (h *Handler) handleFileExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBatchSize*images.MaxImageSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, "Failed to read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		h.writeError(w, "No files uploaded", http.StatusBadRequest)
		return
	}
	if len(headers) > MaxBatchSize {
		h.writeError(w, "Too many images in one batch", http.StatusBadRequest)
		return
	}

	files := make([]models.File, 0, len(headers))
	for _, header := range headers {
		fh, err := header.Open()
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
		data, err := images.ReadLimited(fh)
		fh.Close()
		if errors.Is(err, images.ErrTooLarge) {
			h.writeError(w, "File too large (max 10MB): "+header.Filename, http.StatusBadRequest)
			return
		}
		if err != nil {
			h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
			return
		}

		files = append(files, models.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	batch := h.runBatch(r, files)
	h.writeJSON(w, map[string]any{
		"batch_id": batch.ID,
		"result":   batch.Result,
	})
}

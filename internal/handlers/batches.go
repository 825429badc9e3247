package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dvorakchen/number-extracter/internal/export"
	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/dvorakchen/number-extracter/internal/storage"
)

func (h *Handler) HandleBatches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.batchStore.List())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleBatchDetail serves /api/batches/{id} and its hide, export and images/{imageID} actions
func (h *Handler) HandleBatchDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/batches/")
	batchID, action, _ := strings.Cut(rest, "/")

	batch, ok := h.getBatchOrError(w, batchID)
	if !ok {
		return
	}

	switch {
	case action == "" && r.Method == "GET":
		h.writeJSON(w, batch)
	case action == "" && r.Method == "DELETE":
		h.batchStore.Delete(batchID)
		w.WriteHeader(http.StatusNoContent)
	case action == "hide" && r.Method == "POST":
		h.handleHide(w, r, batchID)
	case action == "export" && r.Method == "GET":
		h.handleExport(w, r, batch)
	case strings.HasPrefix(action, "images/") && r.Method == "GET":
		h.handleImage(w, batch, strings.TrimPrefix(action, "images/"))
	case action == "" || action == "hide" || action == "export" || strings.HasPrefix(action, "images/"):
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

func (h *Handler) handleHide(w http.ResponseWriter, r *http.Request, batchID string) {
	var request struct {
		ID   string `json:"id"`
		Hide *bool  `json:"hide"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.ID == "" {
		h.writeError(w, "id is required", http.StatusBadRequest)
		return
	}

	hide := true
	if request.Hide != nil {
		hide = *request.Hide
	}

	err := h.batchStore.SetHide(batchID, request.ID, hide)
	if errors.Is(err, storage.ErrNotFound) {
		h.writeError(w, "Image not found in batch", http.StatusNotFound)
		return
	}
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	batch, _ := h.batchStore.Get(batchID)
	h.writeJSON(w, batch)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, batch *storage.Batch) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(export.FormatXLSX)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="track-numbers-%s.%s"`, batch.ID, format))
	if err := export.Write(w, format, batch.Result); err != nil {
		// headers are already sent
		slog.Error("Export failed", "batch_id", batch.ID, "format", format, "err", err)
	}
}

// handleImage serves the uploaded bytes of one image so the UI can preview it
func (h *Handler) handleImage(w http.ResponseWriter, batch *storage.Batch, imageID string) {
	file, ok := findFile(batch.Result, imageID)
	if !ok {
		h.writeError(w, "Image not found in batch", http.StatusNotFound)
		return
	}

	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(file.Data)
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(file.Data); err != nil {
		slog.Error("Unable to write image", "batch_id", batch.ID, "id", imageID, "err", err)
	}
}

func findFile(result models.ImageResult, imageID string) (models.File, bool) {
	for _, s := range result.Success {
		if s.ID == imageID {
			return s.File, true
		}
	}
	for _, f := range result.Fail {
		if f.ID == imageID {
			return f.File, true
		}
	}
	return models.File{}, false
}

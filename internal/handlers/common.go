package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dvorakchen/number-extracter/internal/extract"
	"github.com/dvorakchen/number-extracter/internal/images"
	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/dvorakchen/number-extracter/internal/storage"
	"github.com/google/uuid"
)

type Handler struct {
	batchStore *storage.BatchStore
	extractor  *extract.Extractor
	fetcher    *images.Fetcher
	provider   string
	model      string
	staticDir  string
}

func New(extractor *extract.Extractor, provider, model string) *Handler {
	return &Handler{
		batchStore: storage.New(),
		extractor:  extractor,
		fetcher:    images.NewFetcher(),
		provider:   provider,
		model:      model,
		staticDir:  "static",
	}
}

// Routes registers every endpoint on a new mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/extract", h.HandleExtract)
	mux.HandleFunc("/api/batches", h.HandleBatches)
	mux.HandleFunc("/api/batches/", h.HandleBatchDetail)
	mux.HandleFunc("/", h.HandleStatic)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	return mux
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Batch helpers
func (h *Handler) getBatchOrError(w http.ResponseWriter, batchID string) (*storage.Batch, bool) {
	batch, exists := h.batchStore.Get(batchID)
	if !exists {
		h.writeError(w, "Batch not found", http.StatusNotFound)
		return nil, false
	}
	return batch, true
}

func (h *Handler) runBatch(r *http.Request, files []models.File) *storage.Batch {
	selected := models.SelectImages(files)

	batch := &storage.Batch{
		ID:        uuid.NewString(),
		Provider:  h.provider,
		Model:     h.model,
		CreatedAt: time.Now(),
		Result:    h.extractor.Extract(r.Context(), selected),
	}
	h.batchStore.Set(batch)

	slog.Info("Batch created", "batch_id", batch.ID, "images", len(files), "success", len(batch.Result.Success), "fail", len(batch.Result.Fail))
	return batch
}

package storage

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dvorakchen/number-extracter/internal/models"
)

var ErrNotFound = errors.New("not found")

// Batch is one submitted set of images and its extraction result
type Batch struct {
	ID        string             `json:"id"`
	Provider  string             `json:"provider,omitempty"`
	Model     string             `json:"model,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	Result    models.ImageResult `json:"result"`
}

type BatchStore struct {
	batches map[string]*Batch
	mu      sync.RWMutex
}

func New() *BatchStore {
	return &BatchStore{
		batches: make(map[string]*Batch),
	}
}

func (s *BatchStore) Get(batchID string) (*Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, exists := s.batches[batchID]
	return batch, exists
}

func (s *BatchStore) Set(batch *Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batch.ID] = batch
}

// List returns all batches, newest first
func (s *BatchStore) List() []*Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Batch, 0, len(s.batches))
	for _, b := range s.batches {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *BatchStore) Delete(batchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, batchID)
}

// SetHide replaces the entry with the given image id by a copy carrying the new
// visibility flag. Both success and fail entries are searched.
func (s *BatchStore) SetHide(batchID, imageID string, hide bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[batchID]
	if !ok {
		return ErrNotFound
	}

	// copies keep empty sequences non-nil so they encode as []
	success := make([]models.SuccessResp, len(batch.Result.Success))
	copy(success, batch.Result.Success)
	fail := make([]models.FailResp, len(batch.Result.Fail))
	copy(fail, batch.Result.Fail)

	updated := *batch
	updated.Result = models.NewImageResult(success, fail)

	found := false
	for i, r := range updated.Result.Success {
		if r.ID == imageID {
			updated.Result.Success[i] = r.WithHide(hide)
			found = true
		}
	}
	for i, r := range updated.Result.Fail {
		if r.ID == imageID {
			updated.Result.Fail[i] = r.WithHide(hide)
			found = true
		}
	}
	if !found {
		return ErrNotFound
	}

	s.batches[batchID] = &updated
	return nil
}

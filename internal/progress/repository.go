package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"wewillshine/internal/models"
	"wewillshine/internal/storage"
)

// Key is the local storage key holding the progress record
const Key = "we-will-shine-progress"

// Repository persists the single live progress record
type Repository interface {
	Load() (*models.Progress, error)
	Save(p *models.Progress) error
	Clear() error
}

// KVRepository stores the record as one JSON blob in a local store
type KVRepository struct {
	store storage.Store
}

// NewKVRepository creates a repository on top of a local store
func NewKVRepository(store storage.Store) *KVRepository {
	return &KVRepository{store: store}
}

// Load returns the persisted record, or nil when none is stored.
// An unreadable record is cleared and reported as absent.
func (r *KVRepository) Load() (*models.Progress, error) {
	data, err := r.store.Get(Key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	var p models.Progress
	if err := json.Unmarshal(data, &p); err != nil || p.StudentCode == "" {
		log.Printf("Warning: discarding malformed progress record")
		if err := r.store.Delete(Key); err != nil {
			log.Printf("Warning: failed to clear progress: %v", err)
		}
		return nil, nil
	}
	return &p, nil
}

// Save replaces the persisted record
func (r *KVRepository) Save(p *models.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	if err := r.store.Set(Key, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// Clear removes the persisted record
func (r *KVRepository) Clear() error {
	if err := r.store.Delete(Key); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}

package storage

import (
	"encoding/json"
	"fmt"

	"sanctionsfeed/internal/models"
)

// metaKey is the single key holding the current artifact metadata
var metaKey = []byte("current")

// MetaStore persists the metadata of the artifact currently being served
type MetaStore struct {
	db *PebbleDB
}

// NewMetaStore creates a new MetaStore
func NewMetaStore(db *PebbleDB) *MetaStore {
	return &MetaStore{db: db}
}

// Save stores the artifact metadata
func (s *MetaStore) Save(meta *models.Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return s.db.Put(CFMeta, metaKey, data)
}

// Get retrieves the artifact metadata, or nil when no artifact was imported
func (s *MetaStore) Get() (*models.Metadata, error) {
	data, err := s.db.Get(CFMeta, metaKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var meta models.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return &meta, nil
}

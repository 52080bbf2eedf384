package storage

import (
	"encoding/json"
	"fmt"

	"sanctionsfeed/internal/models"
)

// SanctionedStore handles sanctioned address storage operations
type SanctionedStore struct {
	db *PebbleDB
}

// NewSanctionedStore creates a new SanctionedStore
func NewSanctionedStore(db *PebbleDB) *SanctionedStore {
	return &SanctionedStore{db: db}
}

// addressKey creates a key for the addresses column family
func addressKey(chain, address string) []byte {
	return []byte(fmt.Sprintf("%s:%s", chain, address))
}

// chainPrefix creates a prefix for all addresses of a chain
func chainPrefix(chain string) []byte {
	return []byte(chain + ":")
}

// Save stores a sanctioned address in the database
func (s *SanctionedStore) Save(addr *models.SanctionedAddress) error {
	data, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("failed to marshal address: %w", err)
	}
	return s.db.Put(CFAddresses, addressKey(addr.Blockchain, addr.Address), data)
}

// Get retrieves a sanctioned address, or nil when the address is not listed
func (s *SanctionedStore) Get(chain, address string) (*models.SanctionedAddress, error) {
	data, err := s.db.Get(CFAddresses, addressKey(chain, address))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var addr models.SanctionedAddress
	if err := json.Unmarshal(data, &addr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal address: %w", err)
	}
	return &addr, nil
}

// ListByChain retrieves all sanctioned addresses for a chain
func (s *SanctionedStore) ListByChain(chain string) ([]*models.SanctionedAddress, error) {
	iter, err := s.db.NewPrefixIterator(CFAddresses, chainPrefix(chain))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var addrs []*models.SanctionedAddress
	for ; iter.Valid(); iter.Next() {
		var addr models.SanctionedAddress
		if err := json.Unmarshal(iter.Value(), &addr); err != nil {
			continue
		}
		addrs = append(addrs, &addr)
	}

	return addrs, nil
}

// Count returns the number of stored sanctioned addresses
func (s *SanctionedStore) Count() (int, error) {
	iter, err := s.db.NewIterator(CFAddresses)
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	count := 0
	for ; iter.Valid(); iter.Next() {
		count++
	}
	return count, nil
}

// ImportArtifact atomically replaces the stored address set with the
// artifact's contents. The previous set stays readable until the batch
// commits.
func (s *SanctionedStore) ImportArtifact(artifact *models.Artifact) error {
	batch := s.db.NewBatch()
	defer batch.Destroy()

	if err := s.db.DeleteRangeBatch(batch, CFAddresses); err != nil {
		return err
	}

	for i := range artifact.Addresses {
		addr := &artifact.Addresses[i]
		data, err := json.Marshal(addr)
		if err != nil {
			return fmt.Errorf("failed to marshal address: %w", err)
		}
		key := addressKey(addr.Blockchain, addr.Address)
		if err := s.db.PutBatch(batch, CFAddresses, key, data); err != nil {
			return err
		}
	}

	return s.db.WriteBatch(batch)
}

package pipeline

import (
	"log"
	"strings"

	"sanctionsfeed/internal/chains"
	"sanctionsfeed/internal/models"
	"sanctionsfeed/internal/sdn"
)

// listingReason is attached to every address taken from the SDN list.
const listingReason = "OFAC SDN List"

// Collection is the validated, deduplicated output of a run. Addresses keep
// the order in which they were resolved.
type Collection struct {
	Addresses  []models.SanctionedAddress
	Chains     map[string]struct{}
	Rejected   int
	Duplicates int
}

// Collect validates each candidate against its chain grammar, normalizes the
// address to lowercase and drops duplicates on (address, chain), keeping the
// first occurrence. Rejected entries are logged as diagnostics, never errors.
func Collect(candidates []sdn.Candidate) *Collection {
	col := &Collection{
		Chains: make(map[string]struct{}),
	}

	seen := make(map[string]struct{})
	for _, c := range candidates {
		if !chains.IsValid(c.Address, c.Blockchain) {
			log.Printf("[pipeline] skipping invalid address %q (%s)", c.Address, c.Blockchain)
			col.Rejected++
			continue
		}

		address := strings.ToLower(c.Address)
		key := c.Blockchain + ":" + address
		if _, dup := seen[key]; dup {
			col.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		col.Addresses = append(col.Addresses, models.SanctionedAddress{
			Address:    address,
			Blockchain: c.Blockchain,
			EntityName: c.EntityName,
			EntityID:   c.EntityID,
			Reason:     listingReason,
		})
		col.Chains[c.Blockchain] = struct{}{}
	}

	return col
}

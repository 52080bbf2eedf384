package sdn

import (
	"strings"

	"sanctionsfeed/internal/chains"
)

// currencyAddressPhrase marks feature-type declarations that describe digital
// currency addresses; every other declaration in the same namespace (passports,
// phone numbers, tax ids) is ignored.
const currencyAddressPhrase = "Digital Currency Address"

// unknownEntityID is recorded when a feature carries no identity reference.
const unknownEntityID = "unknown"

// Candidate is one resolved (address, chain, entity) triple in document order,
// prior to validation and deduplication.
type Candidate struct {
	Address    string
	Blockchain string
	EntityID   string
	EntityName string
}

// Resolve performs the three-pass cross-reference resolution over an advanced
// SDN document: feature types to chains, parties to names, then features to
// candidate triples. Each map is fully built before the next pass reads it;
// records with missing optional parts degrade locally and never fail the run.
func Resolve(doc *Document, dir Directory) []Candidate {
	typeMap := buildTypeMap(doc.FeatureTypes)
	identityMap := buildIdentityMap(doc.Parties)

	var out []Candidate
	for _, f := range doc.Features {
		chain, ok := typeMap[f.TypeID]
		if !ok {
			// not a currency address feature
			continue
		}

		address := strings.TrimSpace(f.Value)
		if address == "" {
			continue
		}

		name, id := resolveEntity(f.IdentityRef, identityMap, dir)
		out = append(out, Candidate{
			Address:    address,
			Blockchain: chain,
			EntityID:   id,
			EntityName: name,
		})
	}

	return out
}

// buildTypeMap records typeID -> chain for declarations that both carry the
// currency-address phrase and resolve to a chain identifier.
func buildTypeMap(types []FeatureType) map[string]string {
	m := make(map[string]string)
	for _, ft := range types {
		if ft.ID == "" || !strings.Contains(ft.Label, currencyAddressPhrase) {
			continue
		}
		if chain, ok := chains.Resolve(ft.Label); ok {
			m[ft.ID] = chain
		}
	}
	return m
}

// buildIdentityMap records fixedRef -> display name. Individual names take
// precedence over organisation names; parties with neither contribute nothing
// and are synthesized at lookup time.
func buildIdentityMap(parties []Party) map[string]string {
	m := make(map[string]string)
	for _, p := range parties {
		if p.FixedRef == "" || !p.HasProfile {
			continue
		}

		name := strings.TrimSpace(p.GivenName + " " + p.Surname)
		if name == "" {
			name = p.OrgName
		}
		if name == "" {
			continue
		}

		if _, exists := m[p.FixedRef]; !exists {
			m[p.FixedRef] = name
		}
	}
	return m
}

func resolveEntity(ref string, identities map[string]string, dir Directory) (name, id string) {
	if ref == "" {
		return "Unknown Entity", unknownEntityID
	}
	if name, ok := identities[ref]; ok {
		return name, ref
	}
	if name, ok := dir.Lookup(ref); ok {
		return name, ref
	}
	return "Entity " + ref, ref
}

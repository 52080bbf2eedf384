package models

// Metadata describes the provenance and shape of a generated artifact
type Metadata struct {
	Source         string   `json:"source"`
	SourceURL      string   `json:"source_url"`
	GeneratedAt    string   `json:"generated_at"`
	TotalAddresses int      `json:"total_addresses"`
	Currencies     []string `json:"currencies"`
}

// Artifact is the versioned output document consumed by the compliance check.
// Addresses keep resolution order; currencies are sorted ascending.
type Artifact struct {
	Metadata  Metadata            `json:"metadata"`
	Addresses []SanctionedAddress `json:"addresses"`
}

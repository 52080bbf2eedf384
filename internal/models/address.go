package models

// SanctionedAddress represents a single sanctioned cryptocurrency address
// attributed to an SDN entity. Addresses are stored lowercase.
type SanctionedAddress struct {
	Address    string `json:"address"`
	Blockchain string `json:"blockchain"`
	EntityName string `json:"entity_name"`
	EntityID   string `json:"entity_id"`
	Reason     string `json:"reason"`
}

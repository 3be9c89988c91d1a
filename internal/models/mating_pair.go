package models

// MatingStatus is the lifecycle state of a mating pair.
type MatingStatus string

const (
	MatingActive    MatingStatus = "active"
	MatingCompleted MatingStatus = "completed"
	MatingCancelled MatingStatus = "cancelled"
)

// MatingPair joins a ram and a ewe for a breeding period. Ram and Ewe are
// populated by the server when it expands the references.
type MatingPair struct {
	ID        int64        `json:"id"`
	RamID     int64        `json:"ramId"`
	EweID     int64        `json:"eweId"`
	StartDate Date         `json:"startDate"`
	EndDate   *Date        `json:"endDate"`
	Status    MatingStatus `json:"status"`
	Notes     string       `json:"notes,omitempty"`
	Ram       *Sheep       `json:"ram,omitempty"`
	Ewe       *Sheep       `json:"ewe,omitempty"`
}

// RamName is the ram's display name, empty when not expanded.
func (p MatingPair) RamName() string {
	if p.Ram == nil {
		return ""
	}
	return p.Ram.DisplayName()
}

// EweName is the ewe's display name, empty when not expanded.
func (p MatingPair) EweName() string {
	if p.Ewe == nil {
		return ""
	}
	return p.Ewe.DisplayName()
}

// MatingPairRequest is the payload for POST /mating-pairs and PUT /mating-pairs/{id}.
type MatingPairRequest struct {
	RamID     int64        `json:"ramId"`
	EweID     int64        `json:"eweId"`
	StartDate Date         `json:"startDate"`
	EndDate   *Date        `json:"endDate"`
	Status    MatingStatus `json:"status"`
	Notes     string       `json:"notes,omitempty"`
}

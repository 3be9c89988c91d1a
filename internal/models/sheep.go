package models

import "github.com/shopspring/decimal"

// SheepSex is the biological sex of an animal.
type SheepSex string

const (
	SexMale   SheepSex = "male"
	SexFemale SheepSex = "female"
)

// SheepStatus tracks whether an animal is still in the flock.
type SheepStatus string

const (
	SheepActive   SheepStatus = "active"
	SheepSold     SheepStatus = "sold"
	SheepDeceased SheepStatus = "deceased"
)

// SheepSection is the paddock group an animal is assigned to.
type SheepSection string

const (
	SectionMale    SheepSection = "male"
	SectionGeneral SheepSection = "general"
	SectionMating  SheepSection = "mating"
)

// Sheep is a registered animal.
type Sheep struct {
	ID               int64            `json:"id"`
	TagID            string           `json:"tag_id"`
	Name             string           `json:"name,omitempty"`
	ScrapieID        string           `json:"scrapie_id,omitempty"`
	Breed            string           `json:"breed"`
	Sex              SheepSex         `json:"sex"`
	DateOfBirth      Date             `json:"date_of_birth"`
	PurchaseDate     *Date            `json:"purchase_date,omitempty"`
	AcquisitionPrice *decimal.Decimal `json:"acquisition_price,omitempty"`
	OriginFarm       string           `json:"origin_farm,omitempty"`
	RFIDCode         string           `json:"rfid_code,omitempty"`
	QRCode           string           `json:"qr_code,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Status           SheepStatus      `json:"status"`
	CurrentSection   SheepSection     `json:"current_section,omitempty"`
	SaleDate         *Date            `json:"sale_date,omitempty"`
	SalePrice        *decimal.Decimal `json:"sale_price,omitempty"`
	DeathDate        *Date            `json:"death_date,omitempty"`
	SireID           string           `json:"sire_id,omitempty"`
	DamID            string           `json:"dam_id,omitempty"`
}

// DisplayName prefers the animal's name and falls back to its tag.
func (s Sheep) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.TagID
}

// CreateSheepRequest is the payload accepted by POST /sheep.
type CreateSheepRequest struct {
	TagID            string           `json:"tag_id"`
	ScrapieID        string           `json:"scrapie_id,omitempty"`
	Breed            string           `json:"breed"`
	Sex              SheepSex         `json:"sex"`
	DateOfBirth      Date             `json:"date_of_birth"`
	PurchaseDate     *Date            `json:"purchase_date,omitempty"`
	AcquisitionPrice *decimal.Decimal `json:"acquisition_price,omitempty"`
	OriginFarm       string           `json:"origin_farm,omitempty"`
	RFIDCode         string           `json:"rfid_code,omitempty"`
	QRCode           string           `json:"qr_code,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	Status           SheepStatus      `json:"status"`
	CurrentSection   SheepSection     `json:"current_section"`
	SireID           string           `json:"sire_id,omitempty"`
	DamID            string           `json:"dam_id,omitempty"`
}

// UpdateSheepRequest is the partial payload accepted by PUT /sheep/{id}.
type UpdateSheepRequest struct {
	ScrapieID      *string          `json:"scrapie_id,omitempty"`
	Breed          *string          `json:"breed,omitempty"`
	Status         *SheepStatus     `json:"status,omitempty"`
	CurrentSection *SheepSection    `json:"current_section,omitempty"`
	SaleDate       *Date            `json:"sale_date,omitempty"`
	SalePrice      *decimal.Decimal `json:"sale_price,omitempty"`
	DeathDate      *Date            `json:"death_date,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
}

// SheepFilter narrows GET /sheep server-side.
type SheepFilter struct {
	Status  SheepStatus
	Sex     SheepSex
	Section SheepSection
	Breed   string
}

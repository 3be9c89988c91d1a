package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/flock-console/internal/models"
)

// SheepDraft is the sheep registration form.
type SheepDraft struct {
	TagID            string `form:"tag_id" label:"Tag ID" validate:"notblank"`
	ScrapieID        string `form:"scrapie_id"`
	Breed            string `form:"breed" label:"Breed" validate:"notblank"`
	Sex              string `form:"sex" label:"Sex" validate:"required,oneof=male female"`
	DateOfBirth      string `form:"date_of_birth" label:"Date of birth" validate:"required,isodate"`
	PurchaseDate     string `form:"purchase_date" label:"Purchase date" validate:"omitempty,isodate"`
	AcquisitionPrice string `form:"acquisition_price" label:"Acquisition price" validate:"omitempty,nonnegdecimal"`
	OriginFarm       string `form:"origin_farm"`
	RFIDCode         string `form:"rfid_code"`
	QRCode           string `form:"qr_code"`
	Notes            string `form:"notes"`
	Status           string `form:"status" label:"Status" validate:"omitempty,oneof=active sold deceased"`
	CurrentSection   string `form:"current_section" label:"Section" validate:"omitempty,oneof=male general mating"`
	SireID           string `form:"sire_id"`
	DamID            string `form:"dam_id"`
}

// Messages implements Messager.
func (SheepDraft) Messages() map[string]string {
	return map[string]string{
		"Sex.required":                   "Please select a sex",
		"AcquisitionPrice.nonnegdecimal": "Price must be a non-negative number",
	}
}

// ToRequest converts a validated draft into the create payload. Missing
// status and section default to active / general.
func (d SheepDraft) ToRequest() (models.CreateSheepRequest, error) {
	dob, err := models.ParseDate(d.DateOfBirth)
	if err != nil {
		return models.CreateSheepRequest{}, err
	}
	purchase, err := models.ParseDate(d.PurchaseDate)
	if err != nil {
		return models.CreateSheepRequest{}, err
	}
	price, err := optionalDecimal(d.AcquisitionPrice)
	if err != nil {
		return models.CreateSheepRequest{}, err
	}
	status := models.SheepStatus(d.Status)
	if status == "" {
		status = models.SheepActive
	}
	section := models.SheepSection(d.CurrentSection)
	if section == "" {
		section = models.SectionGeneral
	}
	return models.CreateSheepRequest{
		TagID:            strings.TrimSpace(d.TagID),
		ScrapieID:        strings.TrimSpace(d.ScrapieID),
		Breed:            strings.TrimSpace(d.Breed),
		Sex:              models.SheepSex(d.Sex),
		DateOfBirth:      dob,
		PurchaseDate:     purchase.Ptr(),
		AcquisitionPrice: price,
		OriginFarm:       strings.TrimSpace(d.OriginFarm),
		RFIDCode:         strings.TrimSpace(d.RFIDCode),
		QRCode:           strings.TrimSpace(d.QRCode),
		Notes:            strings.TrimSpace(d.Notes),
		Status:           status,
		CurrentSection:   section,
		SireID:           strings.TrimSpace(d.SireID),
		DamID:            strings.TrimSpace(d.DamID),
	}, nil
}

// SheepEditDraft holds the fields of a sheep that may change after
// registration. Tag, sex and birth details are fixed.
type SheepEditDraft struct {
	ScrapieID      string `form:"scrapie_id"`
	Breed          string `form:"breed" label:"Breed" validate:"notblank"`
	Status         string `form:"status" label:"Status" validate:"required,oneof=active sold deceased"`
	CurrentSection string `form:"current_section" label:"Section" validate:"omitempty,oneof=male general mating"`
	SaleDate       string `form:"sale_date" label:"Sale date" validate:"omitempty,isodate"`
	SalePrice      string `form:"sale_price" label:"Sale price" validate:"omitempty,nonnegdecimal"`
	DeathDate      string `form:"death_date" label:"Death date" validate:"omitempty,isodate"`
	Notes          string `form:"notes"`
}

// SeedSheepEdit fills an edit draft from s.
func SeedSheepEdit(s models.Sheep) SheepEditDraft {
	draft := SheepEditDraft{
		ScrapieID:      s.ScrapieID,
		Breed:          s.Breed,
		Status:         string(s.Status),
		CurrentSection: string(s.CurrentSection),
		SaleDate:       models.DateString(s.SaleDate),
		DeathDate:      models.DateString(s.DeathDate),
		Notes:          s.Notes,
	}
	if s.SalePrice != nil {
		draft.SalePrice = s.SalePrice.String()
	}
	return draft
}

// ToUpdate converts a validated edit draft into an update payload. Blank
// sale and death fields are left out.
func (d SheepEditDraft) ToUpdate() (models.UpdateSheepRequest, error) {
	saleDate, err := models.ParseDate(d.SaleDate)
	if err != nil {
		return models.UpdateSheepRequest{}, err
	}
	deathDate, err := models.ParseDate(d.DeathDate)
	if err != nil {
		return models.UpdateSheepRequest{}, err
	}
	salePrice, err := optionalDecimal(d.SalePrice)
	if err != nil {
		return models.UpdateSheepRequest{}, err
	}
	scrapie := strings.TrimSpace(d.ScrapieID)
	breed := strings.TrimSpace(d.Breed)
	notes := strings.TrimSpace(d.Notes)
	status := models.SheepStatus(d.Status)
	req := models.UpdateSheepRequest{
		ScrapieID: &scrapie,
		Breed:     &breed,
		Status:    &status,
		Notes:     &notes,
		SaleDate:  saleDate.Ptr(),
		SalePrice: salePrice,
		DeathDate: deathDate.Ptr(),
	}
	if d.CurrentSection != "" {
		section := models.SheepSection(d.CurrentSection)
		req.CurrentSection = &section
	}
	return req, nil
}

// HealthEventDraft is the health event form.
type HealthEventDraft struct {
	SheepID     string `form:"sheep_id" label:"Sheep" validate:"notblank"`
	EventType   string `form:"event_type" label:"Event type" validate:"required,oneof=vaccination deworming vet_visit treatment checkup other"`
	EventDate   string `form:"event_date" label:"Event date" validate:"required,isodate"`
	Details     string `form:"details" label:"Details" validate:"notblank"`
	NextDueDate string `form:"next_due_date" label:"Next due date" validate:"omitempty,isodate"`
}

// Messages implements Messager.
func (HealthEventDraft) Messages() map[string]string {
	return map[string]string{
		"SheepID.notblank":   "Please select a sheep",
		"EventType.required": "Please select an event type",
	}
}

// NewHealthEventDraft starts a draft dated today.
func NewHealthEventDraft(today models.Date) HealthEventDraft {
	return HealthEventDraft{EventDate: today.String()}
}

// SeedFromHealthEvent fills a draft for editing e.
func SeedFromHealthEvent(e models.HealthEvent) HealthEventDraft {
	return HealthEventDraft{
		SheepID:     e.SheepID,
		EventType:   string(e.EventType),
		EventDate:   e.EventDate.String(),
		Details:     e.Details,
		NextDueDate: models.DateString(e.NextDueDate),
	}
}

// ToRequest converts a validated draft into the create payload.
func (d HealthEventDraft) ToRequest() (models.CreateHealthEventRequest, error) {
	eventDate, err := models.ParseDate(d.EventDate)
	if err != nil {
		return models.CreateHealthEventRequest{}, err
	}
	due, err := models.ParseDate(d.NextDueDate)
	if err != nil {
		return models.CreateHealthEventRequest{}, err
	}
	return models.CreateHealthEventRequest{
		SheepID:     strings.TrimSpace(d.SheepID),
		EventDate:   eventDate,
		EventType:   models.EventType(d.EventType),
		Details:     strings.TrimSpace(d.Details),
		NextDueDate: due.Ptr(),
	}, nil
}

// ToUpdate converts the draft into an update payload.
func (d HealthEventDraft) ToUpdate() (models.UpdateHealthEventRequest, error) {
	req, err := d.ToRequest()
	if err != nil {
		return models.UpdateHealthEventRequest{}, err
	}
	return models.UpdateHealthEventRequest{
		EventDate:   &req.EventDate,
		EventType:   &req.EventType,
		Details:     &req.Details,
		NextDueDate: req.NextDueDate,
	}, nil
}

// MatingPairDraft is the mating pair form. Ram and ewe hold sheep ids as
// selected from the available lists.
type MatingPairDraft struct {
	RamID     string `form:"ram_id" label:"Ram" validate:"required,sheepid"`
	EweID     string `form:"ewe_id" label:"Ewe" validate:"required,sheepid"`
	StartDate string `form:"start_date" label:"Start date" validate:"required,isodate"`
	EndDate   string `form:"end_date" label:"End date" validate:"omitempty,isodate"`
	Status    string `form:"status" label:"Status" validate:"required,oneof=active completed cancelled"`
	Notes     string `form:"notes"`
}

// Messages implements Messager.
func (MatingPairDraft) Messages() map[string]string {
	return map[string]string{
		"RamID.required":  "Please select a ram",
		"RamID.sheepid":   "Please select a ram",
		"EweID.required":  "Please select a ewe",
		"EweID.sheepid":   "Please select a ewe",
		"EweID.samesheep": "Ram and ewe cannot be the same sheep",
	}
}

// NewMatingPairDraft starts an active pairing from today.
func NewMatingPairDraft(today models.Date) MatingPairDraft {
	return MatingPairDraft{StartDate: today.String(), Status: string(models.MatingActive)}
}

// SeedFromMatingPair fills a draft for editing p.
func SeedFromMatingPair(p models.MatingPair) MatingPairDraft {
	return MatingPairDraft{
		RamID:     strconv.FormatInt(p.RamID, 10),
		EweID:     strconv.FormatInt(p.EweID, 10),
		StartDate: p.StartDate.String(),
		EndDate:   models.DateString(p.EndDate),
		Status:    string(p.Status),
		Notes:     p.Notes,
	}
}

// ToRequest converts a validated draft into the create/update payload.
func (d MatingPairDraft) ToRequest() (models.MatingPairRequest, error) {
	ram, ok := parseSheepID(d.RamID)
	if !ok {
		return models.MatingPairRequest{}, fmt.Errorf("invalid ram id %q", d.RamID)
	}
	ewe, ok := parseSheepID(d.EweID)
	if !ok {
		return models.MatingPairRequest{}, fmt.Errorf("invalid ewe id %q", d.EweID)
	}
	start, err := models.ParseDate(d.StartDate)
	if err != nil {
		return models.MatingPairRequest{}, err
	}
	end, err := models.ParseDate(d.EndDate)
	if err != nil {
		return models.MatingPairRequest{}, err
	}
	return models.MatingPairRequest{
		RamID:     ram,
		EweID:     ewe,
		StartDate: start,
		EndDate:   end.Ptr(),
		Status:    models.MatingStatus(d.Status),
		Notes:     strings.TrimSpace(d.Notes),
	}, nil
}

// LoginDraft is the login form.
type LoginDraft struct {
	Email    string `form:"email" label:"Email" validate:"required,email"`
	Password string `form:"password" label:"Password" validate:"required"`
}

// ToRequest converts the draft into a login payload.
func (d LoginDraft) ToRequest() models.LoginRequest {
	return models.LoginRequest{Email: strings.TrimSpace(d.Email), Password: d.Password}
}

// RegisterDraft is the sign-up form.
type RegisterDraft struct {
	Email           string `form:"email" label:"Email" validate:"required,email"`
	Username        string `form:"username" label:"Username" validate:"notblank"`
	Password        string `form:"password" label:"Password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" label:"Confirm password" validate:"required,eqfield=Password"`
}

// Messages implements Messager.
func (RegisterDraft) Messages() map[string]string {
	return map[string]string{"ConfirmPassword.eqfield": "Passwords do not match"}
}

// ToRequest converts the draft into a registration payload.
func (d RegisterDraft) ToRequest() models.RegisterRequest {
	return models.RegisterRequest{Email: strings.TrimSpace(d.Email), Username: strings.TrimSpace(d.Username), Password: d.Password}
}

// PasswordResetRequestDraft asks for a reset email.
type PasswordResetRequestDraft struct {
	Email string `form:"email" label:"Email" validate:"required,email"`
}

// ToRequest converts the draft into a reset request payload.
func (d PasswordResetRequestDraft) ToRequest() models.PasswordResetRequest {
	return models.PasswordResetRequest{Email: strings.TrimSpace(d.Email)}
}

// PasswordResetDraft sets a new password with a mailed token.
type PasswordResetDraft struct {
	Token           string `form:"token" label:"Token" validate:"notblank"`
	NewPassword     string `form:"new_password" label:"Password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" label:"Confirm password" validate:"required,eqfield=NewPassword"`
}

// Messages implements Messager.
func (PasswordResetDraft) Messages() map[string]string {
	return map[string]string{
		"Token.notblank":          "Invalid reset token",
		"ConfirmPassword.eqfield": "Passwords do not match",
	}
}

// ToRequest converts the draft into a reset confirmation payload.
func (d PasswordResetDraft) ToRequest() models.PasswordResetConfirm {
	return models.PasswordResetConfirm{Token: strings.TrimSpace(d.Token), NewPassword: d.NewPassword}
}

func optionalDecimal(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

package models

// EventType classifies a health event.
type EventType string

const (
	EventVaccination EventType = "vaccination"
	EventDeworming   EventType = "deworming"
	EventVetVisit    EventType = "vet_visit"
	EventTreatment   EventType = "treatment"
	EventCheckup     EventType = "checkup"
	EventOther       EventType = "other"
)

// EventTypes lists every accepted event type in display order.
var EventTypes = []EventType{EventVaccination, EventDeworming, EventVetVisit, EventTreatment, EventCheckup, EventOther}

// HealthEvent is a treatment, vaccination or check logged against a sheep.
type HealthEvent struct {
	ID          int64     `json:"id"`
	SheepID     string    `json:"sheep_id"`
	EventDate   Date      `json:"event_date"`
	EventType   EventType `json:"event_type"`
	Details     string    `json:"details"`
	NextDueDate *Date     `json:"next_due_date,omitempty"`
	Attachments []string  `json:"attachments,omitempty"`
}

// Overdue reports whether a follow-up was due before today.
func (e HealthEvent) Overdue(today Date) bool {
	return e.NextDueDate != nil && e.NextDueDate.Before(today.Time)
}

// CreateHealthEventRequest is the payload accepted by POST /health.
type CreateHealthEventRequest struct {
	SheepID     string    `json:"sheep_id"`
	EventDate   Date      `json:"event_date"`
	EventType   EventType `json:"event_type"`
	Details     string    `json:"details"`
	NextDueDate *Date     `json:"next_due_date,omitempty"`
	Attachments []string  `json:"attachments,omitempty"`
}

// UpdateHealthEventRequest is the partial payload accepted by PUT /health/{id}.
type UpdateHealthEventRequest struct {
	EventDate   *Date      `json:"event_date,omitempty"`
	EventType   *EventType `json:"event_type,omitempty"`
	Details     *string    `json:"details,omitempty"`
	NextDueDate *Date      `json:"next_due_date,omitempty"`
	Attachments []string   `json:"attachments,omitempty"`
}

// HealthEventFilter narrows GET /health server-side.
type HealthEventFilter struct {
	SheepID   string
	EventType EventType
	StartDate *Date
	EndDate   *Date
	Overdue   *bool
}

package listview

import "github.com/noah-isme/flock-console/internal/models"

// MatingPairs is the mating pair list: searchable by ram, ewe and notes,
// filtered by status, newest start date first.
func MatingPairs() Spec[models.MatingPair] {
	return Spec[models.MatingPair]{
		Singular: "mating pair",
		Plural:   "mating pairs",
		ID:       func(p models.MatingPair) int64 { return p.ID },
		SearchFields: func(p models.MatingPair) []string {
			return []string{p.RamName(), p.EweName(), p.Notes}
		},
		Status: func(p models.MatingPair) string { return string(p.Status) },
		Sorts: map[string]Comparator[models.MatingPair]{
			"startDate": ByDate(func(p models.MatingPair) *models.Date { return &p.StartDate }),
			"status":    ByText(func(p models.MatingPair) string { return string(p.Status) }),
			"ram":       ByText(models.MatingPair.RamName),
			"ewe":       ByText(models.MatingPair.EweName),
		},
		DefaultSort:  "startDate",
		DefaultOrder: Desc,
		Export: ExportSpec[models.MatingPair]{
			Headers: []string{"Ram", "Ewe", "Start Date", "End Date", "Status", "Notes"},
			Row: func(p models.MatingPair) []string {
				return []string{p.RamName(), p.EweName(), p.StartDate.String(), models.DateString(p.EndDate), string(p.Status), p.Notes}
			},
			Prefix: "mating-pairs",
			Title:  "Mating Pairs",
		},
	}
}

// HealthEvents is the health event list. Its status filter is the event type.
func HealthEvents() Spec[models.HealthEvent] {
	return Spec[models.HealthEvent]{
		Singular: "health event",
		Plural:   "health events",
		ID:       func(e models.HealthEvent) int64 { return e.ID },
		SearchFields: func(e models.HealthEvent) []string {
			return []string{e.SheepID, string(e.EventType), e.Details}
		},
		Status: func(e models.HealthEvent) string { return string(e.EventType) },
		Sorts: map[string]Comparator[models.HealthEvent]{
			"event_date":    ByDate(func(e models.HealthEvent) *models.Date { return &e.EventDate }),
			"event_type":    ByText(func(e models.HealthEvent) string { return string(e.EventType) }),
			"sheep":         ByText(func(e models.HealthEvent) string { return e.SheepID }),
			"next_due_date": ByDate(func(e models.HealthEvent) *models.Date { return e.NextDueDate }),
		},
		DefaultSort:  "event_date",
		DefaultOrder: Desc,
		Export: ExportSpec[models.HealthEvent]{
			Headers: []string{"Sheep", "Event Date", "Event Type", "Details", "Next Due Date"},
			Row: func(e models.HealthEvent) []string {
				return []string{e.SheepID, e.EventDate.String(), string(e.EventType), e.Details, models.DateString(e.NextDueDate)}
			},
			Prefix: "health-events",
			Title:  "Health Events",
		},
	}
}

// Sheep is the flock list, ordered by tag.
func Sheep() Spec[models.Sheep] {
	return Spec[models.Sheep]{
		Singular: "sheep",
		Plural:   "sheep",
		ID:       func(s models.Sheep) int64 { return s.ID },
		SearchFields: func(s models.Sheep) []string {
			return []string{s.TagID, s.Breed, s.OriginFarm, s.Notes}
		},
		Status: func(s models.Sheep) string { return string(s.Status) },
		Sorts: map[string]Comparator[models.Sheep]{
			"tag_id":        ByText(func(s models.Sheep) string { return s.TagID }),
			"breed":         ByText(func(s models.Sheep) string { return s.Breed }),
			"date_of_birth": ByDate(func(s models.Sheep) *models.Date { return &s.DateOfBirth }),
			"status":        ByText(func(s models.Sheep) string { return string(s.Status) }),
		},
		DefaultSort:  "tag_id",
		DefaultOrder: Asc,
		Export: ExportSpec[models.Sheep]{
			Headers: []string{"Tag ID", "Breed", "Sex", "Date of Birth", "Status", "Notes"},
			Row: func(s models.Sheep) []string {
				return []string{s.TagID, s.Breed, string(s.Sex), s.DateOfBirth.String(), string(s.Status), s.Notes}
			},
			Prefix: "sheep",
			Title:  "Flock",
		},
	}
}

// Notifications is the reminder feed, read-only. Its status filter is the
// priority; high priority sorts first.
func Notifications() Spec[models.Notification] {
	return Spec[models.Notification]{
		Singular: "notification",
		Plural:   "notifications",
		ID:       func(n models.Notification) int64 { return n.ID },
		SearchFields: func(n models.Notification) []string {
			return []string{n.Title, n.Message, n.Recipient}
		},
		Status: func(n models.Notification) string { return n.Priority },
		Sorts: map[string]Comparator[models.Notification]{
			"priority":  ByText(func(n models.Notification) string { return n.Priority }),
			"type":      ByText(func(n models.Notification) string { return string(n.Type) }),
			"recipient": ByText(func(n models.Notification) string { return n.Recipient }),
		},
		DefaultSort:  "priority",
		DefaultOrder: Asc,
		Export: ExportSpec[models.Notification]{
			Headers: []string{"Type", "Priority", "Title", "Message", "Recipient"},
			Row: func(n models.Notification) []string {
				return []string{string(n.Type), n.Priority, n.Title, n.Message, n.Recipient}
			},
			Prefix: "notifications",
			Title:  "Notifications",
		},
	}
}

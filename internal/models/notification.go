package models

// NotificationType names the rule that raised a notification.
type NotificationType string

const (
	NotifyHealthOverdue NotificationType = "health_overdue"
	NotifyMatingWindow  NotificationType = "mating_window"
	NotifyWeaningDue    NotificationType = "weaning_due"
)

// Notification priorities.
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

// NotificationCategory selects one of the notification feeds. The zero value
// is the combined feed.
type NotificationCategory string

const (
	NotificationsAll     NotificationCategory = ""
	NotificationsHealth  NotificationCategory = "health"
	NotificationsMating  NotificationCategory = "mating"
	NotificationsWeaning NotificationCategory = "weaning"
)

// Valid reports whether c names a known feed.
func (c NotificationCategory) Valid() bool {
	switch c {
	case NotificationsAll, NotificationsHealth, NotificationsMating, NotificationsWeaning:
		return true
	}
	return false
}

// Notification is a computed reminder from GET /notifications. The backend
// assigns no id; ID is the 1-based position in the feed as received.
type Notification struct {
	ID        int64                  `json:"-"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Recipient string                 `json:"recipient"`
	Priority  string                 `json:"priority"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

package apitest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/flock-console/internal/models"
)

// matingWindow is how far ahead upcoming pairings are announced.
const matingWindow = 14

func (s *Server) notifications(category models.NotificationCategory) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		today := timeToday()
		out := make([]models.Notification, 0)
		if category == models.NotificationsAll || category == models.NotificationsHealth {
			out = append(out, s.healthNotificationsLocked(today)...)
		}
		if category == models.NotificationsAll || category == models.NotificationsMating {
			out = append(out, s.matingNotificationsLocked(today)...)
		}
		// Weaning reminders need birth records, which this backend does not keep.
		c.JSON(http.StatusOK, out)
	}
}

func (s *Server) healthNotificationsLocked(today time.Time) []models.Notification {
	var out []models.Notification
	for _, event := range s.events {
		if !event.Overdue(models.Date{Time: today}) || !s.hasTagLocked(event.SheepID) {
			continue
		}
		days := daysBetween(event.NextDueDate.Time, today)
		priority := models.PriorityNormal
		if days > 7 {
			priority = models.PriorityHigh
		}
		out = append(out, models.Notification{
			Type:      models.NotifyHealthOverdue,
			Title:     "Overdue Health Event",
			Message:   fmt.Sprintf("Sheep %s is overdue for %s by %d days", event.SheepID, event.EventType, days),
			Recipient: "herd_care_team",
			Priority:  priority,
			Data: map[string]interface{}{
				"sheep_id":     event.SheepID,
				"event_id":     event.ID,
				"event_type":   event.EventType,
				"days_overdue": days,
			},
		})
	}
	return out
}

func (s *Server) matingNotificationsLocked(today time.Time) []models.Notification {
	var out []models.Notification
	for _, pair := range s.pairs {
		days := daysBetween(today, pair.StartDate.Time)
		if days <= 0 || days > matingWindow {
			continue
		}
		ewe := s.expandLocked(pair).Ewe
		if ewe == nil {
			continue
		}
		out = append(out, models.Notification{
			Type:      models.NotifyMatingWindow,
			Title:     "Upcoming Mating Window",
			Message:   fmt.Sprintf("Ewe %s due for mating in %d days", ewe.TagID, days),
			Recipient: "farm_manager",
			Priority:  models.PriorityNormal,
			Data: map[string]interface{}{
				"ewe_id":     ewe.TagID,
				"mating_id":  pair.ID,
				"days_until": days,
			},
		})
	}
	return out
}

func (s *Server) hasTagLocked(tag string) bool {
	for _, sheep := range s.sheep {
		if sheep.TagID == tag {
			return true
		}
	}
	return false
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

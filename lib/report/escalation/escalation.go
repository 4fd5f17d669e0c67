package escalation

import (
	"time"

	"worklog-backend/models"
)

// DefaultWindow - срок, после которого отчет без ответа считается согласованным.
const DefaultWindow = 7 * 24 * time.Hour

// Due - чистый предикат автосогласования.
// Проверяется при каждом обращении к отчету (фоновой задачи нет):
// отчет, который никто не открывает, останется в статусе SENT и после срока.
func Due(status models.ReportStatus, sentAt *time.Time, now time.Time, window time.Duration) bool {
	if status != models.ReportStatusSent {
		return false
	}
	if sentAt == nil {
		return false
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return !now.Before(sentAt.Add(window))
}

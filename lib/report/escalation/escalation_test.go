package escalation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"worklog-backend/models"
)

func TestDue(t *testing.T) {
	sentAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	window := 7 * 24 * time.Hour
	deadline := sentAt.Add(window)

	t.Run("до срока", func(t *testing.T) {
		require.False(t, Due(models.ReportStatusSent, &sentAt, deadline.Add(-time.Second), window))
	})
	t.Run("ровно в срок", func(t *testing.T) {
		require.True(t, Due(models.ReportStatusSent, &sentAt, deadline, window))
	})
	t.Run("после срока", func(t *testing.T) {
		require.True(t, Due(models.ReportStatusSent, &sentAt, deadline.Add(time.Second), window))
	})
	t.Run("только для отправленных", func(t *testing.T) {
		for _, status := range []models.ReportStatus{
			models.ReportStatusDraft,
			models.ReportStatusApproved,
			models.ReportStatusRejected,
			models.ReportStatusCommented,
			models.ReportStatusApprovedAuto,
		} {
			require.False(t, Due(status, &sentAt, deadline.Add(time.Hour), window), "статус %v", status)
		}
	})
	t.Run("без даты отправки", func(t *testing.T) {
		require.False(t, Due(models.ReportStatusSent, nil, deadline, window))
	})
	t.Run("нулевое окно заменяется на семь дней", func(t *testing.T) {
		require.False(t, Due(models.ReportStatusSent, &sentAt, sentAt.Add(6*24*time.Hour), 0))
		require.True(t, Due(models.ReportStatusSent, &sentAt, sentAt.Add(DefaultWindow), 0))
	})
}

package backupworker

import (
	"context"
	"time"

	"worklog-backend/db"
	"worklog-backend/lib/backup"
	baseworker "worklog-backend/lib/utils/base-worker"
	"worklog-backend/lib/utils/helpers"
)

func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("BackupWorker", 1*time.Hour, 24*time.Hour),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
}

func (i impl) handle(ctx context.Context) {
	if helpers.IsContextDone(ctx) {
		return
	}
	if err := backup.Run(db.DB); err != nil {
		i.GetLogger().WithError(err).Error("ошибка отправки резервной копии")
	}
}

package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "worklog-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.Project{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Project")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkEntry{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkEntry")
	}
	if err := DB.AutoMigrate(&dbmodels.ExtraReport{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ExtraReport")
	}
	if err := DB.AutoMigrate(&dbmodels.ReportItem{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ReportItem")
	}
	if err := DB.AutoMigrate(&dbmodels.ReportAttachment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ReportAttachment")
	}
	if err := DB.AutoMigrate(&dbmodels.ReportDecision{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ReportDecision")
	}
	if err := DB.AutoMigrate(&dbmodels.ReportAuditEntry{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ReportAuditEntry")
	}
	log.Info("Миграция прошла успешно")
	return nil
}

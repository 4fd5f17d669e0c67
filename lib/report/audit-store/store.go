package reportauditstore

import (
	"gorm.io/gorm"
	dbmodels "worklog-backend/models/db"
)

// Журнал действий по отчету. Только добавление и чтение,
// правка и точечное удаление записей не предусмотрены.
type Provider interface {
	Add(rec dbmodels.ReportAuditEntry) error
	List(reportID string) (list []dbmodels.ReportAuditEntry, err error)
	Count(reportID string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Add(rec dbmodels.ReportAuditEntry) error {
	return i.db.Create(&rec).Error
}

func (i impl) List(reportID string) (list []dbmodels.ReportAuditEntry, err error) {
	list = []dbmodels.ReportAuditEntry{}
	err = i.db.
		Where("report_id = ?", reportID).
		Order("created_at").
		// при совпадении времени порядок задает номер вставки
		Order("seq").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Count(reportID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.ReportAuditEntry{}).
		Where("report_id = ?", reportID).
		Count(&count).
		Error
	return count, err
}

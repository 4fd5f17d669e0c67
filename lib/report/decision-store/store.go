package reportdecisionstore

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "worklog-backend/models/db"
)

type Provider interface {
	// Upsert - на отчет хранится ровно одно решение, повторное перезаписывает прежнее
	Upsert(rec dbmodels.ReportDecision) error
	GetByReportID(reportID string) (rec *dbmodels.ReportDecision, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Upsert(rec dbmodels.ReportDecision) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "report_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"decided_at", "decided_by", "note", "signature_key", "signature_size", "updated_at"}),
		}).
		Create(&rec).
		Error
}

func (i impl) GetByReportID(reportID string) (*dbmodels.ReportDecision, error) {
	rec := dbmodels.ReportDecision{}
	err := i.db.
		Where("report_id = ?", reportID).
		First(&rec).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

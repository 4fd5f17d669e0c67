package reportstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"worklog-backend/models"
	dbmodels "worklog-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ExtraReport) (id string, err error)
	GetByID(id string) (rec *dbmodels.ExtraReport, err error)
	GetByToken(token string) (rec *dbmodels.ExtraReport, err error)
	List() (list []dbmodels.ExtraReport, err error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateStatusFrom - переход статуса с оптимистической проверкой исходного статуса.
	// affected=0 означает, что отчет уже не в статусе from (гонка или недопустимый переход).
	UpdateStatusFrom(id string, from models.ReportStatus, updMap map[string]interface{}) (affected int64, err error)
	Delete(id string) error
	AddItem(rec dbmodels.ReportItem) error
	AddAttachment(rec dbmodels.ReportAttachment) (id string, err error)
	GetAttachment(reportID, attachmentID string) (rec *dbmodels.ReportAttachment, err error)
	DeleteAttachment(reportID, attachmentID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ExtraReport) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) preloaded() *gorm.DB {
	return i.db.
		Preload("Project").
		Preload("CreatedBy").
		Preload("Decision").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("report_attachments.created_at")
		}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("report_items.position")
		})
}

func (i impl) GetByID(id string) (*dbmodels.ExtraReport, error) {
	rec := dbmodels.ExtraReport{}
	err := i.preloaded().
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByToken(token string) (*dbmodels.ExtraReport, error) {
	rec := dbmodels.ExtraReport{}
	err := i.preloaded().
		Where("access_token = ?", token).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List() (list []dbmodels.ExtraReport, err error) {
	list = []dbmodels.ExtraReport{}
	err = i.preloaded().
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.ExtraReport{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) UpdateStatusFrom(id string, from models.ReportStatus, updMap map[string]interface{}) (affected int64, err error) {
	tx := i.db.
		Model(&dbmodels.ExtraReport{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.ExtraReport{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) AddItem(rec dbmodels.ReportItem) error {
	return i.db.Save(&rec).Error
}

func (i impl) AddAttachment(rec dbmodels.ReportAttachment) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetAttachment(reportID, attachmentID string) (*dbmodels.ReportAttachment, error) {
	rec := dbmodels.ReportAttachment{}
	err := i.db.
		Where("id = ?", attachmentID).
		Where("report_id = ?", reportID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) DeleteAttachment(reportID, attachmentID string) error {
	return i.db.
		Where("id = ?", attachmentID).
		Where("report_id = ?", reportID).
		Delete(&dbmodels.ReportAttachment{}).
		Error
}

package entrystore

import (
	"gorm.io/gorm"
	"worklog-backend/models"
	dbmodels "worklog-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkEntry) (id string, err error)
	ListEligible(projectID string) (list []dbmodels.WorkEntry, err error)
	FindEligible(projectID string, ids []string) (list []dbmodels.WorkEntry, err error)
	MarkIncluded(ids []string) (affected int64, err error)
	RestoreToNew(ids []string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkEntry) (id string, err error) {
	if rec.Status == "" {
		rec.Status = models.EntryStatusNew
	}
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListEligible(projectID string) (list []dbmodels.WorkEntry, err error) {
	list = []dbmodels.WorkEntry{}
	err = i.db.
		Where("project_id = ?", projectID).
		Where("status = ?", models.EntryStatusNew).
		Where("is_extra = true").
		Preload("Employee").
		Order("work_date").
		Order("id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) FindEligible(projectID string, ids []string) (list []dbmodels.WorkEntry, err error) {
	list = []dbmodels.WorkEntry{}
	err = i.db.
		Where("id IN ?", ids).
		Where("project_id = ?", projectID).
		Where("status = ?", models.EntryStatusNew).
		Where("is_extra = true").
		Preload("Employee").
		Order("work_date").
		Order("id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// MarkIncluded помечает записи как включенные в отчет.
// Условие по статусу защищает от одновременного включения записи в два отчета:
// вызывающая сторона обязана сверить affected с ожидаемым количеством.
func (i impl) MarkIncluded(ids []string) (affected int64, err error) {
	tx := i.db.
		Model(&dbmodels.WorkEntry{}).
		Where("id IN ?", ids).
		Where("status = ?", models.EntryStatusNew).
		Update("status", models.EntryStatusIncluded)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) RestoreToNew(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.WorkEntry{}).
		Where("id IN ?", ids).
		Where("status = ?", models.EntryStatusIncluded).
		Update("status", models.EntryStatusNew).
		Error
}

package entryhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	entrystore "worklog-backend/lib/entry/store"
	projectstore "worklog-backend/lib/project/store"
	"worklog-backend/models"
	entryapimodels "worklog-backend/models/api/entry"
	dbmodels "worklog-backend/models/db"
)

type Provider interface {
	Create(data entryapimodels.EntryCreateData) (id string, err error)
}

func NewHandler(DB *gorm.DB) Provider {
	return &impl{
		db:           DB,
		store:        entrystore.NewInstance(DB),
		projectStore: projectstore.NewInstance(DB),
	}
}

type impl struct {
	db           *gorm.DB
	store        entrystore.Provider
	projectStore projectstore.Provider
}

func (i impl) Create(data entryapimodels.EntryCreateData) (id string, err error) {
	project, err := i.projectStore.GetByID(data.ProjectID)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", errors.New("проект не найден")
	}
	employee := dbmodels.Employee{}
	err = i.db.Where("id = ?", data.EmployeeID).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("сотрудник не найден")
		}
		return "", err
	}
	workDate, err := data.ParsedWorkDate()
	if err != nil {
		return "", err
	}
	id, err = i.store.Create(dbmodels.WorkEntry{
		EmployeeID: data.EmployeeID,
		ProjectID:  data.ProjectID,
		WorkDate:   workDate,
		Minutes:    data.Minutes(),
		IsExtra:    data.IsExtra,
		IsOvertime: data.IsOvertime,
		Note:       data.Note,
		Status:     models.EntryStatusNew,
	})
	if err != nil {
		return "", err
	}
	log.WithField("entry_id", id).Info("добавлена запись о времени")
	return id, nil
}

package db

import (
	log "github.com/sirupsen/logrus"
	projectstore "worklog-backend/lib/project/store"
	dbmodels "worklog-backend/models/db"
)

func InitPreload() {
	fillDefaultProject()
}

func fillDefaultProject() {
	store := projectstore.NewInstance(DB)
	list, err := store.List(false)
	if err != nil {
		log.WithError(err).Error("ошибка предзаполнения проектов")
		return
	}
	if len(list) > 0 {
		return
	}
	_, err = store.Create(dbmodels.Project{
		Name:     "Projekt domyślny",
		IsActive: true,
	})
	if err != nil {
		log.WithError(err).Error("ошибка добавления проекта по умолчанию")
		return
	}
	log.Info("добавлен проект по умолчанию")
}

package fiberlog

import "github.com/sirupsen/logrus"

// Config - настройки логирования запросов
type Config struct {
	// Logger - логгер, в который пишутся записи. При nil используется стандартный logrus.
	Logger *logrus.Logger
	// Tags - набор полей, добавляемых к каждой записи
	Tags []string
}

var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		TagIP,
	},
}

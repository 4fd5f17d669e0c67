package initializers

import (
	"worklog-backend/config"
	"worklog-backend/lib/notify"
)

var Notifier notify.Dispatcher

func InitSmtp() {
	Notifier = notify.NewSMTPDispatcher(config.Conf.Smtp.User, config.Conf.Smtp.Password,
		config.Conf.Smtp.Host, config.Conf.Smtp.Port, config.Conf.Smtp.From, *config.Conf.Smtp.TLSEnabled)
}

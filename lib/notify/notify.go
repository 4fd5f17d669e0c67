package notify

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

// Dispatcher отправляет письма получателям отчетов.
// Ошибка отправки никогда не откатывает уже выполненный переход статуса -
// вызывающая сторона логирует ее и показывает администратору предупреждение.
type Dispatcher interface {
	Send(to, subject, message string) error
}

type smtpDispatcher struct {
	user       string
	password   string
	host       string
	port       string
	from       string
	tlsEnabled bool
}

func NewSMTPDispatcher(user, password, host, port, from string, tlsEnabled bool) Dispatcher {
	if from == "" {
		from = user
	}
	return &smtpDispatcher{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		from:       from,
		tlsEnabled: tlsEnabled,
	}
}

func (i smtpDispatcher) Send(to, subject, message string) (err error) {
	logger := log.WithField("recipient", to)
	if i.user == "" || i.host == "" || i.port == "" {
		logger.Warn("письмо не отправлено, smtp клиент не настроен")
		return nil
	}
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\r\n"
	body := strings.NewReader(fmt.Sprintf("Subject: %s\n%s\r\n%s\r\n", subject, mimeHeaders, message))

	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.from, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.from, sendTo, body)
	}
	if err != nil {
		logger.WithError(err).Error("ошибка отправки письма")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

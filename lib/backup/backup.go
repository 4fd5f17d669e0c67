package backup

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
	"worklog-backend/config"
	dbmodels "worklog-backend/models/db"
)

// Run выгружает основные таблицы в zip-архив и отправляет его на резервный адрес.
// Запускается по расписанию, при пустом адресе ничего не делает.
func Run(db *gorm.DB) error {
	to := config.Conf.Backup.Email
	if to == "" {
		log.Info("резервный адрес не задан, выгрузка пропущена")
		return nil
	}
	buf, err := dumpZip(db)
	if err != nil {
		return errors.Wrap(err, "ошибка выгрузки данных")
	}

	now := time.Now().Format("20060102_150405")
	m := gomail.NewMessage()
	m.SetHeader("From", config.Conf.Smtp.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("EKKO NOR – kopia bazy %s", now))
	m.SetBody("text/plain", "Kopia zapasowa bazy danych aplikacji EKKO NOR.\n"+
		"Ta wiadomość została wygenerowana automatycznie przez system.\n"+
		"Jeśli nie oczekiwałeś tej wiadomości, możesz ją zignorować.")
	m.Attach(fmt.Sprintf("app_backup_%s.zip", now), gomail.SetCopyFunc(func(w io.Writer) error {
		_, copyErr := w.Write(buf.Bytes())
		return copyErr
	}))

	port, err := strconv.Atoi(config.Conf.Smtp.Port)
	if err != nil {
		return errors.Wrap(err, "некорректный порт smtp")
	}
	d := gomail.NewDialer(config.Conf.Smtp.Host, port, config.Conf.Smtp.User, config.Conf.Smtp.Password)
	if err = d.DialAndSend(m); err != nil {
		return errors.Wrap(err, "ошибка отправки резервной копии")
	}
	log.WithField("email", to).Info("резервная копия отправлена")
	return nil
}

func dumpZip(db *gorm.DB) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	tables := []struct {
		name  string
		value interface{}
	}{
		{"employees.json", &[]dbmodels.Employee{}},
		{"projects.json", &[]dbmodels.Project{}},
		{"work_entries.json", &[]dbmodels.WorkEntry{}},
		{"extra_reports.json", &[]dbmodels.ExtraReport{}},
		{"report_items.json", &[]dbmodels.ReportItem{}},
		{"report_attachments.json", &[]dbmodels.ReportAttachment{}},
		{"report_decisions.json", &[]dbmodels.ReportDecision{}},
		{"report_audit_entries.json", &[]dbmodels.ReportAuditEntry{}},
	}
	for _, table := range tables {
		if err := db.Find(table.value).Error; err != nil {
			return nil, errors.Wrapf(err, "ошибка чтения таблицы для %s", table.name)
		}
		w, err := zw.Create(table.name)
		if err != nil {
			return nil, err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err = enc.Encode(table.value); err != nil {
			return nil, errors.Wrapf(err, "ошибка сериализации %s", table.name)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

package initializers

import (
	"context"
	"time"

	"worklog-backend/config"
	"worklog-backend/db"
	"worklog-backend/fiberlog"
	backupworker "worklog-backend/lib/backup/worker"
	entryhandler "worklog-backend/lib/entry"
	xlsexport "worklog-backend/lib/export/xls"
	filestorage "worklog-backend/lib/file-storage"
	reporthandler "worklog-backend/lib/report"
	s3client "worklog-backend/s3"
)

var LoggerConfig *fiberlog.Config

var (
	ReportHandler reporthandler.Provider
	EntryHandler  entryhandler.Provider
	XlsExport     xlsexport.Provider
)

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()

	files := filestorage.NewHandler(s3client.Client, config.Conf.S3.BucketName)
	ReportHandler = reporthandler.NewHandler(reporthandler.Dependencies{
		DB:                db.DB,
		Notifier:          Notifier,
		Files:             files,
		EscalationWindow:  time.Duration(config.Conf.Approval.EscalationDays) * 24 * time.Hour,
		SignatureMinBytes: config.Conf.Approval.SignatureMinBytes,
		PublicLinkBaseURL: config.Conf.Approval.PublicLinkBaseURL,
	})
	EntryHandler = entryhandler.NewHandler(db.DB)
	XlsExport = xlsexport.NewHandler()

	// Задача отправки резервной копии раз в сутки
	backupworker.StartWorker(ctx)
}

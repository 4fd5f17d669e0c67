package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"worklog-backend/lib/utils/helpers"
	dbmodels "worklog-backend/models/db"
)

type Provider interface {
	ExportReport(rec dbmodels.ExtraReport) (*bytes.Buffer, error)
}

func NewHandler() Provider {
	return impl{}
}

type impl struct{}

var reportHeaders = []string{"Pracownik", "Data", "Godziny", "Notatka"}

func (i impl) ExportReport(rec dbmodels.ExtraReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, reportHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(rec.Items) != 0 {
		row, err = writeReportItems(f, sheet, rec.Items, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}

	// итоговая строка; ручная корректировка имеет приоритет над суммой
	row++
	if err = writeColumn(f, sheet, 1, row, "Razem"); err != nil {
		return nil, err
	}
	if err = writeColumn(f, sheet, 3, row, helpers.FmtHHMM(rec.TotalMinutes())); err != nil {
		return nil, err
	}

	f.SetSheetName(sheet, "Dodatki")
	return f.WriteToBuffer()
}

func writeReportItems(f *excelize.File, sheet string, items []dbmodels.ReportItem, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(reportHeaders), len(items)+1); err != nil {
		return row, err
	}
	for _, item := range items {
		row++
		// "Pracownik"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.EmployeeName); err != nil {
			return row, err
		}

		// "Data"
		col++
		if err := writeColumn(f, sheet, col, row, item.WorkDate.Format("02.01.2006")); err != nil {
			return row, err
		}

		// "Godziny"
		col++
		if err := writeColumn(f, sheet, col, row, helpers.FmtHHMM(item.Minutes)); err != nil {
			return row, err
		}

		// "Notatka"
		col++
		if err := writeColumn(f, sheet, col, row, item.Note); err != nil {
			return row, err
		}
	}
	return row, nil
}

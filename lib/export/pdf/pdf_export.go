package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"worklog-backend/lib/utils/helpers"
	dbmodels "worklog-backend/models/db"
)

// GenerateProtocol формирует протокол согласования отчета:
// позиции, итог, решение получателя и изображение подписи, если она оставлена.
func GenerateProtocol(rec dbmodels.ExtraReport, signature []byte) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateProtocol panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	// польские символы через cp1250, внешние шрифты не нужны
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1250")
	pdf.SetFont("Helvetica", "B", 14)

	pdf.CellFormat(0, 10, tr("Raport dodatkowych godzin"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if rec.Project != nil {
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("Projekt: %s", rec.Project.Name)), "", 1, "L", false, 0, "")
	}
	if rec.SentAt != nil {
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("Wysłano: %s", rec.SentAt.Format("02.01.2006"))), "", 1, "L", false, 0, "")
	}
	if rec.Body != "" {
		pdf.MultiCell(0, 6, tr(rec.Body), "", "L", false)
	}
	pdf.Ln(4)

	// таблица позиций
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, tr("Pracownik"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, tr("Data"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, tr("Godziny"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(65, 7, tr("Notatka"), "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range rec.Items {
		pdf.CellFormat(70, 7, tr(item.EmployeeName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, item.WorkDate.Format("02.01.2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, helpers.FmtHHMM(item.Minutes), "1", 0, "C", false, 0, "")
		pdf.CellFormat(65, 7, tr(item.Note), "1", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(100, 7, tr("Razem"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, helpers.FmtHHMM(rec.TotalMinutes()), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Status: %s", rec.Status)), "", 1, "L", false, 0, "")
	if rec.Decision != nil {
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("Decyzja: %s, %s", rec.Decision.DecidedBy, rec.Decision.DecidedAt.Format("02.01.2006 15:04"))), "", 1, "L", false, 0, "")
		if rec.Decision.Note != "" {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("Komentarz: %s", rec.Decision.Note)), "", "L", false)
		}
	}

	if len(signature) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("signature", opts, bytes.NewReader(signature))
		pdf.Ln(4)
		pdf.CellFormat(0, 7, tr("Podpis:"), "", 1, "L", false, 0, "")
		pdf.ImageOptions("signature", pdf.GetX(), pdf.GetY(), 60, 0, true, opts, 0, "")
	}

	var buf bytes.Buffer
	if err = pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования pdf")
	}
	return buf.Bytes(), nil
}

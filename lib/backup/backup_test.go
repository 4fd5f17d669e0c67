package backup

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	dbmodels "worklog-backend/models/db"
)

func TestDumpZipCoversAllTables(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	err = gdb.AutoMigrate(
		&dbmodels.Employee{},
		&dbmodels.Project{},
		&dbmodels.WorkEntry{},
		&dbmodels.ExtraReport{},
		&dbmodels.ReportItem{},
		&dbmodels.ReportAttachment{},
		&dbmodels.ReportDecision{},
		&dbmodels.ReportAuditEntry{},
	)
	require.NoError(t, err)
	attachment := dbmodels.ReportAttachment{
		ReportID:    "r1",
		FileName:    "faktura.pdf",
		ContentType: "application/pdf",
		Size:        42,
	}
	require.NoError(t, gdb.Create(&attachment).Error)

	buf, err := dumpZip(gdb)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	names := map[string]*zip.File{}
	for _, f := range zr.File {
		names[f.Name] = f
	}
	for _, want := range []string{
		"employees.json",
		"projects.json",
		"work_entries.json",
		"extra_reports.json",
		"report_items.json",
		"report_attachments.json",
		"report_decisions.json",
		"report_audit_entries.json",
	} {
		require.Contains(t, names, want)
	}

	rc, err := names["report_attachments.json"].Open()
	require.NoError(t, err)
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	require.NoError(t, err)
	attachments := []dbmodels.ReportAttachment{}
	require.NoError(t, json.Unmarshal(raw, &attachments))
	require.Len(t, attachments, 1)
	require.Equal(t, "faktura.pdf", attachments[0].FileName)
}

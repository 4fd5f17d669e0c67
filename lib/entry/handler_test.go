package entryhandler

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"worklog-backend/models"
	entryapimodels "worklog-backend/models/api/entry"
	dbmodels "worklog-backend/models/db"
)

func newTestHandler(t *testing.T) (Provider, *gorm.DB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&dbmodels.Employee{}, &dbmodels.Project{}, &dbmodels.WorkEntry{}))
	return NewHandler(gdb), gdb
}

func TestCreateEntry(t *testing.T) {
	handler, gdb := newTestHandler(t)
	project := dbmodels.Project{Name: "Budowa Oslo", IsActive: true}
	require.NoError(t, gdb.Create(&project).Error)
	employee := dbmodels.Employee{Name: "Piotr Zielinski", Email: "piotr@ekkonor.no", IsActive: true}
	require.NoError(t, gdb.Create(&employee).Error)

	data := entryapimodels.EntryCreateData{
		EmployeeID: employee.ID,
		ProjectID:  project.ID,
		WorkDate:   "2025-03-03",
		Duration:   "1:30",
		Note:       "dojazd",
		IsExtra:    true,
	}
	require.NoError(t, data.Validate())

	id, err := handler.Create(data)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec := dbmodels.WorkEntry{}
	require.NoError(t, gdb.Where("id = ?", id).First(&rec).Error)
	require.Equal(t, 90, rec.Minutes)
	require.Equal(t, models.EntryStatusNew, rec.Status)
	require.True(t, rec.IsExtra)
	require.True(t, rec.WorkDate.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)))
}

func TestCreateEntryUnknownRefs(t *testing.T) {
	handler, gdb := newTestHandler(t)
	project := dbmodels.Project{Name: "Budowa Oslo", IsActive: true}
	require.NoError(t, gdb.Create(&project).Error)

	_, err := handler.Create(entryapimodels.EntryCreateData{
		EmployeeID: "missing",
		ProjectID:  project.ID,
		WorkDate:   "2025-03-03",
		Duration:   "45",
	})
	require.Error(t, err)

	_, err = handler.Create(entryapimodels.EntryCreateData{
		EmployeeID: "missing",
		ProjectID:  "missing",
		WorkDate:   "2025-03-03",
		Duration:   "45",
	})
	require.Error(t, err)
}

func TestEntryCreateDataValidate(t *testing.T) {
	base := entryapimodels.EntryCreateData{
		EmployeeID: "e1",
		ProjectID:  "p1",
		WorkDate:   "2025-03-03",
		Duration:   "45",
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.Duration = "abc"
	require.Error(t, bad.Validate())

	bad = base
	bad.WorkDate = "03.03.2025"
	require.Error(t, bad.Validate())

	bad = base
	bad.EmployeeID = ""
	require.Error(t, bad.Validate())
}

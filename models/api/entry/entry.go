package entryapimodels

import (
	"time"

	"github.com/pkg/errors"
	"worklog-backend/lib/utils/helpers"
)

type EntryCreateData struct {
	EmployeeID string `json:"employee_id"`
	ProjectID  string `json:"project_id"`
	// WorkDate - дата работы в формате 2006-01-02
	WorkDate string `json:"work_date"`
	// Duration - длительность: "90", "1:30", "1h30" или "1.5"
	Duration   string `json:"duration"`
	Note       string `json:"note"`
	IsExtra    bool   `json:"is_extra"`
	IsOvertime bool   `json:"is_overtime"`
}

func (e EntryCreateData) Validate() error {
	if e.EmployeeID == "" {
		return errors.New("не указан сотрудник")
	}
	if e.ProjectID == "" {
		return errors.New("не указан проект")
	}
	if _, err := e.ParsedWorkDate(); err != nil {
		return errors.New("некорректная дата работы")
	}
	if helpers.ParseHHMM(e.Duration) <= 0 {
		return errors.New("некорректная длительность")
	}
	return nil
}

func (e EntryCreateData) ParsedWorkDate() (time.Time, error) {
	return time.Parse("2006-01-02", e.WorkDate)
}

func (e EntryCreateData) Minutes() int {
	return helpers.ParseHHMM(e.Duration)
}

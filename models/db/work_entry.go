package dbmodels

import (
	"time"

	"worklog-backend/models"
)

// WorkEntry - запись о рабочем времени сотрудника.
// Записи с IsExtra=true попадают в отчеты по дополнительным часам,
// статус меняется только через формирование/удаление отчета.
type WorkEntry struct {
	BaseModel
	EmployeeID string    `gorm:"type:varchar(36);index"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID"`
	ProjectID  string    `gorm:"type:varchar(36);index"`
	Project    *Project  `gorm:"foreignKey:ProjectID"`
	WorkDate   time.Time `gorm:"type:date"`
	Minutes    int
	IsExtra    bool
	IsOvertime bool
	Note       string
	Status     models.EntryStatus `gorm:"type:varchar(20);index;default:'NEW'"`
}

package dbmodels

import (
	"time"

	"worklog-backend/models"

	"gorm.io/gorm"
)

// ExtraReport - отчет по дополнительным часам, отправляемый внешнему получателю.
type ExtraReport struct {
	BaseModel
	ProjectID   string    `gorm:"type:varchar(36);index"`
	Project     *Project  `gorm:"foreignKey:ProjectID"`
	CreatedByID *string   `gorm:"type:varchar(36)"`
	CreatedBy   *Employee `gorm:"foreignKey:CreatedByID"`
	// Recipient - адрес получателя, может быть пустым до отправки
	Recipient string              `gorm:"type:varchar(255)"`
	Body      string
	Status    models.ReportStatus `gorm:"type:varchar(20);index"`
	SentAt    *time.Time
	DecidedAt *time.Time
	// TotalOverride - ручная корректировка итога в минутах, имеет приоритет над суммой позиций
	TotalOverride *int
	// AccessToken выдается один раз при первой отправке и никогда не меняется,
	// до отправки пустой (NULL, иначе черновики конфликтуют по уникальному индексу)
	AccessToken *string            `gorm:"type:varchar(64);uniqueIndex"`
	Items       []ReportItem       `gorm:"foreignKey:ReportID"`
	Attachments []ReportAttachment `gorm:"foreignKey:ReportID"`
	Decision    *ReportDecision    `gorm:"foreignKey:ReportID"`
	Audit       []ReportAuditEntry `gorm:"foreignKey:ReportID"`
}

// TotalMinutes - итог отчета; ручная корректировка всегда важнее суммы позиций.
func (r ExtraReport) TotalMinutes() int {
	if r.TotalOverride != nil {
		return *r.TotalOverride
	}
	total := 0
	for _, item := range r.Items {
		total += item.Minutes
	}
	return total
}

func (r *ExtraReport) AfterDelete(tx *gorm.DB) error {
	if r.ID == "" {
		return nil
	}
	// сбой каскада откатывает и удаление самого отчета
	for _, dep := range []interface{}{&ReportItem{}, &ReportAttachment{}, &ReportDecision{}, &ReportAuditEntry{}} {
		if err := tx.Where("report_id = ?", r.ID).Delete(dep).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReportItem - неизменяемый снимок записи о времени внутри отчета.
type ReportItem struct {
	BaseModel
	ReportID string `gorm:"type:varchar(36);index"`
	// EntryID - ссылка на исходную запись, нужна для компенсации при удалении отчета
	EntryID      string `gorm:"type:varchar(36);index"`
	EmployeeName string `gorm:"type:varchar(255)"`
	WorkDate     time.Time `gorm:"type:date"`
	Minutes      int
	Note         string
	Position     int
}

type ReportAttachment struct {
	BaseModel
	ReportID    string `gorm:"type:varchar(36);index"`
	FileName    string `gorm:"type:varchar(255)"`
	ContentType string `gorm:"type:varchar(100)"`
	Size        int64
}

// ReportDecision - единственное решение по отчету (1:1, upsert).
type ReportDecision struct {
	BaseModel
	ReportID  string `gorm:"type:varchar(36);uniqueIndex"`
	DecidedAt time.Time
	DecidedBy string `gorm:"type:varchar(255)"`
	Note      string
	// SignatureKey - ключ файла подписи в хранилище, пустой если подпись не оставлена
	SignatureKey  string `gorm:"type:varchar(255)"`
	SignatureSize int64
}

// ReportAuditEntry - запись журнала действий, только добавляется, никогда не меняется.
// Seq монотонно растет в порядке вставки и разрешает совпадения по времени.
type ReportAuditEntry struct {
	Seq       uint      `gorm:"primaryKey;autoIncrement" json:"seq"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	ReportID  string    `gorm:"type:varchar(36);index"`
	ActorKind models.ActorKind   `gorm:"type:varchar(20)"`
	ActorName string             `gorm:"type:varchar(255)"`
	Action    models.AuditAction `gorm:"type:varchar(50)"`
	Details   string
	IP        string `gorm:"type:varchar(50)"`
	UserAgent string `gorm:"type:varchar(255)"`
}

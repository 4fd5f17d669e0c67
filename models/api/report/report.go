package reportapimodels

import (
	"encoding/base64"
	"time"

	"worklog-backend/lib/utils/helpers"
	"worklog-backend/models"
	dbmodels "worklog-backend/models/db"

	"github.com/pkg/errors"
)

type ReportCreateData struct {
	ProjectID string   `json:"project_id"`
	Recipient string   `json:"recipient"`
	Body      string   `json:"body"`
	EntryIDs  []string `json:"entry_ids"`
}

func (r ReportCreateData) Validate() error {
	if r.ProjectID == "" {
		return errors.New("не указан проект")
	}
	if len(r.EntryIDs) == 0 {
		return errors.New("не выбраны записи для отчета")
	}
	return nil
}

type ReportUpdateData struct {
	Recipient     *string `json:"recipient"`
	Body          *string `json:"body"`
	TotalOverride *int    `json:"total_override"`
	// ClearTotalOverride - сбросить ручную корректировку итога
	ClearTotalOverride bool `json:"clear_total_override"`
}

func (r ReportUpdateData) Validate() error {
	if r.TotalOverride != nil && *r.TotalOverride < 0 {
		return errors.New("корректировка итога не может быть отрицательной")
	}
	if r.TotalOverride != nil && r.ClearTotalOverride {
		return errors.New("нельзя одновременно задать и сбросить корректировку итога")
	}
	return nil
}

type ReportSendData struct {
	Recipient string `json:"recipient"`
}

type PublicDecisionData struct {
	Action    models.DecisionAction `json:"action"`
	DecidedBy string                `json:"decided_by"`
	Note      string                `json:"note"`
	// Signature - PNG подписи в base64, опционально
	Signature string `json:"signature"`
}

func (r PublicDecisionData) Validate() error {
	if !r.Action.IsValid() {
		return errors.New("неизвестное действие")
	}
	if _, err := r.SignatureBytes(); err != nil {
		return errors.New("не удалось прочитать подпись")
	}
	return nil
}

func (r PublicDecisionData) SignatureBytes() ([]byte, error) {
	if r.Signature == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(r.Signature)
}

type ReportView struct {
	ID            string            `json:"id"`
	ProjectID     string            `json:"project_id"`
	ProjectName   string            `json:"project_name"`
	CreatedBy     string            `json:"created_by"`
	Recipient     string            `json:"recipient"`
	Body          string            `json:"body"`
	Status        models.ReportStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	SentAt        *time.Time        `json:"sent_at,omitempty"`
	DecidedAt     *time.Time        `json:"decided_at,omitempty"`
	TotalOverride *int              `json:"total_override,omitempty"`
	TotalMinutes  int               `json:"total_minutes"`
	Total         string            `json:"total"` // формат HH:MM
	Items         []ReportItemView  `json:"items"`
	Attachments   []AttachmentView  `json:"attachments"`
	Decision      *DecisionView     `json:"decision,omitempty"`
}

type ReportItemView struct {
	EntryID      string `json:"entry_id"`
	EmployeeName string `json:"employee_name"`
	WorkDate     string `json:"work_date"`
	Minutes      int    `json:"minutes"`
	Duration     string `json:"duration"` // формат HH:MM
	Note         string `json:"note"`
}

type AttachmentView struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type DecisionView struct {
	DecidedAt    time.Time `json:"decided_at"`
	DecidedBy    string    `json:"decided_by"`
	Note         string    `json:"note"`
	HasSignature bool      `json:"has_signature"`
}

type AuditEntryView struct {
	CreatedAt time.Time          `json:"created_at"`
	ActorKind models.ActorKind   `json:"actor_kind"`
	ActorName string             `json:"actor_name,omitempty"`
	Action    models.AuditAction `json:"action"`
	Details   string             `json:"details,omitempty"`
	IP        string             `json:"ip,omitempty"`
	UserAgent string             `json:"user_agent,omitempty"`
}

// PublicReportView - представление для внешнего получателя, без внутренних данных.
type PublicReportView struct {
	ProjectName string              `json:"project_name"`
	Body        string              `json:"body"`
	Status      models.ReportStatus `json:"status"`
	SentAt      *time.Time          `json:"sent_at,omitempty"`
	Total       string              `json:"total"`
	Items       []ReportItemView    `json:"items"`
	Attachments []AttachmentView    `json:"attachments"`
	Decision    *DecisionView       `json:"decision,omitempty"`
}

type EligibleEntryView struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employee_name"`
	WorkDate     string `json:"work_date"`
	Minutes      int    `json:"minutes"`
	Duration     string `json:"duration"`
	Note         string `json:"note"`
}

func ReportConvert(rec dbmodels.ExtraReport) ReportView {
	view := ReportView{
		ID:            rec.ID,
		ProjectID:     rec.ProjectID,
		Recipient:     rec.Recipient,
		Body:          rec.Body,
		Status:        rec.Status,
		CreatedAt:     rec.CreatedAt,
		SentAt:        rec.SentAt,
		DecidedAt:     rec.DecidedAt,
		TotalOverride: rec.TotalOverride,
		TotalMinutes:  rec.TotalMinutes(),
		Total:         helpers.FmtHHMM(rec.TotalMinutes()),
		Items:         make([]ReportItemView, 0, len(rec.Items)),
		Attachments:   make([]AttachmentView, 0, len(rec.Attachments)),
	}
	if rec.Project != nil {
		view.ProjectName = rec.Project.Name
	}
	if rec.CreatedBy != nil {
		view.CreatedBy = rec.CreatedBy.Name
	}
	for _, item := range rec.Items {
		view.Items = append(view.Items, ReportItemConvert(item))
	}
	for _, attachment := range rec.Attachments {
		view.Attachments = append(view.Attachments, AttachmentConvert(attachment))
	}
	if rec.Decision != nil {
		view.Decision = DecisionConvert(*rec.Decision)
	}
	return view
}

func PublicReportConvert(rec dbmodels.ExtraReport) PublicReportView {
	full := ReportConvert(rec)
	return PublicReportView{
		ProjectName: full.ProjectName,
		Body:        full.Body,
		Status:      full.Status,
		SentAt:      full.SentAt,
		Total:       full.Total,
		Items:       full.Items,
		Attachments: full.Attachments,
		Decision:    full.Decision,
	}
}

func ReportItemConvert(rec dbmodels.ReportItem) ReportItemView {
	return ReportItemView{
		EntryID:      rec.EntryID,
		EmployeeName: rec.EmployeeName,
		WorkDate:     rec.WorkDate.Format("2006-01-02"),
		Minutes:      rec.Minutes,
		Duration:     helpers.FmtHHMM(rec.Minutes),
		Note:         rec.Note,
	}
}

func AttachmentConvert(rec dbmodels.ReportAttachment) AttachmentView {
	return AttachmentView{
		ID:          rec.ID,
		FileName:    rec.FileName,
		ContentType: rec.ContentType,
		Size:        rec.Size,
	}
}

func DecisionConvert(rec dbmodels.ReportDecision) *DecisionView {
	return &DecisionView{
		DecidedAt:    rec.DecidedAt,
		DecidedBy:    rec.DecidedBy,
		Note:         rec.Note,
		HasSignature: rec.SignatureKey != "",
	}
}

func AuditConvert(rec dbmodels.ReportAuditEntry) AuditEntryView {
	return AuditEntryView{
		CreatedAt: rec.CreatedAt,
		ActorKind: rec.ActorKind,
		ActorName: rec.ActorName,
		Action:    rec.Action,
		Details:   rec.Details,
		IP:        rec.IP,
		UserAgent: rec.UserAgent,
	}
}

func EligibleEntryConvert(rec dbmodels.WorkEntry) EligibleEntryView {
	view := EligibleEntryView{
		ID:       rec.ID,
		WorkDate: rec.WorkDate.Format("2006-01-02"),
		Minutes:  rec.Minutes,
		Duration: helpers.FmtHHMM(rec.Minutes),
		Note:     rec.Note,
	}
	if rec.Employee != nil {
		view.EmployeeName = rec.Employee.Name
	}
	return view
}

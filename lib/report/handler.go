package reporthandler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	entrystore "worklog-backend/lib/entry/store"
	filestorage "worklog-backend/lib/file-storage"
	"worklog-backend/lib/notify"
	projectstore "worklog-backend/lib/project/store"
	reportauditstore "worklog-backend/lib/report/audit-store"
	reportdecisionstore "worklog-backend/lib/report/decision-store"
	"worklog-backend/lib/report/escalation"
	reportstore "worklog-backend/lib/report/store"
	accesstoken "worklog-backend/lib/report/token"
	"worklog-backend/models"
	reportapimodels "worklog-backend/models/api/report"
	dbmodels "worklog-backend/models/db"
)

type Provider interface {
	Create(actor models.ActorMeta, data reportapimodels.ReportCreateData) (id string, err error)
	List(actor models.ActorMeta) (list []reportapimodels.ReportView, err error)
	GetByID(actor models.ActorMeta, id string) (view reportapimodels.ReportView, err error)
	Update(actor models.ActorMeta, id string, data reportapimodels.ReportUpdateData) error
	Send(actor models.ActorMeta, id string, recipient string) (warn string, err error)
	Delete(actor models.ActorMeta, id string) error
	AuditTrail(id string) (list []reportapimodels.AuditEntryView, err error)
	ListEligibleEntries(projectID string) (list []reportapimodels.EligibleEntryView, err error)
	ResolveByToken(actor models.ActorMeta, token string) (view reportapimodels.PublicReportView, err error)
	DecideByToken(actor models.ActorMeta, token string, data reportapimodels.PublicDecisionData) error
	AddAttachment(ctx context.Context, actor models.ActorMeta, reportID, fileName, contentType string, data []byte) (id string, err error)
	GetAttachment(ctx context.Context, reportID, attachmentID string) (view reportapimodels.AttachmentView, data []byte, err error)
	DeleteAttachment(ctx context.Context, actor models.ActorMeta, reportID, attachmentID string) error
	GetReport(id string) (rec *dbmodels.ExtraReport, err error)
	GetSignature(ctx context.Context, reportID string) (data []byte, err error)
}

// Dependencies - явные зависимости конструктора, без глобальных синглтонов.
// Часы и генератор токена подменяются в тестах.
type Dependencies struct {
	DB                *gorm.DB
	Notifier          notify.Dispatcher
	Files             filestorage.Provider
	Now               func() time.Time
	NewToken          func() (string, error)
	EscalationWindow  time.Duration
	SignatureMinBytes int
	PublicLinkBaseURL string
}

func NewHandler(deps Dependencies) Provider {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewToken == nil {
		deps.NewToken = accesstoken.Generate
	}
	if deps.EscalationWindow <= 0 {
		deps.EscalationWindow = escalation.DefaultWindow
	}
	return &impl{
		deps:         deps,
		store:        reportstore.NewInstance(deps.DB),
		entryStore:   entrystore.NewInstance(deps.DB),
		projectStore: projectstore.NewInstance(deps.DB),
		auditStore:   reportauditstore.NewInstance(deps.DB),
	}
}

type impl struct {
	deps         Dependencies
	store        reportstore.Provider
	entryStore   entrystore.Provider
	projectStore projectstore.Provider
	auditStore   reportauditstore.Provider
}

type txStores struct {
	reports   reportstore.Provider
	entries   entrystore.Provider
	audit     reportauditstore.Provider
	decisions reportdecisionstore.Provider
}

func storesWithTx(tx *gorm.DB) txStores {
	return txStores{
		reports:   reportstore.NewInstance(tx),
		entries:   entrystore.NewInstance(tx),
		audit:     reportauditstore.NewInstance(tx),
		decisions: reportdecisionstore.NewInstance(tx),
	}
}

func (i impl) getLogger(reportID string) *log.Entry {
	return log.WithField("report_id", reportID)
}

func (i impl) auditRecord(reportID string, actor models.ActorMeta, action models.AuditAction, details string) dbmodels.ReportAuditEntry {
	return dbmodels.ReportAuditEntry{
		CreatedAt: i.deps.Now(),
		ReportID:  reportID,
		ActorKind: actor.Kind,
		ActorName: actor.Name,
		Action:    action,
		Details:   details,
		IP:        actor.IP,
		UserAgent: actor.UserAgent,
	}
}

// Create формирует черновик отчета из записей со статусом NEW.
// Снимок позиций и смена статуса записей выполняются одной транзакцией,
// запись не может оказаться в двух живых отчетах одновременно.
func (i impl) Create(actor models.ActorMeta, data reportapimodels.ReportCreateData) (id string, err error) {
	project, err := i.projectStore.GetByID(data.ProjectID)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", errors.New("проект не найден")
	}
	recipient := data.Recipient
	if recipient == "" {
		recipient = project.ContactEmail
	}

	err = i.deps.DB.Transaction(func(tx *gorm.DB) error {
		stores := storesWithTx(tx)
		eligible, err := stores.entries.FindEligible(data.ProjectID, data.EntryIDs)
		if err != nil {
			return err
		}
		if len(eligible) == 0 {
			return models.ErrNoEligibleItems
		}
		ids := make([]string, 0, len(eligible))
		for _, entry := range eligible {
			ids = append(ids, entry.ID)
		}
		affected, err := stores.entries.MarkIncluded(ids)
		if err != nil {
			return err
		}
		if affected != int64(len(ids)) {
			return errors.New("записи уже включены в другой отчет")
		}

		rec := dbmodels.ExtraReport{
			ProjectID: data.ProjectID,
			Recipient: recipient,
			Body:      data.Body,
			Status:    models.ReportStatusDraft,
		}
		if actor.SubjectID != "" {
			subjectID := actor.SubjectID
			rec.CreatedByID = &subjectID
		}
		rec.CreatedAt = i.deps.Now()
		id, err = stores.reports.Create(rec)
		if err != nil {
			return err
		}
		for idx, entry := range eligible {
			employeeName := ""
			if entry.Employee != nil {
				employeeName = entry.Employee.Name
			}
			item := dbmodels.ReportItem{
				ReportID:     id,
				EntryID:      entry.ID,
				EmployeeName: employeeName,
				WorkDate:     entry.WorkDate,
				Minutes:      entry.Minutes,
				Note:         entry.Note,
				Position:     idx,
			}
			if err = stores.reports.AddItem(item); err != nil {
				return err
			}
		}
		details := fmt.Sprintf("создан черновик, записей: %v", len(eligible))
		return stores.audit.Add(i.auditRecord(id, actor, models.AuditActionCreated, details))
	})
	if err != nil {
		return "", err
	}
	i.getLogger(id).Info("создан отчет по дополнительным часам")
	return id, nil
}

func (i impl) List(actor models.ActorMeta) (list []reportapimodels.ReportView, err error) {
	recs, err := i.store.List()
	if err != nil {
		return nil, err
	}
	list = make([]reportapimodels.ReportView, 0, len(recs))
	for _, rec := range recs {
		current := rec
		escalated, err := i.escalateIfDue(&current)
		if err != nil {
			return nil, err
		}
		if escalated {
			refreshed, err := i.store.GetByID(current.ID)
			if err != nil {
				return nil, err
			}
			if refreshed != nil {
				current = *refreshed
			}
		}
		list = append(list, reportapimodels.ReportConvert(current))
	}
	return list, nil
}

func (i impl) GetByID(actor models.ActorMeta, id string) (view reportapimodels.ReportView, err error) {
	rec, err := i.loadChecked(id)
	if err != nil {
		return reportapimodels.ReportView{}, err
	}
	return reportapimodels.ReportConvert(*rec), nil
}

// loadChecked возвращает отчет, предварительно применив проверку автосогласования.
// Вызывающий всегда видит согласованное терминальное либо действительно ожидающее состояние.
func (i impl) loadChecked(id string) (*dbmodels.ExtraReport, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrReportNotFound
	}
	escalated, err := i.escalateIfDue(rec)
	if err != nil {
		return nil, err
	}
	if escalated {
		rec, err = i.store.GetByID(id)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, models.ErrReportNotFound
		}
	}
	return rec, nil
}

// escalateIfDue выполняет ленивое автосогласование просроченного отчета.
// Переход защищен условием по исходному статусу: из двух одновременных проверок
// статус сменит ровно одна, вторая не оставит ни дубля решения, ни записи в журнале.
func (i impl) escalateIfDue(rec *dbmodels.ExtraReport) (escalated bool, err error) {
	now := i.deps.Now()
	if !escalation.Due(rec.Status, rec.SentAt, now, i.deps.EscalationWindow) {
		return false, nil
	}
	logger := i.getLogger(rec.ID)
	err = i.deps.DB.Transaction(func(tx *gorm.DB) error {
		stores := storesWithTx(tx)
		affected, err := stores.reports.UpdateStatusFrom(rec.ID, models.ReportStatusSent, map[string]interface{}{
			"status":     models.ReportStatusApprovedAuto,
			"decided_at": now,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			// кто-то успел раньше
			return nil
		}
		escalated = true
		err = stores.decisions.Upsert(dbmodels.ReportDecision{
			ReportID:  rec.ID,
			DecidedAt: now,
			DecidedBy: "system",
			Note:      i.autoDecisionNote(),
		})
		if err != nil {
			return err
		}
		days := int(i.deps.EscalationWindow.Hours() / 24)
		details := fmt.Sprintf("без ответа более %v дн., отчет согласован автоматически", days)
		return stores.audit.Add(i.auditRecord(rec.ID, models.SystemActor(), models.AuditActionAutoApproved, details))
	})
	if err != nil {
		return false, err
	}
	if !escalated {
		return false, nil
	}
	logger.Info("отчет согласован автоматически по истечении срока")
	if rec.Recipient != "" {
		subject := "Raport dodatkowych godzin – zatwierdzony automatycznie"
		message := fmt.Sprintf("Raport \"%s\" został zatwierdzony automatycznie po upływie terminu odpowiedzi.", rec.Body)
		if err := i.deps.Notifier.Send(rec.Recipient, subject, message); err != nil {
			logger.WithError(err).Warn("не удалось отправить уведомление об автосогласовании")
		}
	}
	return true, nil
}

func (i impl) autoDecisionNote() string {
	days := int(i.deps.EscalationWindow.Hours() / 24)
	return fmt.Sprintf("Zatwierdzono automatycznie po %v dniach bez odpowiedzi", days)
}

// Update меняет текст, получателя или корректировку итога.
// Допускается только до принятия решения и не меняет статус отчета.
func (i impl) Update(actor models.ActorMeta, id string, data reportapimodels.ReportUpdateData) error {
	rec, err := i.loadChecked(id)
	if err != nil {
		return err
	}
	if !rec.Status.IsEditable() {
		return errors.Wrap(models.ErrInvalidTransition, "отчет уже закрыт")
	}
	updMap := map[string]interface{}{}
	changed := []string{}
	if data.Recipient != nil {
		updMap["recipient"] = *data.Recipient
		changed = append(changed, "получатель")
	}
	if data.Body != nil {
		updMap["body"] = *data.Body
		changed = append(changed, "текст")
	}
	if data.TotalOverride != nil {
		updMap["total_override"] = *data.TotalOverride
		changed = append(changed, "итог")
	}
	if data.ClearTotalOverride {
		updMap["total_override"] = nil
		changed = append(changed, "итог сброшен")
	}
	if len(updMap) == 0 {
		return nil
	}
	return i.deps.DB.Transaction(func(tx *gorm.DB) error {
		stores := storesWithTx(tx)
		if err := stores.reports.Update(id, updMap); err != nil {
			return err
		}
		details := "изменено: " + strings.Join(changed, ", ")
		return stores.audit.Add(i.auditRecord(id, actor, models.AuditActionUpdated, details))
	})
}

// Send переводит черновик в SENT, единожды выдает токен публичной ссылки
// и отправляет письмо получателю. Письмо уходит после фиксации перехода:
// сбой доставки не откатывает статус и возвращается как предупреждение.
func (i impl) Send(actor models.ActorMeta, id string, recipient string) (warn string, err error) {
	rec, err := i.loadChecked(id)
	if err != nil {
		return "", err
	}
	if rec.Status != models.ReportStatusDraft {
		return "", errors.Wrap(models.ErrInvalidTransition, "отчет уже отправлялся")
	}
	if recipient == "" {
		recipient = rec.Recipient
	}
	if recipient == "" {
		return "", errors.Wrap(models.ErrInvalidTransition, "не указан получатель")
	}
	if len(rec.Items) == 0 {
		return "", errors.Wrap(models.ErrInvalidTransition, "в отчете нет позиций")
	}
	token := ""
	if rec.AccessToken != nil {
		token = *rec.AccessToken
	}
	if token == "" {
		token, err = i.deps.NewToken()
		if err != nil {
			return "", err
		}
	}
	now := i.deps.Now()
	err = i.deps.DB.Transaction(func(tx *gorm.DB) error {
		stores := storesWithTx(tx)
		affected, err := stores.reports.UpdateStatusFrom(id, models.ReportStatusDraft, map[string]interface{}{
			"status":       models.ReportStatusSent,
			"sent_at":      now,
			"recipient":    recipient,
			"access_token": token,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return errors.Wrap(models.ErrInvalidTransition, "отчет уже отправлялся")
		}
		details := fmt.Sprintf("отправлен получателю %v", recipient)
		return stores.audit.Add(i.auditRecord(id, actor, models.AuditActionSent, details))
	})
	if err != nil {
		return "", err
	}
	logger := i.getLogger(id)
	logger.Info("отчет отправлен на согласование")

	link := fmt.Sprintf("%s/r/%s", strings.TrimRight(i.deps.PublicLinkBaseURL, "/"), token)
	subject := "Raport dodatkowych godzin do zatwierdzenia"
	message := fmt.Sprintf("Prosimy o zatwierdzenie raportu dodatkowych godzin.\nLink do raportu: %s", link)
	if sendErr := i.deps.Notifier.Send(recipient, subject, message); sendErr != nil {
		logger.WithError(sendErr).Error("переход выполнен, но письмо не доставлено")
		return models.ErrNotificationFailure.Error(), nil
	}
	return "", nil
}

// DecideByToken выполняет решение внешнего получателя: approve/reject/comment.
// Доступно только в статусе SENT; после автосогласования возвращает ErrAlreadyDecided.
func (i impl) DecideByToken(actor models.ActorMeta, token string, data reportapimodels.PublicDecisionData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	rec, err := i.resolveToken(token)
	if err != nil {
		return err
	}
	escalated, err := i.escalateIfDue(rec)
	if err != nil {
		return err
	}
	if escalated || rec.Status.IsTerminal() {
		return models.ErrAlreadyDecided
	}
	if rec.Status != models.ReportStatusSent {
		return models.ErrInvalidTransition
	}

	logger := i.getLogger(rec.ID)
	signature, err := data.SignatureBytes()
	if err != nil {
		return err
	}
	signatureKey := ""
	signatureNote := ""
	if len(signature) > 0 {
		if len(signature) < i.deps.SignatureMinBytes {
			// эвристика пустой подписи: слишком маленький файл с планшета
			signatureNote = fmt.Sprintf("подпись %v байт меньше порога %v, не сохранена", len(signature), i.deps.SignatureMinBytes)
			logger.Info(signatureNote)
			signature = nil
		} else {
			// ключ уникален на каждую попытку решения, параллельная попытка не затирает чужой файл
			signatureKey = signatureObjectKey(rec.ID, uuid.NewString())
			if err = i.deps.Files.Upload(context.Background(), signatureKey, signature, "image/png"); err != nil {
				return err
			}
		}
	}

	target, auditAction := decisionTarget(data.Action)
	now := i.deps.Now()
	err = i.deps.DB.Transaction(func(tx *gorm.DB) error {
		stores := storesWithTx(tx)
		affected, err := stores.reports.UpdateStatusFrom(rec.ID, models.ReportStatusSent, map[string]interface{}{
			"status":     target,
			"decided_at": now,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return models.ErrAlreadyDecided
		}
		err = stores.decisions.Upsert(dbmodels.ReportDecision{
			ReportID:      rec.ID,
			DecidedAt:     now,
			DecidedBy:     data.DecidedBy,
			Note:          data.Note,
			SignatureKey:  signatureKey,
			SignatureSize: int64(len(signature)),
		})
		if err != nil {
			return err
		}
		details := fmt.Sprintf("решение получателя: %v", data.Action)
		if signatureNote != "" {
			details += "; " + signatureNote
		}
		return stores.audit.Add(i.auditRecord(rec.ID, actor, auditAction, details))
	})
	if err != nil {
		// решение не состоялось, загруженный файл подписи никому не принадлежит
		if signatureKey != "" {
			if delErr := i.deps.Files.Delete(context.Background(), signatureKey); delErr != nil {
				logger.WithError(delErr).Warn("не удалось убрать файл подписи после несостоявшегося решения")
			}
		}
		return err
	}
	logger.WithField("action", data.Action).Info("получено решение по отчету")

	if rec.CreatedBy != nil && rec.CreatedBy.Email != "" {
		subject := fmt.Sprintf("Raport dodatkowych godzin – %v", polishDecision(data.Action))
		message := fmt.Sprintf("Odbiorca %s podjął decyzję: %v.\nKomentarz: %s", data.DecidedBy, polishDecision(data.Action), data.Note)
		if sendErr := i.deps.Notifier.Send(rec.CreatedBy.Email, subject, message); sendErr != nil {
			logger.WithError(sendErr).Warn("не удалось уведомить автора отчета о решении")
		}
	}
	return nil
}

func decisionTarget(action models.DecisionAction) (models.ReportStatus, models.AuditAction) {
	switch action {
	case models.DecisionActionReject:
		return models.ReportStatusRejected, models.AuditActionRejected
	case models.DecisionActionComment:
		return models.ReportStatusCommented, models.AuditActionCommented
	default:
		return models.ReportStatusApproved, models.AuditActionApproved
	}
}

func polishDecision(action models.DecisionAction) string {
	switch action {
	case models.DecisionActionReject:
		return "odrzucony"
	case models.DecisionActionComment:
		return "skomentowany"
	default:
		return "zatwierdzony"
	}
}

func (i impl) resolveToken(token string) (*dbmodels.ExtraReport, error) {
	if token == "" {
		return nil, models.ErrReportNotFound
	}
	rec, err := i.store.GetByToken(token)
	if err != nil {
		return nil, err
	}
	// повторная проверка за постоянное время, выборка по индексу ей не является
	if rec == nil || rec.AccessToken == nil || !accesstoken.Equal(*rec.AccessToken, token) {
		return nil, models.ErrReportNotFound
	}
	return rec, nil
}

func (i impl) ResolveByToken(actor models.ActorMeta, token string) (view reportapimodels.PublicReportView, err error) {
	rec, err := i.resolveToken(token)
	if err != nil {
		return reportapimodels.PublicReportView{}, err
	}
	escalated, err := i.escalateIfDue(rec)
	if err != nil {
		return reportapimodels.PublicReportView{}, err
	}
	if escalated {
		rec, err = i.resolveToken(token)
		if err != nil {
			return reportapimodels.PublicReportView{}, err
		}
	}
	return reportapimodels.PublicReportConvert(*rec), nil
}

// Delete удаляет отчет из любого статуса с компенсацией:
// исходные записи возвращаются в NEW и могут попасть в новый отчет.
// Позиции, вложения, решение и журнал удаляются каскадно вместе с отчетом.
func (i impl) Delete(actor models.ActorMeta, id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrReportNotFound
	}
	entryIDs := make([]string, 0, len(rec.Items))
	for _, item := range rec.Items {
		entryIDs = append(entryIDs, item.EntryID)
	}
	err = i.deps.DB.Transaction(func(tx *gorm.DB) error {
		stores := storesWithTx(tx)
		if err := stores.entries.RestoreToNew(entryIDs); err != nil {
			return err
		}
		return stores.reports.Delete(id)
	})
	if err != nil {
		return err
	}
	logger := i.getLogger(id)
	logger.Info("отчет удален, записи возвращены в статус NEW")

	ctx := context.Background()
	for _, attachment := range rec.Attachments {
		if err := i.deps.Files.Delete(ctx, attachmentObjectKey(id, attachment.ID)); err != nil {
			logger.WithError(err).Warn("не удалось удалить вложение из хранилища")
		}
	}
	if rec.Decision != nil && rec.Decision.SignatureKey != "" {
		if err := i.deps.Files.Delete(ctx, rec.Decision.SignatureKey); err != nil {
			logger.WithError(err).Warn("не удалось удалить подпись из хранилища")
		}
	}
	return nil
}

func (i impl) AuditTrail(id string) (list []reportapimodels.AuditEntryView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrReportNotFound
	}
	recs, err := i.auditStore.List(id)
	if err != nil {
		return nil, err
	}
	list = make([]reportapimodels.AuditEntryView, 0, len(recs))
	for _, entry := range recs {
		list = append(list, reportapimodels.AuditConvert(entry))
	}
	return list, nil
}

func (i impl) ListEligibleEntries(projectID string) (list []reportapimodels.EligibleEntryView, err error) {
	recs, err := i.entryStore.ListEligible(projectID)
	if err != nil {
		return nil, err
	}
	list = make([]reportapimodels.EligibleEntryView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, reportapimodels.EligibleEntryConvert(rec))
	}
	return list, nil
}

func (i impl) AddAttachment(ctx context.Context, actor models.ActorMeta, reportID, fileName, contentType string, data []byte) (id string, err error) {
	rec, err := i.loadChecked(reportID)
	if err != nil {
		return "", err
	}
	if !rec.Status.IsEditable() {
		return "", errors.Wrap(models.ErrInvalidTransition, "отчет уже закрыт")
	}
	id = uuid.NewString()
	if err = i.deps.Files.Upload(ctx, attachmentObjectKey(reportID, id), data, contentType); err != nil {
		return "", err
	}
	err = i.deps.DB.Transaction(func(tx *gorm.DB) error {
		stores := storesWithTx(tx)
		_, err := stores.reports.AddAttachment(dbmodels.ReportAttachment{
			BaseModel:   dbmodels.BaseModel{ID: id},
			ReportID:    reportID,
			FileName:    fileName,
			ContentType: contentType,
			Size:        int64(len(data)),
		})
		if err != nil {
			return err
		}
		return stores.audit.Add(i.auditRecord(reportID, actor, models.AuditActionAttachmentAdded, fileName))
	})
	if err != nil {
		if delErr := i.deps.Files.Delete(ctx, attachmentObjectKey(reportID, id)); delErr != nil {
			i.getLogger(reportID).WithError(delErr).Warn("не удалось убрать файл после сбоя сохранения вложения")
		}
		return "", err
	}
	return id, nil
}

func (i impl) GetAttachment(ctx context.Context, reportID, attachmentID string) (view reportapimodels.AttachmentView, data []byte, err error) {
	rec, err := i.store.GetAttachment(reportID, attachmentID)
	if err != nil {
		return reportapimodels.AttachmentView{}, nil, err
	}
	if rec == nil {
		return reportapimodels.AttachmentView{}, nil, models.ErrReportNotFound
	}
	data, err = i.deps.Files.Get(ctx, attachmentObjectKey(reportID, attachmentID))
	if err != nil {
		return reportapimodels.AttachmentView{}, nil, err
	}
	return reportapimodels.AttachmentConvert(*rec), data, nil
}

func (i impl) DeleteAttachment(ctx context.Context, actor models.ActorMeta, reportID, attachmentID string) error {
	rec, err := i.loadChecked(reportID)
	if err != nil {
		return err
	}
	if !rec.Status.IsEditable() {
		return errors.Wrap(models.ErrInvalidTransition, "отчет уже закрыт")
	}
	attachment, err := i.store.GetAttachment(reportID, attachmentID)
	if err != nil {
		return err
	}
	if attachment == nil {
		return models.ErrReportNotFound
	}
	err = i.deps.DB.Transaction(func(tx *gorm.DB) error {
		stores := storesWithTx(tx)
		if err := stores.reports.DeleteAttachment(reportID, attachmentID); err != nil {
			return err
		}
		return stores.audit.Add(i.auditRecord(reportID, actor, models.AuditActionAttachmentRemoved, attachment.FileName))
	})
	if err != nil {
		return err
	}
	if err = i.deps.Files.Delete(ctx, attachmentObjectKey(reportID, attachmentID)); err != nil {
		i.getLogger(reportID).WithError(err).Warn("не удалось удалить вложение из хранилища")
	}
	return nil
}

func (i impl) GetReport(id string) (*dbmodels.ExtraReport, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrReportNotFound
	}
	return rec, nil
}

func (i impl) GetSignature(ctx context.Context, reportID string) ([]byte, error) {
	rec, err := i.store.GetByID(reportID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrReportNotFound
	}
	if rec.Decision == nil || rec.Decision.SignatureKey == "" {
		return nil, nil
	}
	return i.deps.Files.Get(ctx, rec.Decision.SignatureKey)
}

func attachmentObjectKey(reportID, attachmentID string) string {
	return fmt.Sprintf("reports/%s/attachments/%s", reportID, attachmentID)
}

func signatureObjectKey(reportID, attemptID string) string {
	return fmt.Sprintf("reports/%s/signatures/%s.png", reportID, attemptID)
}

package reporthandler

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"worklog-backend/models"
	reportapimodels "worklog-backend/models/api/report"
	dbmodels "worklog-backend/models/db"
)

type sentMail struct {
	to      string
	subject string
	message string
}

type fakeNotifier struct {
	sent     []sentMail
	failNext bool
}

func (f *fakeNotifier) Send(to, subject, message string) error {
	if f.failNext {
		f.failNext = false
		return errors.New("smtp недоступен")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, message: message})
	return nil
}

type fakeFiles struct {
	objects map[string][]byte
	// onUpload вызывается один раз после загрузки, позволяет вклинить конкурирующее действие
	onUpload func(key string)
}

func (f *fakeFiles) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	f.objects[key] = data
	if f.onUpload != nil {
		hook := f.onUpload
		f.onUpload = nil
		hook(key)
	}
	return nil
}

func (f *fakeFiles) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("объект не найден")
	}
	return data, nil
}

func (f *fakeFiles) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

type testEnv struct {
	db       *gorm.DB
	handler  Provider
	notifier *fakeNotifier
	files    *fakeFiles
	now      time.Time
	tokenSeq int
}

const signatureMinBytes = 64

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
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

	env := &testEnv{
		db:       gdb,
		notifier: &fakeNotifier{},
		files:    &fakeFiles{objects: map[string][]byte{}},
		now:      time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	env.handler = NewHandler(Dependencies{
		DB:       gdb,
		Notifier: env.notifier,
		Files:    env.files,
		Now:      func() time.Time { return env.now },
		NewToken: func() (string, error) {
			env.tokenSeq++
			return fmt.Sprintf("test-token-%03d", env.tokenSeq), nil
		},
		EscalationWindow:  7 * 24 * time.Hour,
		SignatureMinBytes: signatureMinBytes,
		PublicLinkBaseURL: "http://localhost:8080",
	})
	return env
}

func (e *testEnv) seedProject(t *testing.T) string {
	t.Helper()
	rec := dbmodels.Project{Name: "Budowa Oslo", IsActive: true, ContactEmail: "kontakt@ekkonor.no"}
	require.NoError(t, e.db.Create(&rec).Error)
	return rec.ID
}

func (e *testEnv) seedEmployee(t *testing.T, name string) string {
	t.Helper()
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@ekkonor.no"
	rec := dbmodels.Employee{Name: name, Email: email, IsActive: true}
	require.NoError(t, e.db.Create(&rec).Error)
	return rec.ID
}

func (e *testEnv) seedEntry(t *testing.T, projectID, employeeID string, day, minutes int) string {
	t.Helper()
	rec := dbmodels.WorkEntry{
		EmployeeID: employeeID,
		ProjectID:  projectID,
		WorkDate:   time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
		Minutes:    minutes,
		IsExtra:    true,
		Note:       "dojazd na budowę",
		Status:     models.EntryStatusNew,
	}
	require.NoError(t, e.db.Create(&rec).Error)
	return rec.ID
}

// tick сдвигает часы, чтобы записи журнала имели различимый порядок по времени
func (e *testEnv) tick() {
	e.now = e.now.Add(time.Minute)
}

func (e *testEnv) entryStatus(t *testing.T, id string) models.EntryStatus {
	t.Helper()
	rec := dbmodels.WorkEntry{}
	require.NoError(t, e.db.Where("id = ?", id).First(&rec).Error)
	return rec.Status
}

func adminActor(subjectID string) models.ActorMeta {
	return models.AdminActor(subjectID, "Anna Nowak", "127.0.0.1", "test-agent")
}

func publicActor(name string) models.ActorMeta {
	return models.PublicActor(name, "10.0.0.1", "tablet-agent")
}

// создание отчета + отправка, общая заготовка для сценариев согласования
func (e *testEnv) createSentReport(t *testing.T) (reportID, token string, entryIDs []string) {
	t.Helper()
	projectID := e.seedProject(t)
	adminID := e.seedEmployee(t, "Anna Nowak")
	employeeA := e.seedEmployee(t, "Piotr Zielinski")
	employeeB := e.seedEmployee(t, "Marek Wisniewski")
	entryA := e.seedEntry(t, projectID, employeeA, 3, 120)
	entryB := e.seedEntry(t, projectID, employeeB, 5, 90)

	reportID, err := e.handler.Create(adminActor(adminID), reportapimodels.ReportCreateData{
		ProjectID: projectID,
		Body:      "Dodatkowe godziny za marzec",
		EntryIDs:  []string{entryA, entryB},
	})
	require.NoError(t, err)

	e.tick()
	warn, err := e.handler.Send(adminActor(adminID), reportID, "")
	require.NoError(t, err)
	require.Empty(t, warn)

	rec, err := e.handler.GetReport(reportID)
	require.NoError(t, err)
	require.NotNil(t, rec.AccessToken)
	return reportID, *rec.AccessToken, []string{entryA, entryB}
}

func TestCreateReport(t *testing.T) {
	env := newTestEnv(t)
	projectID := env.seedProject(t)
	adminID := env.seedEmployee(t, "Anna Nowak")
	employeeA := env.seedEmployee(t, "Piotr Zielinski")
	employeeB := env.seedEmployee(t, "Marek Wisniewski")
	entryA := env.seedEntry(t, projectID, employeeA, 3, 120)
	entryB := env.seedEntry(t, projectID, employeeB, 5, 90)

	id, err := env.handler.Create(adminActor(adminID), reportapimodels.ReportCreateData{
		ProjectID: projectID,
		Body:      "Dodatkowe godziny za marzec",
		EntryIDs:  []string{entryA, entryB},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	view, err := env.handler.GetByID(adminActor(adminID), id)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusDraft, view.Status)
	// получатель по умолчанию из проекта
	require.Equal(t, "kontakt@ekkonor.no", view.Recipient)
	require.Equal(t, "Anna Nowak", view.CreatedBy)
	require.Len(t, view.Items, 2)
	require.Equal(t, "Piotr Zielinski", view.Items[0].EmployeeName)
	require.Equal(t, 210, view.TotalMinutes)
	require.Equal(t, "03:30", view.Total)

	// записи зарезервированы отчетом
	require.Equal(t, models.EntryStatusIncluded, env.entryStatus(t, entryA))
	require.Equal(t, models.EntryStatusIncluded, env.entryStatus(t, entryB))

	eligible, err := env.handler.ListEligibleEntries(projectID)
	require.NoError(t, err)
	require.Empty(t, eligible)

	audit, err := env.handler.AuditTrail(id)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	require.Equal(t, models.AuditActionCreated, audit[0].Action)
	require.Equal(t, models.ActorKindAdmin, audit[0].ActorKind)
}

func TestCreateReportNoEligibleEntries(t *testing.T) {
	env := newTestEnv(t)
	projectID := env.seedProject(t)
	adminID := env.seedEmployee(t, "Anna Nowak")
	employeeID := env.seedEmployee(t, "Piotr Zielinski")
	entryID := env.seedEntry(t, projectID, employeeID, 3, 120)

	_, err := env.handler.Create(adminActor(adminID), reportapimodels.ReportCreateData{
		ProjectID: projectID,
		EntryIDs:  []string{entryID},
	})
	require.NoError(t, err)

	// те же записи второй раз не включаются
	_, err = env.handler.Create(adminActor(adminID), reportapimodels.ReportCreateData{
		ProjectID: projectID,
		EntryIDs:  []string{entryID},
	})
	require.ErrorIs(t, err, models.ErrNoEligibleItems)

	// несуществующие записи
	_, err = env.handler.Create(adminActor(adminID), reportapimodels.ReportCreateData{
		ProjectID: projectID,
		EntryIDs:  []string{"missing-id"},
	})
	require.ErrorIs(t, err, models.ErrNoEligibleItems)
}

func TestSendReport(t *testing.T) {
	env := newTestEnv(t)
	reportID, token, _ := env.createSentReport(t)
	require.Equal(t, "test-token-001", token)

	view, err := env.handler.GetByID(adminActor(""), reportID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusSent, view.Status)
	require.NotNil(t, view.SentAt)

	// письмо получателю со ссылкой на публичную страницу
	require.Len(t, env.notifier.sent, 1)
	require.Equal(t, "kontakt@ekkonor.no", env.notifier.sent[0].to)
	require.Contains(t, env.notifier.sent[0].message, "http://localhost:8080/r/"+token)

	audit, err := env.handler.AuditTrail(reportID)
	require.NoError(t, err)
	require.Len(t, audit, 2)
	require.Equal(t, models.AuditActionSent, audit[1].Action)

	// повторная отправка невозможна
	_, err = env.handler.Send(adminActor(""), reportID, "")
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	// журнал не растет от неудачных попыток
	audit, err = env.handler.AuditTrail(reportID)
	require.NoError(t, err)
	require.Len(t, audit, 2)
}

func TestSendReportWithoutRecipient(t *testing.T) {
	env := newTestEnv(t)
	projectID := env.seedProject(t)
	require.NoError(t, env.db.Model(&dbmodels.Project{}).Where("id = ?", projectID).Update("contact_email", "").Error)
	adminID := env.seedEmployee(t, "Anna Nowak")
	employeeID := env.seedEmployee(t, "Piotr Zielinski")
	entryID := env.seedEntry(t, projectID, employeeID, 3, 120)

	id, err := env.handler.Create(adminActor(adminID), reportapimodels.ReportCreateData{
		ProjectID: projectID,
		EntryIDs:  []string{entryID},
	})
	require.NoError(t, err)

	_, err = env.handler.Send(adminActor(adminID), id, "")
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestSendReportNotificationFailure(t *testing.T) {
	env := newTestEnv(t)
	projectID := env.seedProject(t)
	adminID := env.seedEmployee(t, "Anna Nowak")
	employeeID := env.seedEmployee(t, "Piotr Zielinski")
	entryID := env.seedEntry(t, projectID, employeeID, 3, 120)

	id, err := env.handler.Create(adminActor(adminID), reportapimodels.ReportCreateData{
		ProjectID: projectID,
		EntryIDs:  []string{entryID},
	})
	require.NoError(t, err)

	env.notifier.failNext = true
	warn, err := env.handler.Send(adminActor(adminID), id, "")
	require.NoError(t, err)
	require.Equal(t, models.ErrNotificationFailure.Error(), warn)

	// переход состоялся несмотря на сбой доставки
	view, err := env.handler.GetByID(adminActor(adminID), id)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusSent, view.Status)
}

func TestDecideApprove(t *testing.T) {
	env := newTestEnv(t)
	reportID, token, _ := env.createSentReport(t)
	mailsBefore := len(env.notifier.sent)

	env.tick()
	err := env.handler.DecideByToken(publicActor("Jan Kowalski"), token, reportapimodels.PublicDecisionData{
		Action:    models.DecisionActionApprove,
		DecidedBy: "Jan Kowalski",
		Note:      "Zatwierdzam",
	})
	require.NoError(t, err)

	view, err := env.handler.GetByID(adminActor(""), reportID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusApproved, view.Status)
	require.NotNil(t, view.DecidedAt)
	require.NotNil(t, view.Decision)
	require.Equal(t, "Jan Kowalski", view.Decision.DecidedBy)
	require.Equal(t, "Zatwierdzam", view.Decision.Note)
	require.False(t, view.Decision.HasSignature)

	audit, err := env.handler.AuditTrail(reportID)
	require.NoError(t, err)
	require.Len(t, audit, 3)
	require.Equal(t, models.AuditActionApproved, audit[2].Action)
	require.Equal(t, models.ActorKindPublic, audit[2].ActorKind)

	// автор отчета уведомлен о решении
	require.Len(t, env.notifier.sent, mailsBefore+1)
	require.Equal(t, "anna.nowak@ekkonor.no", env.notifier.sent[mailsBefore].to)

	// решение принимается ровно один раз
	err = env.handler.DecideByToken(publicActor("Jan Kowalski"), token, reportapimodels.PublicDecisionData{
		Action:    models.DecisionActionReject,
		DecidedBy: "Jan Kowalski",
	})
	require.ErrorIs(t, err, models.ErrAlreadyDecided)

	audit, err = env.handler.AuditTrail(reportID)
	require.NoError(t, err)
	require.Len(t, audit, 3)
}

func TestDecideRejectAndComment(t *testing.T) {
	cases := []struct {
		action models.DecisionAction
		status models.ReportStatus
	}{
		{models.DecisionActionReject, models.ReportStatusRejected},
		{models.DecisionActionComment, models.ReportStatusCommented},
	}
	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			env := newTestEnv(t)
			reportID, token, _ := env.createSentReport(t)

			err := env.handler.DecideByToken(publicActor("Jan Kowalski"), token, reportapimodels.PublicDecisionData{
				Action:    tc.action,
				DecidedBy: "Jan Kowalski",
				Note:      "Proszę o korektę",
			})
			require.NoError(t, err)

			view, err := env.handler.GetByID(adminActor(""), reportID)
			require.NoError(t, err)
			require.Equal(t, tc.status, view.Status)
		})
	}
}

func TestDecideWithSignature(t *testing.T) {
	env := newTestEnv(t)
	reportID, token, _ := env.createSentReport(t)

	signature := make([]byte, signatureMinBytes*2)
	for i := range signature {
		signature[i] = byte(i % 251)
	}
	err := env.handler.DecideByToken(publicActor("Jan Kowalski"), token, reportapimodels.PublicDecisionData{
		Action:    models.DecisionActionApprove,
		DecidedBy: "Jan Kowalski",
		Signature: base64.StdEncoding.EncodeToString(signature),
	})
	require.NoError(t, err)

	view, err := env.handler.GetByID(adminActor(""), reportID)
	require.NoError(t, err)
	require.NotNil(t, view.Decision)
	require.True(t, view.Decision.HasSignature)

	stored, err := env.handler.GetSignature(context.Background(), reportID)
	require.NoError(t, err)
	require.Equal(t, signature, stored)
}

func TestDecideWithBlankSignature(t *testing.T) {
	env := newTestEnv(t)
	reportID, token, _ := env.createSentReport(t)

	// файл меньше порога считается пустым росчерком и не сохраняется
	blank := make([]byte, signatureMinBytes-1)
	err := env.handler.DecideByToken(publicActor("Jan Kowalski"), token, reportapimodels.PublicDecisionData{
		Action:    models.DecisionActionApprove,
		DecidedBy: "Jan Kowalski",
		Signature: base64.StdEncoding.EncodeToString(blank),
	})
	require.NoError(t, err)

	view, err := env.handler.GetByID(adminActor(""), reportID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusApproved, view.Status)
	require.NotNil(t, view.Decision)
	require.False(t, view.Decision.HasSignature)
	require.Empty(t, env.files.objects)

	stored, err := env.handler.GetSignature(context.Background(), reportID)
	require.NoError(t, err)
	require.Nil(t, stored)
}

func TestDecideInvalidAction(t *testing.T) {
	env := newTestEnv(t)
	reportID, token, _ := env.createSentReport(t)

	err := env.handler.DecideByToken(publicActor("Jan Kowalski"), token, reportapimodels.PublicDecisionData{
		Action:    "zatwierdz",
		DecidedBy: "Jan Kowalski",
	})
	require.Error(t, err)

	// опечатка в действии не становится молчаливым согласованием
	view, err := env.handler.GetByID(adminActor(""), reportID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusSent, view.Status)
	require.Nil(t, view.Decision)

	audit, err := env.handler.AuditTrail(reportID)
	require.NoError(t, err)
	require.Len(t, audit, 2)
}

// два получателя открыли ссылку одновременно: пока первый грузит подпись,
// второй успевает закрыть отчет
func TestDecideConcurrentSignatureNotKept(t *testing.T) {
	env := newTestEnv(t)
	reportID, token, _ := env.createSentReport(t)

	signature := make([]byte, signatureMinBytes*2)
	for i := range signature {
		signature[i] = byte(i % 251)
	}
	env.tick()
	env.files.onUpload = func(string) {
		err := env.handler.DecideByToken(publicActor("Ewa Kowalczyk"), token, reportapimodels.PublicDecisionData{
			Action:    models.DecisionActionReject,
			DecidedBy: "Ewa Kowalczyk",
			Note:      "Odrzucam",
		})
		require.NoError(t, err)
	}
	err := env.handler.DecideByToken(publicActor("Jan Kowalski"), token, reportapimodels.PublicDecisionData{
		Action:    models.DecisionActionApprove,
		DecidedBy: "Jan Kowalski",
		Signature: base64.StdEncoding.EncodeToString(signature),
	})
	require.ErrorIs(t, err, models.ErrAlreadyDecided)

	// состоявшееся решение нетронуто
	view, err := env.handler.GetByID(adminActor(""), reportID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusRejected, view.Status)
	require.NotNil(t, view.Decision)
	require.Equal(t, "Ewa Kowalczyk", view.Decision.DecidedBy)
	require.False(t, view.Decision.HasSignature)

	// подпись несостоявшегося решения не остается в хранилище
	require.Empty(t, env.files.objects)
	stored, err := env.handler.GetSignature(context.Background(), reportID)
	require.NoError(t, err)
	require.Nil(t, stored)

	audit, err := env.handler.AuditTrail(reportID)
	require.NoError(t, err)
	require.Len(t, audit, 3)
	require.Equal(t, models.AuditActionRejected, audit[2].Action)
}

// служебные действия журналируются отдельно, по переходам статуса счет ровный:
// один переход - одна запись
func TestAuditOneEntryPerTransition(t *testing.T) {
	env := newTestEnv(t)
	reportID, token, _ := env.createSentReport(t)

	env.tick()
	body := "korekta"
	require.NoError(t, env.handler.Update(adminActor(""), reportID, reportapimodels.ReportUpdateData{Body: &body}))

	env.tick()
	require.NoError(t, env.handler.DecideByToken(publicActor("Jan Kowalski"), token, reportapimodels.PublicDecisionData{
		Action:    models.DecisionActionApprove,
		DecidedBy: "Jan Kowalski",
	}))

	audit, err := env.handler.AuditTrail(reportID)
	require.NoError(t, err)
	require.Len(t, audit, 4)

	transitions := []models.AuditAction{}
	for _, entry := range audit {
		switch entry.Action {
		case models.AuditActionSent, models.AuditActionApproved, models.AuditActionRejected,
			models.AuditActionCommented, models.AuditActionAutoApproved:
			transitions = append(transitions, entry.Action)
		}
	}
	require.Equal(t, []models.AuditAction{models.AuditActionSent, models.AuditActionApproved}, transitions)
}

// записи с одинаковым временем выводятся в порядке вставки
func TestAuditOrderStableWithinSameTimestamp(t *testing.T) {
	for run := 0; run < 5; run++ {
		env := newTestEnv(t)
		projectID := env.seedProject(t)
		adminID := env.seedEmployee(t, "Anna Nowak")
		employeeID := env.seedEmployee(t, "Piotr Zielinski")
		entryID := env.seedEntry(t, projectID, employeeID, 3, 120)

		id, err := env.handler.Create(adminActor(adminID), reportapimodels.ReportCreateData{
			ProjectID: projectID,
			EntryIDs:  []string{entryID},
		})
		require.NoError(t, err)
		_, err = env.handler.Send(adminActor(adminID), id, "")
		require.NoError(t, err)

		rec, err := env.handler.GetReport(id)
		require.NoError(t, err)
		require.NotNil(t, rec.AccessToken)
		err = env.handler.DecideByToken(publicActor("Jan Kowalski"), *rec.AccessToken, reportapimodels.PublicDecisionData{
			Action:    models.DecisionActionApprove,
			DecidedBy: "Jan Kowalski",
		})
		require.NoError(t, err)

		audit, err := env.handler.AuditTrail(id)
		require.NoError(t, err)
		require.Len(t, audit, 3)
		require.Equal(t, models.AuditActionCreated, audit[0].Action)
		require.Equal(t, models.AuditActionSent, audit[1].Action)
		require.Equal(t, models.AuditActionApproved, audit[2].Action)
	}
}

func TestAutoEscalation(t *testing.T) {
	env := newTestEnv(t)
	reportID, token, _ := env.createSentReport(t)
	sentAt := env.now

	// за секунду до срока ничего не происходит
	env.now = sentAt.Add(7*24*time.Hour - time.Second)
	view, err := env.handler.GetByID(adminActor(""), reportID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusSent, view.Status)

	// ровно в срок отчет согласуется автоматически
	env.now = sentAt.Add(7 * 24 * time.Hour)
	view, err = env.handler.GetByID(adminActor(""), reportID)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusApprovedAuto, view.Status)
	require.NotNil(t, view.Decision)
	require.Equal(t, "system", view.Decision.DecidedBy)
	require.Contains(t, view.Decision.Note, "Zatwierdzono automatycznie po 7 dniach")

	audit, err := env.handler.AuditTrail(reportID)
	require.NoError(t, err)
	require.Len(t, audit, 3)
	require.Equal(t, models.AuditActionAutoApproved, audit[2].Action)
	require.Equal(t, models.ActorKindSystem, audit[2].ActorKind)

	// повторное чтение не плодит ни решений, ни записей журнала
	_, err = env.handler.GetByID(adminActor(""), reportID)
	require.NoError(t, err)
	audit, err = env.handler.AuditTrail(reportID)
	require.NoError(t, err)
	require.Len(t, audit, 3)

	// решение после автосогласования невозможно
	err = env.handler.DecideByToken(publicActor("Jan Kowalski"), token, reportapimodels.PublicDecisionData{
		Action:    models.DecisionActionApprove,
		DecidedBy: "Jan Kowalski",
	})
	require.ErrorIs(t, err, models.ErrAlreadyDecided)
}

func TestEscalationTriggeredByPublicRead(t *testing.T) {
	env := newTestEnv(t)
	_, token, _ := env.createSentReport(t)

	env.now = env.now.Add(8 * 24 * time.Hour)
	view, err := env.handler.ResolveByToken(publicActor(""), token)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusApprovedAuto, view.Status)
}

func TestUpdateReport(t *testing.T) {
	env := newTestEnv(t)
	projectID := env.seedProject(t)
	adminID := env.seedEmployee(t, "Anna Nowak")
	employeeID := env.seedEmployee(t, "Piotr Zielinski")
	entryID := env.seedEntry(t, projectID, employeeID, 3, 120)

	id, err := env.handler.Create(adminActor(adminID), reportapimodels.ReportCreateData{
		ProjectID: projectID,
		EntryIDs:  []string{entryID},
	})
	require.NoError(t, err)

	override := 0
	env.tick()
	err = env.handler.Update(adminActor(adminID), id, reportapimodels.ReportUpdateData{
		TotalOverride: &override,
	})
	require.NoError(t, err)

	// ручная корректировка важнее суммы, ноль тоже корректировка
	view, err := env.handler.GetByID(adminActor(adminID), id)
	require.NoError(t, err)
	require.Equal(t, 0, view.TotalMinutes)
	require.Equal(t, "00:00", view.Total)

	env.tick()
	err = env.handler.Update(adminActor(adminID), id, reportapimodels.ReportUpdateData{
		ClearTotalOverride: true,
	})
	require.NoError(t, err)
	view, err = env.handler.GetByID(adminActor(adminID), id)
	require.NoError(t, err)
	require.Equal(t, 120, view.TotalMinutes)

	audit, err := env.handler.AuditTrail(id)
	require.NoError(t, err)
	require.Len(t, audit, 3)
	require.Equal(t, models.AuditActionUpdated, audit[1].Action)
	require.Equal(t, models.AuditActionUpdated, audit[2].Action)
}

func TestUpdateAfterDecisionRejected(t *testing.T) {
	env := newTestEnv(t)
	reportID, token, _ := env.createSentReport(t)
	err := env.handler.DecideByToken(publicActor("Jan Kowalski"), token, reportapimodels.PublicDecisionData{
		Action:    models.DecisionActionApprove,
		DecidedBy: "Jan Kowalski",
	})
	require.NoError(t, err)

	body := "poprawka"
	err = env.handler.Update(adminActor(""), reportID, reportapimodels.ReportUpdateData{Body: &body})
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestDeleteReportCompensates(t *testing.T) {
	env := newTestEnv(t)
	reportID, _, entryIDs := env.createSentReport(t)

	err := env.handler.Delete(adminActor(""), reportID)
	require.NoError(t, err)

	_, err = env.handler.GetByID(adminActor(""), reportID)
	require.ErrorIs(t, err, models.ErrReportNotFound)

	// записи вернулись в пул и могут попасть в новый отчет
	for _, entryID := range entryIDs {
		require.Equal(t, models.EntryStatusNew, env.entryStatus(t, entryID))
	}

	// каскад не оставляет хвостов
	var count int64
	require.NoError(t, env.db.Model(&dbmodels.ReportItem{}).Where("report_id = ?", reportID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, env.db.Model(&dbmodels.ReportAuditEntry{}).Where("report_id = ?", reportID).Count(&count).Error)
	require.Zero(t, count)

	newID, err := env.handler.Create(adminActor(""), reportapimodels.ReportCreateData{
		ProjectID: env.projectIDOf(t, entryIDs[0]),
		EntryIDs:  entryIDs,
	})
	require.NoError(t, err)
	require.NotEmpty(t, newID)
}

// сбой каскадного удаления откатывает транзакцию целиком:
// отчет остается на месте, записи не возвращаются в пул
func TestDeleteReportCascadeFailure(t *testing.T) {
	env := newTestEnv(t)
	reportID, _, entryIDs := env.createSentReport(t)

	require.NoError(t, env.db.Migrator().DropTable(&dbmodels.ReportAuditEntry{}))

	err := env.handler.Delete(adminActor(""), reportID)
	require.Error(t, err)

	var count int64
	require.NoError(t, env.db.Model(&dbmodels.ExtraReport{}).Where("id = ?", reportID).Count(&count).Error)
	require.EqualValues(t, 1, count)
	for _, entryID := range entryIDs {
		require.Equal(t, models.EntryStatusIncluded, env.entryStatus(t, entryID))
	}
}

func (e *testEnv) projectIDOf(t *testing.T, entryID string) string {
	t.Helper()
	rec := dbmodels.WorkEntry{}
	require.NoError(t, e.db.Where("id = ?", entryID).First(&rec).Error)
	return rec.ProjectID
}

func TestResolveByTokenUnknown(t *testing.T) {
	env := newTestEnv(t)
	env.createSentReport(t)

	_, err := env.handler.ResolveByToken(publicActor(""), "wrong-token")
	require.ErrorIs(t, err, models.ErrReportNotFound)

	_, err = env.handler.ResolveByToken(publicActor(""), "")
	require.ErrorIs(t, err, models.ErrReportNotFound)
}

func TestPublicViewHidesInternals(t *testing.T) {
	env := newTestEnv(t)
	_, token, _ := env.createSentReport(t)

	view, err := env.handler.ResolveByToken(publicActor(""), token)
	require.NoError(t, err)
	require.Equal(t, models.ReportStatusSent, view.Status)
	require.Equal(t, "Budowa Oslo", view.ProjectName)
	require.Len(t, view.Items, 2)
	require.Equal(t, "03:30", view.Total)
}

func TestAttachments(t *testing.T) {
	env := newTestEnv(t)
	projectID := env.seedProject(t)
	adminID := env.seedEmployee(t, "Anna Nowak")
	employeeID := env.seedEmployee(t, "Piotr Zielinski")
	entryID := env.seedEntry(t, projectID, employeeID, 3, 120)

	id, err := env.handler.Create(adminActor(adminID), reportapimodels.ReportCreateData{
		ProjectID: projectID,
		EntryIDs:  []string{entryID},
	})
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("%PDF-1.4 faktura")
	env.tick()
	attachmentID, err := env.handler.AddAttachment(ctx, adminActor(adminID), id, "faktura.pdf", "application/pdf", content)
	require.NoError(t, err)
	require.NotEmpty(t, attachmentID)

	view, data, err := env.handler.GetAttachment(ctx, id, attachmentID)
	require.NoError(t, err)
	require.Equal(t, "faktura.pdf", view.FileName)
	require.Equal(t, content, data)

	reportView, err := env.handler.GetByID(adminActor(adminID), id)
	require.NoError(t, err)
	require.Len(t, reportView.Attachments, 1)

	env.tick()
	err = env.handler.DeleteAttachment(ctx, adminActor(adminID), id, attachmentID)
	require.NoError(t, err)
	require.Empty(t, env.files.objects)

	audit, err := env.handler.AuditTrail(id)
	require.NoError(t, err)
	require.Len(t, audit, 3)
	require.Equal(t, models.AuditActionAttachmentAdded, audit[1].Action)
	require.Equal(t, models.AuditActionAttachmentRemoved, audit[2].Action)
}

func TestAttachmentsClosedReport(t *testing.T) {
	env := newTestEnv(t)
	reportID, token, _ := env.createSentReport(t)
	err := env.handler.DecideByToken(publicActor("Jan Kowalski"), token, reportapimodels.PublicDecisionData{
		Action:    models.DecisionActionReject,
		DecidedBy: "Jan Kowalski",
	})
	require.NoError(t, err)

	_, err = env.handler.AddAttachment(context.Background(), adminActor(""), reportID, "a.txt", "text/plain", []byte("x"))
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

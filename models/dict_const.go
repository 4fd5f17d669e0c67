package models

type EntryStatus string

const (
	EntryStatusNew      EntryStatus = "NEW"
	EntryStatusIncluded EntryStatus = "INCLUDED"
	EntryStatusCanceled EntryStatus = "CANCELED"
)

type ReportStatus string

const (
	ReportStatusDraft        ReportStatus = "DRAFT"
	ReportStatusSent         ReportStatus = "SENT"
	ReportStatusApproved     ReportStatus = "APPROVED"
	ReportStatusRejected     ReportStatus = "REJECTED"
	ReportStatusCommented    ReportStatus = "COMMENTED"
	ReportStatusApprovedAuto ReportStatus = "APPROVED_AUTO"
)

// IsTerminal reports whether no further decision is accepted.
func (s ReportStatus) IsTerminal() bool {
	switch s {
	case ReportStatusApproved, ReportStatusRejected, ReportStatusCommented, ReportStatusApprovedAuto:
		return true
	}
	return false
}

// IsEditable reports whether report text/recipient/total override may still change.
func (s ReportStatus) IsEditable() bool {
	return s == ReportStatusDraft || s == ReportStatusSent
}

type ActorKind string

const (
	ActorKindAdmin  ActorKind = "admin"
	ActorKindPublic ActorKind = "public"
	ActorKindSystem ActorKind = "system"
)

type AuditAction string

const (
	AuditActionCreated           AuditAction = "created"
	AuditActionUpdated           AuditAction = "updated"
	AuditActionSent              AuditAction = "sent"
	AuditActionApproved          AuditAction = "approved"
	AuditActionRejected          AuditAction = "rejected"
	AuditActionCommented         AuditAction = "commented"
	AuditActionAutoApproved      AuditAction = "auto_approved"
	AuditActionAttachmentAdded   AuditAction = "attachment_added"
	AuditActionAttachmentRemoved AuditAction = "attachment_removed"
)

type DecisionAction string

const (
	DecisionActionApprove DecisionAction = "approve"
	DecisionActionReject  DecisionAction = "reject"
	DecisionActionComment DecisionAction = "comment"
)

func (a DecisionAction) IsValid() bool {
	switch a {
	case DecisionActionApprove, DecisionActionReject, DecisionActionComment:
		return true
	}
	return false
}

// ActorMeta carries request origin data down to the audit trail.
type ActorMeta struct {
	Kind      ActorKind
	// SubjectID - идентификатор сотрудника из токена, только для администратора
	SubjectID string
	Name      string
	IP        string
	UserAgent string
}

func AdminActor(subjectID, name, ip, userAgent string) ActorMeta {
	return ActorMeta{Kind: ActorKindAdmin, SubjectID: subjectID, Name: name, IP: ip, UserAgent: userAgent}
}

func PublicActor(name, ip, userAgent string) ActorMeta {
	return ActorMeta{Kind: ActorKindPublic, Name: name, IP: ip, UserAgent: userAgent}
}

func SystemActor() ActorMeta {
	return ActorMeta{Kind: ActorKindSystem}
}

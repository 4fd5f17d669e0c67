package models

import "errors"

var (
	// ErrNoEligibleItems - none of the requested entries is available for a new report.
	ErrNoEligibleItems = errors.New("нет доступных записей для отчета")
	// ErrInvalidTransition - the requested action is not allowed in the current report status.
	ErrInvalidTransition = errors.New("действие недопустимо в текущем статусе отчета")
	// ErrAlreadyDecided - a decision on this report has already been recorded.
	ErrAlreadyDecided = errors.New("решение по отчету уже принято")
	// ErrReportNotFound - unknown report id or access token.
	ErrReportNotFound = errors.New("отчет не найден")
	// ErrNotificationFailure - email delivery failed; the transition itself is committed.
	ErrNotificationFailure = errors.New("не удалось отправить уведомление")
)

package domain

import "time"

// NotificationSeverity grades how urgent a notification is.
type NotificationSeverity string

const (
	SeverityInfo     NotificationSeverity = "info"
	SeverityWarning  NotificationSeverity = "warning"
	SeverityCritical NotificationSeverity = "critical"
)

// NotificationTarget is a role tag describing who should be informed.
type NotificationTarget string

const (
	TargetManager  NotificationTarget = "gerente"
	TargetClient   NotificationTarget = "cliente"
	TargetProvider NotificationTarget = "proveedor"
	TargetTeam     NotificationTarget = "equipo"
)

// Notification is an append-only record created alongside transitions and warnings.
type Notification struct {
	ID         string
	Title      string
	Message    string
	Severity   NotificationSeverity
	Targets    []NotificationTarget
	EntityType EntityType
	EntityID   string
	CreatedAt  time.Time
}

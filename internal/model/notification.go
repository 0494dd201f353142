package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationMethod is a delivery channel for reminders.
type NotificationMethod string

const (
	MethodEmail NotificationMethod = "email"
	MethodSMS   NotificationMethod = "sms"
	MethodPush  NotificationMethod = "push"
)

// NotificationMethods lists all supported delivery methods.
func NotificationMethods() []NotificationMethod {
	return []NotificationMethod{MethodEmail, MethodSMS, MethodPush}
}

// DefaultReminderDays is the lead time used when a preference does not set
// ReminderDaysBeforeDue.
const DefaultReminderDays = 1

// NotificationPreference configures when and how a user wants reminders.
// One record exists per (user, method) pair. PreferredTime is an "HH:MM"
// time-of-day; when set, reminders only go out within 30 minutes of it.
type NotificationPreference struct {
	ID                    int64              `json:"id"`
	UserID                int64              `json:"user_id"`
	Method                NotificationMethod `json:"method"`
	Enabled               bool               `json:"enabled"`
	PreferredTime         *string            `json:"preferred_time"`
	ReminderDaysBeforeDue *int               `json:"reminder_days_before_due"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// LeadDays returns the configured reminder lead time, defaulting to
// DefaultReminderDays when unset.
func (p NotificationPreference) LeadDays() int {
	if p.ReminderDaysBeforeDue != nil {
		return *p.ReminderDaysBeforeDue
	}
	return DefaultReminderDays
}

// NotificationLog is an append-only audit record of a reminder attempt. The
// scheduler uses it to avoid re-sending the same (user, task) reminder within
// 24 hours.
type NotificationLog struct {
	ID           int64              `json:"id"`
	UserID       int64              `json:"user_id"`
	TaskID       uuid.UUID          `json:"task_id"`
	Method       NotificationMethod `json:"method"`
	SentAt       time.Time          `json:"sent_at"`
	Success      bool               `json:"success"`
	ErrorMessage *string            `json:"error_message"`
	Recipient    *string            `json:"recipient"`
}

// NewSuccessLog builds a log entry for a delivered reminder.
func NewSuccessLog(userID int64, taskID uuid.UUID, method NotificationMethod, recipient string, sentAt time.Time) NotificationLog {
	return NotificationLog{
		UserID:    userID,
		TaskID:    taskID,
		Method:    method,
		SentAt:    sentAt,
		Success:   true,
		Recipient: &recipient,
	}
}

// NewFailureLog builds a log entry for a failed reminder attempt.
func NewFailureLog(userID int64, taskID uuid.UUID, method NotificationMethod, recipient, errMsg string, sentAt time.Time) NotificationLog {
	return NotificationLog{
		UserID:       userID,
		TaskID:       taskID,
		Method:       method,
		SentAt:       sentAt,
		Success:      false,
		ErrorMessage: &errMsg,
		Recipient:    &recipient,
	}
}

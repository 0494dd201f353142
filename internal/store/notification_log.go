package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/hearth/internal/model"
)

type NotificationLogStore struct {
	db *sql.DB
}

func NewNotificationLogStore(db *sql.DB) *NotificationLogStore {
	return &NotificationLogStore{db: db}
}

func (s *NotificationLogStore) Insert(entry model.NotificationLog) error {
	var successInt int
	if entry.Success {
		successInt = 1
	}
	var errMsg, recipient sql.NullString
	if entry.ErrorMessage != nil {
		errMsg = sql.NullString{String: *entry.ErrorMessage, Valid: true}
	}
	if entry.Recipient != nil {
		recipient = sql.NullString{String: *entry.Recipient, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO notification_logs (user_id, task_id, method, sent_at, success, error_message, recipient)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID, entry.TaskID.String(), string(entry.Method), entry.SentAt.UTC(), successInt, errMsg, recipient,
	)
	if err != nil {
		return fmt.Errorf("insert notification log: %w", err)
	}
	return nil
}

// WasSentSince reports whether any reminder attempt for the (user, task) pair
// was logged at or after the given time. Failed attempts count too: a send
// that failed is not retried until the dedup window passes.
func (s *NotificationLogStore) WasSentSince(userID int64, taskID uuid.UUID, since time.Time) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM notification_logs WHERE user_id = ? AND task_id = ? AND sent_at >= ?`,
		userID, taskID.String(), since.UTC(),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check notification log: %w", err)
	}
	return count > 0, nil
}

// Cleanup deletes log entries older than the given time.
func (s *NotificationLogStore) Cleanup(before time.Time) error {
	_, err := s.db.Exec(`DELETE FROM notification_logs WHERE sent_at < ?`, before.UTC())
	if err != nil {
		return fmt.Errorf("cleanup notification logs: %w", err)
	}
	return nil
}

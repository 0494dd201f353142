package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/hearth/internal/model"
)

type PreferenceStore struct {
	db *sql.DB
}

func NewPreferenceStore(db *sql.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

const preferenceCols = `id, user_id, method, enabled, preferred_time, reminder_days_before_due, created_at, updated_at`

func scanPreference(scanner interface{ Scan(...any) error }) (*model.NotificationPreference, error) {
	var p model.NotificationPreference
	var method string
	var enabledInt int
	var preferredTime sql.NullString
	var reminderDays sql.NullInt64

	err := scanner.Scan(&p.ID, &p.UserID, &method, &enabledInt, &preferredTime, &reminderDays, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Method = model.NotificationMethod(method)
	p.Enabled = enabledInt != 0
	if preferredTime.Valid {
		p.PreferredTime = &preferredTime.String
	}
	if reminderDays.Valid {
		days := int(reminderDays.Int64)
		p.ReminderDaysBeforeDue = &days
	}
	return &p, nil
}

// Upsert creates or updates the preference for a (user, method) pair.
func (s *PreferenceStore) Upsert(userID int64, method model.NotificationMethod, enabled bool, preferredTime *string, reminderDays *int) (*model.NotificationPreference, error) {
	var enabledInt int
	if enabled {
		enabledInt = 1
	}
	var pt sql.NullString
	if preferredTime != nil {
		pt = sql.NullString{String: *preferredTime, Valid: true}
	}
	var rd sql.NullInt64
	if reminderDays != nil {
		rd = sql.NullInt64{Int64: int64(*reminderDays), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO notification_preferences (user_id, method, enabled, preferred_time, reminder_days_before_due)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, method) DO UPDATE SET
		   enabled = excluded.enabled,
		   preferred_time = excluded.preferred_time,
		   reminder_days_before_due = excluded.reminder_days_before_due,
		   updated_at = CURRENT_TIMESTAMP`,
		userID, string(method), enabledInt, pt, rd,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert notification preference: %w", err)
	}
	return s.Get(userID, method)
}

func (s *PreferenceStore) Get(userID int64, method model.NotificationMethod) (*model.NotificationPreference, error) {
	row := s.db.QueryRow(
		`SELECT `+preferenceCols+` FROM notification_preferences WHERE user_id = ? AND method = ?`,
		userID, string(method),
	)
	p, err := scanPreference(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification preference: %w", err)
	}
	return p, nil
}

func (s *PreferenceStore) ListForUser(userID int64) ([]model.NotificationPreference, error) {
	rows, err := s.db.Query(
		`SELECT `+preferenceCols+` FROM notification_preferences WHERE user_id = ? ORDER BY method ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notification preferences: %w", err)
	}
	defer rows.Close()
	return collectPreferences(rows)
}

// ListEnabledByMethod returns every enabled preference for a delivery method.
// The reminder scheduler iterates this list once per pass.
func (s *PreferenceStore) ListEnabledByMethod(method model.NotificationMethod) ([]model.NotificationPreference, error) {
	rows, err := s.db.Query(
		`SELECT `+preferenceCols+` FROM notification_preferences WHERE method = ? AND enabled = 1 ORDER BY user_id ASC`,
		string(method),
	)
	if err != nil {
		return nil, fmt.Errorf("list enabled preferences: %w", err)
	}
	defer rows.Close()
	return collectPreferences(rows)
}

func collectPreferences(rows *sql.Rows) ([]model.NotificationPreference, error) {
	var prefs []model.NotificationPreference
	for rows.Next() {
		p, err := scanPreference(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification preference: %w", err)
		}
		prefs = append(prefs, *p)
	}
	return prefs, rows.Err()
}

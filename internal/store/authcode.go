package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/hearth/internal/model"
)

type AuthCodeStore struct {
	db *sql.DB
}

func NewAuthCodeStore(db *sql.DB) *AuthCodeStore {
	return &AuthCodeStore{db: db}
}

const authCodeCols = `id, email, code_hash, attempts, used, expires_at, created_at`

func scanAuthCode(scanner interface{ Scan(...any) error }) (*model.AuthCode, error) {
	var c model.AuthCode
	var usedInt int
	err := scanner.Scan(&c.ID, &c.Email, &c.CodeHash, &c.Attempts, &usedInt, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Used = usedInt != 0
	return &c, nil
}

func (s *AuthCodeStore) Create(email, codeHash string, expiresAt time.Time) (*model.AuthCode, error) {
	result, err := s.db.Exec(
		`INSERT INTO auth_codes (email, code_hash, expires_at) VALUES (?, ?, ?)`,
		email, codeHash, expiresAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert auth code: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+authCodeCols+` FROM auth_codes WHERE id = ?`, id)
	return scanAuthCode(row)
}

// GetActiveByEmail returns the most recent unused, unexpired code for an
// email address, or nil if none exists.
func (s *AuthCodeStore) GetActiveByEmail(email string, now time.Time) (*model.AuthCode, error) {
	row := s.db.QueryRow(
		`SELECT `+authCodeCols+` FROM auth_codes
		 WHERE email = ? AND used = 0 AND expires_at > ?
		 ORDER BY created_at DESC LIMIT 1`,
		email, now.UTC(),
	)
	c, err := scanAuthCode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active auth code: %w", err)
	}
	return c, nil
}

func (s *AuthCodeStore) IncrementAttempts(id int64) error {
	_, err := s.db.Exec(`UPDATE auth_codes SET attempts = attempts + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("increment auth code attempts: %w", err)
	}
	return nil
}

func (s *AuthCodeStore) MarkUsed(id int64) error {
	_, err := s.db.Exec(`UPDATE auth_codes SET used = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark auth code used: %w", err)
	}
	return nil
}

// DeleteExpired removes codes whose expiry is before the given time.
func (s *AuthCodeStore) DeleteExpired(before time.Time) error {
	_, err := s.db.Exec(`DELETE FROM auth_codes WHERE expires_at < ?`, before.UTC())
	if err != nil {
		return fmt.Errorf("delete expired auth codes: %w", err)
	}
	return nil
}

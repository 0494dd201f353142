package handler

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/hearth/internal/email"
	"github.com/dukerupert/hearth/internal/store"
)

const (
	sessionCookieName = "hearth_session"
	sessionTTL        = 90 * 24 * time.Hour
	authCodeTTL       = 10 * time.Minute
	maxCodeAttempts   = 5
)

type AuthHandler struct {
	users       *store.UserStore
	sessions    *store.SessionStore
	authCodes   *store.AuthCodeStore
	emailClient *email.Client
	logger      *slog.Logger
}

func NewAuthHandler(us *store.UserStore, ss *store.SessionStore, acs *store.AuthCodeStore, ec *email.Client, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:       us,
		sessions:    ss,
		authCodes:   acs,
		emailClient: ec,
		logger:      logger,
	}
}

type requestCodeRequest struct {
	Email string `json:"email"`
}

// RequestCode emails a one-time sign-in code, creating the user on first
// contact. The response is identical whether or not the address was known,
// to prevent enumeration.
func (h *AuthHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req requestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	if emailAddr == "" || !strings.Contains(emailAddr, "@") {
		writeError(w, http.StatusBadRequest, "valid email is required")
		return
	}

	user, err := h.users.GetByEmail(emailAddr)
	if err != nil {
		h.logger.Error("lookup user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		if _, err := h.users.Create(emailAddr); err != nil {
			h.logger.Error("create user", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	code, err := generateCode()
	if err != nil {
		h.logger.Error("generate code", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash code", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if _, err := h.authCodes.Create(emailAddr, string(hash), time.Now().UTC().Add(authCodeTTL)); err != nil {
		h.logger.Error("store auth code", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.emailClient.SendAuthCode(emailAddr, code); err != nil {
		// Don't leak delivery failures to the caller either
		h.logger.Error("send auth code", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "code sent"})
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Verify exchanges a valid code for a session cookie.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.TrimSpace(req.Code)
	if emailAddr == "" || code == "" {
		writeError(w, http.StatusBadRequest, "email and code are required")
		return
	}

	ac, err := h.authCodes.GetActiveByEmail(emailAddr, time.Now().UTC())
	if err != nil {
		h.logger.Error("lookup auth code", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if ac == nil || ac.Attempts >= maxCodeAttempts {
		writeError(w, http.StatusUnauthorized, "invalid or expired code")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ac.CodeHash), []byte(code)); err != nil {
		if err := h.authCodes.IncrementAttempts(ac.ID); err != nil {
			h.logger.Error("increment attempts", "error", err)
		}
		writeError(w, http.StatusUnauthorized, "invalid or expired code")
		return
	}

	if err := h.authCodes.MarkUsed(ac.ID); err != nil {
		h.logger.Error("mark code used", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := h.users.GetByEmail(emailAddr)
	if err != nil || user == nil {
		h.logger.Error("lookup user after verify", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := generateToken()
	if err != nil {
		h.logger.Error("generate session token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	sess, err := h.sessions.Create(user.ID, token, time.Now().UTC().Add(sessionTTL))
	if err != nil {
		h.logger.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	writeJSON(w, http.StatusOK, user)
}

// Logout deletes the session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.DeleteByToken(cookie.Value); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// generateCode returns a 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return fmt.Sprintf("%x", b), nil
}

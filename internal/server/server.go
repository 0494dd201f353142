// Package server wires stores, domain services, and handlers into the HTTP
// API.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/hearth/internal/email"
	"github.com/dukerupert/hearth/internal/handler"
	"github.com/dukerupert/hearth/internal/maintenance"
	"github.com/dukerupert/hearth/internal/middleware"
	"github.com/dukerupert/hearth/internal/reminder"
	"github.com/dukerupert/hearth/internal/store"
	ws "github.com/dukerupert/hearth/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authH         *handler.AuthHandler
	houseH        *handler.HouseHandler
	taskH         *handler.TaskHandler
	preferenceH   *handler.PreferenceHandler
	catalogH      *handler.CatalogHandler
	sessionStore  *store.SessionStore
	authCodeStore *store.AuthCodeStore
	logStore      *store.NotificationLogStore
	rateLimiter   *middleware.RateLimiter
	scheduler     *reminder.Scheduler
	logger        *slog.Logger
}

type Config struct {
	ReminderInterval     time.Duration
	ReminderStartupDelay time.Duration
}

func New(db *sql.DB, emailClient *email.Client, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	authCodeStore := store.NewAuthCodeStore(db)
	houseStore := store.NewHouseStore(db)
	taskStore := store.NewTaskStore(db)
	preferenceStore := store.NewPreferenceStore(db)
	logStore := store.NewNotificationLogStore(db)

	synchronizer := maintenance.NewSynchronizer(houseStore, taskStore, logger.With("component", "sync"))
	evaluator := reminder.NewEvaluator(houseStore, taskStore)
	notifier := reminder.NewEmailNotifier(emailClient)
	scheduler := reminder.NewScheduler(
		evaluator, userStore, preferenceStore, logStore, notifier,
		cfg.ReminderInterval, cfg.ReminderStartupDelay,
		logger.With("component", "reminder"),
	)

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(userStore, sessionStore, authCodeStore, emailClient, logger.With("component", "auth")),
		houseH:        handler.NewHouseHandler(houseStore, synchronizer, hub, logger.With("component", "house")),
		taskH:         handler.NewTaskHandler(taskStore, houseStore, hub, logger.With("component", "task")),
		preferenceH:   handler.NewPreferenceHandler(preferenceStore, logger.With("component", "preference")),
		catalogH:      handler.NewCatalogHandler(),
		sessionStore:  sessionStore,
		authCodeStore: authCodeStore,
		logStore:      logStore,
		rateLimiter:   middleware.NewRateLimiter(),
		scheduler:     scheduler,
		logger:        logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// AuthCodeStore returns the auth code store for cleanup tasks.
func (s *Server) AuthCodeStore() *store.AuthCodeStore {
	return s.authCodeStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Scheduler returns the reminder scheduler so main can start and stop it.
func (s *Server) Scheduler() *reminder.Scheduler {
	return s.scheduler
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("POST /api/auth/request-code", s.rateLimitedHandler(s.authH.RequestCode))
	outerMux.HandleFunc("POST /api/auth/verify", s.rateLimitedHandler(s.authH.Verify))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)

	// Catalog
	mux.HandleFunc("GET /api/catalog/item-types", s.catalogH.ListItemTypes)
	mux.HandleFunc("GET /api/catalog/items", s.catalogH.ListItems)

	// Houses and configuration
	mux.HandleFunc("POST /api/houses", s.houseH.Create)
	mux.HandleFunc("GET /api/houses", s.houseH.List)
	mux.HandleFunc("GET /api/houses/{id}", s.houseH.Get)
	mux.HandleFunc("DELETE /api/houses/{id}", s.houseH.Delete)
	mux.HandleFunc("GET /api/houses/{id}/configuration", s.houseH.GetConfiguration)
	mux.HandleFunc("PUT /api/houses/{id}/configuration", s.houseH.SaveConfiguration)

	// Tasks
	mux.HandleFunc("GET /api/houses/{id}/tasks", s.taskH.List)
	mux.HandleFunc("GET /api/houses/{id}/tasks/overdue", s.taskH.ListOverdue)
	mux.HandleFunc("GET /api/houses/{id}/tasks/next", s.taskH.NextDue)
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.taskH.Complete)

	// Notification preferences
	mux.HandleFunc("GET /api/preferences", s.preferenceH.List)
	mux.HandleFunc("PUT /api/preferences", s.preferenceH.Update)

	// Real-time updates
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}

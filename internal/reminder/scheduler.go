package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/hearth/internal/model"
	"github.com/dukerupert/hearth/internal/store"
)

const (
	// dedupWindow suppresses repeat reminders for the same (user, task) pair.
	dedupWindow = 24 * time.Hour
	// logRetention bounds the notification log; dedup only looks back a day.
	logRetention = 30 * 24 * time.Hour
)

// Scheduler periodically evaluates every enabled preference and delivers
// reminders for tasks entering their due window.
type Scheduler struct {
	mu           sync.RWMutex
	evaluator    *Evaluator
	users        *store.UserStore
	prefs        *store.PreferenceStore
	logs         *store.NotificationLogStore
	notifier     Notifier
	interval     time.Duration
	startupDelay time.Duration
	logger       *slog.Logger
	cancel       context.CancelFunc
	done         chan struct{}
}

func NewScheduler(evaluator *Evaluator, users *store.UserStore, prefs *store.PreferenceStore, logs *store.NotificationLogStore, notifier Notifier, interval, startupDelay time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		evaluator:    evaluator,
		users:        users,
		prefs:        prefs,
		logs:         logs,
		notifier:     notifier,
		interval:     interval,
		startupDelay: startupDelay,
		logger:       logger,
	}
}

// Start begins the scheduler loop. The first pass runs after the startup
// delay so the server finishes booting before any emails go out.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.startupDelay):
		}
		s.tick(time.Now())

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick(time.Now())
			}
		}
	}()
}

// Stop cancels the loop and waits for the current pass to finish.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// tick runs one reminder pass. Failures for one user never block the rest.
func (s *Scheduler) tick(now time.Time) {
	now = now.UTC()

	prefs, err := s.prefs.ListEnabledByMethod(model.MethodEmail)
	if err != nil {
		s.logger.Error("list enabled preferences", "error", err)
		return
	}

	for _, pref := range prefs {
		if err := s.processUser(now, pref); err != nil {
			s.logger.Error("process reminders", "user_id", pref.UserID, "error", err)
		}
	}

	if err := s.logs.Cleanup(now.Add(-logRetention)); err != nil {
		s.logger.Error("cleanup notification logs", "error", err)
	}
}

func (s *Scheduler) processUser(now time.Time, pref model.NotificationPreference) error {
	tasks, err := s.evaluator.TasksDueForReminder(now, pref)
	if err != nil {
		return fmt.Errorf("evaluate tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil
	}

	user, err := s.users.GetByID(pref.UserID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil
	}

	for _, task := range tasks {
		sent, err := s.logs.WasSentSince(pref.UserID, task.ID, now.Add(-dedupWindow))
		if err != nil {
			return fmt.Errorf("check dedup: %w", err)
		}
		if sent {
			continue
		}

		s.deliver(now, *user, task)
	}
	return nil
}

// deliver sends one reminder and records the attempt, success or not, so the
// dedup window applies either way.
func (s *Scheduler) deliver(now time.Time, user model.User, task model.ActiveTask) {
	err := s.notifier.SendTaskReminder(user, task, task.DaysUntilDue(now))

	var entry model.NotificationLog
	if err != nil {
		s.logger.Error("send reminder", "user_id", user.ID, "task_id", task.ID, "error", err)
		entry = model.NewFailureLog(user.ID, task.ID, model.MethodEmail, user.Email, err.Error(), now)
	} else {
		s.logger.Info("sent reminder", "user_id", user.ID, "task_id", task.ID, "item", task.ItemName)
		entry = model.NewSuccessLog(user.ID, task.ID, model.MethodEmail, user.Email, now)
	}

	if err := s.logs.Insert(entry); err != nil {
		s.logger.Error("record notification", "user_id", user.ID, "task_id", task.ID, "error", err)
	}
}

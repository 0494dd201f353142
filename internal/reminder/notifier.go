package reminder

import (
	"github.com/dukerupert/hearth/internal/catalog"
	"github.com/dukerupert/hearth/internal/email"
	"github.com/dukerupert/hearth/internal/model"
)

// Notifier delivers a single task reminder to a user.
type Notifier interface {
	SendTaskReminder(user model.User, task model.ActiveTask, daysUntil int) error
}

// EmailNotifier delivers reminders through the transactional email client.
type EmailNotifier struct {
	client *email.Client
}

func NewEmailNotifier(client *email.Client) *EmailNotifier {
	return &EmailNotifier{client: client}
}

func (n *EmailNotifier) SendTaskReminder(user model.User, task model.ActiveTask, daysUntil int) error {
	taskName := catalog.TemplateName(task.ItemType, task.TemplateID)
	return n.client.SendTaskReminder(user.Email, taskName, task.ItemName, task.NextDueDate, daysUntil)
}

// Package email sends transactional mail through the Postmark API.
package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.postmarkapp.com/email"

type Client struct {
	serverToken string
	fromEmail   string
	apiURL      string
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithAPIURL overrides the Postmark endpoint, used by tests.
func WithAPIURL(url string) Option {
	return func(cl *Client) {
		cl.apiURL = url
	}
}

func NewClient(serverToken, fromEmail string, opts ...Option) *Client {
	c := &Client{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		apiURL:      defaultAPIURL,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set.
func (c *Client) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// SendAuthCode emails a one-time login code.
func (c *Client) SendAuthCode(toEmail, code string) error {
	textBody := fmt.Sprintf("Your Hearth sign-in code is:\n\n%s\n\nThis code expires in 10 minutes.", code)
	htmlBody := fmt.Sprintf(
		`<p>Your Hearth sign-in code is:</p><p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p><p>This code expires in 10 minutes.</p>`,
		code,
	)
	return c.send(postmarkEmail{
		From:     c.fromEmail,
		To:       toEmail,
		Subject:  "Your Hearth sign-in code",
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
}

// SendTaskReminder emails a reminder that a maintenance task is coming due.
func (c *Client) SendTaskReminder(toEmail, taskName, itemName string, dueDate time.Time, daysUntil int) error {
	var when string
	switch {
	case daysUntil <= 0:
		when = "today"
	case daysUntil == 1:
		when = "tomorrow"
	default:
		when = fmt.Sprintf("in %d days", daysUntil)
	}

	subject := fmt.Sprintf("Reminder: %s (%s) due %s", taskName, itemName, when)
	textBody := fmt.Sprintf(
		"Maintenance coming up:\n\n%s — %s\nDue: %s (%s)\n\nMark it complete in Hearth once it's done.",
		taskName, itemName, dueDate.Format("Monday, January 2"), when,
	)
	htmlBody := fmt.Sprintf(
		`<p>Maintenance coming up:</p><p><strong>%s</strong> — %s<br>Due: %s (%s)</p><p>Mark it complete in Hearth once it's done.</p>`,
		taskName, itemName, dueDate.Format("Monday, January 2"), when,
	)

	return c.send(postmarkEmail{
		From:     c.fromEmail,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
}

func (c *Client) send(payload postmarkEmail) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing server token")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}

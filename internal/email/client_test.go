package email

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSendAuthCode(t *testing.T) {
	var got postmarkEmail
	var gotToken string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Postmark-Server-Token")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient("test-token", "hearth@example.com", WithAPIURL(srv.URL))

	if err := client.SendAuthCode("user@example.com", "123456"); err != nil {
		t.Fatalf("send auth code: %v", err)
	}

	if gotToken != "test-token" {
		t.Errorf("server token = %q", gotToken)
	}
	if got.To != "user@example.com" {
		t.Errorf("to = %q", got.To)
	}
	if !strings.Contains(got.TextBody, "123456") {
		t.Errorf("code missing from body: %q", got.TextBody)
	}
}

func TestSendTaskReminder(t *testing.T) {
	var got postmarkEmail

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient("test-token", "hearth@example.com", WithAPIURL(srv.URL))

	due := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	if err := client.SendTaskReminder("user@example.com", "Clean Filter", "Dishwasher", due, 1); err != nil {
		t.Fatalf("send reminder: %v", err)
	}

	if !strings.Contains(got.Subject, "Clean Filter") || !strings.Contains(got.Subject, "tomorrow") {
		t.Errorf("subject = %q", got.Subject)
	}
	if !strings.Contains(got.TextBody, "Dishwasher") {
		t.Errorf("item missing from body: %q", got.TextBody)
	}
}

func TestSendFailsWhenUnconfigured(t *testing.T) {
	client := NewClient("", "hearth@example.com")

	if client.Configured() {
		t.Error("client with empty token reports configured")
	}
	if err := client.SendAuthCode("user@example.com", "123456"); err == nil {
		t.Error("expected error from unconfigured client")
	}
}

func TestSendSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewClient("test-token", "hearth@example.com", WithAPIURL(srv.URL))
	if err := client.SendAuthCode("user@example.com", "123456"); err == nil {
		t.Error("expected error for 422 response")
	}
}

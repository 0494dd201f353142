package auth

import (
	"context"
	"testing"
)

func TestIdentityRoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{UserID: 7, SessionID: 3})

	id, ok := FromContext(ctx)
	if !ok {
		t.Fatal("identity not found")
	}
	if id.UserID != 7 || id.SessionID != 3 {
		t.Errorf("identity = %+v", id)
	}
	if got := UserID(ctx); got != 7 {
		t.Errorf("UserID = %d, want 7", got)
	}
}

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := FromContext(ctx); ok {
		t.Error("expected no identity")
	}
	if got := UserID(ctx); got != 0 {
		t.Errorf("UserID = %d, want 0", got)
	}
}

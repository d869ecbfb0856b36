package infra

import (
	"context"
	"testing"
)

func TestClaimString(t *testing.T) {
	claims := map[string]interface{}{"email": "chef@example.com", "name": 42}
	if got := claimString(claims, "email"); got != "chef@example.com" {
		t.Errorf("email = %q", got)
	}
	if got := claimString(claims, "name"); got != "" {
		t.Errorf("non-string claim should be empty, got %q", got)
	}
	if got := claimString(nil, "email"); got != "" {
		t.Errorf("nil claims should be empty, got %q", got)
	}
}

func TestNewFirebaseVerifier_RequiresProject(t *testing.T) {
	if _, err := NewFirebaseVerifier(context.Background(), "", ""); err == nil {
		t.Fatal("expected error without project id")
	}
}

package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/resolution-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	token, exp, err := tm.GenerateToken("agent-1", domain.AgentTypeHuman)
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(exp) <= 0 {
		t.Error("expiry must be in the future")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.AgentID != "agent-1" {
		t.Errorf("agent id = %q", claims.AgentID)
	}
	if claims.AgentType != domain.AgentTypeHuman {
		t.Errorf("agent type = %q", claims.AgentType)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 30).GenerateToken("agent-1", domain.AgentTypeHuman)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenManager("secret-b", 30).ParseToken(token); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := NewTokenManager("secret", 30).ParseToken("not.a.token"); err == nil {
		t.Error("garbage token must be rejected")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := ComparePassword(hash, "hunter2"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := ComparePassword(hash, "hunter3"); err == nil {
		t.Error("wrong password accepted")
	}
}

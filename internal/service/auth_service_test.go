package service

import (
	"testing"
	"time"

	"github.com/examhall/examhall-backend/internal/config"
	"github.com/google/uuid"
)

func testAuthService() *AuthService {
	return NewAuthService(&config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4,
	})
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := testAuthService()

	hash, err := svc.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() = %v", err)
	}
	if err := svc.CheckPassword(hash, "password123"); err != nil {
		t.Errorf("CheckPassword(correct) = %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err == nil {
		t.Error("CheckPassword(wrong) succeeded")
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	svc := testAuthService()

	token, err := svc.GenerateAdminToken(42)
	if err != nil {
		t.Fatalf("GenerateAdminToken() = %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() = %v", err)
	}
	if claims.TokenType != TokenTypeAdmin {
		t.Errorf("TokenType = %s, want admin", claims.TokenType)
	}
	if claims.AdminID != 42 {
		t.Errorf("AdminID = %d, want 42", claims.AdminID)
	}
	if claims.SessionID != "" {
		t.Errorf("SessionID = %q, want empty", claims.SessionID)
	}
}

func TestCandidateTokenRoundTrip(t *testing.T) {
	svc := testAuthService()
	sessionID := uuid.New()

	token, err := svc.GenerateCandidateToken(sessionID, 60)
	if err != nil {
		t.Fatalf("GenerateCandidateToken() = %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() = %v", err)
	}
	if claims.TokenType != TokenTypeCandidate {
		t.Errorf("TokenType = %s, want candidate", claims.TokenType)
	}
	if claims.SessionID != sessionID.String() {
		t.Errorf("SessionID = %s, want %s", claims.SessionID, sessionID)
	}

	// Token must outlive the exam window so the candidate can read the
	// terminal state after expiry.
	exp := claims.ExpiresAt.Time
	if exp.Before(time.Now().Add(60 * time.Minute)) {
		t.Errorf("token expires at %s, inside the exam window", exp)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := testAuthService()

	token, err := svc.GenerateAdminToken(1)
	if err != nil {
		t.Fatalf("GenerateAdminToken() = %v", err)
	}

	other := NewAuthService(&config.Config{JWTSecret: "different-secret", JWTExpiry: time.Hour})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("ValidateToken() accepted a token signed with another secret")
	}

	if _, err := svc.ValidateToken(token + "x"); err == nil {
		t.Fatal("ValidateToken() accepted a corrupted token")
	}
}

package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/spendlens/backend/internal/domain/error"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(context.Background(), userID, "sam@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := svc.ValidateAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "sam@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
}

func TestTokenServiceRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken(context.Background(), "not-a-token"); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour)
		token, err := other.GenerateAccessToken(context.Background(), uuid.New(), "x@y.io")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := svc.ValidateAccessToken(context.Background(), token); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenService("test-secret", -time.Minute)
		token, err := expired.GenerateAccessToken(context.Background(), uuid.New(), "x@y.io")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := svc.ValidateAccessToken(context.Background(), token); !errors.Is(err, domainerror.ErrExpiredToken) {
			t.Errorf("error = %v, want ErrExpiredToken", err)
		}
	})
}

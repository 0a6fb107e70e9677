package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coursiva/coursiva-backend/internal/logger"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParseUserID(t *testing.T) {
	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	am := NewAuthMiddleware(log, testSecret)
	userID := uuid.New()

	t.Run("valid_token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		got, err := am.parseUserID(token)
		if err != nil {
			t.Fatalf("parseUserID: %v", err)
		}
		if got != userID {
			t.Fatalf("user id=%s, want %s", got, userID)
		}
	})

	t.Run("wrong_secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{"sub": userID.String()})
		if _, err := am.parseUserID(token); err == nil {
			t.Fatalf("expected rejection for wrong signing secret")
		}
	})

	t.Run("expired_token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		if _, err := am.parseUserID(token); err == nil {
			t.Fatalf("expected rejection for expired token")
		}
	})

	t.Run("missing_subject", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
		if _, err := am.parseUserID(token); err == nil {
			t.Fatalf("expected rejection without subject claim")
		}
	})

	t.Run("non_uuid_subject", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"sub": "not-a-uuid"})
		if _, err := am.parseUserID(token); err == nil {
			t.Fatalf("expected rejection for malformed subject")
		}
	})
}

package security

import (
	"testing"
	"time"

	"stepik_backend/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	Configure([]byte("test-secret"), time.Hour)

	tokenString, err := GenerateToken("user-1", model.RoleMentor)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	token, err := jwtauth.VerifyToken(TokenAuth, tokenString)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	claims, err := token.AsMap(t.Context())
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}

	userID, err := GetUserIDFromClaims(claims)
	if err != nil || userID != "user-1" {
		t.Fatalf("user id: got=%q err=%v", userID, err)
	}
	if claims["role"] != string(model.RoleMentor) {
		t.Fatalf("role claim: got=%v", claims["role"])
	}
}

func TestGetUserIDFromClaimsRejectsMissingID(t *testing.T) {
	if _, err := GetUserIDFromClaims(map[string]interface{}{"role": "mentor"}); err == nil {
		t.Fatal("expected missing user_id to be rejected")
	}
	if _, err := GetUserIDFromClaims(map[string]interface{}{"user_id": 42}); err == nil {
		t.Fatal("expected non-string user_id to be rejected")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Fatal("expected matching password to verify")
	}
	if CheckPasswordHash("other", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

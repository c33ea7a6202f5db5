package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, subject string, expires time.Time, secret []byte) string {
	t.Helper()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParseToken_Valid(t *testing.T) {
	tokenString := signToken(t, "user-1", time.Now().Add(time.Hour), testSecret)

	claims, err := ParseToken(tokenString, testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
}

func TestParseToken_Expired(t *testing.T) {
	tokenString := signToken(t, "user-1", time.Now().Add(-time.Hour), testSecret)

	if _, err := ParseToken(tokenString, testSecret); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	tokenString := signToken(t, "user-1", time.Now().Add(time.Hour), []byte("other-secret"))

	if _, err := ParseToken(tokenString, testSecret); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestParseToken_EmptySubject(t *testing.T) {
	tokenString := signToken(t, "", time.Now().Add(time.Hour), testSecret)

	if _, err := ParseToken(tokenString, testSecret); err == nil {
		t.Fatal("expected token without a subject to be rejected")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not.a.token", testSecret); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}

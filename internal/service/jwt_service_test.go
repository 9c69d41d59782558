package service

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"palabra-api/internal/domain"
)

func testUser() domain.User {
	return domain.User{
		ID:        7,
		Username:  "ana",
		Email:     "ana@x.com",
		CreatedAt: time.Now().UTC(),
	}
}

func TestJWTService_IssueVerify(t *testing.T) {
	svc := NewJWTService("secret", 0)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "ana" || claims.Email != "ana@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// Expiración 24h por defecto.
	exp := claims.ExpiresAt.Time
	if exp.Before(time.Now().UTC().Add(23*time.Hour)) || exp.After(time.Now().UTC().Add(25*time.Hour)) {
		t.Fatalf("expected expiry around 24h, got %v", exp)
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", 0)
	now := time.Now().UTC()
	claims := Claims{
		UserID:   7,
		Username: "ana",
		Email:    "ana@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "palabra-api",
			Subject:   strconv.FormatInt(7, 10),
			IssuedAt:  jwt.NewNumericDate(now.Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("secret", 0)
	otro := NewJWTService("otro-secreto", 0)

	token, err := otro.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	svc := NewJWTService("secret", 0)
	now := time.Now().UTC()
	claims := Claims{
		UserID:   7,
		Username: "ana",
		Email:    "ana@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "otro-servicio",
			Subject:   strconv.FormatInt(7, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong issuer, got %v", err)
	}
}

func TestJWTService_RejectsMalformedToken(t *testing.T) {
	svc := NewJWTService("secret", 0)

	for _, token := range []string{"", "   ", "no.es.jwt", "garbage"} {
		if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", token, err)
		}
	}
}

func TestJWTService_RejectsEmptySecret(t *testing.T) {
	svc := NewJWTService("", 0)

	if _, err := svc.Issue(testUser()); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid on empty secret, got %v", err)
	}
}

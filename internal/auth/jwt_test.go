package auth

import (
	"testing"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken("admin", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateToken("admin", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := NewJWTService("secret-b").ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestJWT_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret")
	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation to fail for malformed input")
	}
}

func TestPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword("hunter2", hash) {
		t.Error("expected the correct password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("expected a wrong password to fail")
	}
}

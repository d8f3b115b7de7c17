package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
    const secret = "unit-test-secret"
    at, err := NewAccessToken(secret, 42, "CUSTOMER", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    if time.Until(at.Exp) <= 0 {
        t.Fatal("access token already expired at issue")
    }
    tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
            t.Fatalf("unexpected signing method %v", tok.Method)
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        t.Fatalf("parse issued token: %v valid=%v", err, tok.Valid)
    }
    claims := tok.Claims.(jwt.MapClaims)
    if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
        t.Errorf("sub claim = %v, want 42", claims["sub"])
    }
    if role, _ := claims["role"].(string); role != "CUSTOMER" {
        t.Errorf("role claim = %v, want CUSTOMER", claims["role"])
    }
}

func TestRefreshTokenHashStability(t *testing.T) {
    rt, err := NewRefreshToken(7)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if len(rt.Raw) != 96 {
        t.Fatalf("raw refresh token length = %d, want 96 hex chars", len(rt.Raw))
    }
    if HashRefreshRaw(rt.Raw) != HashRefreshRaw(rt.Raw) {
        t.Fatal("hash must be deterministic")
    }
    other, _ := NewRefreshToken(7)
    if HashRefreshRaw(rt.Raw) == HashRefreshRaw(other.Raw) {
        t.Fatal("distinct tokens hashed equal")
    }
}

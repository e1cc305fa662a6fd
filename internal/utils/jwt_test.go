package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("bookclub-test", 42, time.Hour, "secret-key")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.UserID != 42 {
		t.Errorf("expected UserID 42, got %d", token.UserID)
	}

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != "bookclub-test" {
		t.Errorf("expected issuer bookclub-test, got %s", claims.Issuer)
	}
	if claims.Subject != "42" {
		t.Errorf("expected subject '42', got %s", claims.Subject)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, "key"},
		{"zero duration", "iss", 0, "key"},
		{"empty key", "iss", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 1, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	generated, err := GenerateJWTToken("bookclub-test", 42, 5*time.Minute, "secret-key")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, "secret-key", "bookclub-test")
	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsed.UserID != 42 {
		t.Errorf("expected UserID 42, got %d", parsed.UserID)
	}
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	generated, _ := GenerateJWTToken("bookclub-test", 42, 5*time.Minute, "secret-key")

	if _, err := ValidateAndParseJWTToken(generated.SignedString, "other-key", "bookclub-test"); err == nil {
		t.Error("expected error for wrong sign key, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	generated, _ := GenerateJWTToken("someone-else", 42, 5*time.Minute, "secret-key")

	if _, err := ValidateAndParseJWTToken(generated.SignedString, "secret-key", "bookclub-test"); err == nil {
		t.Error("expected error for wrong issuer, got nil")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	generated, _ := GenerateJWTToken("bookclub-test", 42, -time.Minute, "secret-key")

	if _, err := ValidateAndParseJWTToken(generated.SignedString, "secret-key", "bookclub-test"); err == nil {
		t.Error("expected error for expired token, got nil")
	}
}

func TestValidateAndParseJWTToken_Garbage(t *testing.T) {
	if _, err := ValidateAndParseJWTToken("not.a.token", "secret-key", "bookclub-test"); err == nil {
		t.Error("expected error for malformed token, got nil")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"padded", "  Bearer abc.def.ghi  ", "abc.def.ghi", false},
		{"empty header", "", "", true},
		{"no token", "Bearer", "", true},
		{"empty token", "Bearer ", "", true},
		{"too many parts", "Bearer one two", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

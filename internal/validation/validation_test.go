package validation

import (
	"strings"
	"testing"
)

func TestMissingFields_AllPresent(t *testing.T) {
	if msg := MissingFields("alice", "a@example.com", "pw12345"); msg != "" {
		t.Fatalf("expected no message for complete input, got %q", msg)
	}
}

func TestMissingFields_CombinesMessages(t *testing.T) {
	msg := MissingFields("", "a@example.com", "")
	if !strings.Contains(msg, "Please enter your Name.") {
		t.Fatalf("expected message to mention the name, got %q", msg)
	}
	if !strings.Contains(msg, "Please enter your Password.") {
		t.Fatalf("expected message to mention the password, got %q", msg)
	}
	if strings.Contains(msg, "Email") {
		t.Fatalf("email was present, message should not mention it: %q", msg)
	}
}

func TestMissingFields_AllAbsent(t *testing.T) {
	msg := MissingFields("", "", "")
	for _, want := range []string{"Name", "Email", "Password"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected combined message to mention %s, got %q", want, msg)
		}
	}
}

func TestValidateRegistration(t *testing.T) {
	cases := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "alice", "a@example.com", "pw12345", false},
		{"valid max lengths", strings.Repeat("a", 20), "a@example.com", strings.Repeat("p", 20), false},
		{"username too long", strings.Repeat("a", 21), "a@example.com", "pw", true},
		{"username with space", "bad name", "a@example.com", "pw", true},
		{"username with punctuation", "bad!", "a@example.com", "pw", true},
		{"malformed email", "alice", "not-an-email", "pw", true},
		{"email missing domain", "alice", "a@", "pw", true},
		{"password too long", "alice", "a@example.com", strings.Repeat("p", 21), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRegistration(tc.username, tc.email, tc.password)
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation to fail")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected validation to pass, got %v", err)
			}
		})
	}
}

func TestValidateLoginEmail(t *testing.T) {
	if err := ValidateLoginEmail("a@example.com"); err != nil {
		t.Fatalf("expected valid email to pass, got %v", err)
	}
	for _, bad := range []string{"", "plainaddress", "@no-local.com", "a@b", "a b@example.com"} {
		if err := ValidateLoginEmail(bad); err == nil {
			t.Fatalf("expected %q to fail validation", bad)
		}
	}
}

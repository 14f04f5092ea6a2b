package validate

import (
	"errors"
	"fmt"
	"testing"
)

func TestEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last+tag@example.co.uk"}
	for _, s := range valid {
		if err := Email("email", s, 5); err != nil {
			t.Errorf("Email(%q): %v", s, err)
		}
	}
	invalid := []string{"", "plain", "a@b", "a b@c.com", "@b.com", "a@.c"}
	for _, s := range invalid {
		if err := Email("email", s, 5); !errors.Is(err, ErrInvalid) {
			t.Errorf("Email(%q): want ErrInvalid, got %v", s, err)
		}
	}
}

func TestEmail_Messages(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "Email too short"},
		{"a@b", "Email too short"},
		{"plain-text", "Invalid email format"},
		{"a b@c.com", "Invalid email format"},
	}
	for _, tt := range tests {
		if got := Message(Email("email", tt.in, 5), ""); got != tt.want {
			t.Errorf("Email(%q) message = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Message(Email("email", "a@b.cc", 10), ""); got != "Email too short" {
		t.Errorf("matching address below minLen: message = %q", got)
	}
}

func TestMinLen(t *testing.T) {
	if err := MinLen("password", "secret", 6, "too short"); err != nil {
		t.Errorf("MinLen exact length: %v", err)
	}
	err := MinLen("password", "short", 6, "too short")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
	if Message(err, "x") != "too short" {
		t.Errorf("Message = %q", Message(err, "x"))
	}
	if err := MinLen("title", "héllo", 5, "too short"); err != nil {
		t.Errorf("MinLen should count runes: %v", err)
	}
}

func TestURL(t *testing.T) {
	for _, s := range []string{"https://example.com/a.png", "http://localhost:5173"} {
		if err := URL("imageUrl", s, "bad"); err != nil {
			t.Errorf("URL(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "example.com", "ftp://example.com", "/relative/path"} {
		if err := URL("imageUrl", s, "bad"); err == nil {
			t.Errorf("URL(%q) should fail", s)
		}
	}
	if err := OptionalURL("liveLink", "", "bad"); err != nil {
		t.Errorf("OptionalURL empty: %v", err)
	}
	if err := OptionalURL("liveLink", "nope", "bad"); err == nil {
		t.Error("OptionalURL invalid should fail")
	}
}

func TestFirstAndMessage(t *testing.T) {
	a := Fail("a", "first")
	b := Fail("b", "second")
	if got := First(nil, a, b); got != a {
		t.Errorf("First = %v, want %v", got, a)
	}
	if First(nil, nil) != nil {
		t.Error("First of nils should be nil")
	}
	wrapped := fmt.Errorf("context: %w", b)
	if Message(wrapped, "fallback") != "second" {
		t.Error("Message should unwrap")
	}
	if Message(errors.New("other"), "fallback") != "fallback" {
		t.Error("Message should fall back for foreign errors")
	}
}

package auth

import (
	"net/http/httptest"
	"testing"
)

func TestAttachSession(t *testing.T) {
	rec := httptest.NewRecorder()
	AttachSession(rec, "signed-credential", CookieOptions{})

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName {
		t.Fatalf("unexpected cookie name: %q", c.Name)
	}
	if c.Value != "signed-credential" {
		t.Fatalf("unexpected cookie value: %q", c.Value)
	}
	if !c.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
	if c.MaxAge != 365*24*60*60 {
		t.Fatalf("unexpected max-age: %d", c.MaxAge)
	}
	if c.Path != "/" {
		t.Fatalf("unexpected path: %q", c.Path)
	}
}

func TestClearSessionIsIdempotent(t *testing.T) {
	// Clearing with or without a prior session produces the same removal
	// cookie; there is no state to make the second call differ.
	for range 2 {
		rec := httptest.NewRecorder()
		ClearSession(rec, CookieOptions{})

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("expected one cookie, got %d", len(cookies))
		}
		c := cookies[0]
		if c.Name != CookieName || c.Value != "" {
			t.Fatalf("unexpected removal cookie: %q=%q", c.Name, c.Value)
		}
		if c.MaxAge >= 0 {
			t.Fatalf("removal cookie must carry negative max-age, got %d", c.MaxAge)
		}
	}
}

package auth

import (
	"net/http"
	"time"
)

// CookieName is the fixed key the session credential travels under.
const CookieName = "token"

// cookieMaxAge keeps the login persistent for a year. Revocation then relies
// on rotating the signing secret, not on per-session invalidation.
const cookieMaxAge = 365 * 24 * time.Hour

// CookieOptions carries the transport attributes of the session cookie.
// Secure/SameSite default to unset to match the original contract; deployers
// should enable them behind TLS.
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
	Domain   string
}

// AttachSession sets the session cookie on the outbound response. HttpOnly
// keeps the credential out of reach of page scripts.
func AttachSession(w http.ResponseWriter, credential string, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    credential,
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   int(cookieMaxAge / time.Second),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearSession removes the session cookie. Idempotent: clearing an absent
// session is indistinguishable from clearing a live one.
func ClearSession(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

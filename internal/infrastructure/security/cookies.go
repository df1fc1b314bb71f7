package security

import (
	"net/http"
	"time"
)

const (
	RefreshCookieName = "refresh_token"
	SignupCookieName  = "signup_session"
)

func cookieName(base string, secure bool) string {
	if secure {
		return "__Host-" + base
	}
	return base
}

func setCookie(w http.ResponseWriter, base, value string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(base, secure),
		Value:    value,
		Path:     "/", // whole site so the BFF can forward it
		HttpOnly: true,
		Secure:   secure, // prod=true, dev=false
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func readCookie(r *http.Request, base string) (string, error) {
	// Prefer the __Host- variant; fall back for local non-HTTPS dev.
	if c, err := r.Cookie("__Host-" + base); err == nil {
		return c.Value, nil
	}
	c, err := r.Cookie(base)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

func SetRefreshToken(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	setCookie(w, RefreshCookieName, token, int(ttl.Seconds()), secure)
}

func ClearRefreshToken(w http.ResponseWriter, secure bool) {
	setCookie(w, RefreshCookieName, "", -1, secure)
}

func ReadRefreshToken(r *http.Request) (string, error) {
	return readCookie(r, RefreshCookieName)
}

// The signup-session cookie carries the opaque wizard draft token so the
// multi-step flow survives page reloads without client-side storage.

func SetSignupSession(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	setCookie(w, SignupCookieName, token, int(ttl.Seconds()), secure)
}

func ClearSignupSession(w http.ResponseWriter, secure bool) {
	setCookie(w, SignupCookieName, "", -1, secure)
}

func ReadSignupSession(r *http.Request) (string, error) {
	return readCookie(r, SignupCookieName)
}

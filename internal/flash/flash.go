// Package flash carries one toast from a redirecting response to the next
// page view in a short-lived cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/syms-residuos/backoffice/pkg/tableform"
)

// CookieName is the cookie holding the pending toast.
const CookieName = "backoffice_toast"

const maxAge = 60 * time.Second

// Toast is a transient notification shown once.
type Toast struct {
	Level   tableform.Level `json:"level"`
	Message string          `json:"message"`
}

// FromNotification converts a form notification. nil yields nil.
func FromNotification(n *tableform.Notification) *Toast {
	if n == nil {
		return nil
	}
	return &Toast{Level: n.Level, Message: n.Message}
}

func Success(message string) *Toast {
	return &Toast{Level: tableform.LevelSuccess, Message: message}
}

func Error(message string) *Toast {
	return &Toast{Level: tableform.LevelError, Message: message}
}

// Set stores toast for the next request. A nil toast is ignored.
func Set(w http.ResponseWriter, toast *Toast) {
	if toast == nil || toast.Message == "" {
		return
	}
	payload, err := json.Marshal(toast)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending toast, if any, and clears the cookie. Malformed
// cookies are cleared and ignored.
func Pop(w http.ResponseWriter, r *http.Request) *Toast {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var toast Toast
	if err := json.Unmarshal(raw, &toast); err != nil || toast.Message == "" {
		return nil
	}
	if toast.Level != tableform.LevelSuccess && toast.Level != tableform.LevelError {
		toast.Level = tableform.LevelError
	}
	return &toast
}

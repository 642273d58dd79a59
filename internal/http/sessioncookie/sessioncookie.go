// Package sessioncookie выставляет и очищает сессионную cookie.
// Cookie HttpOnly с путем "/", в продакшене дополнительно Secure.
package sessioncookie

import (
	"net/http"
	"time"
)

// Name — имя сессионной cookie.
const Name = "session"

// Set выставляет сессионную cookie с токеном и временем жизни ttl.
func Set(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear просит клиента удалить сессионную cookie.
// Сервер списка отозванных токенов не ведёт, деактивация — только истечение.
func Clear(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

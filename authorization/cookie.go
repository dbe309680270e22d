package authorization

import (
	"net/http"
	"time"
)

const CookieName = "token"

// The cookie attributes decide whether the browser returns the credential
// cross-site: production runs behind TLS with SameSite=None, development
// stays on Strict.
func SetSessionCookie(writer http.ResponseWriter, token string, expires time.Time, production bool) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSitePolicy(production),
	}
	http.SetCookie(writer, cookie)
}

func ClearSessionCookie(writer http.ResponseWriter, production bool) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSitePolicy(production),
	}
	http.SetCookie(writer, cookie)
}

func sameSitePolicy(production bool) http.SameSite {
	if production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

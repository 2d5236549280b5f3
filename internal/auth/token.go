package auth

import (
	"net/http"
	"strings"
)

// ExtractBearerToken returns the token from "Authorization: Bearer <token>".
// Placeholder values a client may send after losing its session
// ("undefined", "null") are treated as absent.
func ExtractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	switch token {
	case "undefined", "null":
		return ""
	}
	return token
}

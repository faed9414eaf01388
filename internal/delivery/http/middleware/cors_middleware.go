package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

type CORSMiddleware struct {
	allowedOrigins []string
}

func NewCORSMiddleware(allowedOrigins []string) *CORSMiddleware {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &CORSMiddleware{allowedOrigins: allowedOrigins}
}

// Handle answers preflight requests and lets the browser read the booking session header
func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(m.allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", SessionHeader}),
		handlers.ExposedHeaders([]string{SessionHeader}),
	)(next)
}

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionHeader carries the booking session id, one per browser tab
const SessionHeader = "X-Booking-Session"

const SessionIDKey contextKey = "booking_session"

// BookingSession ensures every wizard request has a booking session id.
// A missing or malformed id is replaced by a new one; the id in use is
// echoed back in the response header.
func BookingSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.New().String()
		}

		w.Header().Set(SessionHeader, sessionID)
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
	})
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// GetSessionIDFromContext extracts the booking session id from context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok && sessionID != ""
}

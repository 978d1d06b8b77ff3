package middleware

import (
	"context"
	"net/http"

	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/http/response"
	"github.com/klimenko666/dptmptch/internal/security"
)

// SessionCookie is the name of the cookie carrying the opaque session
// token for the employer dashboard.
const SessionCookie = "tt_session"

type contextKey string

const ContextEmployerIDKey contextKey = "employer_id"

type SessionMiddleware struct {
	sessions *security.SessionStore
}

func NewSessionMiddleware(sessions *security.SessionStore) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "authentication required", nil))
			return
		}
		employerID, err := m.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			response.Error(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), ContextEmployerIDKey, employerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func EmployerIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextEmployerIDKey).(common.UUID)
	return id, ok
}

// SessionToken extracts the raw cookie token, used by logout.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

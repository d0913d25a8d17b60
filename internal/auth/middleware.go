package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/simskyeconomy/simsky-core/internal/api"
)

type contextKey string

// AccountContextKey is the key the session middleware stores the
// authenticated account id under.
const AccountContextKey contextKey = "account"

type SessionMiddleware struct {
	sessions *SessionManager
}

func NewSessionMiddleware(sessions *SessionManager) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Require rejects requests without a valid bearer session and tags the
// context with the account id otherwise.
func (m *SessionMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			api.WriteError(w, http.StatusUnauthorized, "session required")
			return
		}

		claims, err := m.sessions.Validate(token)
		if err != nil {
			api.WriteError(w, http.StatusUnauthorized, "invalid session")
			return
		}

		ctx := context.WithValue(r.Context(), AccountContextKey, claims.AccountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentAccountID reads the authenticated account id off the context.
func CurrentAccountID(ctx context.Context) (uint, error) {
	accountID, ok := ctx.Value(AccountContextKey).(uint)
	if !ok {
		return 0, errors.New("account not found in context")
	}
	return accountID, nil
}

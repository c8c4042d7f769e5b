package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"innsikt/internal/model"
	"innsikt/internal/service"
)

type contextKey string

const (
	ClaimsKey contextKey = "claims"
	TeamKey   contextKey = "team"
)

// TokenValidator validates dashboard tokens
type TokenValidator interface {
	ValidateToken(token string) (*model.DashboardClaims, error)
}

var _ TokenValidator = (*service.AuthService)(nil)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc TokenValidator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireTeam validates the dashboard JWT from the Authorization header and
// checks that it grants access to the requested team.
func (m *AuthMiddleware) RequireTeam(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}

		team := TeamFromRequest(r)
		if team == "" {
			http.Error(w, `{"error":"team is required"}`, http.StatusBadRequest)
			return
		}
		if !claims.CanAccess(team) {
			http.Error(w, `{"error":"no access to team"}`, http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		ctx = context.WithValue(ctx, TeamKey, team)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims extracts the dashboard claims from context
func GetClaims(ctx context.Context) *model.DashboardClaims {
	if v, ok := ctx.Value(ClaimsKey).(*model.DashboardClaims); ok {
		return v
	}
	return nil
}

// GetTeam extracts the authorized team from context
func GetTeam(ctx context.Context) string {
	if v, ok := ctx.Value(TeamKey).(string); ok {
		return v
	}
	return ""
}

// TeamFromRequest reads the team from the route, falling back to ?team=
func TeamFromRequest(r *http.Request) string {
	if team := mux.Vars(r)["team"]; team != "" {
		return strings.TrimSpace(team)
	}
	return strings.TrimSpace(r.URL.Query().Get("team"))
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return parts[1]
}

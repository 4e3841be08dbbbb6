package auth

import (
	"context"
	"net/http"
	"strings"

	"payout_dashboard/internal/ports"
	"payout_dashboard/internal/repository"
)

type TokenRepo interface {
	FindTokenByPlainToken(ctx context.Context, plainToken string) (*repository.PersonalAccessToken, error)
}

// TokenMiddleware guards the dashboard endpoints with a bearer
// personal-access token and puts the resolved username into the
// request context so uploads can be attributed.
func TokenMiddleware(tokenRepo TokenRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS preflight passes through unauthenticated
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			var pat *repository.PersonalAccessToken

			if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
				if token != "" {
					if p, err := tokenRepo.FindTokenByPlainToken(r.Context(), token); err == nil {
						pat = p
					}
				}
			}

			// fallback for clients that can only pass a query param
			if pat == nil {
				if token := r.URL.Query().Get("token"); token != "" {
					if p, err := tokenRepo.FindTokenByPlainToken(r.Context(), token); err == nil {
						pat = p
					}
				}
			}

			if pat == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ports.WithActor(r.Context(), pat.Username)))
		})
	}
}

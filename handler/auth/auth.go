package auth

import (
	"errors"
	"net/http"
	"strings"

	"xplend/core"
	"xplend/handler/render"
	"xplend/handler/request"

	"github.com/golang-jwt/jwt/v5"
)

var errUnauthorized = errors.New("unauthorized")

// HandleAuthentication validates the bearer token and puts the
// authenticated user into the request context. Token issuance lives in
// the platform's auth service; this middleware only verifies HS256
// signatures against the shared secret.
func HandleAuthentication(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				render.Unauthorized(w, errUnauthorized)
				return
			}

			token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errUnauthorized
				}

				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				render.Unauthorized(w, errUnauthorized)
				return
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				render.Unauthorized(w, errUnauthorized)
				return
			}

			ctx := request.WithUser(r.Context(), &core.User{ID: sub})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	return strings.TrimPrefix(header, "Bearer ")
}

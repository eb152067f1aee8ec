package httpinterface

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
)

type contextKey string

const actorKey contextKey = "actor"

// authenticator resolves the caller identity from a bearer token and puts
// it in the request context. The environment issuing the tokens is trusted
// to bind them to accounts: when no secret is configured the subject claim
// is taken as-is, otherwise the HS256 signature is verified first.
func authenticator(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			headerParts := strings.SplitN(authHeader, " ", 2)
			if len(headerParts) != 2 ||
				!strings.EqualFold(headerParts[0], "bearer") {
				writeError(w, http.StatusUnauthorized, "unauthorized",
					"missing or malformed bearer token")
				return
			}

			subject, err := tokenSubject(headerParts[1], secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenSubject(tokenString, secret string) (string, error) {
	claims := &jwt.StandardClaims{}

	if secret == "" {
		parser := &jwt.Parser{}
		if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
			return "", fmt.Errorf("invalid token: %s", err)
		}
	} else {
		token, err := jwt.ParseWithClaims(
			tokenString, claims,
			func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf(
						"unexpected signing method %v", token.Header["alg"],
					)
				}
				return []byte(secret), nil
			},
		)
		if err != nil {
			return "", fmt.Errorf("invalid token: %s", err)
		}
		if !token.Valid {
			return "", fmt.Errorf("invalid token")
		}
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

func actorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey).(string)
	return actor
}

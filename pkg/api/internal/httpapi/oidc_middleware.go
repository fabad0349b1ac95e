package httpapi

import (
	"net/http"
	"strings"

	oidc "github.com/coreos/go-oidc"

	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/oidcx"
)

// OIDCMiddleware authenticates callers with a bearer token before any
// handler runs. Absent or invalid tokens fail closed with 401; the
// failure is written to the security log.
func OIDCMiddleware(provider oidcx.Provider, clientID string, securityLogger SecurityLogger) func(http.Handler) http.Handler {
	verifier := provider.Verifier(&oidc.Config{
		ClientID: clientID,
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				securityLogger.Log(ctx, AuthFailSignature, "missing token",
					logx.SecurityData{Key: "msg", Value: "no bearer token"})
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			rawToken := strings.TrimPrefix(header, "Bearer ")

			idToken, err := verifier.Verify(ctx, rawToken)
			if err != nil {
				securityLogger.Log(ctx, AuthFailSignature, "invalid token",
					logx.SecurityData{Key: "msg", Value: err.Error()})
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			securityLogger.Log(ctx, AuthPassSignature, "auth succeeded",
				logx.SecurityData{Key: "msg", Value: "auth succeeded"},
				logx.SecurityData{Key: "subject", Value: idToken.Subject})

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/varlopecar/react-form/shared/errors"
	"github.com/varlopecar/react-form/shared/logger"
	"github.com/varlopecar/react-form/shared/middleware/ratelimiter"
	"github.com/varlopecar/react-form/shared/utils"
)

func RateLimit(rl *ratelimiter.KeyedLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest})
				return
			}
			if !rl.Allow(identity) {
				logger.Log.Warn("rate limit exceeded", "identity", identity, "path", r.URL.Path)
				utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Too many requests, try again later", StatusCode: http.StatusTooManyRequests})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetIP extracts the client IP from RemoteAddr.
// X-Real-IP and X-Forwarded-For are not trusted.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	return ip, nil
}

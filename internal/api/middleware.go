package api

import (
	"net/http"
	"strings"
	"time"

	"meal-planner/internal/auth"
	"meal-planner/internal/shopping"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type subjectKey struct{}

func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("API request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status_code", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}

// authenticate requires a valid bearer token. A nil signer rejects every request.
func authenticate(signer *auth.Signer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "authorization header required")
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}
			if signer == nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			subject, err := signer.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			ctx := contextWithSubject(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireEngine puts the engine into the request scope or answers 503.
func (s *Server) requireEngine(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.engine == nil {
			writeError(w, http.StatusServiceUnavailable, "shopping list is not available")
			return
		}
		next.ServeHTTP(w, r.WithContext(shopping.NewContext(r.Context(), s.engine)))
	})
}

// optionalEngine puts the engine into the request scope when there is one.
func (s *Server) optionalEngine(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.engine != nil {
			r = r.WithContext(shopping.NewContext(r.Context(), s.engine))
		}
		next.ServeHTTP(w, r)
	})
}

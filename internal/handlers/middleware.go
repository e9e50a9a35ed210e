package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"worddee/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const SessionContextKey ContextKey = "session"

type sessionInfo struct {
	ID    string
	Fresh bool
}

// Middleware holds dependencies for middleware functions
type Middleware struct {
	sessions *security.SessionManager
	csrf     *security.CSRFGenerator
	limiter  *security.RateLimiter
	logger   *zap.Logger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessions *security.SessionManager, csrf *security.CSRFGenerator, limiter *security.RateLimiter, logger *zap.Logger) *Middleware {
	return &Middleware{
		sessions: sessions,
		csrf:     csrf,
		limiter:  limiter,
		logger:   logger,
	}
}

// WithSession attaches the practice session id to the request, issuing a
// new session cookie when the current one is missing or invalid
func (m *Middleware) WithSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := sessionInfo{}
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			if id, err := m.sessions.Parse(cookie.Value); err == nil {
				info.ID = id
			} else {
				m.logger.Debug("discarding session cookie", zap.Error(err))
			}
		}

		if info.ID == "" {
			info.ID = security.GenerateSessionID()
			info.Fresh = true
			token, expiresAt, err := m.sessions.Issue(info.ID)
			if err != nil {
				respondWithError(w, m.logger, http.StatusInternalServerError, ErrInternalServerError, "Error issuing session", err)
				return
			}
			http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, token, expiresAt))
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, info)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect rejects form posts without a token bound to the session.
// A post that arrives with a brand new session has nothing to act on and
// is sent back to the practice page.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, _ := r.Context().Value(SessionContextKey).(sessionInfo)
		if info.Fresh {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			respondWithError(w, m.logger, http.StatusBadRequest, ErrInvalidFormData, "", nil)
			return
		}

		if !m.csrf.ValidateToken(info.ID, r.PostFormValue(security.CSRFFieldName)) {
			m.logger.Warn("csrf token rejected", zap.String("path", r.URL.Path))
			respondWithError(w, m.logger, http.StatusForbidden, ErrInvalidCSRFToken, "", nil)
			return
		}

		next(w, r)
	}
}

// RateLimit caps submissions per client address
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			m.logger.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "60")
			respondWithError(w, m.logger, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

// CSRFToken returns the form token for the request's session
func (m *Middleware) CSRFToken(r *http.Request) string {
	token, err := m.csrf.GenerateToken(GetSessionID(r.Context()))
	if err != nil {
		m.logger.Error("failed to generate csrf token", zap.Error(err))
		return ""
	}
	return token
}

type loggingRecorder struct {
	http.ResponseWriter
	status int
}

func (r *loggingRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *loggingRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Logging middleware logs HTTP requests
func Logging(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &loggingRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// GetSessionID retrieves the practice session id from the request context
func GetSessionID(ctx context.Context) string {
	info, _ := ctx.Value(SessionContextKey).(sessionInfo)
	return info.ID
}

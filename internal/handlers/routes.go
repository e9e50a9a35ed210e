package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"worddee/internal/metrics"
)

// Router bundles what the HTTP routes are served by
type Router struct {
	Practice   *PracticeHandler
	Dashboard  *DashboardHandler
	Middleware *Middleware
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
}

// Handler registers every route and wraps the mux with request logging
// and, when configured, metrics
func (rt Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mw := rt.Middleware

	mux.HandleFunc("GET /{$}", mw.WithSession(rt.Practice.Show))
	mux.HandleFunc("POST /practice/submit", mw.WithSession(mw.RateLimit(mw.CSRFProtect(rt.Practice.Submit))))
	mux.HandleFunc("POST /practice/next", mw.WithSession(mw.CSRFProtect(rt.Practice.Next)))

	mux.HandleFunc("GET /dashboard", rt.Dashboard.Show)
	mux.HandleFunc("GET /dashboard/history", rt.Dashboard.History)

	mux.HandleFunc("GET /healthz", Healthz)

	var handler http.Handler = mux
	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics.Handler())
		handler = rt.Metrics.Middleware(handler)
	}
	return Logging(rt.Logger, handler)
}

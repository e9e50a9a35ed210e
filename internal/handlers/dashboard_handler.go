package handlers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"worddee/internal/service"
)

// DashboardHandler handles the progress dashboard
type DashboardHandler struct {
	dashboardService *service.DashboardService
	templates        *template.Template
	logger           *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, templates *template.Template, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		templates:        templates,
		logger:           logger,
	}
}

// Show renders the dashboard
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	dash := h.dashboardService.Dashboard(r.Context())

	data := DashboardViewData{
		Page: Page{
			Title: "Dashboard - " + siteName,
			Nav:   "dashboard",
		},
		Cards:   summaryCards(dash.Summary),
		Chart:   NewBarChart(dash.Summary.LevelDistribution),
		History: newHistoryView(dash.History),
	}
	render(w, h.templates, h.logger, "dashboard.tmpl", data)
}

// History renders just the recent history list
func (h *DashboardHandler) History(w http.ResponseWriter, r *http.Request) {
	items := h.dashboardService.RecentHistory(r.Context())
	render(w, h.templates, h.logger, "recent_history", newHistoryView(items))
}

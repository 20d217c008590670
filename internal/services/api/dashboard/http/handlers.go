// Package http provides http transport for the dashboard
package http

import (
	stdhttp "net/http"

	"salesboard/internal/modkit/httpkit"
	"salesboard/internal/modkit/swaggerkit"
	"salesboard/internal/services/api/dashboard/domain"
	svc "salesboard/internal/services/api/dashboard/service"
)

// Register mounts dashboard endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// dropdowns only
	httpkit.PostJSON[domain.SelectionInput](r, "/options", h.options)

	// full refresh
	httpkit.PostJSON[domain.ReportInput](r, "/report", h.report)

	// headline panel over every row
	httpkit.Get(r, "/overview", h.overview)
}

// Docs lists the dashboard endpoints for the OpenAPI document
var Docs = []swaggerkit.Route{
	{Method: stdhttp.MethodPost, Path: "/dashboard/options", Tag: "Dashboard", Summary: "Resolve the operator, region and station dropdowns", Body: "SelectionInput"},
	{Method: stdhttp.MethodPost, Path: "/dashboard/report", Tag: "Dashboard", Summary: "Run one dashboard cycle and return every summary table", Body: "ReportInput"},
	{Method: stdhttp.MethodGet, Path: "/dashboard/overview", Tag: "Dashboard", Summary: "Scorecards, operator share, coverage and station map"},
}

type handlers struct{ svc svc.Service }

// swagger:route POST /dashboard/options Dashboard dashboardOptions
// @Summary Resolve the operator, region and station dropdowns
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.SelectionInput true "Selection"
// @Success 200 {object} domain.OptionsResponse "ok"
// @Router /dashboard/options [post]
func (h *handlers) options(r *stdhttp.Request, in domain.SelectionInput) (any, error) {
	return h.svc.Options(r.Context(), in)
}

// swagger:route POST /dashboard/report Dashboard dashboardReport
// @Summary Run one dashboard cycle and return every summary table
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.ReportInput true "Selection and options"
// @Success 200 {object} domain.ReportResponse "ok"
// @Router /dashboard/report [post]
func (h *handlers) report(r *stdhttp.Request, in domain.ReportInput) (any, error) {
	return h.svc.Report(r.Context(), in)
}

// swagger:route GET /dashboard/overview Dashboard dashboardOverview
// @Summary Scorecards, operator share, coverage and station map
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.OverviewResponse "ok"
// @Router /dashboard/overview [get]
func (h *handlers) overview(r *stdhttp.Request) (any, error) {
	return h.svc.Overview(r.Context())
}

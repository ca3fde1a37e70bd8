package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fpl-league-dashboard/internal/usecase"
)

type dashboardRequest struct {
	SessionID   string `validate:"required,max=128"`
	Gameweek    int    `validate:"gte=0"`
	IncludeSubs bool
}

type chartRequest struct {
	dashboardRequest
	Chart string `validate:"required"`
}

func parseDashboardRequest(r *http.Request) (dashboardRequest, error) {
	gameweek, err := parseIntParam("gw", r.URL.Query().Get("gw"))
	if err != nil {
		return dashboardRequest{}, err
	}
	includeSubs, err := parseBoolParam("include_subs", r.URL.Query().Get("include_subs"))
	if err != nil {
		return dashboardRequest{}, err
	}
	return dashboardRequest{
		SessionID:   strings.TrimSpace(r.PathValue("sessionID")),
		Gameweek:    gameweek,
		IncludeSubs: includeSubs,
	}, nil
}

func (req dashboardRequest) query() usecase.DashboardQuery {
	return usecase.DashboardQuery{
		SessionID:   req.SessionID,
		Gameweek:    req.Gameweek,
		IncludeSubs: req.IncludeSubs,
	}
}

func (h *Handler) ListGameweeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameweeks")
	defer span.End()

	req := sessionRequest{SessionID: strings.TrimSpace(r.PathValue("sessionID"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameweeks, err := h.dashboardService.Gameweeks(ctx, req.SessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list gameweeks failed", "session_id", req.SessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	latest := 0
	if len(gameweeks) > 0 {
		latest = gameweeks[len(gameweeks)-1]
	}
	writeSuccess(ctx, w, http.StatusOK, gameweeksDTO{
		Gameweeks: nonNilInts(gameweeks),
		Latest:    latest,
	})
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	req, err := parseDashboardRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	dashboard, err := h.dashboardService.Dashboard(ctx, req.query())
	if err != nil {
		h.logger.WarnContext(ctx, "get dashboard failed",
			"session_id", req.SessionID,
			"gameweek", req.Gameweek,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboard)
}

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChart")
	defer span.End()

	base, err := parseDashboardRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := chartRequest{
		dashboardRequest: base,
		Chart:            strings.TrimSpace(r.PathValue("chart")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	chart, err := h.dashboardService.Chart(ctx, req.query(), req.Chart)
	if err != nil {
		h.logger.WarnContext(ctx, "get chart failed",
			"session_id", req.SessionID,
			"chart", req.Chart,
			"gameweek", req.Gameweek,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, chart)
}

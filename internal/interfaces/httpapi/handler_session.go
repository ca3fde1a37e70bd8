package httpapi

import (
	"net/http"
	"strings"
)

type loadLeagueRequest struct {
	SessionID string `validate:"required,max=128"`
	LeagueID  int    `validate:"gt=0"`
}

type sessionRequest struct {
	SessionID string `validate:"required,max=128"`
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSession")
	defer span.End()

	sessionID, err := h.sessionService.Create(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "create session failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sessionDTO{SessionID: sessionID})
}

func (h *Handler) LoadLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LoadLeague")
	defer span.End()

	leagueID, err := parseIntParam("leagueID", r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := loadLeagueRequest{
		SessionID: strings.TrimSpace(r.PathValue("sessionID")),
		LeagueID:  leagueID,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	league, progress, err := h.leagueService.LoadLeague(ctx, req.SessionID, req.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "load league failed",
			"session_id", req.SessionID,
			"league_id", req.LeagueID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, loadLeagueDTO{
		League:   toLeagueDTO(league),
		Progress: toProgressDTO(progress),
	})
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	req := sessionRequest{SessionID: strings.TrimSpace(r.PathValue("sessionID"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	league, err := h.leagueService.GetLeague(ctx, req.SessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "session_id", req.SessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueDTO(league))
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProgress")
	defer span.End()

	req := sessionRequest{SessionID: strings.TrimSpace(r.PathValue("sessionID"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	progress, err := h.leagueService.Progress(ctx, req.SessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get progress failed", "session_id", req.SessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toProgressDTO(progress))
}

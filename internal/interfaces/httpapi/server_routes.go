package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/sessions", handler.CreateSession)
	mux.HandleFunc("POST /v1/sessions/{sessionID}/leagues/{leagueID}/load", handler.LoadLeague)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/league", handler.GetLeague)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/progress", handler.GetProgress)
}

func registerDashboardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sessions/{sessionID}/gameweeks", handler.ListGameweeks)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/dashboard", handler.GetDashboard)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/charts/{chart}", handler.GetChart)
}

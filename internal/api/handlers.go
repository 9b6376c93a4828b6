package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/example/startup-analytics/internal/api/middleware"
	"github.com/example/startup-analytics/internal/command"
	"github.com/example/startup-analytics/internal/domain/dashboard"
	"github.com/example/startup-analytics/internal/logger"
	"github.com/example/startup-analytics/internal/query"
	"github.com/example/startup-analytics/internal/readmodel"
)

type Handlers struct {
	dashboardSvc *dashboard.Service
	cmdHandler   *command.Handler
	queryHandler *query.Handler
	log          *logger.Logger
}

func NewHandlers(dashboardSvc *dashboard.Service, cmdHandler *command.Handler, queryHandler *query.Handler, log *logger.Logger) *Handlers {
	return &Handlers{
		dashboardSvc: dashboardSvc,
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
		log:          log.With("component", "API"),
	}
}

// Dashboard Handlers

// GetMyDashboard serves /me and its /stats and /progress aliases.
func (h *Handlers) GetMyDashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	role := dashboard.ParseRole(identity.Role)

	var (
		snap *dashboard.Snapshot
		err  error
	)
	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		snap, err = h.cmdHandler.RefreshDashboard(r.Context(), command.RefreshDashboard{UserID: identity.UserID, Role: string(role)})
	} else {
		snap, err = h.dashboardSvc.GetDashboard(r.Context(), identity.UserID, role, false)
	}
	if err != nil {
		h.log.Warn("dashboard request failed", "user_id", identity.UserID, "role", identity.Role, "error", err)
		respondError(w, err.Error(), dashboardStatus(err))
		return
	}

	respondJSON(w, http.StatusOK, readmodel.FromSnapshot(snap, role))
}

func (h *Handlers) GetStoredDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.queryHandler.GetStoredDashboard(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Activity Handlers

func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	list, err := h.queryHandler.ListActivities(r.Context(), middleware.GetUserID(r.Context()), queryLimit(r))
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handlers) RecentActivities(w http.ResponseWriter, r *http.Request) {
	list, err := h.queryHandler.RecentActivities(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handlers) ActivitiesByType(w http.ResponseWriter, r *http.Request) {
	list, err := h.queryHandler.ActivitiesByType(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("type"), queryLimit(r))
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handlers) CountActivities(w http.ResponseWriter, r *http.Request) {
	count, err := h.queryHandler.CountActivities(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, count)
}

// LogActivity accepts the entry; it shows up in reads once projected.
func (h *Handlers) LogActivity(w http.ResponseWriter, r *http.Request) {
	var cmd command.LogActivity
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	cmd.UserID = middleware.GetUserID(r.Context())

	a, err := h.cmdHandler.LogActivity(r.Context(), cmd)
	if err != nil {
		h.log.Warn("log activity failed", "user_id", cmd.UserID, "error", err)
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, http.StatusAccepted, readmodel.FromActivity(*a))
}

// Admin Handlers

func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.queryHandler.Overview(r.Context())
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// queryLimit reads ?limit=. Missing or invalid values mean "use the default".
func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return n
}

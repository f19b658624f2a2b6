package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type statusResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
	Data   any    `json:"data"`
}

type pendingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TaskStatus prefers a completed callback and otherwise asks the provider.
func (a *App) TaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskId")
	res, err := a.Reconciler.Status(r.Context(), taskID)
	if err != nil {
		a.log(r).Warn().Err(err).Str("task_id", taskID).Msg("status lookup failed")
		a.error(w, http.StatusBadRequest, "upstream_error", err.Error())
		return
	}
	a.json(w, http.StatusOK, statusResponse{Status: "success", Source: res.Source, Data: res.Payload()})
}

// Job returns whatever the store holds for the task, without asking the provider.
func (a *App) Job(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskId")
	record, ok, err := a.Store.Get(r.Context(), taskID)
	if err != nil {
		a.log(r).Error().Err(err).Str("task_id", taskID).Msg("job lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load job")
		return
	}
	if !ok {
		a.json(w, http.StatusOK, pendingResponse{Status: "pending", Message: "Job not yet complete"})
		return
	}
	a.json(w, http.StatusOK, map[string]any{"status": "success", "data": record})
}

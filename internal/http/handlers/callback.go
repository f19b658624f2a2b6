package handlers

import (
	"net/http"
)

type callbackAck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Callback always answers 200 so the provider does not retry; failures are
// reported in the body and logged.
func (a *App) Callback(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		a.log(r).Error().Err(err).Msg("callback body read failed")
		a.json(w, http.StatusOK, callbackAck{Status: "error", Message: err.Error()})
		return
	}
	if _, err := a.Callbacks.Process(r.Context(), body); err != nil {
		a.log(r).Error().Err(err).Msg("callback rejected")
		a.json(w, http.StatusOK, callbackAck{Status: "error", Message: err.Error()})
		return
	}
	a.json(w, http.StatusOK, callbackAck{Status: "received"})
}

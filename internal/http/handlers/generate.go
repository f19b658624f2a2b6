package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"songrelay/internal/domain"
)

type generateResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	res, err := a.Submitter.Submit(r.Context(), req)
	if err != nil {
		code := generateErrorCode(err)
		a.log(r).Warn().Err(err).Str("code", code).Msg("generate failed")
		a.error(w, http.StatusBadRequest, code, err.Error())
		return
	}
	a.json(w, http.StatusOK, generateResponse{Status: "success", Data: res.Raw})
}

func generateErrorCode(err error) string {
	var (
		validation *domain.ValidationError
		rejected   *domain.UpstreamRejectedError
	)
	switch {
	case errors.As(err, &validation):
		return "validation_failed"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.As(err, &rejected):
		return "upstream_rejected"
	default:
		return "upstream_error"
	}
}

package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"songrelay/internal/domain"
	"songrelay/internal/infra"
	"songrelay/internal/jobs"
	"songrelay/internal/words"
)

const maxBodyBytes = 1 << 20

type App struct {
	Submitter  *jobs.Submitter
	Reconciler *jobs.Reconciler
	Callbacks  *jobs.CallbackProcessor
	Store      domain.JobStore
	Words      *words.Collection
	Logger     *infra.Logger
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, detail string) {
	a.json(w, code, errorResponse{Status: "error", Error: errCode, Detail: detail})
}

// log returns the request-scoped logger when the logging middleware ran.
func (a *App) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	if a.Logger != nil {
		return a.Logger
	}
	return zerolog.Ctx(r.Context())
}

func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

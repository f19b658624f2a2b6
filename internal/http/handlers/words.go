package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"songrelay/internal/words"
)

type wordSubmission struct {
	Word string `json:"word"`
}

func (a *App) SubmitWord(w http.ResponseWriter, r *http.Request) {
	var req wordSubmission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	added, total, err := a.Words.Submit(req.Word)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message":     fmt.Sprintf("%d words submitted successfully", added),
		"total_words": total,
	})
}

func (a *App) ListWords(w http.ResponseWriter, r *http.Request) {
	list := a.Words.List()
	a.json(w, http.StatusOK, map[string]any{"words": list, "count": len(list)})
}

func (a *App) WordCount(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]int{"count": a.Words.Count()})
}

func (a *App) WordFrequencies(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Words.Frequencies()})
}

func (a *App) RemoveWord(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "index must be an integer")
		return
	}
	removed, remaining, err := a.Words.Remove(index)
	if errors.Is(err, words.ErrIndexOutOfRange) {
		a.error(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"status":    "success",
		"message":   fmt.Sprintf("Removed '%s'", removed),
		"remaining": remaining,
	})
}

func (a *App) ClearWords(w http.ResponseWriter, r *http.Request) {
	a.Words.Clear()
	a.json(w, http.StatusOK, map[string]string{"status": "success", "message": "All words cleared"})
}

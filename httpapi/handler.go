// Package httpapi exposes the search engine over HTTP. It marshals the
// search input and output shapes to JSON and contains no search logic.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/git-pkgs/depsearch"
)

// Searcher is the capability the handler needs from the engine.
type Searcher interface {
	Find(ctx context.Context, p depsearch.Params) (*depsearch.Result, error)
}

// Handler serves POST requests carrying search params and responds with the
// search result.
type Handler struct {
	searcher Searcher
	logger   *log.Logger
}

// NewHandler creates a Handler. A nil logger uses the package default.
func NewHandler(s Searcher, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{searcher: s, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, &depsearch.Result{
			Message: "method not allowed",
		})
		return
	}

	var params depsearch.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, &depsearch.Result{
			Message: "malformed request body: " + err.Error(),
		})
		return
	}

	start := time.Now()
	result, err := h.searcher.Find(r.Context(), params)
	if err != nil {
		var validationErr *depsearch.ValidationError
		if errors.As(err, &validationErr) {
			writeJSON(w, http.StatusBadRequest, &depsearch.Result{
				Message: validationErr.Error(),
			})
			return
		}
		h.logger.Error("search failed", "parent", params.Parent, "child", params.Child, "err", err)
		writeJSON(w, http.StatusInternalServerError, &depsearch.Result{
			Message: "search failed",
		})
		return
	}

	h.logger.Info("search completed",
		"parent", params.Parent,
		"child", params.Child,
		"success", result.Success,
		"version", result.Version,
		"duration", time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, result *depsearch.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}

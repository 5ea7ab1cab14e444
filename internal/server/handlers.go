// internal/server/handlers.go
package server

import (
	"encoding/json"
	"net/http"

	"inventory-nlu/internal/common/cache"
	apperrors "inventory-nlu/internal/common/errors"
	"inventory-nlu/internal/common/logger"
	"inventory-nlu/internal/service"
)

// maxBodyBytes bounds request bodies; chat messages and oracle responses
// are small.
const maxBodyBytes = 1 << 20

// Handler holds the route implementations.
type Handler struct {
	svc   *service.Service
	cache *cache.ResultCache
	log   logger.Logger
}

type httpError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details,omitempty"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *apperrors.StandardError) {
	e := httpError{}
	e.Error.Code = string(err.Code)
	e.Error.Message = err.Message
	e.Error.Details = err.Details
	writeJSON(w, status, e)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.NewInvalidRequestError(err.Error()))
		return false
	}
	return true
}

// DetectIntent classifies a chat message.
func (h *Handler) DetectIntent(w http.ResponseWriter, r *http.Request) {
	var input service.DetectIntentInput
	if !decode(w, r, &input) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.DetectIntent(r.Context(), input))
}

// ParseResponse parses an oracle response into book records. Parse failure
// is a successful HTTP exchange; the outcome rides in the body.
func (h *Handler) ParseResponse(w http.ResponseWriter, r *http.Request) {
	var input service.ParseResponseInput
	if !decode(w, r, &input) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.ParseResponse(r.Context(), input))
}

// ExtractBook runs standalone field extraction on a message.
func (h *Handler) ExtractBook(w http.ResponseWriter, r *http.Request) {
	var input service.ExtractBookInput
	if !decode(w, r, &input) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.ExtractBook(r.Context(), input))
}

// Healthz reports liveness plus cache reachability.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "cache": "disabled"}
	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			status["cache"] = "unreachable"
		} else {
			status["cache"] = "ok"
		}
	}
	writeJSON(w, http.StatusOK, status)
}

// consultant.go — обработчик POST /api/query (AI-консультант).
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apierrors "github.com/bigkaa/colorsense/internal/api/errors"
	"github.com/bigkaa/colorsense/internal/consultant"
)

// queryResponse — ответ консультанта.
type queryResponse struct {
	Success bool `json:"success"`
	*consultant.Response
}

// query — POST /api/query {message, conversationHistory}.
func (h *APIHandler) query(w http.ResponseWriter, r *http.Request) {
	var req consultant.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Invalid request body", h.detail(err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		apierrors.ValidationError(w, "Invalid or missing message content.", "")
		return
	}

	resp, err := h.consultant.Ask(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, consultant.ErrNotConfigured):
			apierrors.NotConfigured(w, "Consultant not configured. Contact support.", h.detail(err))
		case errors.Is(err, consultant.ErrRateLimited):
			apierrors.RateLimited(w, "Consultant is busy. Try again soon.", h.detail(err))
		case errors.Is(err, consultant.ErrUnavailable), errors.Is(err, consultant.ErrEmptyResponse):
			apierrors.UpstreamUnavailable(w, "Unexpected issue. Please try again later.", h.detail(err))
		default:
			apierrors.InternalError(w, "Unexpected issue. Please try again later.", h.detail(err))
		}
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{Success: true, Response: resp})
}

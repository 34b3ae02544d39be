package recon

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ricardofs/confere/internal/recon"
)

type Handler struct {
	svc *recon.Service
}

func NewHandler(svc *recon.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/users/{userID}", h.userSummary)
	r.Get("/report", h.globalReport)
}

func (h *Handler) userSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.GenerateUserSummary(r.Context(), userID)
	if err != nil {
		slog.Error("failed to generate user summary", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toUserSummaryResponse(summary)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) globalReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.GenerateGlobalReport(r.Context())
	if err != nil {
		slog.Error("failed to generate global report", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toGlobalReportResponse(report)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

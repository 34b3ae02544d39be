package statement

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ricardofs/confere/internal/statement"
)

type Handler struct {
	svc *statement.Service
}

func NewHandler(svc *statement.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/expenses", h.listExpenses)
	r.Patch("/{id}/expenses/{expenseID}", h.updateExpense)
	r.Delete("/{id}/expenses/{expenseID}", h.deleteExpense)
}

type createExpenseRequest struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Date        *time.Time      `json:"date,omitempty"`
}

type createStatementRequest struct {
	UserID        uuid.UUID              `json:"user_id"`
	PeriodMonth   int                    `json:"period_month"`
	PeriodYear    int                    `json:"period_year"`
	DeclaredTotal decimal.Decimal        `json:"declared_total"`
	PDFURL        string                 `json:"pdf_url,omitempty"`
	Expenses      []createExpenseRequest `json:"expenses"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := statement.CreateParams{
		UserID:        req.UserID,
		PeriodMonth:   req.PeriodMonth,
		PeriodYear:    req.PeriodYear,
		DeclaredTotal: req.DeclaredTotal,
		PDFURL:        req.PDFURL,
	}
	for _, e := range req.Expenses {
		params.Expenses = append(params.Expenses, statement.ExpenseParams{
			Description: e.Description,
			Value:       e.Value,
			Date:        e.Date,
		})
	}

	stmt, err := h.svc.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, statement.ErrDuplicatePeriod) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		if errors.Is(err, statement.ErrInvalidParams) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(stmt)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		http.Error(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	stmts, err := h.svc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(stmts)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	stmt, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, statement.ErrNotFound) {
			http.Error(w, "statement not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(stmt)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, statement.ErrNotFound) {
			http.Error(w, "statement not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	exps, err := h.svc.ListExpenses(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toExpenseResponseList(exps)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateExpenseRequest struct {
	Description *string          `json:"description,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, err := uuid.Parse(chi.URLParam(r, "expenseID"))
	if err != nil {
		http.Error(w, "invalid expense id", http.StatusBadRequest)
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exp, err := h.svc.UpdateExpense(r.Context(), expenseID, statement.UpdateExpenseParams{
		Description: req.Description,
		Value:       req.Value,
		Date:        req.Date,
	})
	if err != nil {
		if errors.Is(err, statement.ErrExpenseNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		if errors.Is(err, statement.ErrInvalidParams) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toExpenseResponse(exp)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, err := uuid.Parse(chi.URLParam(r, "expenseID"))
	if err != nil {
		http.Error(w, "invalid expense id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteExpense(r.Context(), expenseID); err != nil {
		if errors.Is(err, statement.ErrExpenseNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

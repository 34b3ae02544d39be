package importstmt

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ricardofs/confere/internal/importer"
	"github.com/ricardofs/confere/internal/statement"
)

type Handler struct {
	importSvc *importer.Service
	stmtSvc   *statement.Service
}

func NewHandler(importSvc *importer.Service, stmtSvc *statement.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		stmtSvc:   stmtSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/statement", h.parseStatement)
	r.Post("/statement/confirm", h.confirmStatement)
}

type parsedExpenseDTO struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Date        *time.Time      `json:"date,omitempty"`
}

type parsedStatementResponse struct {
	PeriodMonth   int                `json:"period_month"`
	PeriodYear    int                `json:"period_year"`
	DeclaredTotal decimal.Decimal    `json:"declared_total"`
	Expenses      []parsedExpenseDTO `json:"expenses"`
}

// parseStatement turns an uploaded statement text dump into a parsed
// preview. Nothing is persisted; the caller reviews the preview and posts
// it back to confirm.
func (h *Handler) parseStatement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatFatura
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	parsed, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := parsedStatementResponse{
		PeriodMonth:   parsed.PeriodMonth,
		PeriodYear:    parsed.PeriodYear,
		DeclaredTotal: parsed.DeclaredTotal,
		Expenses:      make([]parsedExpenseDTO, 0, len(parsed.Expenses)),
	}
	for _, e := range parsed.Expenses {
		resp.Expenses = append(resp.Expenses, parsedExpenseDTO{
			Description: e.Description,
			Value:       e.Value,
			Date:        e.Date,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type confirmRequest struct {
	UserID        uuid.UUID          `json:"user_id"`
	PeriodMonth   int                `json:"period_month"`
	PeriodYear    int                `json:"period_year"`
	DeclaredTotal decimal.Decimal    `json:"declared_total"`
	PDFURL        string             `json:"pdf_url,omitempty"`
	Expenses      []parsedExpenseDTO `json:"expenses"`
}

type confirmResponse struct {
	StatementID     uuid.UUID        `json:"statement_id"`
	Status          statement.Status `json:"status"`
	CalculatedTotal decimal.Decimal  `json:"calculated_total"`
	Difference      decimal.Decimal  `json:"difference"`
	Imported        int              `json:"imported"`
}

// confirmStatement persists a reviewed parse result as a statement with its
// expenses.
func (h *Handler) confirmStatement(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
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

	stmt, err := h.stmtSvc.Create(r.Context(), params)
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

	resp := confirmResponse{
		StatementID:     stmt.ID,
		Status:          stmt.Status,
		CalculatedTotal: stmt.CalculatedTotal,
		Difference:      stmt.Difference,
		Imported:        len(params.Expenses),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/BiblioGo/LibraryApp/internal/core/ports"
	"github.com/BiblioGo/LibraryApp/internal/domain"
	"github.com/BiblioGo/LibraryApp/internal/messaging/payloads"
	"github.com/BiblioGo/LibraryApp/internal/usecase"
)

// LoanHandler serves the /loans endpoints.
type LoanHandler struct {
	loanUseCase usecase.LoanUseCase
	publisher   ports.LoanEventPublisher
	logger      *slog.Logger
}

func NewLoanHandler(uc usecase.LoanUseCase, publisher ports.LoanEventPublisher, logger *slog.Logger) *LoanHandler {
	return &LoanHandler{loanUseCase: uc, publisher: publisher, logger: logger}
}

// CreateLoan handles POST /loans/create?userId=&bookId=.
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "missing or invalid userId", h.logger)
		return
	}
	bookID, err := strconv.ParseInt(r.URL.Query().Get("bookId"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "missing or invalid bookId", h.logger)
		return
	}

	loan, err := h.loanUseCase.CreateLoan(r.Context(), userID, bookID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.publishEvent(r, loan, domain.LoanActionCreated)
	respondWithJSON(w, http.StatusCreated, loan, h.logger)
}

// ReturnLoan handles POST /loans/{id}/return.
func (h *LoanHandler) ReturnLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid loan id", h.logger)
		return
	}

	loan, err := h.loanUseCase.ReturnLoan(r.Context(), loanID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.publishEvent(r, loan, domain.LoanActionReturned)
	respondWithJSON(w, http.StatusOK, loan, h.logger)
}

// ListLoans handles GET /loans; an empty list is 204 No Content.
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanUseCase.ListLoans(r.Context())
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	if len(loans) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondWithJSON(w, http.StatusOK, loans, h.logger)
}

// ListActiveLoans handles GET /loans/active.
func (h *LoanHandler) ListActiveLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanUseCase.ListActiveLoans(r.Context())
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	if loans == nil {
		loans = []domain.Loan{}
	}
	respondWithJSON(w, http.StatusOK, loans, h.logger)
}

// LoanStats handles GET /loans/stats.
func (h *LoanHandler) LoanStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.loanUseCase.LoanStats(r.Context())
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, stats, h.logger)
}

// GetLoan handles GET /loans/{id}.
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid loan id", h.logger)
		return
	}

	loan, err := h.loanUseCase.GetLoan(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, loan, h.logger)
}

// DeleteLoan handles DELETE /loans/{id}.
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid loan id", h.logger)
		return
	}

	if err := h.loanUseCase.DeleteLoan(r.Context(), id); err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "loan deleted successfully"}, h.logger)
}

// ListLoanEvents handles GET /loans/{id}/events.
func (h *LoanHandler) ListLoanEvents(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid loan id", h.logger)
		return
	}

	events, err := h.loanUseCase.ListLoanEvents(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	if events == nil {
		events = []domain.LoanEvent{}
	}
	respondWithJSON(w, http.StatusOK, events, h.logger)
}

// publishEvent pushes a lifecycle event to the queue. Publish failures are
// logged and never fail the request: the loan is already committed.
func (h *LoanHandler) publishEvent(r *http.Request, loan *domain.Loan, action string) {
	if h.publisher == nil {
		return
	}

	payload := payloads.LoanEventPayload{
		LoanID:     loan.ID,
		UserID:     loan.UserID,
		BookID:     loan.BookID,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}
	if err := h.publisher.PublishLoanEvent(r.Context(), payload); err != nil {
		h.logger.Error("failed to publish loan event",
			"loan_id", loan.ID,
			"action", action,
			"error", err,
		)
	}
}

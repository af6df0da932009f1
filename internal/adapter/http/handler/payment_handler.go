package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http/dto"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Installment, error)
	GetInstallment(ctx context.Context, loanID string, sequenceNo int) (*domain.Installment, error)
}

// PaymentHandler handles payment-related HTTP requests.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Create records a payment against one installment of a loan.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "id")
	if loanID == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	inst, err := h.paymentUC.RecordPayment(r.Context(), req.ToUseCaseInput(loanID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record payment", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.InstallmentFromDomain(inst))
}

// GetInstallment retrieves one installment by loan and sequence number.
func (h *PaymentHandler) GetInstallment(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "id")
	if loanID == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	seq, err := strconv.Atoi(chi.URLParam(r, "seq"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sequence number", err.Error())
		return
	}

	inst, err := h.paymentUC.GetInstallment(r.Context(), loanID, seq)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get installment", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.InstallmentFromDomain(inst))
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http/dto"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

type paymentServiceStub struct {
	recordFn func(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Installment, error)
	getFn    func(ctx context.Context, loanID string, sequenceNo int) (*domain.Installment, error)
}

func (s *paymentServiceStub) RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Installment, error) {
	return s.recordFn(ctx, input)
}

func (s *paymentServiceStub) GetInstallment(ctx context.Context, loanID string, sequenceNo int) (*domain.Installment, error) {
	return s.getFn(ctx, loanID, sequenceNo)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPaymentHandler_Create_Success(t *testing.T) {
	paidDate := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	inst := &domain.Installment{
		ID:         "inst-1",
		LoanID:     "loan-1",
		SequenceNo: 1,
		DueDate:    paidDate,
		TotalDue:   decimal.NewFromInt(12400),
		PaidAmount: decimal.NewFromInt(12400),
		PaidDate:   &paidDate,
		Status:     domain.StatusPaid,
	}

	var captured usecase.RecordPaymentInput
	handler := NewPaymentHandler(&paymentServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Installment, error) {
			captured = input
			return inst, nil
		},
	})

	body, _ := json.Marshal(dto.RecordPaymentRequest{
		SequenceNo: 1,
		Amount:     decimal.NewFromInt(12400),
	})

	req := httptest.NewRequest(http.MethodPost, "/loans/loan-1/payments", bytes.NewReader(body))
	req = withURLParam(req, "id", "loan-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.LoanID != "loan-1" || captured.SequenceNo != 1 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.InstallmentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "paid" {
		t.Fatalf("expected paid status, got %s", resp.Status)
	}
}

func TestPaymentHandler_Create_Overpayment(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Installment, error) {
			return nil, domain.ErrOverpayment
		},
	})

	body, _ := json.Marshal(dto.RecordPaymentRequest{SequenceNo: 1, Amount: decimal.NewFromInt(99999)})
	req := httptest.NewRequest(http.MethodPost, "/loans/loan-1/payments", bytes.NewReader(body))
	req = withURLParam(req, "id", "loan-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestPaymentHandler_GetInstallment_BadSequence(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{
		getFn: func(ctx context.Context, loanID string, sequenceNo int) (*domain.Installment, error) {
			t.Fatal("GetInstallment should not be called for a bad sequence")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/loans/loan-1/installments/abc", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "loan-1")
	rctx.URLParams.Add("seq", "abc")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	handler.GetInstallment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

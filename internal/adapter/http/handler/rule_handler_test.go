package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http/dto"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

type ruleServiceStub struct {
	createFn     func(ctx context.Context, input usecase.CreateRuleInput) (*domain.PenaltyRule, error)
	activateFn   func(ctx context.Context, id string) (*domain.PenaltyRule, error)
	deactivateFn func(ctx context.Context, id string) error
	getActiveFn  func(ctx context.Context) (*domain.PenaltyRule, error)
	getFn        func(ctx context.Context, id string) (*domain.PenaltyRule, error)
	listFn       func(ctx context.Context, input usecase.ListRulesInput) ([]*domain.PenaltyRule, error)
}

func (s *ruleServiceStub) CreateRule(ctx context.Context, input usecase.CreateRuleInput) (*domain.PenaltyRule, error) {
	return s.createFn(ctx, input)
}

func (s *ruleServiceStub) ActivateRule(ctx context.Context, id string) (*domain.PenaltyRule, error) {
	return s.activateFn(ctx, id)
}

func (s *ruleServiceStub) DeactivateRule(ctx context.Context, id string) error {
	return s.deactivateFn(ctx, id)
}

func (s *ruleServiceStub) GetActiveRule(ctx context.Context) (*domain.PenaltyRule, error) {
	return s.getActiveFn(ctx)
}

func (s *ruleServiceStub) GetRule(ctx context.Context, id string) (*domain.PenaltyRule, error) {
	return s.getFn(ctx, id)
}

func (s *ruleServiceStub) ListRules(ctx context.Context, input usecase.ListRulesInput) ([]*domain.PenaltyRule, error) {
	return s.listFn(ctx, input)
}

func sampleRule() *domain.PenaltyRule {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.PenaltyRule{
		ID:        "rule-1",
		Name:      "standard late fee",
		RateType:  domain.RateFlat,
		Rate:      decimal.NewFromInt(100),
		GraceDays: 3,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRuleHandler_Create_Success(t *testing.T) {
	stub := &ruleServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateRuleInput) (*domain.PenaltyRule, error) {
			if input.RateType != "flat" {
				t.Errorf("expected rate type flat, got %s", input.RateType)
			}
			return sampleRule(), nil
		},
	}
	h := NewRuleHandler(stub)

	body, _ := json.Marshal(dto.CreateRuleRequest{
		Name:      "standard late fee",
		RateType:  "flat",
		Rate:      decimal.NewFromInt(100),
		GraceDays: 3,
	})
	req := httptest.NewRequest(http.MethodPost, "/rules", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RuleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.ID != "rule-1" || resp.Active {
		t.Fatalf("expected inactive rule-1, got %+v", resp)
	}
}

func TestRuleHandler_Create_InvalidRateType(t *testing.T) {
	stub := &ruleServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateRuleInput) (*domain.PenaltyRule, error) {
			return nil, domain.ErrInvalidRateType
		},
	}
	h := NewRuleHandler(stub)

	body, _ := json.Marshal(dto.CreateRuleRequest{Name: "bad", RateType: "daily-compounding"})
	req := httptest.NewRequest(http.MethodPost, "/rules", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRuleHandler_GetActive_None(t *testing.T) {
	stub := &ruleServiceStub{
		getActiveFn: func(ctx context.Context) (*domain.PenaltyRule, error) {
			return nil, nil
		},
	}
	h := NewRuleHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/rules/active", nil)
	rec := httptest.NewRecorder()

	h.GetActive(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when no rule is active, got %d", rec.Code)
	}
}

func TestRuleHandler_Activate_NotFound(t *testing.T) {
	stub := &ruleServiceStub{
		activateFn: func(ctx context.Context, id string) (*domain.PenaltyRule, error) {
			return nil, domain.ErrRuleNotFound
		},
	}
	h := NewRuleHandler(stub)

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/rules/missing/activate", nil), "id", "missing")
	rec := httptest.NewRecorder()

	h.Activate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRuleHandler_Deactivate_Success(t *testing.T) {
	var gotID string
	stub := &ruleServiceStub{
		deactivateFn: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}
	h := NewRuleHandler(stub)

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/rules/rule-1/deactivate", nil), "id", "rule-1")
	rec := httptest.NewRecorder()

	h.Deactivate(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotID != "rule-1" {
		t.Fatalf("expected rule-1 to be deactivated, got %q", gotID)
	}
}

func TestRuleHandler_List_PassesPagination(t *testing.T) {
	stub := &ruleServiceStub{
		listFn: func(ctx context.Context, input usecase.ListRulesInput) ([]*domain.PenaltyRule, error) {
			if input.Limit != 5 || input.Offset != 10 {
				t.Errorf("expected limit=5 offset=10, got %+v", input)
			}
			return []*domain.PenaltyRule{sampleRule()}, nil
		},
	}
	h := NewRuleHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/rules?limit=5&offset=10", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListRulesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Rules) != 1 {
		t.Fatalf("expected one rule, got %d", len(resp.Rules))
	}
}

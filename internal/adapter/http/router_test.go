package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http/handler"
	apimiddleware "github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http/middleware"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"name":"standard","rate_type":"flat","rate":"100","grace_days":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rules/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/loans/",
		"GET /api/v1/loans/",
		"GET /api/v1/loans/{id}",
		"GET /api/v1/loans/{id}/schedule",
		"POST /api/v1/loans/{id}/close",
		"POST /api/v1/loans/{id}/payments",
		"GET /api/v1/loans/{id}/installments/{seq}",
		"POST /api/v1/rules/",
		"GET /api/v1/rules/active",
		"POST /api/v1/rules/{id}/activate",
		"POST /api/v1/sweeps",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		HealthHandler:  &handler.HealthHandler{},
		LoanHandler:    handler.NewLoanHandler(&stubLoanService{}),
		PaymentHandler: handler.NewPaymentHandler(&stubPaymentService{}),
		RuleHandler:    handler.NewRuleHandler(&stubRuleService{}),
		SweepHandler:   handler.NewSweepHandler(&stubSweepService{}),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubLoanService struct{}

func (stubLoanService) OriginateLoan(ctx context.Context, input usecase.OriginateLoanInput) (*domain.Loan, []*domain.Installment, error) {
	return &domain.Loan{ID: "loan"}, nil, nil
}

func (stubLoanService) GetLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return &domain.Loan{ID: id}, nil
}

func (stubLoanService) GetSchedule(ctx context.Context, loanID string) (*domain.Loan, []*domain.Installment, error) {
	return &domain.Loan{ID: loanID}, nil, nil
}

func (stubLoanService) ListLoans(ctx context.Context, input usecase.ListLoansInput) ([]*domain.Loan, error) {
	return []*domain.Loan{}, nil
}

func (stubLoanService) CloseLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	return &domain.Loan{ID: loanID}, nil
}

type stubPaymentService struct{}

func (stubPaymentService) RecordPayment(ctx context.Context, input usecase.RecordPaymentInput) (*domain.Installment, error) {
	return &domain.Installment{ID: "inst"}, nil
}

func (stubPaymentService) GetInstallment(ctx context.Context, loanID string, sequenceNo int) (*domain.Installment, error) {
	return &domain.Installment{ID: "inst"}, nil
}

type stubRuleService struct{}

func (stubRuleService) CreateRule(ctx context.Context, input usecase.CreateRuleInput) (*domain.PenaltyRule, error) {
	return &domain.PenaltyRule{ID: "rule"}, nil
}

func (stubRuleService) ActivateRule(ctx context.Context, id string) (*domain.PenaltyRule, error) {
	return &domain.PenaltyRule{ID: id, Active: true}, nil
}

func (stubRuleService) DeactivateRule(ctx context.Context, id string) error {
	return nil
}

func (stubRuleService) GetActiveRule(ctx context.Context) (*domain.PenaltyRule, error) {
	return nil, nil
}

func (stubRuleService) GetRule(ctx context.Context, id string) (*domain.PenaltyRule, error) {
	return &domain.PenaltyRule{ID: id}, nil
}

func (stubRuleService) ListRules(ctx context.Context, input usecase.ListRulesInput) ([]*domain.PenaltyRule, error) {
	return []*domain.PenaltyRule{}, nil
}

type stubSweepService struct{}

func (stubSweepService) RunSweep(ctx context.Context, asOf time.Time) (*usecase.SweepReport, error) {
	return &usecase.SweepReport{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}

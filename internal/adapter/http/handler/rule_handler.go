package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http/dto"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

// RuleService defines the behavior needed by RuleHandler.
type RuleService interface {
	CreateRule(ctx context.Context, input usecase.CreateRuleInput) (*domain.PenaltyRule, error)
	ActivateRule(ctx context.Context, id string) (*domain.PenaltyRule, error)
	DeactivateRule(ctx context.Context, id string) error
	GetActiveRule(ctx context.Context) (*domain.PenaltyRule, error)
	GetRule(ctx context.Context, id string) (*domain.PenaltyRule, error)
	ListRules(ctx context.Context, input usecase.ListRulesInput) ([]*domain.PenaltyRule, error)
}

// RuleHandler handles penalty rule HTTP requests.
type RuleHandler struct {
	ruleUC RuleService
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(ruleUC RuleService) *RuleHandler {
	return &RuleHandler{ruleUC: ruleUC}
}

// Create creates a new, initially inactive penalty rule.
func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rule, err := h.ruleUC.CreateRule(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create rule", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.RuleFromDomain(rule))
}

// Get retrieves a rule by ID.
func (h *RuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing rule ID", "")
		return
	}

	rule, err := h.ruleUC.GetRule(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get rule", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RuleFromDomain(rule))
}

// GetActive retrieves the currently active rule, if any.
func (h *RuleHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	rule, err := h.ruleUC.GetActiveRule(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get active rule", err.Error())
		return
	}

	if rule == nil {
		writeError(w, http.StatusNotFound, "no active rule", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.RuleFromDomain(rule))
}

// List lists penalty rules.
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	rules, err := h.ruleUC.ListRules(r.Context(), usecase.ListRulesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list rules", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListRulesResponse{
		Rules: dto.RulesFromDomain(rules),
		Total: int64(len(rules)),
	})
}

// Activate makes a rule the single active rule.
func (h *RuleHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing rule ID", "")
		return
	}

	rule, err := h.ruleUC.ActivateRule(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to activate rule", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RuleFromDomain(rule))
}

// Deactivate switches a rule off.
func (h *RuleHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing rule ID", "")
		return
	}

	if err := h.ruleUC.DeactivateRule(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to deactivate rule", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

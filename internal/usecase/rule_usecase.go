package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
)

// RuleUseCase manages penalty rule configuration.
//
// At most one rule is active at a time. The active rule is cached with a
// short TTL; activation and deactivation invalidate the cache so sweeps and
// payments converge on the new rule quickly.
type RuleUseCase struct {
	txManager TransactionManager
	ruleRepo  PenaltyRuleRepository
	cache     Cache
	idGen     IDGenerator
}

// NewRuleUseCase creates a new RuleUseCase.
func NewRuleUseCase(txManager TransactionManager, ruleRepo PenaltyRuleRepository, cache Cache, idGen IDGenerator) *RuleUseCase {
	return &RuleUseCase{
		txManager: txManager,
		ruleRepo:  ruleRepo,
		cache:     cache,
		idGen:     idGen,
	}
}

// CreateRuleInput represents input for creating a penalty rule.
type CreateRuleInput struct {
	Name      string
	RateType  string
	Rate      decimal.Decimal
	GraceDays int
}

// CreateRule creates a new, initially inactive penalty rule.
func (uc *RuleUseCase) CreateRule(ctx context.Context, input CreateRuleInput) (*domain.PenaltyRule, error) {
	rateType, err := domain.ParseRateType(input.RateType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rule := &domain.PenaltyRule{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		RateType:  rateType,
		Rate:      input.Rate,
		GraceDays: input.GraceDays,
		Active:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

// ActivateRule makes the given rule the single active rule, deactivating any
// previously active rule in the same transaction.
func (uc *RuleUseCase) ActivateRule(ctx context.Context, id string) (*domain.PenaltyRule, error) {
	rule, err := uc.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.ruleRepo.DeactivateAll(ctx, tx, now); err != nil {
		return nil, err
	}

	if err := uc.ruleRepo.SetActive(ctx, tx, id, true, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx)

	rule.Active = true
	rule.UpdatedAt = now

	return rule, nil
}

// DeactivateRule switches a rule off. With no active rule, penalty accrual
// becomes a no-op.
func (uc *RuleUseCase) DeactivateRule(ctx context.Context, id string) error {
	if _, err := uc.ruleRepo.GetByID(ctx, id); err != nil {
		return err
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.ruleRepo.SetActive(ctx, tx, id, false, now); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.invalidateCache(ctx)

	return nil
}

// GetActiveRule returns the currently active rule, or nil when none is
// configured. The result is cached briefly.
func (uc *RuleUseCase) GetActiveRule(ctx context.Context) (*domain.PenaltyRule, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, ActiveRuleCacheKey); err == nil && cached != nil {
			var rule domain.PenaltyRule
			if err := json.Unmarshal(cached, &rule); err == nil {
				if rule.ID == "" {
					return nil, nil
				}

				return &rule, nil
			}
		}
	}

	rule, err := uc.ruleRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		snapshot := rule
		if snapshot == nil {
			// Cache the absence too, so a missing rule does not hammer the DB.
			snapshot = &domain.PenaltyRule{}
		}

		if data, err := json.Marshal(snapshot); err == nil {
			_ = uc.cache.Set(ctx, ActiveRuleCacheKey, data, ActiveRuleCacheTTL)
		}
	}

	return rule, nil
}

// GetRule retrieves a rule by ID.
func (uc *RuleUseCase) GetRule(ctx context.Context, id string) (*domain.PenaltyRule, error) {
	return uc.ruleRepo.GetByID(ctx, id)
}

// ListRulesInput represents input for listing rules.
type ListRulesInput struct {
	Limit  int
	Offset int
}

// ListRules lists penalty rules with pagination.
func (uc *RuleUseCase) ListRules(ctx context.Context, input ListRulesInput) ([]*domain.PenaltyRule, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.ruleRepo.List(ctx, limit, offset)
}

func (uc *RuleUseCase) invalidateCache(ctx context.Context) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, ActiveRuleCacheKey)
	}
}

package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/domain"
)

// AccrualUseCase runs the periodic penalty-accrual sweep over outstanding
// installments.
type AccrualUseCase struct {
	instRepo   InstallmentRepository
	ruleUC     ActiveRuleProvider
	outboxRepo OutboxRepository
	txManager  TransactionManager
	idGen      IDGenerator
	logger     zerolog.Logger
	workers    int
	pageSize   int
}

// AccrualConfig configures the sweep.
type AccrualConfig struct {
	Workers  int
	PageSize int
}

// NewAccrualUseCase creates a new AccrualUseCase.
func NewAccrualUseCase(
	instRepo InstallmentRepository,
	ruleUC ActiveRuleProvider,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	idGen IDGenerator,
	logger zerolog.Logger,
	cfg AccrualConfig,
) *AccrualUseCase {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultSweepWorkers
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultSweepPageSize
	}

	return &AccrualUseCase{
		instRepo:   instRepo,
		ruleUC:     ruleUC,
		outboxRepo: outboxRepo,
		txManager:  txManager,
		idGen:      idGen,
		logger:     logger,
		workers:    cfg.Workers,
		pageSize:   cfg.PageSize,
	}
}

// SweepFailure records one installment that could not be processed.
type SweepFailure struct {
	InstallmentID string
	LoanID        string
	SequenceNo    int
	Err           error
}

// SweepReport summarizes one accrual sweep.
type SweepReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	RuleID     string
	Processed  int
	Updated    int
	Failures   []SweepFailure
}

// RunSweep computes penalties and re-derives status for every outstanding
// installment due on or before asOf.
//
// The active rule is read once and used for the entire sweep, so a rule
// change mid-sweep never splits one run across two rules. Each installment
// is handled by exactly one worker; a failure on one installment is recorded
// and the sweep continues.
func (uc *AccrualUseCase) RunSweep(ctx context.Context, asOf time.Time) (*SweepReport, error) {
	report := &SweepReport{StartedAt: time.Now().UTC()}

	rule, err := uc.ruleUC.GetActiveRule(ctx)
	if err != nil {
		return nil, err
	}

	if rule != nil {
		report.RuleID = rule.ID
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		jobs    = make(chan *domain.Installment)
		updated int
	)

	for w := 0; w < uc.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for inst := range jobs {
				if err := uc.accrueOne(ctx, inst, rule, asOf); err != nil {
					mu.Lock()
					report.Failures = append(report.Failures, SweepFailure{
						InstallmentID: inst.ID,
						LoanID:        inst.LoanID,
						SequenceNo:    inst.SequenceNo,
						Err:           err,
					})
					mu.Unlock()

					uc.logger.Warn().
						Err(err).
						Str("installment_id", inst.ID).
						Str("loan_id", inst.LoanID).
						Int("sequence_no", inst.SequenceNo).
						Msg("accrual failed for installment")

					continue
				}

				mu.Lock()
				updated++
				mu.Unlock()
			}
		}()
	}

	offset := 0
feed:
	for {
		page, err := uc.instRepo.ListOutstanding(ctx, asOf, uc.pageSize, offset)
		if err != nil {
			close(jobs)
			wg.Wait()

			return nil, err
		}

		if len(page) == 0 {
			break
		}

		for _, inst := range page {
			select {
			case <-ctx.Done():
				break feed
			case jobs <- inst:
				report.Processed++
			}
		}

		if len(page) < uc.pageSize {
			break
		}

		offset += uc.pageSize
	}

	close(jobs)
	wg.Wait()

	report.Updated = updated
	report.FinishedAt = time.Now().UTC()

	if err := uc.recordSweepEvent(ctx, report); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to record sweep event")
	}

	return report, ctx.Err()
}

// accrueOne computes and persists penalty and status for one installment.
func (uc *AccrualUseCase) accrueOne(ctx context.Context, inst *domain.Installment, rule *domain.PenaltyRule, asOf time.Time) error {
	accrual, err := domain.ComputePenalty(inst, rule, asOf)
	if err != nil {
		return err
	}

	inst.OverdueDays = accrual.OverdueDays
	inst.PenaltyAmount = accrual.Penalty

	status, err := domain.DeriveStatus(inst, rule, asOf)
	if err != nil {
		return err
	}

	return uc.instRepo.UpdateAccrual(ctx, inst.ID, accrual.OverdueDays, accrual.Penalty, status, time.Now().UTC())
}

func (uc *AccrualUseCase) recordSweepEvent(ctx context.Context, report *SweepReport) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   uc.idGen.Generate(),
		AggregateType: domain.AggregateTypeSweep,
		EventType:     domain.EventTypeSweepCompleted,
		Payload: map[string]any{
			"rule_id":   report.RuleID,
			"processed": report.Processed,
			"updated":   report.Updated,
			"failed":    len(report.Failures),
			"swept_at":  report.FinishedAt.Format(time.RFC3339),
		},
		CreatedAt: report.FinishedAt,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/adapter/http/dto"
	"github.com/Noxety/Microfinace-Mini-ERP-sub000/internal/usecase"
)

// SweepService defines the behavior needed by SweepHandler.
type SweepService interface {
	RunSweep(ctx context.Context, asOf time.Time) (*usecase.SweepReport, error)
}

// SweepHandler triggers penalty accrual sweeps on demand.
type SweepHandler struct {
	accrualUC SweepService
}

// NewSweepHandler creates a new SweepHandler.
func NewSweepHandler(accrualUC SweepService) *SweepHandler {
	return &SweepHandler{accrualUC: accrualUC}
}

// Run executes one accrual sweep. The as_of date defaults to now, so the
// scheduled job and the manual trigger share one code path.
func (h *SweepHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req dto.RunSweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asOf := time.Now().UTC()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	report, err := h.accrualUC.RunSweep(r.Context(), asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sweep failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SweepReportFromUseCase(report))
}

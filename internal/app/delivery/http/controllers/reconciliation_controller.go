package controllers

import (
	"context"
	"errors"
	"net/http"

	"claimsync-service/internal/app/config"
	"claimsync-service/internal/app/contracts"
	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/exceptions"
	"claimsync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type ReconciliationController struct {
	Log                   *zap.Logger
	ReconciliationUsecase contracts.ReconciliationUsecase
	InternalConfig        *config.InternalConfig
}

func NewReconciliationController(logger *zap.Logger, reconciliationUsecase contracts.ReconciliationUsecase, internalConfig *config.InternalConfig) *ReconciliationController {
	return &ReconciliationController{
		Log:                   logger,
		ReconciliationUsecase: reconciliationUsecase,
		InternalConfig:        internalConfig,
	}
}

// RunOnce handles POST /reconciliation/runs. The run is synchronous; an
// aborted run still reports what it did before failing.
func (ctrl *ReconciliationController) RunOnce(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if timeout := ctrl.InternalConfig.Reconciliation.RunTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	summary, err := ctrl.ReconciliationUsecase.RunOnce(ctx)
	if err != nil {
		if summary != nil {
			ctrl.Log.Warn("ReconciliationController.RunOnce run aborted",
				zap.Int("files_downloaded", summary.FilesDownloaded),
				zap.Int(constvars.LoggingClaimsUpdatedKey, summary.ClaimsUpdated),
				zap.Error(err),
			)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReconciliationRunSuccess, utils.ConvertReconciliationSummaryToResponse(summary))
}

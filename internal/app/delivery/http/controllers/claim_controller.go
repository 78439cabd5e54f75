package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"claimsync-service/internal/app/contracts"
	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/exceptions"
	"claimsync-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ClaimController struct {
	Log          *zap.Logger
	ClaimUsecase contracts.ClaimUsecase
}

func NewClaimController(logger *zap.Logger, claimUsecase contracts.ClaimUsecase) *ClaimController {
	return &ClaimController{
		Log:          logger,
		ClaimUsecase: claimUsecase,
	}
}

// SubmitClaim handles POST /claims/{claimID}/submissions
func (ctrl *ClaimController) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	claimID := strings.TrimSpace(chi.URLParam(r, constvars.URLParamClaimID))
	if claimID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamClaimID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), submissionTimeout)
	defer cancel()

	result, err := ctrl.ClaimUsecase.SubmitClaim(ctx, claimID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ClaimSubmittedSuccess, utils.ConvertSubmissionResultToResponse(result))
}

// FindStatusEvents handles GET /claims/{claimID}/status-events
func (ctrl *ClaimController) FindStatusEvents(w http.ResponseWriter, r *http.Request) {
	claimID := strings.TrimSpace(chi.URLParam(r, constvars.URLParamClaimID))
	if claimID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamClaimID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	events, err := ctrl.ClaimUsecase.FindStatusEvents(ctx, claimID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ClaimStatusEventsFoundSuccess, utils.ConvertClaimStatusEventsToResponse(events))
}

package reconciliation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"claimsync-service/internal/app/config"
	"claimsync-service/internal/app/contracts"
	"claimsync-service/internal/app/models"
	"claimsync-service/internal/app/services/edi/parsers"
	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type reconciliationUsecase struct {
	ResponseFileRepository contracts.ResponseFileRepository
	Transport              contracts.Transport
	Locker                 contracts.LockerService
	Engine                 *Engine
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
	fetchLimiter           *rate.Limiter
	now                    func() time.Time
}

func NewReconciliationUsecase(
	responseFileRepository contracts.ResponseFileRepository,
	transport contracts.Transport,
	locker contracts.LockerService,
	engine *Engine,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ReconciliationUsecase {
	cfg := internalConfig.Reconciliation
	limit := rate.Inf
	if cfg.FetchRatePerSecond > 0 {
		limit = rate.Limit(cfg.FetchRatePerSecond)
	}
	burst := cfg.FetchBurst
	if burst <= 0 {
		burst = 1
	}

	return &reconciliationUsecase{
		ResponseFileRepository: responseFileRepository,
		Transport:              transport,
		Locker:                 locker,
		Engine:                 engine,
		InternalConfig:         internalConfig,
		Log:                    logger,
		fetchLimiter:           rate.NewLimiter(limit, burst),
		now:                    func() time.Time { return time.Now().UTC() },
	}
}

// RunOnce first replays stored files an earlier run left pending, then
// reconciles every inbound file not seen before. Listing or fetching
// failures and a done ctx abort the run and are returned together with the
// partial summary; failures inside one file are recorded and the run goes on
// with the next file.
func (uc *reconciliationUsecase) RunOnce(ctx context.Context) (*models.ReconciliationSummary, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reconciliationUsecase.RunOnce called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ttl := uc.InternalConfig.Reconciliation.LeaderLockTTL
	acquired, token, err := uc.Locker.TryLock(ctx, constvars.RedisKeyReconciliationLeader, ttl)
	if err != nil {
		uc.Log.Error("reconciliationUsecase.RunOnce error acquiring leader lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrReconciliationInProgress()
	}
	defer uc.Locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyReconciliationLeader, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go uc.refreshLeaderLock(refreshCtx, token, ttl)

	summary := models.NewReconciliationSummary(uc.now())
	defer func() { summary.FinishedAt = uc.now() }()

	stored, err := uc.ResponseFileRepository.ListPendingResponseFiles(ctx)
	if err != nil {
		summary.Errors = append(summary.Errors, err.Error())
		return summary, err
	}
	for _, file := range stored {
		uc.Log.Info("reconciliationUsecase.RunOnce replaying pending response file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileNameKey, file.FileName),
		)
		summary.FilesReplayed++
		if err := uc.applyFile(ctx, file.FileName, file.Content, file.FileType, summary); err != nil {
			return summary, err
		}
	}

	files, err := uc.Transport.ListInboundFiles(ctx)
	if err != nil {
		summary.Errors = append(summary.Errors, err.Error())
		return summary, err
	}
	summary.FilesListed = len(files)

	known, err := uc.ResponseFileRepository.ListKnownResponseFilenames(ctx)
	if err != nil {
		summary.Errors = append(summary.Errors, err.Error())
		return summary, err
	}

	pending := make([]models.InboundFile, 0, len(files))
	for _, file := range files {
		if _, seen := known[file.Name]; !seen {
			pending = append(pending, file)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		if !pending[i].LastModified.Equal(pending[j].LastModified) {
			return pending[i].LastModified.Before(pending[j].LastModified)
		}
		return pending[i].Name < pending[j].Name
	})

	uc.Log.Info("reconciliationUsecase.RunOnce listed inbound files",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingFileCountKey, len(files)),
		zap.Int("new_file_count", len(pending)),
	)

	for _, file := range pending {
		if err := uc.fetchLimiter.Wait(ctx); err != nil {
			summary.Errors = append(summary.Errors, err.Error())
			return summary, err
		}

		content, err := uc.Transport.FetchFile(ctx, file.Name)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", file.Name, err))
			return summary, err
		}
		summary.FilesDownloaded++

		if err := uc.reconcileFile(ctx, file.Name, content, summary); err != nil {
			return summary, err
		}
	}

	uc.Log.Info("reconciliationUsecase.RunOnce finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("files_downloaded", summary.FilesDownloaded),
		zap.Int("files_replayed", summary.FilesReplayed),
		zap.Int("files_failed", summary.FilesFailed),
		zap.Int(constvars.LoggingClaimsUpdatedKey, summary.ClaimsUpdated),
		zap.Int("unmatched_count", summary.UnmatchedCount),
	)
	return summary, nil
}

// reconcileFile persists the raw file before applying it so a crash never
// causes the same file to be fetched and applied twice. A file whose
// processing is interrupted stays pending and is replayed by the next run.
func (uc *reconciliationUsecase) reconcileFile(ctx context.Context, fileName, content string, summary *models.ReconciliationSummary) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	fileType := DetectResponseFileType(fileName)

	err := uc.ResponseFileRepository.SaveResponseFile(ctx, &models.ResponseFile{
		FileName:         fileName,
		FileType:         fileType,
		Content:          content,
		ProcessingStatus: models.ProcessingStatusPending,
		DownloadedAt:     uc.now(),
	})
	if err != nil {
		summary.FilesFailed++
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", fileName, err))
		uc.Log.Error("reconciliationUsecase.reconcileFile error saving response file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileNameKey, fileName),
			zap.Error(err),
		)
		return nil
	}

	return uc.applyFile(ctx, fileName, content, fileType, summary)
}

// applyFile processes a saved file and records its outcome. It returns an
// error only when processing was interrupted, in which case the file is left
// pending.
func (uc *reconciliationUsecase) applyFile(ctx context.Context, fileName, content string, fileType models.ResponseFileType, summary *models.ReconciliationSummary) error {
	result, err := uc.ProcessFile(ctx, fileName, content)
	if err != nil && ctx.Err() != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", fileName, err))
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("reconciliationUsecase.applyFile response file left pending",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileNameKey, fileName),
			zap.Error(err),
		)
		return err
	}
	if err != nil {
		summary.FilesFailed++
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", fileName, err))
		uc.recordProcessingResult(ctx, fileName, models.ProcessingStatusFailed, 0, err.Error())
		return nil
	}

	summary.FilesProcessed[fileType]++
	summary.ClaimsUpdated += result.ClaimsUpdated
	summary.UnmatchedCount += result.UnmatchedCount
	for _, entryErr := range result.Errors {
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %s", fileName, entryErr))
	}
	uc.recordProcessingResult(ctx, fileName, models.ProcessingStatusProcessed, result.ClaimsUpdated, strings.Join(result.Errors, "; "))
	return nil
}

func (uc *reconciliationUsecase) recordProcessingResult(ctx context.Context, fileName string, status models.ProcessingStatus, claimsUpdated int, errorMessage string) {
	err := uc.ResponseFileRepository.UpdateResponseFileProcessingResult(ctx, fileName, status, claimsUpdated, errorMessage)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("reconciliationUsecase.recordProcessingResult error updating response file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileNameKey, fileName),
			zap.Error(err),
		)
	}
}

// ProcessFile parses one response file by its detected type and applies it
// to the claim store.
func (uc *reconciliationUsecase) ProcessFile(ctx context.Context, fileName, content string) (*models.FileResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	fileType := DetectResponseFileType(fileName)
	uc.Log.Info("reconciliationUsecase.ProcessFile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileNameKey, fileName),
		zap.String(constvars.LoggingFileTypeKey, string(fileType)),
	)

	result := &models.FileResult{FileName: fileName, FileType: fileType}

	var applyErr error
	switch fileType {
	case models.ResponseFileTypeAcknowledgment:
		ack, err := parsers.ParseAcknowledgment(content)
		if err != nil {
			return nil, err
		}
		uc.warnUnknownCodes(ctx, fileName, ack.UnknownCodes)
		applyErr = uc.Engine.ApplyAcknowledgment(ctx, ack, result)
	case models.ResponseFileTypeStatus:
		response, err := parsers.ParseStatusResponse(content)
		if err != nil {
			return nil, err
		}
		uc.warnUnknownCodes(ctx, fileName, response.UnknownCodes)
		applyErr = uc.Engine.ApplyStatusResponse(ctx, response, result)
	case models.ResponseFileTypeRemittance:
		remittance, err := parsers.ParseRemittance(content)
		if err != nil {
			return nil, err
		}
		uc.warnUnknownCodes(ctx, fileName, remittance.UnknownCodes)
		applyErr = uc.Engine.ApplyRemittance(ctx, remittance, result)
	default:
		return nil, exceptions.ErrUnknownResponseFileType(fileName)
	}
	if applyErr != nil {
		uc.Log.Error("reconciliationUsecase.ProcessFile interrupted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFileNameKey, fileName),
			zap.Int(constvars.LoggingClaimsUpdatedKey, result.ClaimsUpdated),
			zap.Error(applyErr),
		)
		return nil, exceptions.ErrResponseFileInterrupted(applyErr, fileName)
	}

	uc.Log.Info("reconciliationUsecase.ProcessFile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileNameKey, fileName),
		zap.Int(constvars.LoggingClaimsUpdatedKey, result.ClaimsUpdated),
		zap.Int("unmatched_count", result.UnmatchedCount),
	)
	return result, nil
}

// warnUnknownCodes surfaces payer codes missing from the code tables. They
// were already mapped to their lenient defaults by the parser.
func (uc *reconciliationUsecase) warnUnknownCodes(ctx context.Context, fileName string, unknownCodes []string) {
	if len(unknownCodes) == 0 {
		return
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Warn("reconciliationUsecase.ProcessFile unknown codes in response file",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileNameKey, fileName),
		zap.Strings(constvars.LoggingResponseCodeKey, unknownCodes),
	)
}

func (uc *reconciliationUsecase) refreshLeaderLock(ctx context.Context, token string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	tick := time.NewTicker(ttl / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := uc.Locker.Refresh(ctx, constvars.RedisKeyReconciliationLeader, token, ttl); err != nil {
				uc.Log.Warn("reconciliationUsecase.RunOnce failed to refresh leader lock TTL", zap.Error(err))
			}
		}
	}
}

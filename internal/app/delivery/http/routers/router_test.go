package routers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"claimsync-service/internal/app/config"
	"claimsync-service/internal/app/delivery/http/controllers"
	"claimsync-service/internal/app/delivery/http/middlewares"
	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockClaimUsecase struct {
	mock.Mock
}

func (m *MockClaimUsecase) SubmitClaim(ctx context.Context, claimID string) (*models.SubmissionResult, error) {
	args := m.Called(ctx, claimID)
	result, _ := args.Get(0).(*models.SubmissionResult)
	return result, args.Error(1)
}

func (m *MockClaimUsecase) FindStatusEvents(ctx context.Context, claimID string) ([]models.ClaimStatusEvent, error) {
	args := m.Called(ctx, claimID)
	events, _ := args.Get(0).([]models.ClaimStatusEvent)
	return events, args.Error(1)
}

type MockReconciliationUsecase struct {
	mock.Mock
}

func (m *MockReconciliationUsecase) RunOnce(ctx context.Context) (*models.ReconciliationSummary, error) {
	args := m.Called(ctx)
	summary, _ := args.Get(0).(*models.ReconciliationSummary)
	return summary, args.Error(1)
}

func (m *MockReconciliationUsecase) ProcessFile(ctx context.Context, fileName, content string) (*models.FileResult, error) {
	args := m.Called(ctx, fileName, content)
	result, _ := args.Get(0).(*models.FileResult)
	return result, args.Error(1)
}

const testAPIKey = "test-operator-api-key-12345"

type responseBody struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
}

func newTestRouter() (*chi.Mux, *MockClaimUsecase, *MockReconciliationUsecase) {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:  "api",
			Version:         "v1",
			MaxRequests:     1000,
			APIKey:          testAPIKey,
			APIKeyRateLimit: 1000,
		},
	}

	claimUsecase := new(MockClaimUsecase)
	reconciliationUsecase := new(MockReconciliationUsecase)

	router := chi.NewRouter()
	SetupRoutes(router, internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		controllers.NewClaimController(logger, claimUsecase),
		controllers.NewReconciliationController(logger, reconciliationUsecase, internalConfig),
	)
	return router, claimUsecase, reconciliationUsecase
}

func serve(t *testing.T, router http.Handler, method, path string, authenticated bool) (*httptest.ResponseRecorder, responseBody) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authenticated {
		req.Header.Set(constvars.HeaderAPIKey, testAPIKey)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var body responseBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr, body
}

func TestHealthz(t *testing.T) {
	router, _, _ := newTestRouter()

	rr, body := serve(t, router, "GET", "/healthz", false)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, body.Success)
	assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
}

func TestClaimRoutes(t *testing.T) {
	t.Run("Submit Claim", func(t *testing.T) {
		router, claimUsecase, _ := newTestRouter()
		submittedAt := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
		claimUsecase.On("SubmitClaim", mock.Anything, "claim-1").Return(&models.SubmissionResult{
			ClaimID:       "claim-1",
			ControlNumber: "123456789",
			FileName:      "CLAIMSYNC_20240115103000_0a1b2c3d.837",
			Status:        models.ClaimStatusSubmitted,
			SegmentCount:  30,
			SubmittedAt:   submittedAt,
		}, nil)

		rr, body := serve(t, router, "POST", "/api/v1/claims/claim-1/submissions", true)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, constvars.ClaimSubmittedSuccess, body.Message)
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.Equal(t, "123456789", data["control_number"])
		assert.Equal(t, "submitted", data["status"])
		claimUsecase.AssertExpectations(t)
	})

	t.Run("Submit Claim Maps Error Status", func(t *testing.T) {
		router, claimUsecase, _ := newTestRouter()
		claimUsecase.On("SubmitClaim", mock.Anything, "claim-2").
			Return(nil, exceptions.ErrClaimNotSubmittable("claim-2", "paid"))

		rr, body := serve(t, router, "POST", "/api/v1/claims/claim-2/submissions", true)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.False(t, body.Success)
		assert.Equal(t, constvars.ErrClientClaimNotSubmittable, body.Message)
	})

	t.Run("Submit Claim Transport Failure", func(t *testing.T) {
		router, claimUsecase, _ := newTestRouter()
		claimUsecase.On("SubmitClaim", mock.Anything, "claim-3").
			Return(nil, exceptions.ErrTransportDeliver(errors.New("connection refused"), "x.837"))

		rr, _ := serve(t, router, "POST", "/api/v1/claims/claim-3/submissions", true)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})

	t.Run("Status Events", func(t *testing.T) {
		router, claimUsecase, _ := newTestRouter()
		claimUsecase.On("FindStatusEvents", mock.Anything, "claim-1").Return([]models.ClaimStatusEvent{
			{ClaimID: "claim-1", PreviousStatus: models.ClaimStatusDraft, NewStatus: models.ClaimStatusSubmitted, Source: models.EventSourceSubmission},
			{ClaimID: "claim-1", PreviousStatus: models.ClaimStatusAccepted, NewStatus: models.ClaimStatusPaid, Source: models.EventSourceRemittance,
				PaymentAmount: decimal.NewNullDecimal(decimal.RequireFromString("120"))},
		}, nil)

		rr, body := serve(t, router, "GET", "/api/v1/claims/claim-1/status-events", true)

		assert.Equal(t, http.StatusOK, rr.Code)
		var data []map[string]interface{}
		require.NoError(t, json.Unmarshal(body.Data, &data))
		require.Len(t, data, 2)
		assert.Nil(t, data[0]["payment_amount"])
		assert.Equal(t, "835", data[1]["source"])
		assert.Equal(t, "120.00", data[1]["payment_amount"])
	})

	t.Run("Unknown Claim", func(t *testing.T) {
		router, claimUsecase, _ := newTestRouter()
		claimUsecase.On("FindStatusEvents", mock.Anything, "missing").Return(nil, exceptions.ErrClaimNotFound(nil, "missing"))

		rr, _ := serve(t, router, "GET", "/api/v1/claims/missing/status-events", true)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Requires API Key", func(t *testing.T) {
		router, claimUsecase, _ := newTestRouter()

		rr, _ := serve(t, router, "POST", "/api/v1/claims/claim-1/submissions", false)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		claimUsecase.AssertNotCalled(t, "SubmitClaim", mock.Anything, mock.Anything)
	})
}

func TestReconciliationRoutes(t *testing.T) {
	t.Run("Run Once", func(t *testing.T) {
		router, _, reconciliationUsecase := newTestRouter()
		summary := models.NewReconciliationSummary(time.Date(2024, time.January, 16, 9, 0, 0, 0, time.UTC))
		summary.FilesListed = 3
		summary.FilesDownloaded = 3
		summary.FilesProcessed[models.ResponseFileTypeAcknowledgment] = 3
		summary.ClaimsUpdated = 2
		reconciliationUsecase.On("RunOnce", mock.Anything).Return(summary, nil)

		rr, body := serve(t, router, "POST", "/api/v1/reconciliation/runs", true)

		assert.Equal(t, http.StatusOK, rr.Code)
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(body.Data, &data))
		assert.EqualValues(t, 2, data["claims_updated"])
		assert.Equal(t, map[string]interface{}{"999": float64(3)}, data["files_processed"])
	})

	t.Run("Run In Progress", func(t *testing.T) {
		router, _, reconciliationUsecase := newTestRouter()
		reconciliationUsecase.On("RunOnce", mock.Anything).Return(nil, exceptions.ErrReconciliationInProgress())

		rr, body := serve(t, router, "POST", "/api/v1/reconciliation/runs", true)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, constvars.ErrClientReconciliationInProgress, body.Message)
	})
}

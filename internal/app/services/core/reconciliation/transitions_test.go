package reconciliation

import (
	"testing"
	"time"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/app/services/core/claims/claimstest"
	"claimsync-service/internal/app/services/edi/parsers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transitionTime = time.Date(2024, time.January, 16, 9, 0, 0, 0, time.UTC)

func claimIn(status models.ClaimStatus) models.Claim {
	claim := *claimstest.SubmittedClaim("claim-1", "123456789")
	claim.Status = status
	return claim
}

func TestAcknowledgmentOutcomes(t *testing.T) {
	t.Run("one outcome per transaction", func(t *testing.T) {
		ack := &parsers.Acknowledgment{
			OriginalControlNumber: "323456789",
			Accepted:              true,
			StatusCode:            "P",
			Transactions: []parsers.TransactionOutcome{
				{ControlNumber: "323456789", Code: "A", Accepted: true},
				{ControlNumber: "323456790", Code: "R", Description: "Rejected", ErrorCodes: []string{"I5"}},
			},
		}

		outcomes := acknowledgmentOutcomes(ack)

		require.Len(t, outcomes, 2)
		assert.Equal(t, "323456789", outcomes[0].ControlNumber)
		assert.True(t, outcomes[0].Accepted)
		assert.Equal(t, "323456790", outcomes[1].ControlNumber)
		assert.False(t, outcomes[1].Accepted)
		assert.Equal(t, []string{"I5"}, outcomes[1].ErrorCodes)
	})

	t.Run("rejected group overrides accepted transaction", func(t *testing.T) {
		ack := &parsers.Acknowledgment{
			OriginalControlNumber: "123456789",
			StatusCode:            "R",
			StatusDescription:     "Rejected",
			ErrorCodes:            []string{"5"},
			Transactions: []parsers.TransactionOutcome{
				{Code: "A", Accepted: true},
			},
		}

		outcomes := acknowledgmentOutcomes(ack)

		require.Len(t, outcomes, 1)
		assert.Equal(t, "123456789", outcomes[0].ControlNumber)
		assert.False(t, outcomes[0].Accepted)
		assert.Equal(t, "R", outcomes[0].Code)
		assert.Equal(t, []string{"5"}, outcomes[0].ErrorCodes)
	})

	t.Run("group level only", func(t *testing.T) {
		ack := &parsers.Acknowledgment{OriginalControlNumber: "123456789", Accepted: true, StatusCode: "A"}

		outcomes := acknowledgmentOutcomes(ack)

		require.Len(t, outcomes, 1)
		assert.Equal(t, "123456789", outcomes[0].ControlNumber)
		assert.True(t, outcomes[0].Accepted)
		assert.Equal(t, ack.IsReceived(), outcomes[0].Accepted)
	})

	t.Run("group level rejection", func(t *testing.T) {
		ack := &parsers.Acknowledgment{OriginalControlNumber: "123456789", StatusCode: "R", ErrorCodes: []string{"5"}}

		outcomes := acknowledgmentOutcomes(ack)

		require.Len(t, outcomes, 1)
		assert.False(t, outcomes[0].Accepted)
		assert.Equal(t, ack.IsReceived(), outcomes[0].Accepted)
		assert.Equal(t, []string{"5"}, outcomes[0].ErrorCodes)
	})
}

func TestAcknowledgmentTransition(t *testing.T) {
	accepted := acknowledgmentOutcome{ControlNumber: "123456789", Accepted: true, Code: "A", Description: "Accepted"}
	rejected := acknowledgmentOutcome{ControlNumber: "123456789", Code: "R", Description: "Rejected", ErrorCodes: []string{"I5", "8"}}

	t.Run("submitted and accepted becomes acknowledged", func(t *testing.T) {
		tr := acknowledgmentTransition(claimIn(models.ClaimStatusSubmitted), accepted, transitionTime)

		require.True(t, tr.apply)
		assert.Equal(t, models.ClaimStatusAcknowledged, *tr.patch.Status)
		assert.Equal(t, transitionTime, *tr.patch.AcknowledgedAt)
		assert.Equal(t, models.EventSourceAcknowledgment, tr.event.Source)
		assert.Equal(t, "A", tr.event.ResponseCode)
	})

	t.Run("acknowledged and rejected becomes rejected", func(t *testing.T) {
		tr := acknowledgmentTransition(claimIn(models.ClaimStatusAcknowledged), rejected, transitionTime)

		require.True(t, tr.apply)
		assert.Equal(t, models.ClaimStatusRejected, *tr.patch.Status)
		assert.Equal(t, "Rejected (I5, 8)", *tr.patch.RejectionReason)
		assert.Equal(t, []string{"I5", "8"}, tr.patch.RejectionCodes)
		assert.Equal(t, transitionTime, *tr.patch.RejectedAt)
	})

	t.Run("other statuses are left alone", func(t *testing.T) {
		for _, status := range []models.ClaimStatus{
			models.ClaimStatusDraft,
			models.ClaimStatusAccepted,
			models.ClaimStatusPending,
			models.ClaimStatusPaid,
			models.ClaimStatusDenied,
		} {
			assert.False(t, acknowledgmentTransition(claimIn(status), accepted, transitionTime).apply, status)
			assert.False(t, acknowledgmentTransition(claimIn(status), rejected, transitionTime).apply, status)
		}
	})

	t.Run("acknowledged claim is not acknowledged twice", func(t *testing.T) {
		assert.False(t, acknowledgmentTransition(claimIn(models.ClaimStatusAcknowledged), accepted, transitionTime).apply)
	})
}

func TestStatusResponseTransition(t *testing.T) {
	statusDate := time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC)

	t.Run("accepted category stamps the status date", func(t *testing.T) {
		entry := parsers.ClaimStatusEntry{
			ControlNumber:    "123456789",
			PayerClaimNumber: "PCN0001",
			CategoryCode:     "A2",
			StatusCode:       "20",
			Status:           models.ClaimStatusAccepted,
			Description:      "Accepted for adjudication",
			StatusDate:       &statusDate,
		}

		tr := statusResponseTransition(claimIn(models.ClaimStatusAcknowledged), entry, transitionTime)

		require.True(t, tr.apply)
		assert.Equal(t, models.ClaimStatusAccepted, *tr.patch.Status)
		assert.Equal(t, statusDate, *tr.patch.AcceptedAt)
		assert.Equal(t, "PCN0001", *tr.patch.PayerClaimNumber)
		assert.Equal(t, "A2:20", tr.event.ResponseCode)
		assert.Equal(t, models.EventSourceStatusResponse, tr.event.Source)
	})

	t.Run("rejected category records the codes", func(t *testing.T) {
		entry := parsers.ClaimStatusEntry{
			CategoryCode:            "A3",
			StatusCode:              "21",
			Status:                  models.ClaimStatusRejected,
			Description:             "Returned as unprocessable claim",
			AdditionalCategoryCodes: []string{"A7"},
		}

		tr := statusResponseTransition(claimIn(models.ClaimStatusSubmitted), entry, transitionTime)

		require.True(t, tr.apply)
		assert.Equal(t, models.ClaimStatusRejected, *tr.patch.Status)
		assert.Equal(t, []string{"A3:21", "A7"}, tr.patch.RejectionCodes)
		assert.Equal(t, "Returned as unprocessable claim", *tr.patch.RejectionReason)
		assert.Equal(t, transitionTime, *tr.patch.RejectedAt)
	})

	t.Run("adjudicated claims are never moved", func(t *testing.T) {
		entry := parsers.ClaimStatusEntry{CategoryCode: "A3", Status: models.ClaimStatusRejected}
		assert.False(t, statusResponseTransition(claimIn(models.ClaimStatusPaid), entry, transitionTime).apply)
		assert.False(t, statusResponseTransition(claimIn(models.ClaimStatusDenied), entry, transitionTime).apply)
	})
}

func TestRemittanceTransition(t *testing.T) {
	t.Run("positive amount is paid", func(t *testing.T) {
		payment := parsers.ClaimPayment{
			ControlNumber:    "123456789",
			StatusCode:       "1",
			PaidAmount:       decimal.RequireFromString("120.00"),
			PayerClaimNumber: "PCN0001",
		}

		tr := remittanceTransition(claimIn(models.ClaimStatusAccepted), payment, transitionTime)

		require.True(t, tr.apply)
		assert.Equal(t, models.ClaimStatusPaid, *tr.patch.Status)
		assert.Equal(t, transitionTime, *tr.patch.PaidAt)
		assert.True(t, tr.patch.PaidAmount.Equal(decimal.RequireFromString("120")))
		assert.Nil(t, tr.patch.RejectionReason)
		require.True(t, tr.event.PaymentAmount.Valid)
		assert.Equal(t, "120.00", tr.event.PaymentAmount.Decimal.StringFixed(2))
	})

	t.Run("zero amount is denied with its adjustments", func(t *testing.T) {
		payment := parsers.ClaimPayment{
			ControlNumber: "223456789",
			StatusCode:    "4",
			PaidAmount:    decimal.Zero,
			Adjustments: []parsers.Adjustment{
				{GroupCode: "CO", ReasonCode: "97", Amount: decimal.RequireFromString("80.00")},
			},
		}

		tr := remittanceTransition(claimIn(models.ClaimStatusSubmitted), payment, transitionTime)

		require.True(t, tr.apply)
		assert.Equal(t, models.ClaimStatusDenied, *tr.patch.Status)
		assert.Equal(t, []string{"CO-97"}, tr.patch.RejectionCodes)
		assert.Contains(t, *tr.patch.RejectionReason, "CO-97")
		assert.True(t, tr.event.PaymentAmount.Decimal.IsZero())
	})

	t.Run("applies regardless of current status", func(t *testing.T) {
		payment := parsers.ClaimPayment{PaidAmount: decimal.RequireFromString("10")}
		for _, status := range []models.ClaimStatus{models.ClaimStatusSubmitted, models.ClaimStatusRejected, models.ClaimStatusDenied} {
			assert.True(t, remittanceTransition(claimIn(status), payment, transitionTime).apply, status)
		}
	})
}

func TestDetectResponseFileType(t *testing.T) {
	cases := []struct {
		name     string
		expected models.ResponseFileType
	}{
		{"ack_0001.999", models.ResponseFileTypeAcknowledgment},
		{"ACK_0001.999", models.ResponseFileTypeAcknowledgment},
		{"status.277", models.ResponseFileTypeStatus},
		{"remit.835", models.ResponseFileTypeRemittance},
		{"remit.ERA", models.ResponseFileTypeRemittance},
		{"batch_999_20240116.txt", models.ResponseFileTypeAcknowledgment},
		{"payer_277ca.edi", models.ResponseFileTypeStatus},
		{"weekly_era.x12", models.ResponseFileTypeRemittance},
		{"835-0001.dat", models.ResponseFileTypeRemittance},
		{"report_835.999", models.ResponseFileTypeAcknowledgment},
		{"readme.txt", models.ResponseFileTypeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectResponseFileType(tc.name))
		})
	}
}

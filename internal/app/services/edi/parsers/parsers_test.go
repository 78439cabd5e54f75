package parsers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/exceptions"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(content)
}

func TestParseAcknowledgment(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		ack, err := ParseAcknowledgment(readFixture(t, "999_accepted.edi"))
		require.NoError(t, err)

		assert.Equal(t, "123456789", ack.OriginalControlNumber)
		assert.Equal(t, "000000501", ack.ISAControlNumber)
		assert.Equal(t, "501", ack.GroupControlNumber)
		assert.True(t, ack.Accepted)
		assert.Equal(t, "Accepted", ack.StatusDescription)
		require.Len(t, ack.Transactions, 1)
		assert.Equal(t, "123456789", ack.Transactions[0].ControlNumber)
		assert.True(t, ack.Transactions[0].Accepted)
		assert.Empty(t, ack.ErrorCodes)
		assert.True(t, ack.IsReceived())
	})

	t.Run("Rejected with errors", func(t *testing.T) {
		ack, err := ParseAcknowledgment(readFixture(t, "999_rejected.edi"))
		require.NoError(t, err)

		assert.False(t, ack.Accepted)
		assert.Equal(t, "Rejected", ack.StatusDescription)
		require.Len(t, ack.Transactions, 1)
		assert.False(t, ack.Transactions[0].Accepted)
		assert.Equal(t, []string{"8", "7", "5"}, ack.ErrorCodes)
		assert.Equal(t, []string{"8", "7", "5"}, ack.Transactions[0].ErrorCodes)
		assert.False(t, ack.IsReceived())
	})

	t.Run("Partially accepted", func(t *testing.T) {
		ack, err := ParseAcknowledgment(readFixture(t, "999_partial.edi"))
		require.NoError(t, err)

		assert.True(t, ack.Accepted)
		require.Len(t, ack.Transactions, 2)
		assert.True(t, ack.Transactions[0].Accepted)
		assert.False(t, ack.Transactions[1].Accepted)
		assert.Equal(t, "323456790", ack.Transactions[1].ControlNumber)
		assert.Equal(t, []string{"8", "I5"}, ack.Transactions[1].ErrorCodes)
		assert.True(t, ack.IsReceived())
	})

	t.Run("Reading twice is idempotent", func(t *testing.T) {
		content := readFixture(t, "999_accepted.edi")
		first, err := ParseAcknowledgment(content)
		require.NoError(t, err)
		second, err := ParseAcknowledgment(content)
		require.NoError(t, err)

		assert.Equal(t, first.Accepted, second.Accepted)
		assert.Equal(t, first.StatusDescription, second.StatusDescription)
		assert.Equal(t, first, second)
	})

	t.Run("Unknown outcome letter", func(t *testing.T) {
		ack, err := ParseAcknowledgment("ST*999*0001~AK1*HC*42~AK2*837*42~IK5*Q~AK9*Q*1*1*0~SE*5*0001~")
		require.NoError(t, err)

		assert.False(t, ack.Accepted)
		assert.Equal(t, "Unknown status (Q)", ack.StatusDescription)
		assert.Equal(t, []string{"Q"}, ack.UnknownCodes)
		assert.Equal(t, "42", ack.OriginalControlNumber)
	})

	t.Run("Control number falls back to envelope", func(t *testing.T) {
		ack, err := ParseAcknowledgment("GS*FA*A*B*20240101*1200*77*X*005010X231A1~AK9*A*1*1*1~")
		require.NoError(t, err)
		assert.Equal(t, "77", ack.OriginalControlNumber)
		assert.True(t, ack.IsReceived(), "group acceptance stands in for absent AK2 loops")
	})

	t.Run("Group rejected without transaction responses", func(t *testing.T) {
		ack, err := ParseAcknowledgment("ST*999*0001~AK1*HC*42~AK9*R*1*1*0~SE*4*0001~")
		require.NoError(t, err)
		assert.Empty(t, ack.Transactions)
		assert.False(t, ack.IsReceived())
	})

	t.Run("Empty content is malformed", func(t *testing.T) {
		_, err := ParseAcknowledgment("\r\n")
		assert.True(t, errors.Is(err, exceptions.MalformedInput))
	})
}

func TestParseStatusResponse(t *testing.T) {
	response, err := ParseStatusResponse(readFixture(t, "277_mixed.edi"))
	require.NoError(t, err)

	assert.Equal(t, "000000601", response.ISAControlNumber)
	assert.Equal(t, 3, response.TotalClaims)
	assert.True(t, response.HasRejections)
	require.Len(t, response.Claims, 3)

	t.Run("Accepted claim", func(t *testing.T) {
		claim := response.Claims[0]
		assert.Equal(t, "123456789", claim.ControlNumber)
		assert.Equal(t, "PCN0001", claim.PayerClaimNumber)
		assert.Equal(t, "A2", claim.CategoryCode)
		assert.Equal(t, "20", claim.StatusCode)
		assert.Equal(t, "PR", claim.EntityCode)
		assert.Equal(t, models.ClaimStatusAccepted, claim.Status)
		assert.Equal(t, "A2:20", claim.ResponseCode())
		assert.True(t, claim.ChargeAmount.Valid)
		assert.True(t, decimal.RequireFromString("150").Equal(claim.ChargeAmount.Decimal))
		require.NotNil(t, claim.ServiceDate)
		assert.Equal(t, "2024-01-10", claim.ServiceDate.Format("2006-01-02"))
		assert.Equal(t, "DOE", claim.PatientLastName)
		assert.Equal(t, "JANE", claim.PatientFirstName)
	})

	t.Run("Rejected claim keeps first status", func(t *testing.T) {
		claim := response.Claims[1]
		assert.Equal(t, "A3", claim.CategoryCode)
		assert.Equal(t, models.ClaimStatusRejected, claim.Status)
		assert.Equal(t, []string{"A7"}, claim.AdditionalCategoryCodes)
		assert.Equal(t, "ROE", claim.PatientLastName)
		require.NotNil(t, claim.ServiceDate)
		assert.Equal(t, "2024-01-11", claim.ServiceDate.Format("2006-01-02"))
	})

	t.Run("Unknown category is pending", func(t *testing.T) {
		claim := response.Claims[2]
		assert.Equal(t, "Z9", claim.CategoryCode)
		assert.Equal(t, models.ClaimStatusPending, claim.Status)
		assert.Equal(t, []string{"Z9"}, response.UnknownCodes)
	})

	t.Run("Family subsets", func(t *testing.T) {
		rejected := response.RejectedClaims()
		require.Len(t, rejected, 1)
		assert.Equal(t, "223456789", rejected[0].ControlNumber)

		accepted := response.AcceptedClaims()
		require.Len(t, accepted, 1)
		assert.Equal(t, "123456789", accepted[0].ControlNumber)
	})
}

func TestParseStatusResponse_ReceiverLevelTrace(t *testing.T) {
	response, err := ParseStatusResponse(readFixture(t, "277ca_receiver_trace.edi"))
	require.NoError(t, err)

	assert.Equal(t, 1, response.TotalClaims)
	require.Len(t, response.Claims, 1)
	claim := response.Claims[0]
	assert.Equal(t, "123456789", claim.ControlNumber)
	assert.Equal(t, "A2", claim.CategoryCode)
	assert.Equal(t, models.ClaimStatusAccepted, claim.Status)
	assert.Equal(t, "PCN0001", claim.PayerClaimNumber)
	assert.Equal(t, "DOE", claim.PatientLastName)
	assert.Empty(t, claim.AdditionalCategoryCodes)
	assert.False(t, response.HasRejections)

	t.Run("Dependent level", func(t *testing.T) {
		response, err := ParseStatusResponse("ST*277*0001~HL*1**20*1~TRN*1*X~HL*2*1*21*1~TRN*2*555~STC*A1:19~" +
			"HL*3*2*19*1~HL*4*3*22*1~HL*5*4*23~TRN*2*555~STC*A3:21~SE*11*0001~")
		require.NoError(t, err)
		require.Len(t, response.Claims, 1)
		assert.Equal(t, models.ClaimStatusRejected, response.Claims[0].Status)
	})
}

func TestStatusCategoryMapping(t *testing.T) {
	tests := []struct {
		category string
		want     models.ClaimStatus
	}{
		{"A3", models.ClaimStatusRejected},
		{"F2", models.ClaimStatusPaid},
		{"Z9", models.ClaimStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			content := "ST*277*0001~TRN*2*555~STC*" + tt.category + ":0*20240101~SE*4*0001~"
			response, err := ParseStatusResponse(content)
			require.NoError(t, err)
			require.Len(t, response.Claims, 1)
			assert.Equal(t, tt.want, response.Claims[0].Status)
		})
	}

	t.Run("Trace without status", func(t *testing.T) {
		response, err := ParseStatusResponse("ST*277*0001~TRN*2*555~TRN*1*IGNORED~SE*4*0001~")
		require.NoError(t, err)
		require.Len(t, response.Claims, 1)
		assert.Equal(t, models.ClaimStatusPending, response.Claims[0].Status)
		assert.False(t, response.HasRejections)
	})
}

func TestParseRemittance(t *testing.T) {
	remittance, err := ParseRemittance(readFixture(t, "835_mixed.edi"))
	require.NoError(t, err)

	t.Run("Payment and parties", func(t *testing.T) {
		assert.True(t, decimal.RequireFromString("120").Equal(remittance.Payment.TotalPaymentAmount))
		assert.Equal(t, "ACH", remittance.Payment.PaymentMethod)
		assert.Equal(t, "EFT12345", remittance.Payment.TraceNumber)
		require.NotNil(t, remittance.Payment.PaymentDate)
		assert.Equal(t, "2024-01-20", remittance.Payment.PaymentDate.Format("2006-01-02"))
		assert.Equal(t, "ACME HEALTH", remittance.PayerName)
		assert.Equal(t, "CLAIMSYNC CLINIC", remittance.PayeeName)
	})

	t.Run("Paid claim", func(t *testing.T) {
		require.Len(t, remittance.Claims, 2)
		claim := remittance.Claims[0]
		assert.Equal(t, "123456789", claim.ControlNumber)
		assert.Equal(t, "PCN0001", claim.PayerClaimNumber)
		assert.Equal(t, models.ClaimStatusPaid, claim.ClaimStatus)
		assert.True(t, claim.IsPaid())
		assert.Empty(t, claim.Adjustments)
		require.Len(t, claim.ServiceLines, 1)

		line := claim.ServiceLines[0]
		assert.Equal(t, "99214", line.ProcedureCode)
		assert.True(t, decimal.RequireFromString("120").Equal(line.PaidAmount))
		require.Len(t, line.Adjustments, 2)
		assert.Equal(t, "CO-45", line.Adjustments[0].String())
		assert.Equal(t, "PR-1", line.Adjustments[1].String())
		require.NotNil(t, line.ServiceDate)
	})

	t.Run("Denied claim", func(t *testing.T) {
		claim := remittance.Claims[1]
		assert.Equal(t, models.ClaimStatusDenied, claim.ClaimStatus)
		assert.Equal(t, "Denied", claim.StatusDescription)
		require.Len(t, claim.Adjustments, 2)
		assert.Equal(t, "ROE", claim.PatientLastName)
		assert.Equal(t, []string{"95"}, claim.ServiceLines[0].Modifiers)
		assert.Equal(t, "Denied by payer: CO-45, PR-1, CO-97", claim.DenialReason())
	})

	t.Run("Provider adjustments", func(t *testing.T) {
		require.Len(t, remittance.ProviderAdjustments, 2)
		assert.Equal(t, "WO", remittance.ProviderAdjustments[0].ReasonCode)
		assert.Equal(t, "LOANREF", remittance.ProviderAdjustments[0].ReferenceID)
		assert.True(t, decimal.RequireFromString("-15").Equal(remittance.ProviderAdjustments[0].Amount))
		assert.Equal(t, "L6", remittance.ProviderAdjustments[1].ReasonCode)
	})

	t.Run("Aggregates", func(t *testing.T) {
		assert.Equal(t, 2, remittance.ClaimCount)
		assert.True(t, decimal.RequireFromString("230").Equal(remittance.TotalCharges))
		assert.True(t, decimal.RequireFromString("120").Equal(remittance.TotalPaid))
		assert.True(t, decimal.RequireFromString("30").Equal(remittance.TotalPatientResponsibility))
	})
}

func TestPaidAmountRule(t *testing.T) {
	t.Run("Zero paid is denied", func(t *testing.T) {
		remittance, err := ParseRemittance("ST*835*0001~CLP*555*1*150*0~SE*3*0001~")
		require.NoError(t, err)
		require.Len(t, remittance.Claims, 1)
		assert.Equal(t, models.ClaimStatusDenied, remittance.Claims[0].ClaimStatus)
		assert.True(t, remittance.Claims[0].IsPaid(), "status code is kept for display only")
	})

	t.Run("Positive paid is paid", func(t *testing.T) {
		remittance, err := ParseRemittance("ST*835*0001~CLP*555*4*150*120~SE*3*0001~")
		require.NoError(t, err)
		assert.Equal(t, models.ClaimStatusPaid, remittance.Claims[0].ClaimStatus)
	})

	t.Run("Unparsable paid is denied", func(t *testing.T) {
		assert.Equal(t, models.ClaimStatusDenied, ClaimStatusForPaidAmount(parseAmount("n/a")))
	})
}

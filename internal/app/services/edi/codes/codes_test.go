package codes

import (
	"testing"

	"claimsync-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func TestLookupStatusCategory(t *testing.T) {
	tests := []struct {
		code       string
		wantStatus models.ClaimStatus
		wantKnown  bool
	}{
		{"A1", models.ClaimStatusAcknowledged, true},
		{"A2", models.ClaimStatusAccepted, true},
		{"A3", models.ClaimStatusRejected, true},
		{"P1", models.ClaimStatusPending, true},
		{"F1", models.ClaimStatusPaid, true},
		{"F2", models.ClaimStatusPaid, true},
		{"R4", models.ClaimStatusPending, true},
		{"E0", models.ClaimStatusRejected, true},
		{"Z9", models.ClaimStatusPending, false},
		{"", models.ClaimStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			category, known := LookupStatusCategory(tt.code)
			assert.Equal(t, tt.wantStatus, category.Status)
			assert.Equal(t, tt.wantKnown, known)
			assert.NotEmpty(t, category.Description, "every lookup should carry a description")
		})
	}

	t.Run("Lower case code", func(t *testing.T) {
		category, known := LookupStatusCategory("a3")
		assert.True(t, known)
		assert.Equal(t, models.ClaimStatusRejected, category.Status)
	})
}

func TestCategoryFamilies(t *testing.T) {
	t.Run("Rejection family", func(t *testing.T) {
		for _, code := range []string{"A3", "A4", "A6", "A7", "A8", "E0", "E3"} {
			assert.True(t, IsRejectionCategory(code), code)
			assert.False(t, IsAcceptanceCategory(code), code)
		}
	})

	t.Run("Acceptance family", func(t *testing.T) {
		for _, code := range []string{"A0", "A1", "A2", "A5"} {
			assert.True(t, IsAcceptanceCategory(code), code)
			assert.False(t, IsRejectionCategory(code), code)
		}
	})

	t.Run("Neither family", func(t *testing.T) {
		for _, code := range []string{"P1", "F1", "Z9"} {
			assert.False(t, IsAcceptanceCategory(code), code)
			assert.False(t, IsRejectionCategory(code), code)
		}
	})
}

func TestAckOutcome(t *testing.T) {
	t.Run("Accepted codes", func(t *testing.T) {
		for _, code := range []string{"A", "E", "P"} {
			outcome, ok := ParseAckOutcome(code)
			assert.True(t, ok)
			assert.True(t, outcome.IsAccepted(), code)
			assert.Equal(t, code, outcome.String())
		}
	})

	t.Run("Rejected codes", func(t *testing.T) {
		for _, code := range []string{"R", "M", "W", "X"} {
			outcome, ok := ParseAckOutcome(code)
			assert.True(t, ok)
			assert.False(t, outcome.IsAccepted(), code)
		}
	})

	t.Run("Unknown code", func(t *testing.T) {
		outcome, ok := ParseAckOutcome("Q")
		assert.False(t, ok)
		assert.Equal(t, UnknownAckOutcome, outcome)
		assert.False(t, outcome.IsAccepted())
		assert.Equal(t, "Unknown status (Q)", DescribeAckCode("Q"))
	})

	t.Run("Known description", func(t *testing.T) {
		assert.Equal(t, "Accepted", DescribeAckCode("A"))
	})
}

func TestClaimPaymentStatus(t *testing.T) {
	paid := []string{"1", "2", "3", "19", "20", "21"}
	for _, code := range paid {
		status, ok := ParseClaimPaymentStatus(code)
		assert.True(t, ok, code)
		assert.True(t, status.IsPaid(), code)
	}

	notPaid := []string{"4", "22", "23", "25"}
	for _, code := range notPaid {
		status, ok := ParseClaimPaymentStatus(code)
		assert.True(t, ok, code)
		assert.False(t, status.IsPaid(), code)
	}

	status, ok := ParseClaimPaymentStatus("99")
	assert.False(t, ok)
	assert.False(t, status.IsPaid())
	assert.Equal(t, "Unknown claim status (99)", DescribeClaimPaymentStatus("99"))
}

func TestAdjustmentGroup(t *testing.T) {
	assert.Equal(t, ContractualObligation, ParseAdjustmentGroup("CO"))
	assert.Equal(t, PatientResponsibility, ParseAdjustmentGroup("PR"))
	assert.Equal(t, UnknownAdjustmentGroup, ParseAdjustmentGroup("ZZ"))
	assert.True(t, ParseAdjustmentGroup("CO").ExplainsDenial())
	assert.True(t, ParseAdjustmentGroup("PR").ExplainsDenial())
	assert.False(t, ParseAdjustmentGroup("OA").ExplainsDenial())
	assert.Equal(t, "PI", PayerInitiatedReduction.String())
}

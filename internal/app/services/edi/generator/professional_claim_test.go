package generator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/exceptions"
	"claimsync-service/internal/pkg/x12"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

func testContext() SubmissionContext {
	return SubmissionContext{
		SenderID:             "SUBMITTER01",
		ReceiverID:           "CLEARINGHOUSE",
		SubmitterName:        "Claimsync Clinic",
		SubmitterContactName: "Billing Office",
		SubmitterPhone:       "(555) 010-2000",
		ReceiverName:         "Clearinghouse",
		ControlNumber:        "123456789",
		UsageIndicator:       "T",
		BillingProvider: BillingProvider{
			Name:  "Claimsync Clinic",
			NPI:   "1234567893",
			TaxID: "12-3456789",
			Address: models.Address{
				Line1:      "1 Main St",
				City:       "Springfield",
				State:      "IL",
				PostalCode: "62701",
			},
		},
		Now: fixedNow,
	}
}

func testClaim(relationship string, lineCount int) *models.Claim {
	patient := models.Person{
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: time.Date(1990, time.March, 4, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
		Address:     models.Address{Line1: "22 Oak Ave", City: "Springfield", State: "IL", PostalCode: "62702"},
	}
	claim := &models.Claim{
		ID:                     "claim-1",
		Patient:                patient,
		SubscriberRelationship: relationship,
		Payer:                  models.Payer{Name: "Acme Health", EDIPayerID: "ACME1"},
		MemberID:               "MBR123",
		GroupNumber:            "GRP9",
		Diagnoses: []models.Diagnosis{
			{Code: "F33.0", IsPrimary: false},
			{Code: "F41.1", IsPrimary: true},
		},
		RenderingProvider: models.Provider{NPI: "1987654321", FirstName: "Sam", LastName: "Smith"},
		Status:            models.ClaimStatusDraft,
	}
	if relationship != models.SubscriberRelationshipSelf {
		claim.Subscriber = models.Person{
			FirstName:   "John",
			LastName:    "Doe",
			DateOfBirth: time.Date(1988, time.July, 1, 0, 0, 0, 0, time.UTC),
			Gender:      "M",
			Address:     patient.Address,
		}
	}
	for i := 0; i < lineCount; i++ {
		claim.ServiceLines = append(claim.ServiceLines, models.ServiceLine{
			DateOfService:     time.Date(2024, time.January, 10+i, 0, 0, 0, 0, time.UTC),
			ProcedureCode:     "99214",
			Units:             1,
			ChargeAmount:      decimal.RequireFromString("150.00"),
			DiagnosisPointers: []int{2, 1},
		})
	}
	return claim
}

func segmentsOf(t *testing.T, content string) []x12.Segment {
	t.Helper()
	segments, err := x12.Tokenize(content)
	require.NoError(t, err)
	return segments
}

func TestGenerateTrailerCountRoundTrip(t *testing.T) {
	relationships := []string{
		models.SubscriberRelationshipSelf,
		models.SubscriberRelationshipSpouse,
		models.SubscriberRelationshipChild,
		models.SubscriberRelationshipOther,
	}
	for _, relationship := range relationships {
		for lines := 1; lines <= 6; lines++ {
			t.Run(fmt.Sprintf("%s/%d lines", relationship, lines), func(t *testing.T) {
				result, err := Generate(testClaim(relationship, lines), testContext())
				require.NoError(t, err)

				segments := segmentsOf(t, result.Content)
				se, ok := x12.First(segments, x12.SegmentSE)
				require.True(t, ok)

				actual := x12.TransactionSegmentCount(segments)
				assert.Equal(t, strconv.Itoa(actual), se.Element(x12.SEIndexSegmentCount))
				assert.Equal(t, actual, result.SegmentCount)
				assert.Len(t, x12.FindAll(segments, "LX"), lines)
				assert.Len(t, x12.FindAll(segments, "SV1"), lines)
			})
		}
	}
}

func TestGeneratePatientLoop(t *testing.T) {
	t.Run("Subscriber is patient", func(t *testing.T) {
		result, err := Generate(testClaim(models.SubscriberRelationshipSelf, 1), testContext())
		require.NoError(t, err)
		segments := segmentsOf(t, result.Content)

		hls := x12.FindAll(segments, "HL")
		require.Len(t, hls, 2)
		assert.Equal(t, "0", hls[1].Element(3), "subscriber HL has no children")
		assert.Empty(t, x12.FindAll(segments, "PAT"))

		sbr, _ := x12.First(segments, "SBR")
		assert.Equal(t, "18", sbr.Element(1))

		nm1IL := findNM1(segments, "IL")
		assert.Equal(t, "DOE", nm1IL.Element(2))
		assert.Equal(t, "JANE", nm1IL.Element(3))
	})

	t.Run("Subscriber is not patient", func(t *testing.T) {
		result, err := Generate(testClaim(models.SubscriberRelationshipChild, 1), testContext())
		require.NoError(t, err)
		segments := segmentsOf(t, result.Content)

		hls := x12.FindAll(segments, "HL")
		require.Len(t, hls, 3)
		assert.Equal(t, "1", hls[1].Element(3))
		assert.Equal(t, []string{"3", "2", "23", "0"}, hls[2].Elements)

		pat, ok := x12.First(segments, "PAT")
		require.True(t, ok)
		assert.Equal(t, "19", pat.Element(0))

		sbr, _ := x12.First(segments, "SBR")
		assert.Equal(t, "", sbr.Element(1))

		assert.Equal(t, "JOHN", findNM1(segments, "IL").Element(3))
		assert.Equal(t, "JANE", findNM1(segments, "QC").Element(3))
	})
}

func TestGenerateDiagnosisOrdering(t *testing.T) {
	result, err := Generate(testClaim(models.SubscriberRelationshipSelf, 1), testContext())
	require.NoError(t, err)
	segments := segmentsOf(t, result.Content)

	hi, ok := x12.First(segments, "HI")
	require.True(t, ok)
	assert.Equal(t, "HI*ABK:F411*ABF:F330", hi.Raw)
	assert.Less(t, strings.Index(hi.Raw, "F411"), strings.Index(hi.Raw, "F330"))

	sv1, _ := x12.First(segments, "SV1")
	assert.Equal(t, "1:2", sv1.Element(6), "pointers follow the emitted diagnosis order")
}

func TestGenerateTotals(t *testing.T) {
	t.Run("Total charge equals line sum", func(t *testing.T) {
		result, err := Generate(testClaim(models.SubscriberRelationshipSelf, 3), testContext())
		require.NoError(t, err)
		segments := segmentsOf(t, result.Content)

		clm, _ := x12.First(segments, "CLM")
		assert.Equal(t, "123456789", clm.Element(0))
		assert.Equal(t, "450.00", clm.Element(1))
		assert.Equal(t, "11:B:1", clm.Element(4))
		assert.True(t, decimal.RequireFromString("450").Equal(result.TotalCharge))
	})

	t.Run("Stored total mismatch is an invariant violation", func(t *testing.T) {
		claim := testClaim(models.SubscriberRelationshipSelf, 2)
		claim.TotalCharge = decimal.RequireFromString("100.00")

		result, err := Generate(claim, testContext())
		assert.Nil(t, result)
		require.Error(t, err)
		assert.True(t, errors.Is(err, exceptions.GenerationInvariantViolation))
	})

	t.Run("Stored total that matches is accepted", func(t *testing.T) {
		claim := testClaim(models.SubscriberRelationshipSelf, 2)
		claim.TotalCharge = decimal.RequireFromString("300")

		_, err := Generate(claim, testContext())
		assert.NoError(t, err)
	})
}

func TestGenerateEnvelope(t *testing.T) {
	result, err := Generate(testClaim(models.SubscriberRelationshipSelf, 1), testContext())
	require.NoError(t, err)

	isaEnd := strings.IndexRune(result.Content, x12.DefaultSegmentTerminator)
	assert.Equal(t, 105, isaEnd, "ISA is fixed width")

	segments := segmentsOf(t, result.Content)
	assert.Equal(t, "123456789", segments[0].Element(x12.ISAIndexControlNumber))
	assert.Equal(t, "240115", segments[0].Element(x12.ISAIndexDate))
	assert.Equal(t, "T", segments[0].Element(x12.ISAIndexUsage))

	st, _ := x12.First(segments, x12.SegmentST)
	assert.Equal(t, []string{"837", "123456789", ImplementationVersion}, st.Elements)

	gs, _ := x12.First(segments, x12.SegmentGS)
	assert.Equal(t, "123456789", gs.Element(x12.GSIndexControlNumber))

	dtp, _ := x12.First(segments, "DTP")
	assert.Equal(t, []string{"472", "D8", "20240110"}, dtp.Elements)

	iea, _ := x12.First(segments, x12.SegmentIEA)
	assert.Equal(t, "123456789", iea.Element(1))

	payer := findNM1(segments, "PR")
	assert.Equal(t, "ACME1", payer.Element(8))
}

func TestGenerateRejectsIncompleteClaims(t *testing.T) {
	t.Run("No service lines", func(t *testing.T) {
		claim := testClaim(models.SubscriberRelationshipSelf, 0)
		_, err := Generate(claim, testContext())
		assert.True(t, errors.Is(err, exceptions.GenerationInvariantViolation))
	})

	t.Run("Pointer out of range", func(t *testing.T) {
		claim := testClaim(models.SubscriberRelationshipSelf, 1)
		claim.ServiceLines[0].DiagnosisPointers = []int{3}
		_, err := Generate(claim, testContext())
		assert.True(t, errors.Is(err, exceptions.GenerationInvariantViolation))
	})

	t.Run("Missing control number", func(t *testing.T) {
		sc := testContext()
		sc.ControlNumber = ""
		_, err := Generate(testClaim(models.SubscriberRelationshipSelf, 1), sc)
		assert.True(t, errors.Is(err, exceptions.GenerationInvariantViolation))
	})

	t.Run("Control number wider than ISA13", func(t *testing.T) {
		sc := testContext()
		sc.ControlNumber = "1234567890"
		result, err := Generate(testClaim(models.SubscriberRelationshipSelf, 1), sc)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, exceptions.GenerationInvariantViolation))
		assert.Contains(t, err.Error(), "1234567890")
	})

	t.Run("Non numeric control number", func(t *testing.T) {
		sc := testContext()
		sc.ControlNumber = "12345A789"
		_, err := Generate(testClaim(models.SubscriberRelationshipSelf, 1), sc)
		assert.True(t, errors.Is(err, exceptions.GenerationInvariantViolation))
	})
}

func TestGenerateShortControlNumberIsPadded(t *testing.T) {
	sc := testContext()
	sc.ControlNumber = "42"
	result, err := Generate(testClaim(models.SubscriberRelationshipSelf, 1), sc)
	require.NoError(t, err)

	segments := segmentsOf(t, result.Content)
	assert.Equal(t, "000000042", segments[0].Element(x12.ISAIndexControlNumber))
	clm, _ := x12.First(segments, "CLM")
	assert.Equal(t, "000000042", clm.Element(0))
}

func TestNormalizeDiagnosisCode(t *testing.T) {
	assert.Equal(t, "F411", NormalizeDiagnosisCode("F41.1"))
	assert.Equal(t, "Z0000", NormalizeDiagnosisCode("z00.00"))
	assert.Equal(t, "M545", NormalizeDiagnosisCode(" M54.5 "))
}

func findNM1(segments []x12.Segment, entity string) x12.Segment {
	for _, segment := range x12.FindAll(segments, "NM1") {
		if segment.Element(0) == entity {
			return segment
		}
	}
	return x12.Segment{}
}

package claimstest

import (
	"time"

	"claimsync-service/internal/app/models"

	"github.com/shopspring/decimal"
)

// NewClaim returns a draft claim that passes validation: one 99214 line at
// 150.00 for a patient who is also the subscriber.
func NewClaim(id string) *models.Claim {
	return &models.Claim{
		ID: id,
		Patient: models.Person{
			FirstName:   "Jane",
			LastName:    "Doe",
			DateOfBirth: time.Date(1990, time.March, 4, 0, 0, 0, 0, time.UTC),
			Gender:      "female",
			Address: models.Address{
				Line1:      "22 Oak Ave",
				City:       "Springfield",
				State:      "IL",
				PostalCode: "62702",
			},
		},
		SubscriberRelationship: models.SubscriberRelationshipSelf,
		Payer:                  models.Payer{Name: "Acme Health", EDIPayerID: "ACME1"},
		MemberID:               "MBR123",
		Diagnoses: []models.Diagnosis{
			{Code: "F41.1", IsPrimary: true},
		},
		ServiceLines: []models.ServiceLine{
			{
				DateOfService:     time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
				ProcedureCode:     "99214",
				Units:             1,
				ChargeAmount:      decimal.RequireFromString("150.00"),
				DiagnosisPointers: []int{1},
			},
		},
		RenderingProvider: models.Provider{NPI: "1497758544", FirstName: "Sam", LastName: "Smith"},
		TotalCharge:       decimal.RequireFromString("150.00"),
		Status:            models.ClaimStatusDraft,
	}
}

// SubmittedClaim returns NewClaim already in submitted state under
// controlNumber.
func SubmittedClaim(id, controlNumber string) *models.Claim {
	claim := NewClaim(id)
	submittedAt := time.Date(2024, time.January, 11, 9, 0, 0, 0, time.UTC)
	claim.Status = models.ClaimStatusSubmitted
	claim.ControlNumber = controlNumber
	claim.SubmittedAt = &submittedAt
	return claim
}

package claims

import (
	"testing"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/app/services/core/claims/claimstest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateClaim(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *models.Claim)
		wantErr bool
	}{
		{"valid claim", func(c *models.Claim) {}, false},
		{"no diagnoses", func(c *models.Claim) { c.Diagnoses = nil }, true},
		{"two primary diagnoses", func(c *models.Claim) {
			c.Diagnoses = []models.Diagnosis{{Code: "F41.1", IsPrimary: true}, {Code: "F33.0", IsPrimary: true}}
		}, true},
		{"no primary flag falls back to the first", func(c *models.Claim) {
			c.Diagnoses = []models.Diagnosis{{Code: "F41.1"}, {Code: "F33.0"}}
		}, false},
		{"bad icd10 code", func(c *models.Claim) { c.Diagnoses[0].Code = "123" }, true},
		{"no service lines", func(c *models.Claim) { c.ServiceLines = nil }, true},
		{"pointer past the diagnosis list", func(c *models.Claim) { c.ServiceLines[0].DiagnosisPointers = []int{2} }, true},
		{"five pointers", func(c *models.Claim) { c.ServiceLines[0].DiagnosisPointers = []int{1, 1, 1, 1, 1} }, true},
		{"zero charge", func(c *models.Claim) { c.ServiceLines[0].ChargeAmount = decimal.Zero }, true},
		{"negative charge", func(c *models.Claim) { c.ServiceLines[0].ChargeAmount = decimal.NewFromInt(-5) }, true},
		{"zero units", func(c *models.Claim) { c.ServiceLines[0].Units = 0 }, true},
		{"bad procedure code", func(c *models.Claim) { c.ServiceLines[0].ProcedureCode = "9921" }, true},
		{"bad rendering npi", func(c *models.Claim) { c.RenderingProvider.NPI = "1234567890" }, true},
		{"no provider npi at all", func(c *models.Claim) { c.RenderingProvider.NPI = "" }, true},
		{"billing npi alone is enough", func(c *models.Claim) {
			c.RenderingProvider.NPI = ""
			c.BillingProviderNPI = "1234567893"
		}, false},
		{"dependent without subscriber", func(c *models.Claim) { c.SubscriberRelationship = models.SubscriberRelationshipChild }, true},
		{"unknown relationship", func(c *models.Claim) { c.SubscriberRelationship = "cousin" }, true},
		{"missing member id", func(c *models.Claim) { c.MemberID = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := claimstest.NewClaim("claim-1")
			tt.mutate(claim)
			err := ValidateClaim(claim)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

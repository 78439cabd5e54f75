package claims

import (
	"fmt"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/exceptions"
	"claimsync-service/internal/pkg/utils"
)

// ValidateClaim checks a claim before a control number is minted for it.
// Field formats are covered by struct tags; the rules below span fields.
func ValidateClaim(claim *models.Claim) error {
	if err := utils.ValidateStruct(claim); err != nil {
		return exceptions.ErrInputValidation(err)
	}

	primaries := 0
	for _, diagnosis := range claim.Diagnoses {
		if diagnosis.IsPrimary {
			primaries++
		}
	}
	if primaries > 1 {
		return exceptions.ErrInputValidation(fmt.Errorf("diagnoses must have exactly one primary, found %d", primaries))
	}

	for i, line := range claim.ServiceLines {
		for _, pointer := range line.DiagnosisPointers {
			if pointer < 1 || pointer > len(claim.Diagnoses) {
				return exceptions.ErrInputValidation(fmt.Errorf(
					"service line %d diagnosis pointer %d is outside 1..%d", i+1, pointer, len(claim.Diagnoses),
				))
			}
		}
	}

	if claim.RenderingProvider.NPI == "" && claim.BillingProviderNPI == "" {
		return exceptions.ErrInputValidation(fmt.Errorf("a rendering or billing provider NPI is required"))
	}

	if claim.Patient.FirstName == "" || claim.Patient.LastName == "" {
		return exceptions.ErrInputValidation(fmt.Errorf("patient name is required"))
	}
	if !claim.IsPatientSubscriber() && claim.Subscriber.LastName == "" {
		return exceptions.ErrInputValidation(fmt.Errorf("subscriber name is required when the patient is not the subscriber"))
	}
	return nil
}

package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidNPI(t *testing.T) {
	for _, npi := range []string{"1234567893", "1497758544", "1245319599", "1003000126"} {
		assert.True(t, IsValidNPI(npi), npi)
	}
	for _, npi := range []string{"1987654321", "1234567890", "123456789", "12345678931", "12345A7893", ""} {
		assert.False(t, IsValidNPI(npi), npi)
	}
}

type validatedLine struct {
	NPI       string          `validate:"omitempty,npi"`
	Diagnosis string          `validate:"required,icd10"`
	Procedure string          `validate:"required,procedure"`
	Charge    decimal.Decimal `validate:"money"`
}

func TestValidateStruct(t *testing.T) {
	valid := validatedLine{
		NPI:       "1497758544",
		Diagnosis: "F41.1",
		Procedure: "99214",
		Charge:    decimal.RequireFromString("150.00"),
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(valid))
	})

	cases := []struct {
		name   string
		mutate func(*validatedLine)
	}{
		{"bad npi check digit", func(l *validatedLine) { l.NPI = "1987654321" }},
		{"icd10 starting with U", func(l *validatedLine) { l.Diagnosis = "U07.1" }},
		{"icd10 too short", func(l *validatedLine) { l.Diagnosis = "F4" }},
		{"procedure with letters", func(l *validatedLine) { l.Procedure = "9921A" }},
		{"zero charge", func(l *validatedLine) { l.Charge = decimal.Zero }},
		{"negative charge", func(l *validatedLine) { l.Charge = decimal.RequireFromString("-1") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := valid
			tc.mutate(&line)
			assert.Error(t, ValidateStruct(line))
		})
	}

	t.Run("accepted code shapes", func(t *testing.T) {
		for _, code := range []string{"F411", "F41.1", "E11.65", "Z00.00", "S72.001A"} {
			line := valid
			line.Diagnosis = code
			assert.NoError(t, ValidateStruct(line), code)
		}
		for _, code := range []string{"0001F", "0591T", "J3490", "G0439"} {
			line := valid
			line.Procedure = code
			assert.NoError(t, ValidateStruct(line), code)
		}
	})
}

func TestGenerateOutboundFileName(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

	name := GenerateOutboundFileName("claimsync", now)

	assert.Regexp(t, regexp.MustCompile(`^CLAIMSYNC_20240115103000_[0-9a-f]{8}\.837$`), name)
	assert.NotEqual(t, name, GenerateOutboundFileName("claimsync", now))
}

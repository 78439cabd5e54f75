package utils

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate *validator.Validate

	npiPattern       = regexp.MustCompile(`^[0-9]{10}$`)
	icd10Pattern     = regexp.MustCompile(`^[A-TV-Za-tv-z][0-9][0-9A-Za-z](\.?[0-9A-Za-z]{1,4})?$`)
	procedurePattern = regexp.MustCompile(`^([0-9]{4}[0-9FTU]|[A-Va-v][0-9]{4})$`)
)

func init() {
	validate = validator.New()
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	validate.RegisterValidation("npi", validateNPI)
	validate.RegisterValidation("icd10", validateICD10)
	validate.RegisterValidation("procedure", validateProcedureCode)
	validate.RegisterValidation("money", validateMoney)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// decimalValue lets tags on decimal.Decimal fields see the amount as text.
func decimalValue(field reflect.Value) interface{} {
	if amount, ok := field.Interface().(decimal.Decimal); ok {
		return amount.String()
	}
	return nil
}

func validateNPI(fl validator.FieldLevel) bool {
	return IsValidNPI(fl.Field().String())
}

func validateICD10(fl validator.FieldLevel) bool {
	return icd10Pattern.MatchString(fl.Field().String())
}

func validateProcedureCode(fl validator.FieldLevel) bool {
	return procedurePattern.MatchString(fl.Field().String())
}

func validateMoney(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return amount.GreaterThan(decimal.Zero)
}

// IsValidNPI checks the length and the Luhn check digit computed over the
// 80840 prefix.
func IsValidNPI(npi string) bool {
	if !npiPattern.MatchString(npi) {
		return false
	}
	sum := 24 // 80840 prefix contribution
	double := true
	for i := len(npi) - 2; i >= 0; i-- {
		digit := int(npi[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	check := (10 - sum%10) % 10
	return check == int(npi[len(npi)-1]-'0')
}

package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/M1doriya/Analysis-PRO/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("account_number", validateAccountNumber)
	_ = v.RegisterValidation("account_classification", validateAccountClassification)
	_ = v.RegisterValidation("month_key", validateMonthKey)
	_ = v.RegisterValidation("date_range", validateDateRange)
	_ = v.RegisterValidation("bank_code", validateBankCode)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateAccountNumber validates that an account number follows the expected format
// Format: 6-17 digits, optionally dash-grouped
func validateAccountNumber(fl validator.FieldLevel) bool {
	accountNumber := strings.ReplaceAll(fl.Field().String(), "-", "")
	if accountNumber == "" {
		return false
	}

	matched, _ := regexp.MatchString(`^\d{6,17}$`, accountNumber)
	return matched
}

// validateAccountClassification validates that the classification is a known value
func validateAccountClassification(fl validator.FieldLevel) bool {
	return models.IsValidClassification(strings.ToUpper(fl.Field().String()))
}

// validateMonthKey validates the YYYY-MM month bucket form
func validateMonthKey(fl validator.FieldLevel) bool {
	matched, _ := regexp.MatchString(`^\d{4}-(0[1-9]|1[0-2])$`, fl.Field().String())
	return matched
}

// validateDateRange validates the "YYYY-MM-DD to YYYY-MM-DD" statement period form
func validateDateRange(fl validator.FieldLevel) bool {
	parts := strings.SplitN(fl.Field().String(), " to ", 2)
	if len(parts) != 2 {
		return false
	}
	for _, part := range parts {
		if _, ok := models.CleanDate(part); !ok {
			return false
		}
	}
	return true
}

// validateBankCode validates a short uppercase bank code such as CIMB or HLB
func validateBankCode(fl validator.FieldLevel) bool {
	matched, _ := regexp.MatchString(`^[A-Z0-9]{2,10}$`, strings.ToUpper(fl.Field().String()))
	return matched
}

package domain

import "errors"

var (
	ErrInvalidTimePeriod    = errors.New("invalid time period")
	ErrInvalidCountry       = errors.New("invalid country")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrEmptySelection       = errors.New("selection must not be empty")
	ErrInvalidSpeed         = errors.New("invalid speed")
	ErrInvalidThreshold     = errors.New("invalid alert threshold")
	ErrInvalidSeed          = errors.New("invalid seed")
	ErrInvalidTime          = errors.New("invalid time")
	ErrReportInvalid        = errors.New("report failed schema validation")
)

// IsValidation reports whether err is caused by bad caller input.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidTimePeriod,
		ErrInvalidCountry,
		ErrInvalidPaymentMethod,
		ErrEmptySelection,
		ErrInvalidSpeed,
		ErrInvalidThreshold,
		ErrInvalidSeed,
		ErrInvalidTime,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrReportFailed     = errors.New("failed to generate detailed report")
	ErrAlertCheckFailed = errors.New("failed to fetch alerts")
	ErrInvalidLogin     = errors.New("invalid username or password")
	ErrTOTPRequired     = errors.New("two-factor code required")
	ErrInvalidTOTP      = errors.New("invalid two-factor code")
	ErrArchiveDisabled  = errors.New("report archive is not configured")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

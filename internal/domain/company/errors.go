package company

import "errors"

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrSettingsNotFound = errors.New("scoring settings not found")
)

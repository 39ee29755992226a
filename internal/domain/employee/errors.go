package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidPIN       = errors.New("PIN must be 1-6 digits")
	ErrNameRequired     = errors.New("name is required")
)

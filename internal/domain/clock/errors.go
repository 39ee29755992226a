package clock

import "errors"

var (
	ErrInvalidPIN       = errors.New("incorrect PIN")
	ErrInvalidEventType = errors.New("type must be IN or OUT")
)

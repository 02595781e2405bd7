package workflow

import "errors"

// Sentinel errors returned by the engine. Callers branch on these with
// errors.Is; wrapped messages carry the detail.
var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidRange  = errors.New("invalid certificate number range")
	ErrRangeTooLarge = errors.New("certificate range exceeds the maximum batch size")

	ErrDuplicateRange = errors.New("certificate numbers in range already exist")
	ErrEmptyRange     = errors.New("no certificates found in range")

	ErrNoStock                = errors.New("no certificates available")
	ErrInsufficientStock      = errors.New("insufficient medal stock for transfer")
	ErrInsufficientMedalStock = errors.New("insufficient medal stock")

	ErrMaxReservations    = errors.New("maximum active reservations reached")
	ErrNotReserved        = errors.New("certificate is not reserved")
	ErrReservationExpired = errors.New("reservation has expired")

	ErrAccessDenied  = errors.New("access denied")
	ErrCannotMigrate = errors.New("certificates in range cannot be migrated")
	ErrNotFound      = errors.New("record not found")

	ErrNotInTransaction = errors.New("operation must run inside a transaction")
)

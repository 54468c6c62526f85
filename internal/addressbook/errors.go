package addressbook

import (
	"errors"

	"github.com/tartampluch/go-assistant/internal/config"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New(config.ErrValidation)

	ErrDuplicatePhone = errors.New(config.ErrPhoneExists)
	ErrPhoneNotFound  = errors.New(config.ErrPhoneMissing)
	ErrRecordNotFound = errors.New(config.ErrRecordMissing)
	ErrRecordExists   = errors.New(config.ErrRecordExists)
)

// ValidationError reports a field value rejected at construction time.
// Its message is meant to be shown to the user as is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is makes errors.Is(err, ErrValidation) hold for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

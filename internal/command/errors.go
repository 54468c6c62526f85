package command

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-assistant/internal/config"
)

var (
	// ErrCommandNotFound is returned by Dispatch for unregistered names.
	ErrCommandNotFound = errors.New(config.ErrCommandNotFound)

	// ErrDuplicateCommand is returned by Register when a name is already taken.
	ErrDuplicateCommand = errors.New(config.ErrCommandExists)

	// ErrUnsupportedParameter is returned by Register when a handler asks for a
	// capability outside the closed set (PositionalArgs, Context).
	ErrUnsupportedParameter = errors.New(config.ErrUnsupportedParam)

	// ErrInvalidCommand is returned by Register for a command without names or handler.
	ErrInvalidCommand = errors.New(config.ErrCommandInvalid)
)

// ArgumentCountError reports a positional argument count mismatch.
// Expected carries the human-readable labels so callers can render a prompt.
type ArgumentCountError struct {
	Command  string
	Expected []string
	Got      int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("%s: %q expects %d, got %d", config.ErrArgumentCount, e.Command, len(e.Expected), e.Got)
}

// Package command maps command names to handlers with a uniform, checked calling convention.
package command

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/tartampluch/go-assistant/internal/config"
)

// Capability is an input channel a handler asks the dispatcher for.
type Capability uint8

const (
	// PositionalArgs delivers the raw argument list, checked against the declared labels.
	PositionalArgs Capability = 1 << iota
	// Context delivers the session state.
	Context

	// None declares a handler that takes no input (greeting, exit).
	None Capability = 0

	supported = PositionalArgs | Context
)

// Has reports whether c includes every capability in want.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Input is what a handler receives. Fields for capabilities the handler did not
// declare are left at their zero value.
type Input[C any] struct {
	Args    []string
	Context C
}

// Handler runs one command and returns the text to show the user.
type Handler[C any] func(in Input[C]) (string, error)

// Command describes a handler and the contract it is dispatched under.
type Command[C any] struct {
	// Names lists every name the handler answers to.
	Names []string

	// Args holds the labels of the expected positional arguments, in order.
	// When empty, any argument count is accepted.
	Args []string

	// Wants declares which capabilities the handler receives.
	Wants Capability

	Run Handler[C]
}

// Registry holds the handler table. It is filled once at startup and only read afterwards.
type Registry[C any] struct {
	commands map[string]*Command[C]
}

// NewRegistry returns an empty registry.
func NewRegistry[C any]() *Registry[C] {
	return &Registry[C]{commands: make(map[string]*Command[C])}
}

// Register adds cmd under each of its names.
// Registration is all-or-nothing: on error, nothing from cmd is registered.
func (r *Registry[C]) Register(cmd Command[C]) error {
	if len(cmd.Names) == 0 || cmd.Run == nil {
		return ErrInvalidCommand
	}
	if cmd.Wants&^supported != 0 {
		return fmt.Errorf("%w: %q declares %08b", ErrUnsupportedParameter, cmd.Names[0], uint8(cmd.Wants))
	}

	for i, name := range cmd.Names {
		if _, exists := r.commands[name]; exists || slices.Contains(cmd.Names[:i], name) {
			return fmt.Errorf("%w: %q", ErrDuplicateCommand, name)
		}
	}

	c := cmd
	c.Names = slices.Clone(cmd.Names)
	c.Args = slices.Clone(cmd.Args)
	for _, name := range c.Names {
		r.commands[name] = &c
	}
	return nil
}

// MustRegister is like Register but panics on error. The handler table is
// static, so a failure is a programming mistake.
func (r *Registry[C]) MustRegister(cmd Command[C]) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Lookup returns the command registered under name.
func (r *Registry[C]) Lookup(name string) (Command[C], bool) {
	c, ok := r.commands[name]
	if !ok {
		return Command[C]{}, false
	}
	return *c, true
}

// Names returns every registered name, sorted.
func (r *Registry[C]) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatch runs the handler registered under name.
// Handler errors are returned unchanged so callers can match them with errors.Is.
func (r *Registry[C]) Dispatch(name string, args []string, ctx C) (string, error) {
	c, ok := r.commands[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrCommandNotFound, name)
	}

	var in Input[C]
	if c.Wants.Has(PositionalArgs) {
		if len(c.Args) > 0 && len(args) != len(c.Args) {
			return "", &ArgumentCountError{
				Command:  name,
				Expected: slices.Clone(c.Args),
				Got:      len(args),
			}
		}
		in.Args = args
	}
	if c.Wants.Has(Context) {
		in.Context = ctx
	}

	slog.Debug(config.MsgDispatch,
		config.LogKeyComponent, config.CompCommand,
		config.LogKeyCommand, name,
		config.LogKeyArgs, len(args))

	return c.Run(in)
}

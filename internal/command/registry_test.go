package command_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant/internal/command"
)

type session struct {
	calls []string
}

func echo(in command.Input[*session]) (string, error) {
	return strings.Join(in.Args, " "), nil
}

func TestDispatch_UnknownCommand(t *testing.T) {
	r := command.NewRegistry[*session]()

	_, err := r.Dispatch("nope", nil, &session{})

	require.Error(t, err)
	assert.ErrorIs(t, err, command.ErrCommandNotFound)
}

func TestDispatch_ArgumentCountMismatch(t *testing.T) {
	r := command.NewRegistry[*session]()
	require.NoError(t, r.Register(command.Command[*session]{
		Names: []string{"add"},
		Args:  []string{"name", "phone number"},
		Wants: command.PositionalArgs | command.Context,
		Run:   echo,
	}))

	_, err := r.Dispatch("add", []string{"Bob"}, &session{})

	var argErr *command.ArgumentCountError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, []string{"name", "phone number"}, argErr.Expected)
	assert.Equal(t, 1, argErr.Got)
	assert.Equal(t, "add", argErr.Command)
}

func TestDispatch_NoDeclaredArgsAcceptsAnyCount(t *testing.T) {
	r := command.NewRegistry[*session]()
	require.NoError(t, r.Register(command.Command[*session]{
		Names: []string{"all"},
		Wants: command.PositionalArgs,
		Run:   echo,
	}))

	out, err := r.Dispatch("all", []string{"a", "b", "c"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a b c", out)

	out, err = r.Dispatch("all", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDispatch_InjectsOnlyDeclaredCapabilities(t *testing.T) {
	tests := []struct {
		name        string
		wants       command.Capability
		wantArgs    bool
		wantContext bool
	}{
		{"None", command.None, false, false},
		{"ArgsOnly", command.PositionalArgs, true, false},
		{"ContextOnly", command.Context, false, true},
		{"Both", command.PositionalArgs | command.Context, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := command.NewRegistry[*session]()
			var got command.Input[*session]
			require.NoError(t, r.Register(command.Command[*session]{
				Names: []string{"cmd"},
				Args:  []string{"name"},
				Wants: tt.wants,
				Run: func(in command.Input[*session]) (string, error) {
					got = in
					return "ok", nil
				},
			}))

			ctx := &session{}
			out, err := r.Dispatch("cmd", []string{"Bob"}, ctx)
			require.NoError(t, err)
			assert.Equal(t, "ok", out)

			if tt.wantArgs {
				assert.Equal(t, []string{"Bob"}, got.Args)
			} else {
				assert.Nil(t, got.Args)
			}
			if tt.wantContext {
				assert.Same(t, ctx, got.Context)
			} else {
				assert.Nil(t, got.Context)
			}
		})
	}
}

func TestDispatch_NoArgsCapabilitySkipsCountCheck(t *testing.T) {
	r := command.NewRegistry[*session]()
	require.NoError(t, r.Register(command.Command[*session]{
		Names: []string{"ctx"},
		Args:  []string{"name"},
		Wants: command.Context,
		Run: func(in command.Input[*session]) (string, error) {
			in.Context.calls = append(in.Context.calls, "ctx")
			return "", nil
		},
	}))

	s := &session{}
	_, err := r.Dispatch("ctx", nil, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"ctx"}, s.calls)
}

func TestDispatch_PropagatesHandlerError(t *testing.T) {
	sentinel := errors.New("boom")
	r := command.NewRegistry[*session]()
	r.MustRegister(command.Command[*session]{
		Names: []string{"fail"},
		Run: func(command.Input[*session]) (string, error) {
			return "", sentinel
		},
	})

	_, err := r.Dispatch("fail", nil, nil)
	assert.Same(t, sentinel, err)
}

func TestRegister_DuplicateKeepsFirst(t *testing.T) {
	r := command.NewRegistry[*session]()
	require.NoError(t, r.Register(command.Command[*session]{
		Names: []string{"hello"},
		Run:   func(command.Input[*session]) (string, error) { return "first", nil },
	}))

	err := r.Register(command.Command[*session]{
		Names: []string{"hi", "hello"},
		Run:   func(command.Input[*session]) (string, error) { return "second", nil },
	})
	require.ErrorIs(t, err, command.ErrDuplicateCommand)

	out, err := r.Dispatch("hello", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "first", out)

	_, ok := r.Lookup("hi")
	assert.False(t, ok, "A rejected registration must not leave partial names behind")
}

func TestRegister_DuplicateWithinOneCommand(t *testing.T) {
	r := command.NewRegistry[*session]()

	err := r.Register(command.Command[*session]{
		Names: []string{"exit", "exit"},
		Run:   echo,
	})

	assert.ErrorIs(t, err, command.ErrDuplicateCommand)
	assert.Empty(t, r.Names())
}

func TestRegister_UnsupportedCapability(t *testing.T) {
	r := command.NewRegistry[*session]()

	err := r.Register(command.Command[*session]{
		Names: []string{"weird"},
		Wants: command.Capability(1 << 5),
		Run:   echo,
	})

	assert.ErrorIs(t, err, command.ErrUnsupportedParameter)
	_, ok := r.Lookup("weird")
	assert.False(t, ok)
}

func TestRegister_Invalid(t *testing.T) {
	r := command.NewRegistry[*session]()

	assert.ErrorIs(t, r.Register(command.Command[*session]{Run: echo}), command.ErrInvalidCommand)
	assert.ErrorIs(t, r.Register(command.Command[*session]{Names: []string{"x"}}), command.ErrInvalidCommand)
	assert.Panics(t, func() { r.MustRegister(command.Command[*session]{}) })
}

func TestRegister_AliasesShareHandler(t *testing.T) {
	r := command.NewRegistry[*session]()
	r.MustRegister(command.Command[*session]{
		Names: []string{"exit", "close", "quit", "bye"},
		Run:   func(command.Input[*session]) (string, error) { return "Good bye!", nil },
	})

	for _, name := range []string{"exit", "close", "quit", "bye"} {
		out, err := r.Dispatch(name, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Good bye!", out)
	}
	assert.Equal(t, []string{"bye", "close", "exit", "quit"}, r.Names())
}

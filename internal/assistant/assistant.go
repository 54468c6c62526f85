// Package assistant wires the address book to the command registry and renders
// the replies of an interactive session.
package assistant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-assistant/internal/addressbook"
	"github.com/tartampluch/go-assistant/internal/command"
	"github.com/tartampluch/go-assistant/internal/config"
	"github.com/tartampluch/go-assistant/internal/exchange"
	"github.com/zalando/go-keyring"
)

// ErrQuit is returned by the exit commands, alongside the farewell text.
var ErrQuit = errors.New(config.ErrQuit)

// Session is the state every context-aware handler receives.
type Session struct {
	Book     *addressbook.AddressBook
	Clock    addressbook.Clock
	Settings config.Settings
	Fetcher  exchange.Fetcher

	// ctx is only set while a command runs.
	ctx context.Context
}

func (s *Session) context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

// Publisher receives fresh feed snapshots whenever the address book changes.
type Publisher interface {
	UpdateCalendar(data []byte)
	UpdateContacts(data []byte)
}

// Options configures a new Assistant. Zero values select sensible defaults.
type Options struct {
	Settings  config.Settings
	Book      *addressbook.AddressBook
	Clock     addressbook.Clock
	Fetcher   exchange.Fetcher
	Publisher Publisher
	Bundle    *i18n.Bundle
}

// Assistant answers command lines against one address book.
// It is not safe for concurrent use.
type Assistant struct {
	registry  *command.Registry[*Session]
	session   *Session
	tr        translator
	publisher Publisher
	mutating  map[string]bool
}

// New builds an assistant and registers every command.
// A registration failure means the handler table is broken.
func New(opts Options) (*Assistant, error) {
	if opts.Book == nil {
		opts.Book = addressbook.New()
	}
	if opts.Clock == nil {
		opts.Clock = addressbook.RealClock{}
	}
	if opts.Fetcher == nil {
		opts.Fetcher = exchange.NewHTTPFetcher()
	}
	if opts.Bundle == nil {
		opts.Bundle, _ = NewBundle()
	}

	a := &Assistant{
		registry: command.NewRegistry[*Session](),
		session: &Session{
			Book:     opts.Book,
			Clock:    opts.Clock,
			Settings: opts.Settings,
			Fetcher:  opts.Fetcher,
		},
		tr:        newTranslator(opts.Bundle, opts.Settings.Language),
		publisher: opts.Publisher,
		mutating:  make(map[string]bool),
	}

	for _, cmd := range a.commands() {
		if err := a.registry.Register(cmd); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrRegistry, err)
		}
	}
	for _, name := range []string{
		config.CmdAdd, config.CmdChange, config.CmdAddBirthday, config.CmdAddPhone,
		config.CmdRemovePhone, config.CmdDelete, config.CmdImport,
	} {
		a.mutating[name] = true
	}

	a.publish()
	return a, nil
}

// Session exposes the session state, mainly for inspection in tests.
func (a *Assistant) Session() *Session { return a.session }

// Welcome returns the greeting printed when a session starts.
func (a *Assistant) Welcome() string { return a.tr.msg(config.TKeyWelcome) }

// Prompt returns the input prompt.
func (a *Assistant) Prompt() string { return a.tr.msg(config.TKeyPrompt) }

// Reply runs one input line and returns the text to print.
// quit reports that the user asked to end the session.
// Blank lines yield an empty reply.
func (a *Assistant) Reply(ctx context.Context, line string) (reply string, quit bool) {
	name, args, ok := ParseInput(line)
	if !ok {
		return "", false
	}

	a.session.ctx = ctx
	defer func() { a.session.ctx = nil }()

	out, err := a.registry.Dispatch(name, args, a.session)
	switch {
	case errors.Is(err, ErrQuit):
		return out, true
	case err != nil:
		return a.describe(name, err), false
	}

	if a.mutating[name] {
		a.publish()
	}
	return out, false
}

// describe turns a dispatch failure into the message shown to the user.
func (a *Assistant) describe(name string, err error) string {
	var argErr *command.ArgumentCountError

	switch {
	case errors.Is(err, command.ErrCommandNotFound):
		return a.tr.msg(config.TKeyInvalidCommand)
	case errors.As(err, &argErr):
		return a.tr.msg(config.TKeyGiveMeArgs, map[string]any{"Args": a.tr.joinLabels(argErr.Expected)})
	case errors.Is(err, addressbook.ErrRecordNotFound):
		return a.tr.msg(config.TKeyContactMissing)
	case errors.Is(err, addressbook.ErrRecordExists):
		return a.tr.msg(config.TKeyContactExists)
	case errors.Is(err, addressbook.ErrValidation),
		errors.Is(err, addressbook.ErrDuplicatePhone),
		errors.Is(err, addressbook.ErrPhoneNotFound):
		return err.Error()
	}

	slog.Warn(config.MsgDispatchFail,
		config.LogKeyComponent, config.CompShell,
		config.LogKeyCommand, name,
		config.LogKeyError, err)
	return a.tr.msg(config.TKeyUnexpected, map[string]any{"Error": err.Error()})
}

// publish pushes the current book to the feed server, if any.
func (a *Assistant) publish() {
	if a.publisher == nil {
		return
	}

	ics, err := a.calendar().Encode(a.session.Book)
	if err != nil {
		slog.Error(config.MsgPublishFail,
			config.LogKeyComponent, config.CompShell,
			config.LogKeyError, err)
	} else {
		a.publisher.UpdateCalendar(ics)
	}

	var vcf bytes.Buffer
	if _, err := exchange.Export(&vcf, a.session.Book); err != nil {
		slog.Error(config.MsgPublishFail,
			config.LogKeyComponent, config.CompShell,
			config.LogKeyError, err)
		return
	}
	a.publisher.UpdateContacts(vcf.Bytes())
}

func (a *Assistant) calendar() *exchange.Calendar {
	return &exchange.Calendar{
		Clock:           a.session.Clock,
		ReminderTrigger: a.session.Settings.ReminderTrigger,
		FormatSummary: func(name string) string {
			return a.tr.msg(config.TKeyEvtSummary, map[string]any{"Name": name})
		},
	}
}

// ParseInput splits a line into a lower-cased command name and its arguments.
// ok is false for blank lines.
func ParseInput(line string) (name string, args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// -----------------------------------------------------------------------------
// Handler table
// -----------------------------------------------------------------------------

func (a *Assistant) commands() []command.Command[*Session] {
	const argsAndContext = command.PositionalArgs | command.Context

	return []command.Command[*Session]{
		{Names: []string{config.CmdHello}, Wants: command.None, Run: a.hello},
		{Names: []string{config.CmdAdd}, Args: []string{config.ArgName, config.ArgPhone}, Wants: argsAndContext, Run: a.addContact},
		{Names: []string{config.CmdChange}, Args: []string{config.ArgName, config.ArgOldPhone, config.ArgNewPhone}, Wants: argsAndContext, Run: a.changeContact},
		{Names: []string{config.CmdPhone}, Args: []string{config.ArgName}, Wants: argsAndContext, Run: a.showPhone},
		{Names: []string{config.CmdAll}, Wants: command.Context, Run: a.showAll},
		{Names: []string{config.CmdAddPhone}, Args: []string{config.ArgName, config.ArgPhone}, Wants: argsAndContext, Run: a.addPhone},
		{Names: []string{config.CmdRemovePhone}, Args: []string{config.ArgName, config.ArgPhone}, Wants: argsAndContext, Run: a.removePhone},
		{Names: []string{config.CmdDelete}, Args: []string{config.ArgName}, Wants: argsAndContext, Run: a.deleteContact},
		{Names: []string{config.CmdAddBirthday}, Args: []string{config.ArgName, config.ArgBirthday}, Wants: argsAndContext, Run: a.addBirthday},
		{Names: []string{config.CmdShowBirthday}, Args: []string{config.ArgName}, Wants: argsAndContext, Run: a.showBirthday},
		{Names: []string{config.CmdBirthdays}, Wants: command.Context, Run: a.birthdays},
		{Names: []string{config.CmdImport}, Args: []string{config.ArgSource}, Wants: argsAndContext, Run: a.importContacts},
		{Names: []string{config.CmdExport}, Args: []string{config.ArgPath}, Wants: argsAndContext, Run: a.exportContacts},
		{Names: []string{config.CmdCalendar}, Args: []string{config.ArgPath}, Wants: argsAndContext, Run: a.writeCalendar},
		{Names: []string{config.CmdLogin}, Args: []string{config.ArgUser, config.ArgPassword}, Wants: argsAndContext, Run: a.login},
		{Names: []string{config.CmdHelp}, Wants: command.None, Run: a.help},
		{Names: []string{config.CmdExit, config.CmdClose, config.CmdQuit, config.CmdBye}, Wants: command.None, Run: a.goodbye},
	}
}

type input = command.Input[*Session]

func findRecord(s *Session, name string) (*addressbook.Record, error) {
	rec, ok := s.Book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", addressbook.ErrRecordNotFound, name)
	}
	return rec, nil
}

func (a *Assistant) hello(input) (string, error) {
	return a.tr.msg(config.TKeyHello), nil
}

func (a *Assistant) goodbye(input) (string, error) {
	return a.tr.msg(config.TKeyGoodbye), ErrQuit
}

func (a *Assistant) help(input) (string, error) {
	names := strings.Join(a.registry.Names(), config.ArgsSeparator)
	return a.tr.msg(config.TKeyCommands, map[string]any{"Names": names}), nil
}

func (a *Assistant) addContact(in input) (string, error) {
	name, phone := in.Args[0], in.Args[1]
	book := in.Context.Book

	if _, exists := book.Find(name); exists {
		return "", fmt.Errorf("%w: %s", addressbook.ErrRecordExists, name)
	}

	rec, err := addressbook.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := rec.AddPhone(phone); err != nil {
		return "", err
	}
	if err := book.AddRecord(rec); err != nil {
		return "", err
	}
	return a.tr.msg(config.TKeyContactAdded), nil
}

func (a *Assistant) changeContact(in input) (string, error) {
	rec, err := findRecord(in.Context, in.Args[0])
	if err != nil {
		return "", err
	}
	if err := rec.EditPhone(in.Args[1], in.Args[2]); err != nil {
		return "", err
	}
	return a.tr.msg(config.TKeyContactUpdated), nil
}

func (a *Assistant) showPhone(in input) (string, error) {
	rec, err := findRecord(in.Context, in.Args[0])
	if err != nil {
		return "", err
	}
	phone, ok := rec.FirstPhone()
	if !ok {
		return a.tr.msg(config.TKeyNoPhones), nil
	}
	return phone.String(), nil
}

func (a *Assistant) showAll(in input) (string, error) {
	records := in.Context.Book.Records()
	if len(records) == 0 {
		return a.tr.msg(config.TKeyNoContacts), nil
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		phone := config.PhoneMissing
		if p, ok := rec.FirstPhone(); ok {
			phone = p.String()
		}
		lines = append(lines, fmt.Sprintf(config.ReplyLineEntry, rec.Name(), phone))
	}
	return strings.Join(lines, config.LineSeparator), nil
}

func (a *Assistant) addPhone(in input) (string, error) {
	rec, err := findRecord(in.Context, in.Args[0])
	if err != nil {
		return "", err
	}
	if err := rec.AddPhone(in.Args[1]); err != nil {
		return "", err
	}
	return a.tr.msg(config.TKeyPhoneAdded), nil
}

func (a *Assistant) removePhone(in input) (string, error) {
	rec, err := findRecord(in.Context, in.Args[0])
	if err != nil {
		return "", err
	}
	if err := rec.RemovePhone(in.Args[1]); err != nil {
		return "", err
	}
	return a.tr.msg(config.TKeyPhoneRemoved), nil
}

func (a *Assistant) deleteContact(in input) (string, error) {
	if err := in.Context.Book.Delete(in.Args[0]); err != nil {
		return "", err
	}
	return a.tr.msg(config.TKeyContactDeleted), nil
}

func (a *Assistant) addBirthday(in input) (string, error) {
	rec, err := findRecord(in.Context, in.Args[0])
	if err != nil {
		return "", err
	}
	if err := rec.SetBirthday(in.Args[1]); err != nil {
		return "", err
	}
	return a.tr.msg(config.TKeyBirthdayAdded), nil
}

func (a *Assistant) showBirthday(in input) (string, error) {
	rec, err := findRecord(in.Context, in.Args[0])
	if err != nil {
		return "", err
	}
	bday, ok := rec.Birthday()
	if !ok {
		return a.tr.msg(config.TKeyNoBirthday), nil
	}
	return bday.String(), nil
}

func (a *Assistant) birthdays(in input) (string, error) {
	book := in.Context.Book
	if book.Len() == 0 {
		return a.tr.msg(config.TKeyNoContacts), nil
	}

	withBirthday := false
	for _, rec := range book.Records() {
		if _, ok := rec.Birthday(); ok {
			withBirthday = true
			break
		}
	}
	if !withBirthday {
		return a.tr.msg(config.TKeyNoBirthdays), nil
	}

	upcoming := book.UpcomingBirthdays(in.Context.Clock.Now())
	if len(upcoming) == 0 {
		return a.tr.msg(config.TKeyNoUpcoming), nil
	}

	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = u.String()
	}
	return strings.Join(lines, config.LineSeparator), nil
}

func (a *Assistant) importContacts(in input) (string, error) {
	s := in.Context
	src := exchange.Source{Location: in.Args[0]}

	if exchange.IsRemote(src.Location) && s.Settings.WebUser != "" {
		src.User = s.Settings.WebUser
		pass, err := keyring.Get(config.KeyringService, src.User)
		if err != nil {
			slog.Debug(config.MsgPassFail,
				config.LogKeyComponent, config.CompShell,
				config.LogKeyUser, src.User,
				config.LogKeyError, err)
		}
		src.Pass = pass
	}

	rc, err := exchange.Open(s.context(), s.Fetcher, src)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	res, err := exchange.Import(s.context(), rc, s.Book)
	if err != nil {
		return "", err
	}
	return a.tr.msg(config.TKeyImported, map[string]any{"Added": res.Added, "Updated": res.Updated}), nil
}

func (a *Assistant) exportContacts(in input) (out string, err error) {
	path, err := config.ExpandPath(in.Args[0])
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrFileWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			out, err = "", fmt.Errorf("%s: %w", config.ErrFileWrite, cerr)
		}
	}()

	n, err := exchange.Export(f, in.Context.Book)
	if err != nil {
		return "", err
	}
	return a.tr.msg(config.TKeyExported, map[string]any{"Count": n, "Path": path}), nil
}

func (a *Assistant) writeCalendar(in input) (string, error) {
	path, err := config.ExpandPath(in.Args[0])
	if err != nil {
		return "", err
	}

	data, err := a.calendar().Encode(in.Context.Book)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrFileWrite, err)
	}
	return a.tr.msg(config.TKeyCalendarWritten, map[string]any{"Path": path}), nil
}

func (a *Assistant) login(in input) (string, error) {
	user, pass := in.Args[0], in.Args[1]
	if err := keyring.Set(config.KeyringService, user, pass); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringSet, err)
	}
	in.Context.Settings.WebUser = user
	return a.tr.msg(config.TKeyCredentialsSaved, map[string]any{"User": user}), nil
}

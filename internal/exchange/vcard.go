// Package exchange moves contacts in and out of the address book:
// vCard import and export, and an iCalendar feed of birthdays.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/go-assistant/internal/addressbook"
	"github.com/tartampluch/go-assistant/internal/config"
)

var contactNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.VCardNamespace))

// ContactUID returns a stable identifier for the contact named name.
func ContactUID(name string) uuid.UUID {
	return uuid.NewSHA1(contactNamespace, []byte(name))
}

// ImportResult counts what an import changed.
type ImportResult struct {
	Added   int
	Updated int
	Skipped int
}

// Source describes where to read vCards from.
type Source struct {
	Location string // File path (may start with "~") or http(s) URL
	User     string // HTTP Basic Auth user for URLs
	Pass     string
}

// Open returns a reader over the vCard data of src.
func Open(ctx context.Context, f Fetcher, src Source) (io.ReadCloser, error) {
	if IsRemote(src.Location) {
		if f == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return f.Fetch(ctx, src.Location, src.User, src.Pass)
	}

	path, err := config.ExpandPath(src.Location)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFileOpen, err)
	}
	return file, nil
}

// Import decodes every card of r into book. New names become records; existing
// records gain the phones they lack and a birthday if they have none.
// Malformed cards and invalid values are skipped and logged.
func Import(ctx context.Context, r io.Reader, book *addressbook.AddressBook) (ImportResult, error) {
	var res ImportResult
	dec := vcard.NewDecoder(r)
	total := 0

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A decoder error leaves the stream position undefined, stop here.
			if total == 0 {
				return res, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompExchange,
				config.LogKeyError, err)
			break
		}
		total++

		switch mergeCard(card, book) {
		case mergeAdded:
			res.Added++
		case mergeUpdated:
			res.Updated++
		case mergeSkipped:
			res.Skipped++
		}
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompExchange,
		config.LogKeyTotal, total,
		config.LogKeyAdded, res.Added,
		config.LogKeyUpdated, res.Updated)
	return res, nil
}

type mergeOutcome int

const (
	mergeUnchanged mergeOutcome = iota
	mergeAdded
	mergeUpdated
	mergeSkipped
)

func mergeCard(card vcard.Card, book *addressbook.AddressBook) mergeOutcome {
	name := cardName(card)
	if name == "" {
		slog.Debug(config.MsgSkippedName, config.LogKeyComponent, config.CompExchange)
		return mergeSkipped
	}

	rec, exists := book.Find(name)
	if !exists {
		var err error
		if rec, err = addressbook.NewRecord(name); err != nil {
			return mergeSkipped
		}
	}

	changed := false
	for _, tel := range card.Values(vcard.FieldTelephone) {
		phone := normalizePhone(tel)
		if _, found := rec.FindPhone(phone); found {
			continue
		}
		if err := rec.AddPhone(phone); err != nil {
			slog.Debug(config.MsgSkippedPhone,
				config.LogKeyComponent, config.CompExchange,
				config.LogKeyName, name,
				config.LogKeyValue, tel)
			continue
		}
		changed = true
	}

	if _, has := rec.Birthday(); !has {
		if bday := card.Value(vcard.FieldBirthday); bday != "" {
			if t, err := parseDate(bday); err == nil {
				rec.SetBirthdayDate(addressbook.BirthdayFromDate(t))
				changed = true
			} else {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompExchange,
					config.LogKeyValue, bday)
			}
		}
	}

	if !exists {
		if err := book.AddRecord(rec); err != nil {
			return mergeSkipped
		}
		return mergeAdded
	}
	if changed {
		return mergeUpdated
	}
	return mergeUnchanged
}

// cardName prefers FN (Formatted) over N (Structured).
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.PreferredValue(vcard.FieldFormattedName)); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		return strings.TrimSpace(strings.Join(strings.Fields(n.GivenName+" "+n.FamilyName), " "))
	}
	return ""
}

// normalizePhone drops the separators commonly found in TEL values ("555-123 4567").
func normalizePhone(tel string) string {
	tel = strings.TrimPrefix(tel, "tel:")
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, tel)
}

// parseDate handles the vCard date formats. Dates without a year land in
// config.DefaultLeapYear so that --02-29 stays valid.
func parseDate(value string) (time.Time, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}

	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}

// Export writes every record of book as a vCard 4.0 card and returns how many were written.
func Export(w io.Writer, book *addressbook.AddressBook) (int, error) {
	enc := vcard.NewEncoder(w)
	count := 0

	for _, rec := range book.Records() {
		if err := enc.Encode(recordCard(rec)); err != nil {
			return count, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
		count++
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompExchange,
		config.LogKeyCount, count)
	return count, nil
}

func recordCard(rec *addressbook.Record) vcard.Card {
	name := rec.Name().String()
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldFormattedName, name)
	card.SetValue(vcard.FieldUID, ContactUID(name).URN())

	for _, p := range rec.Phones() {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  p.String(),
			Params: vcard.Params{vcard.ParamType: {vcard.TypeCell}},
		})
	}
	if b, ok := rec.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b.Date().Format(config.DateFormatFullBasic))
	}
	return card
}

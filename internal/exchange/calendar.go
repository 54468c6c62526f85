package exchange

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-assistant/internal/addressbook"
	"github.com/tartampluch/go-assistant/internal/config"
)

// Calendar renders the birthdays of an address book as an iCalendar feed.
type Calendar struct {
	Clock addressbook.Clock

	// ReminderTrigger is an ISO8601 duration (e.g. "-P1D"). Empty disables alarms.
	ReminderTrigger string

	// FormatSummary allows the caller to inject localized event titles.
	FormatSummary func(name string) string
}

// Encode generates one all-day event per contact and year, for the previous,
// current and next year, skipping years before the contact was born.
func (c *Calendar) Encode(book *addressbook.AddressBook) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	now := c.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, rec := range book.Records() {
		bday, ok := rec.Birthday()
		if !ok {
			continue
		}
		for _, e := range c.events(rec.Name().String(), bday, now.Year()) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	// go-ical refuses to encode a calendar without components.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgCalendarDone,
		config.LogKeyComponent, config.CompExchange,
		config.LogKeyCount, len(cal.Children))
	return buf.Bytes(), nil
}

func (c *Calendar) events(name string, bday addressbook.Birthday, currentYear int) []*ical.Event {
	uid := ContactUID(name).String()
	summary := fmt.Sprintf(config.FallbackSummary, name)
	if c.FormatSummary != nil {
		summary = c.FormatSummary(name)
	}

	var events []*ical.Event
	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		if y < bday.Date().Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uid, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(addressbook.Anniversary(bday, y))
		event.Props.Set(dtStartProp)

		if c.ReminderTrigger != "" {
			addAlarm(event, c.ReminderTrigger, summary)
		}
		events = append(events, event)
	}
	return events
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

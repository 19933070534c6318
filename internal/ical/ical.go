// Package ical reads the VEVENT blocks of an iCalendar file. Only the fields
// an appointment needs are kept; anything else is ignored.
package ical

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	goical "github.com/emersion/go-ical"
)

const dateLength = len("20060102")

type Event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	AllDay      bool      `json:"all_day"`
}

type Result struct {
	Events  []Event `json:"events"`
	Skipped int     `json:"skipped"`
}

// Parse collects every VEVENT of the calendar. Events without SUMMARY or with
// a missing or unreadable DTSTART are counted in Skipped. Bare dates and
// floating times are read in loc, as are times whose TZID is unknown.
// A file whose structure cannot be decoded is an error.
func Parse(r io.Reader, loc *time.Location) (Result, error) {
	if loc == nil {
		loc = time.UTC
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read calendar: %w", err)
	}

	res := Result{Events: []Event{}}

	body := wrap(raw)
	if len(body) == 0 {
		return res, nil
	}

	cal, err := goical.NewDecoder(bytes.NewReader(body)).Decode()
	if errors.Is(err, io.EOF) {
		return res, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("decode calendar: %w", err)
	}

	for _, ev := range cal.Events() {
		if e, ok := buildEvent(ev, loc); ok {
			res.Events = append(res.Events, e)
		} else {
			res.Skipped++
		}
	}
	return res, nil
}

// wrap accepts exports that list bare VEVENT blocks without the enclosing
// VCALENDAR.
func wrap(raw []byte) []byte {
	body := bytes.TrimLeft(raw, " \t\r\n")
	if len(body) == 0 {
		return nil
	}
	if bytes.HasPrefix(bytes.ToUpper(firstLine(body)), []byte("BEGIN:VCALENDAR")) {
		return body
	}

	var buf bytes.Buffer
	buf.WriteString("BEGIN:VCALENDAR\r\n")
	buf.Write(body)
	if !bytes.HasSuffix(body, []byte("\n")) {
		buf.WriteString("\r\n")
	}
	buf.WriteString("END:VCALENDAR\r\n")
	return buf.Bytes()
}

func firstLine(b []byte) []byte {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return bytes.TrimRight(b[:i], "\r")
	}
	return b
}

func buildEvent(ev goical.Event, loc *time.Location) (Event, bool) {
	summary := strings.TrimSpace(text(ev.Props.Get(goical.PropSummary)))
	if summary == "" {
		return Event{}, false
	}

	dt := ev.Props.Get(goical.PropDateTimeStart)
	if dt == nil {
		return Event{}, false
	}

	start, err := startTime(dt, loc)
	if err != nil {
		return Event{}, false
	}

	return Event{
		Summary:     summary,
		Description: text(ev.Props.Get(goical.PropDescription)),
		Start:       start,
		AllDay:      dt.ValueType() == goical.ValueDate || len(strings.TrimSpace(dt.Value)) == dateLength,
	}, true
}

// startTime falls back to loc when the TZID names a zone this host cannot
// load.
func startTime(p *goical.Prop, loc *time.Location) (time.Time, error) {
	t, err := p.DateTime(loc)
	if err == nil || p.Params.Get(goical.ParamTimezoneID) == "" {
		return t, err
	}

	floating := *p
	floating.Params = goical.Params{}
	for k, v := range p.Params {
		if k != goical.ParamTimezoneID {
			floating.Params[k] = v
		}
	}
	return floating.DateTime(loc)
}

func text(p *goical.Prop) string {
	if p == nil {
		return ""
	}
	s, err := p.Text()
	if err != nil {
		return p.Value
	}
	return s
}

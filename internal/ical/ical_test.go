package ical

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, body string, loc *time.Location) Result {
	t.Helper()
	res, err := Parse(strings.NewReader(strings.ReplaceAll(body, "\n", "\r\n")), loc)
	require.NoError(t, err)
	return res
}

func TestParse_KickoffScenario(t *testing.T) {
	res := parse(t, `BEGIN:VCALENDAR
VERSION:2.0
BEGIN:VEVENT
SUMMARY:Kickoff
DTSTART:20240115T140000Z
END:VEVENT
END:VCALENDAR
`, time.UTC)

	require.Len(t, res.Events, 1)
	ev := res.Events[0]
	assert.Equal(t, "Kickoff", ev.Summary)
	assert.Equal(t, "", ev.Description)
	assert.True(t, ev.Start.Equal(time.Date(2024, time.January, 15, 14, 0, 0, 0, time.UTC)))
	assert.False(t, ev.AllDay)
	assert.Zero(t, res.Skipped)
}

func TestParse_BareDateIsLocalMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	res := parse(t, `BEGIN:VEVENT
SUMMARY:Entrega
DTSTART;VALUE=DATE:20240301
DESCRIPTION:Primeira linha\nSegunda\, com vírgula
END:VEVENT
`, loc)

	require.Len(t, res.Events, 1)
	ev := res.Events[0]
	assert.True(t, ev.AllDay)
	assert.True(t, ev.Start.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, loc)))
	assert.Equal(t, "Primeira linha\nSegunda, com vírgula", ev.Description)
}

func TestParse_SkipsIncompleteBlocks(t *testing.T) {
	res := parse(t, `BEGIN:VCALENDAR
BEGIN:VEVENT
DTSTART:20240115T140000Z
END:VEVENT
BEGIN:VEVENT
SUMMARY:No start
END:VEVENT
BEGIN:VEVENT
SUMMARY:Broken start
DTSTART:tomorrow
END:VEVENT
BEGIN:VEVENT
SUMMARY:Fine
DTSTART:20240116T090000Z
END:VEVENT
END:VCALENDAR
`, time.UTC)

	require.Len(t, res.Events, 1)
	assert.Equal(t, "Fine", res.Events[0].Summary)
	assert.Equal(t, 3, res.Skipped)
}

func TestParse_FoldedLinesAndNestedAlarm(t *testing.T) {
	res := parse(t, `BEGIN:VEVENT
SUMMARY:Reunião com
  cliente
DTSTART;TZID=Europe/Lisbon:20240610T100000
BEGIN:VALARM
SUMMARY:Alarm text
DESCRIPTION:ignored
END:VALARM
END:VEVENT
`, time.UTC)

	require.Len(t, res.Events, 1)
	ev := res.Events[0]
	assert.Equal(t, "Reunião com cliente", ev.Summary)
	assert.Equal(t, "", ev.Description)

	lisbon, err := time.LoadLocation("Europe/Lisbon")
	require.NoError(t, err)
	assert.True(t, ev.Start.Equal(time.Date(2024, time.June, 10, 10, 0, 0, 0, lisbon)))
}

func TestParse_UnterminatedBlockIsRejected(t *testing.T) {
	body := strings.ReplaceAll(`BEGIN:VEVENT
SUMMARY:Half
DTSTART:20240115T140000Z
`, "\n", "\r\n")

	_, err := Parse(strings.NewReader(body), time.UTC)
	assert.Error(t, err)
}

func TestParse_UnknownTimezoneFallsBackToViewer(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	res := parse(t, `BEGIN:VCALENDAR
BEGIN:VEVENT
SUMMARY:Gravação
DTSTART;TZID=Custom/Studio:20240610T100000
END:VEVENT
END:VCALENDAR
`, loc)

	require.Len(t, res.Events, 1)
	assert.True(t, res.Events[0].Start.Equal(time.Date(2024, time.June, 10, 10, 0, 0, 0, loc)))
	assert.False(t, res.Events[0].AllDay)
}

func TestParse_EmptyInput(t *testing.T) {
	res := parse(t, "", nil)

	assert.NotNil(t, res.Events)
	assert.Empty(t, res.Events)
}

package calendar

import (
	"time"

	"github.com/BruksfildServices01/production-board/internal/models"
)

type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Normalize folds out-of-range months into the right year (month 13 is
// January of the following year, month 0 is December of the previous one).
func (m Month) Normalize() Month {
	return MonthOf(time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC))
}

func (m Month) Prev() Month {
	return Month{Year: m.Year, Month: m.Month - 1}.Normalize()
}

func (m Month) Next() Month {
	return Month{Year: m.Year, Month: m.Month + 1}.Normalize()
}

func (m Month) Contains(year int, month time.Month) bool {
	return m.Year == year && m.Month == month
}

type MonthView struct {
	Month             Month                        `json:"month"`
	Prev              Month                        `json:"prev"`
	Next              Month                        `json:"next"`
	DaysInMonth       int                          `json:"days_in_month"`
	LeadingBlanks     int                          `json:"leading_blanks"`
	ProjectsByDay     map[int][]models.Project     `json:"projects_by_day"`
	AppointmentsByDay map[int][]models.Appointment `json:"appointments_by_day"`
}

// Aggregate buckets deadlines and appointments into the days of m. Nothing is
// cached: navigating back to a month recomputes the same buckets.
func Aggregate(
	m Month,
	loc *time.Location,
	projects []models.Project,
	appointments []models.Appointment,
) MonthView {
	m = m.Normalize()
	if loc == nil {
		loc = time.UTC
	}

	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)

	view := MonthView{
		Month:             m,
		Prev:              m.Prev(),
		Next:              m.Next(),
		DaysInMonth:       first.AddDate(0, 1, -1).Day(),
		LeadingBlanks:     int(first.Weekday()),
		ProjectsByDay:     map[int][]models.Project{},
		AppointmentsByDay: map[int][]models.Appointment{},
	}

	for _, p := range projects {
		if p.EndDate == nil {
			continue
		}
		// a deadline is a calendar date, read its fields as stored
		y, mo, d := p.EndDate.UTC().Date()
		if m.Contains(y, mo) {
			view.ProjectsByDay[d] = append(view.ProjectsByDay[d], p)
		}
	}

	for _, a := range appointments {
		y, mo, d := a.Date.In(loc).Date()
		if m.Contains(y, mo) {
			view.AppointmentsByDay[d] = append(view.AppointmentsByDay[d], a)
		}
	}

	return view
}

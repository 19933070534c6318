package dto

import "time"

// AppointmentListDTO is an appointment as the agenda list shows it, with
// the owner's display name resolved and the time in the viewer's zone.
type AppointmentListDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	LocalDate   string    `json:"local_date"`
	LocalTime   string    `json:"local_time"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
}

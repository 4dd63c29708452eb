package models

// DayOfWeek is a three-letter weekday code.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Mon"
	Tuesday   DayOfWeek = "Tue"
	Wednesday DayOfWeek = "Wed"
	Thursday  DayOfWeek = "Thu"
	Friday    DayOfWeek = "Fri"
	Saturday  DayOfWeek = "Sat"
	Sunday    DayOfWeek = "Sun"
)

// Valid reports whether d is one of the seven weekday codes.
func (d DayOfWeek) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// HabitSchedule holds one row per scheduled day. Rows are replaced
// wholesale when a habit's schedule is updated.
type HabitSchedule struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	HabitID   uint64    `gorm:"not null;index" json:"habit_id"`
	DayOfWeek DayOfWeek `gorm:"type:varchar(3);not null" json:"day_of_week"`
}

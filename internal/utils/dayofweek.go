package utils

import (
	"time"

	"github.com/habitfam/family-habits-api/internal/models"
)

var dayCodes = [7]models.DayOfWeek{
	models.Sunday,
	models.Monday,
	models.Tuesday,
	models.Wednesday,
	models.Thursday,
	models.Friday,
	models.Saturday,
}

// DayCode maps a time to its three-letter weekday code using the
// server-local calendar day.
func DayCode(t time.Time) models.DayOfWeek {
	return dayCodes[int(t.Weekday())]
}

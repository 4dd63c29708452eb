package utils

import (
	"testing"
	"time"

	"github.com/habitfam/family-habits-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDayCode(t *testing.T) {
	// 2024-01-01 was a Monday
	tests := []struct {
		day  int
		want models.DayOfWeek
	}{
		{1, models.Monday},
		{2, models.Tuesday},
		{3, models.Wednesday},
		{4, models.Thursday},
		{5, models.Friday},
		{6, models.Saturday},
		{7, models.Sunday},
	}

	for _, tt := range tests {
		got := DayCode(time.Date(2024, 1, tt.day, 12, 0, 0, 0, time.Local))
		require.Equal(t, tt.want, got)
	}
}

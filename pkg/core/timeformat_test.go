package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timeoverwrite/pkg/core"
)

func TestTruncateSeconds(t *testing.T) {
	assert.Equal(t, "10:15", core.TruncateSeconds("10:15:30"))
	assert.Equal(t, "09:00", core.TruncateSeconds("09:00"))
	assert.Equal(t, "09:00", core.TruncateSeconds(" 09:00:00 "))
}

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10:15", "10:15"},
		{"10:15PM", "10:15 PM"},
		{" 10 : 15   AM ", "10:15 AM"},
		{"2:30\tPM", "2:30 PM"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, core.NormalizeInput(tt.input))
		})
	}
}

func TestParseInput_Accepts(t *testing.T) {
	for _, input := range []string{"10:15", "10:15 AM", "10:15PM", "00:00", "23:59", "2:30 PM", "12:00 AM"} {
		t.Run(input, func(t *testing.T) {
			_, err := core.ParseInput(input)
			require.NoError(t, err)
		})
	}
}

func TestParseInput_Rejects(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"25:00", core.ErrMalformedTime},
		{"10:60", core.ErrMalformedTime},
		{"abc", core.ErrMalformedTime},
		{"", core.ErrMalformedTime},
		{"10:15 am", core.ErrMalformedTime},
		{"10:15:30", core.ErrMalformedTime},
		{"13:00 PM", core.ErrHourOutOfRange},
		{"14:00PM", core.ErrHourOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := core.ParseInput(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConvertInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2:30 PM", "14:30"},
		{"9:05 AM", "9:05"},
		{"12:00 AM", "12:00"}, // AM never shifts the hour, so this is not midnight
		{"10:15PM", "22:15"},
		{"07:45", "07:45"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := core.ConvertInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

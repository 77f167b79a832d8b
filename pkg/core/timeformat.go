package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Designator is the optional 12-hour clock marker of a user input.
type Designator string

const (
	NoDesignator Designator = ""
	AM           Designator = "AM"
	PM           Designator = "PM"
)

// timePattern accepts H:MM or HH:MM with hours up to 23, optionally followed
// by a single space and AM or PM.
var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])(?: (AM|PM))?$`)

// TimeInput is a validated user time.
type TimeInput struct {
	// Text is the normalized input as typed, used as the visible text.
	Text       string
	Hour       string
	Minute     string
	Designator Designator
}

// TruncateSeconds drops a seconds component: "10:15:30" becomes "10:15".
func TruncateSeconds(value string) string {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, ":")
}

// NormalizeInput removes all whitespace and puts back a single space before
// each AM/PM marker, so "10:15PM" and " 10 : 15  PM" both read "10:15 PM".
func NormalizeInput(s string) string {
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, "AM", " AM")
	s = strings.ReplaceAll(s, "PM", " PM")
	return s
}

// ParseInput normalizes and validates a user supplied time.
func ParseInput(s string) (TimeInput, error) {
	text := NormalizeInput(s)

	m := timePattern.FindStringSubmatch(text)
	if m == nil {
		return TimeInput{}, fmt.Errorf("%q: %w", text, ErrMalformedTime)
	}

	in := TimeInput{
		Text:       text,
		Hour:       m[1],
		Minute:     m[2],
		Designator: Designator(m[3]),
	}

	if in.Designator != NoDesignator {
		// The pattern guarantees digits.
		hour, _ := strconv.Atoi(in.Hour)
		if hour > 12 {
			return TimeInput{}, fmt.Errorf("%q: %w", text, ErrHourOutOfRange)
		}
	}

	return in, nil
}

// To24Hour converts the input to the value stored in the annotation.
// PM adds twelve hours, AM only drops the marker, so "12:00 AM" stays "12:00".
func (t TimeInput) To24Hour() string {
	hour := t.Hour
	if t.Designator == PM {
		h, _ := strconv.Atoi(hour)
		hour = strconv.Itoa(h + 12)
	}
	return hour + ":" + t.Minute
}

// ConvertInput validates s and returns its 24-hour form.
func ConvertInput(s string) (string, error) {
	in, err := ParseInput(s)
	if err != nil {
		return "", err
	}
	return in.To24Hour(), nil
}

// Package units converts leg distances and march times into the units
// chosen for display.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownDistanceUnit = errors.New("unknown distance unit")
	ErrUnknownTimeFormat   = errors.New("unknown time format")
	ErrInvalidTime         = errors.New("invalid hours:minutes time")
)

// DistanceUnit is the unit distances are displayed in.
type DistanceUnit int

const (
	Meters DistanceUnit = iota
	Kilometers
	Feet
	Yards
	Miles
	numDistanceUnits
)

// factors converts metres into each unit.
var factors = [numDistanceUnits]float64{
	Meters:     1,
	Kilometers: 0.001,
	Feet:       3.28084,
	Yards:      1.093613333,
	Miles:      0.00062137121212119323429,
}

var distanceNames = [numDistanceUnits]string{
	Meters:     "meters",
	Kilometers: "kilometers",
	Feet:       "feet",
	Yards:      "yards",
	Miles:      "miles",
}

var distanceAbbrevs = [numDistanceUnits]string{
	Meters:     "m",
	Kilometers: "km",
	Feet:       "ft",
	Yards:      "yd",
	Miles:      "mi",
}

func (u DistanceUnit) valid() bool { return u >= 0 && u < numDistanceUnits }

func (u DistanceUnit) String() string {
	if !u.valid() {
		return fmt.Sprintf("DistanceUnit(%d)", int(u))
	}
	return distanceNames[u]
}

// Abbrev returns the short label used in table headers.
func (u DistanceUnit) Abbrev() string {
	if !u.valid() {
		return "?"
	}
	return distanceAbbrevs[u]
}

func (u DistanceUnit) Next() DistanceUnit { return (u + 1) % numDistanceUnits }

// rounded reports whether the unit keeps two decimals instead of being
// truncated to a whole number.
func (u DistanceUnit) rounded() bool {
	return u == Kilometers || u == Miles
}

// ParseDistanceUnit accepts the unit names, ignoring case.
func ParseDistanceUnit(s string) (DistanceUnit, error) {
	for u := Meters; u < numDistanceUnits; u++ {
		if strings.EqualFold(s, distanceNames[u]) {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownDistanceUnit)
}

// ConvertDistance scales metres into unit. Kilometres and miles are
// rounded to two decimals; metres, feet and yards are truncated.
func ConvertDistance(meters float64, unit DistanceUnit) float64 {
	if !unit.valid() {
		unit = Meters
	}
	v := meters * factors[unit]
	if unit.rounded() {
		return math.Round(v*100) / 100
	}
	return math.Trunc(v)
}

// FormatDistance renders a value returned by ConvertDistance.
func FormatDistance(v float64, unit DistanceUnit) string {
	if unit.rounded() {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// TimeFormat is how march time is displayed.
type TimeFormat int

const (
	Minutes TimeFormat = iota
	HoursMinutes
	numTimeFormats
)

func (f TimeFormat) String() string {
	switch f {
	case Minutes:
		return "minutes"
	case HoursMinutes:
		return "hours:minutes"
	}
	return fmt.Sprintf("TimeFormat(%d)", int(f))
}

func (f TimeFormat) Next() TimeFormat { return (f + 1) % numTimeFormats }

// ParseTimeFormat accepts "minutes" or "hours:minutes".
func ParseTimeFormat(s string) (TimeFormat, error) {
	for f := Minutes; f < numTimeFormats; f++ {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownTimeFormat)
}

// FormatTime renders whole minutes either unchanged or as h:mm. Hours
// are not wrapped at 24.
func FormatTime(minutes int, format TimeFormat) string {
	if format != HoursMinutes {
		return strconv.Itoa(minutes)
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// ParseHoursMinutes is the inverse of FormatTime for HoursMinutes: the
// last two characters are minutes and everything before the last ':' is
// hours.
func ParseHoursMinutes(text string) (int, error) {
	i := strings.LastIndex(text, ":")
	if i < 0 || len(text) < 2 || i != len(text)-3 {
		return 0, fmt.Errorf("%q: %w", text, ErrInvalidTime)
	}
	if !allDigits(text[:i]) {
		return 0, fmt.Errorf("%q: hours: %w", text, ErrInvalidTime)
	}
	hours, err := strconv.Atoi(text[:i])
	if err != nil {
		return 0, fmt.Errorf("%q: hours: %w", text, ErrInvalidTime)
	}
	if !allDigits(text[len(text)-2:]) {
		return 0, fmt.Errorf("%q: minutes: %w", text, ErrInvalidTime)
	}
	mins, err := strconv.Atoi(text[len(text)-2:])
	if err != nil || mins > 59 {
		return 0, fmt.Errorf("%q: minutes: %w", text, ErrInvalidTime)
	}
	return hours*60 + mins, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

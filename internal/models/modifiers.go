package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ngmaloney/navdata-terminal/internal/geometry"
	"github.com/ngmaloney/navdata-terminal/internal/movement"
	"github.com/ngmaloney/navdata-terminal/internal/units"
)

// Direction of the grid-magnetic angle, applied as a sign.
const (
	West = -1
	East = 1
)

var ErrInvalidGMA = errors.New("invalid grid-magnetic angle")

// Modifiers carries every setting that affects a computed leg.
type Modifiers struct {
	TimeOfDay movement.TimeOfDay
	Terrain   movement.Terrain
	Tactical  movement.Tactical

	GMA      float64 // Grid-magnetic angle, in AngleUnit
	EastWest int     // East (+1) or West (-1)

	GridZoneDesignator string // Stored for display only

	AngleUnit    geometry.AngleUnit
	DistanceUnit units.DistanceUnit
	TimeFormat   units.TimeFormat
	BearingMode  geometry.BearingMode
}

// DefaultModifiers returns day, open, non-tactical movement with no
// magnetic correction, bearings in mils, distance in metres and time in
// minutes.
func DefaultModifiers() Modifiers {
	return Modifiers{
		TimeOfDay:    movement.Day,
		Terrain:      movement.Open,
		Tactical:     movement.NonTac,
		GMA:          0,
		EastWest:     West,
		AngleUnit:    geometry.Mils,
		DistanceUnit: units.Meters,
		TimeFormat:   units.Minutes,
		BearingMode:  geometry.Legacy,
	}
}

// RateKey selects the movement rate for these modifiers.
func (m Modifiers) RateKey() movement.Key {
	return movement.Key{TimeOfDay: m.TimeOfDay, Terrain: m.Terrain, Tactical: m.Tactical}
}

// DirectionLabel renders EastWest for display.
func (m Modifiers) DirectionLabel() string {
	if m.EastWest == East {
		return "E"
	}
	return "W"
}

// Summary is a one-line description used in sheet headers.
func (m Modifiers) Summary() string {
	s := fmt.Sprintf("%s %s %s | GMA %g %s %s | %s, %s, %s",
		m.TimeOfDay, m.Terrain, m.Tactical,
		m.GMA, m.AngleUnit, m.DirectionLabel(),
		m.AngleUnit, m.DistanceUnit, m.TimeFormat)
	if m.GridZoneDesignator != "" {
		s = "GZD " + m.GridZoneDesignator + " | " + s
	}
	return s
}

// ParseEastWest accepts "east"/"e"/"1" or "west"/"w"/"-1".
func ParseEastWest(s string) (int, error) {
	switch s {
	case "east", "East", "EAST", "e", "E", "1", "+1":
		return East, nil
	case "west", "West", "WEST", "w", "W", "-1":
		return West, nil
	}
	return 0, fmt.Errorf("east/west must be east or west, got %q", s)
}

// CheckGMA rejects a grid-magnetic angle that is not a finite number.
func CheckGMA(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%v: %w", v, ErrInvalidGMA)
	}
	return nil
}

// ParseGMA reads a grid-magnetic angle. Blank input is 0.
func ParseGMA(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidGMA)
	}
	if err := CheckGMA(v); err != nil {
		return 0, err
	}
	return v, nil
}

// ConvertGMA re-expresses the grid-magnetic angle in unit, keeping the
// same physical correction.
func (m Modifiers) ConvertGMA(unit geometry.AngleUnit) float64 {
	if unit == m.AngleUnit {
		return m.GMA
	}
	return m.GMA * unit.FullCircle() / m.AngleUnit.FullCircle()
}

// Package geometry computes distance and bearing between two normalized
// grid references on a flat grid.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ngmaloney/navdata-terminal/internal/grid"
)

var ErrUnknownAngleUnit = errors.New("unknown angle unit")

// AngleUnit selects how bearings are expressed.
type AngleUnit int

const (
	Mils AngleUnit = iota
	Degrees
	numAngleUnits
)

// FullCircle returns the number of units in one revolution.
func (u AngleUnit) FullCircle() float64 {
	if u == Degrees {
		return 360
	}
	return 6400
}

func (u AngleUnit) String() string {
	switch u {
	case Mils:
		return "mils"
	case Degrees:
		return "degrees"
	}
	return fmt.Sprintf("AngleUnit(%d)", int(u))
}

func (u AngleUnit) Next() AngleUnit { return (u + 1) % numAngleUnits }

// ParseAngleUnit accepts "mils" or "degrees".
func ParseAngleUnit(s string) (AngleUnit, error) {
	for u := Mils; u < numAngleUnits; u++ {
		if strings.EqualFold(s, u.String()) {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownAngleUnit)
}

// BearingMode picks the grid bearing formula.
type BearingMode int

const (
	// Legacy measures from the easting axis and mirrors on the sign of
	// the northing difference only. This reproduces the planning sheets
	// the tool has always produced.
	Legacy BearingMode = iota
	// Compass measures clockwise from the northing axis.
	Compass
	numBearingModes
)

func (m BearingMode) String() string {
	switch m {
	case Legacy:
		return "legacy"
	case Compass:
		return "compass"
	}
	return fmt.Sprintf("BearingMode(%d)", int(m))
}

func (m BearingMode) Next() BearingMode { return (m + 1) % numBearingModes }

// ParseBearingMode accepts "legacy" or "compass".
func ParseBearingMode(s string) (BearingMode, error) {
	for m := Legacy; m < numBearingModes; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown bearing mode %q", s)
}

// Vector is a displacement as (northing, easting).
type Vector [2]float64

func (v Vector) Dot(o Vector) float64 { return v[0]*o[0] + v[1]*o[1] }
func (v Vector) Length() float64      { return math.Sqrt(v.Dot(v)) }

// eastAxis is the reference vector for legacy bearings.
var eastAxis = Vector{0, 1}

// snap absorbs floating point noise before a value is truncated to a
// whole unit, so 5599.999999999999 reads as 5600.
const snap = 1e-9

// Displacement returns to minus from.
func Displacement(from, to grid.Reference) Vector {
	return Vector{float64(to.Northing - from.Northing), float64(to.Easting - from.Easting)}
}

// Distance is the straight line distance in metres, truncated.
func Distance(from, to grid.Reference) int {
	return int(Displacement(from, to).Length())
}

// VectorAngle returns the unsigned angle in radians between v1 and v2.
// It is NaN if either vector has zero length.
func VectorAngle(v1, v2 Vector) float64 {
	c := v1.Dot(v2) / (v1.Length() * v2.Length())
	// Rounding can push |c| just past 1.
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

// BearingFromNorth is the legacy grid bearing, truncated to a whole
// unit. The angle to the easting axis is used directly when the
// northing difference is >= 0 and mirrored (full - angle) otherwise; the
// easting sign is never consulted. Identical points yield 0.
func BearingFromNorth(from, to grid.Reference, unit AngleUnit) float64 {
	d := Displacement(from, to)
	if d[0] == 0 && d[1] == 0 {
		return 0
	}
	full := unit.FullCircle()
	scaled := VectorAngle(d, eastAxis) * full / (2 * math.Pi)
	if d[0] < 0 {
		scaled = full - scaled
	}
	return wrapWhole(scaled, full)
}

// CompassBearing is the grid bearing measured clockwise from the
// northing axis, truncated to a whole unit.
func CompassBearing(from, to grid.Reference, unit AngleUnit) float64 {
	d := Displacement(from, to)
	if d[0] == 0 && d[1] == 0 {
		return 0
	}
	a := math.Atan2(d[1], d[0])
	if a < 0 {
		a += 2 * math.Pi
	}
	full := unit.FullCircle()
	return wrapWhole(a*full/(2*math.Pi), full)
}

// GridBearing dispatches on mode.
func GridBearing(from, to grid.Reference, unit AngleUnit, mode BearingMode) float64 {
	if mode == Compass {
		return CompassBearing(from, to, unit)
	}
	return BearingFromNorth(from, to, unit)
}

func wrapWhole(v, full float64) float64 {
	v = math.Floor(v + snap)
	if v >= full {
		v -= full
	}
	return v
}

// MagneticBearing applies the grid-magnetic angle to a grid bearing.
// eastWest is +1 or -1. The result is always in [0, full circle).
func MagneticBearing(gridBearing, gma float64, eastWest int, unit AngleUnit) float64 {
	full := unit.FullCircle()
	raw := gridBearing + gma*float64(eastWest)
	if raw < 0 {
		raw += full
	}
	if raw >= full {
		raw -= full
	}
	return math.Abs(math.Mod(raw, full))
}

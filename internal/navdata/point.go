// Package navdata computes navigation legs between grid references and
// collects them into a planning sheet.
package navdata

import (
	"errors"
	"fmt"
	"math"

	"github.com/ngmaloney/navdata-terminal/internal/geometry"
	"github.com/ngmaloney/navdata-terminal/internal/grid"
	"github.com/ngmaloney/navdata-terminal/internal/models"
	"github.com/ngmaloney/navdata-terminal/internal/movement"
	"github.com/ngmaloney/navdata-terminal/internal/units"
)

var ErrInvalidGrid = errors.New("invalid grid")

// Point is a leg from one grid reference to another. The grids are
// normalized once; everything else is derived on each call from the
// grids and the current modifiers.
type Point struct {
	RawFrom string
	RawTo   string
	From    grid.Reference
	To      grid.Reference

	Modifiers models.Modifiers
}

// NewPoint normalizes both grids. A malformed grid returns an error that
// matches both ErrInvalidGrid and the underlying grid error.
func NewPoint(from, to string, mods models.Modifiers) (*Point, error) {
	f, err := grid.Normalize(from)
	if err != nil {
		return nil, fmt.Errorf("%w: from: %w", ErrInvalidGrid, err)
	}
	t, err := grid.Normalize(to)
	if err != nil {
		return nil, fmt.Errorf("%w: to: %w", ErrInvalidGrid, err)
	}
	return &Point{
		RawFrom:   from,
		RawTo:     to,
		From:      f,
		To:        t,
		Modifiers: mods,
	}, nil
}

// Distance in metres.
func (p *Point) Distance() int {
	return geometry.Distance(p.From, p.To)
}

// GridBearing is the bearing before magnetic correction.
func (p *Point) GridBearing() float64 {
	return geometry.GridBearing(p.From, p.To, p.Modifiers.AngleUnit, p.Modifiers.BearingMode)
}

// Bearing is the magnetic bearing in the modifiers' angle unit.
func (p *Point) Bearing() float64 {
	m := p.Modifiers
	return geometry.MagneticBearing(p.GridBearing(), m.GMA, m.EastWest, m.AngleUnit)
}

// Rate is the movement rate in metres per hour.
func (p *Point) Rate() (int, error) {
	return movement.Rate(p.Modifiers.RateKey())
}

// TimeMinutes is the march time, truncated to whole minutes.
func (p *Point) TimeMinutes() (int, error) {
	rate, err := p.Rate()
	if err != nil {
		return 0, err
	}
	return int(math.Trunc(float64(p.Distance()) / float64(rate) * 60)), nil
}

// FormattedTime renders TimeMinutes in the modifiers' time format.
func (p *Point) FormattedTime() (string, error) {
	minutes, err := p.TimeMinutes()
	if err != nil {
		return "", err
	}
	return units.FormatTime(minutes, p.Modifiers.TimeFormat), nil
}

// FormattedDistance is the distance in the modifiers' distance unit.
func (p *Point) FormattedDistance() float64 {
	return units.ConvertDistance(float64(p.Distance()), p.Modifiers.DistanceUnit)
}

// Row snapshots the leg for a sheet. Serial is left for the sheet to
// assign.
func (p *Point) Row() (models.Row, error) {
	t, err := p.FormattedTime()
	if err != nil {
		return models.Row{}, err
	}
	return models.Row{
		GridFrom: grid.Display(p.RawFrom),
		GridTo:   grid.Display(p.RawTo),
		Bearing:  p.Bearing(),
		Distance: p.FormattedDistance(),
		Time:     t,
		From10:   p.From.String(),
		To10:     p.To.String(),
		Meters:   p.Distance(),
	}, nil
}

// Package movement holds the fixed rate-of-march table used to turn a
// leg distance into a time estimate.
package movement

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRateCombination = errors.New("unknown movement rate combination")

// TimeOfDay is day or night movement.
type TimeOfDay int

const (
	Day TimeOfDay = iota
	Night
	numTimesOfDay
)

// Terrain describes how restrictive the ground is.
type Terrain int

const (
	Open Terrain = iota
	Close
	Xtreme
	numTerrains
)

// Tactical is whether the move is made tactically.
type Tactical int

const (
	NonTac Tactical = iota
	Tac
	numTacticals
)

// Key selects one entry of the rate table.
type Key struct {
	TimeOfDay TimeOfDay
	Terrain   Terrain
	Tactical  Tactical
}

// rates is indexed [TimeOfDay][Terrain][Tactical], metres per hour.
var rates = [numTimesOfDay][numTerrains][numTacticals]int{
	Day: {
		Open:   {NonTac: 5000, Tac: 2000},
		Close:  {NonTac: 3000, Tac: 1000},
		Xtreme: {NonTac: 1500, Tac: 500},
	},
	Night: {
		Open:   {NonTac: 2500, Tac: 1000},
		Close:  {NonTac: 1500, Tac: 500},
		Xtreme: {NonTac: 750, Tac: 250},
	},
}

// Rate returns the movement rate in metres per hour for k.
func Rate(k Key) (int, error) {
	if k.TimeOfDay < 0 || k.TimeOfDay >= numTimesOfDay ||
		k.Terrain < 0 || k.Terrain >= numTerrains ||
		k.Tactical < 0 || k.Tactical >= numTacticals {
		return 0, fmt.Errorf("%s: %w", k, ErrUnknownRateCombination)
	}
	return rates[k.TimeOfDay][k.Terrain][k.Tactical], nil
}

func (k Key) String() string {
	return k.TimeOfDay.String() + k.Terrain.String() + k.Tactical.String()
}

func (t TimeOfDay) String() string {
	switch t {
	case Day:
		return "day"
	case Night:
		return "night"
	}
	return fmt.Sprintf("TimeOfDay(%d)", int(t))
}

func (t Terrain) String() string {
	switch t {
	case Open:
		return "Open"
	case Close:
		return "Close"
	case Xtreme:
		return "Xtreme"
	}
	return fmt.Sprintf("Terrain(%d)", int(t))
}

func (t Tactical) String() string {
	switch t {
	case NonTac:
		return "NonTac"
	case Tac:
		return "Tac"
	}
	return fmt.Sprintf("Tactical(%d)", int(t))
}

// ParseTimeOfDay accepts "day" or "night", ignoring case.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for t := Day; t < numTimesOfDay; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("time of day %q: %w", s, ErrUnknownRateCombination)
}

// ParseTerrain accepts "Open", "Close" or "Xtreme", ignoring case.
func ParseTerrain(s string) (Terrain, error) {
	for t := Open; t < numTerrains; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("terrain %q: %w", s, ErrUnknownRateCombination)
}

// ParseTactical accepts "Tac" or "NonTac", ignoring case.
func ParseTactical(s string) (Tactical, error) {
	for t := NonTac; t < numTacticals; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("tactical %q: %w", s, ErrUnknownRateCombination)
}

// Next cycles through the values; used by the UI to step a setting.
func (t TimeOfDay) Next() TimeOfDay { return (t + 1) % numTimesOfDay }
func (t Terrain) Next() Terrain     { return (t + 1) % numTerrains }
func (t Tactical) Next() Tactical   { return (t + 1) % numTacticals }

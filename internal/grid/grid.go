// Package grid parses numeric grid references into fixed-precision
// coordinate pairs.
//
// A grid reference is an even-length digit string; the first half holds
// the northing digits and the second half the easting digits. Every
// reference is normalized to 5+5 digits by right-padding each half with
// zeros, so a lower precision reference names the origin corner of its
// (larger) cell rather than the cell's centre. "3245" therefore becomes
// 32000 45000, not 32500 45500.
package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// HalfDigits is the width of each half of a normalized reference.
	HalfDigits = 5
	MinLength  = 4
	MaxLength  = 2 * HalfDigits
)

var (
	ErrInvalidLength     = errors.New("grid reference must have an even number of digits between 4 and 10")
	ErrInvalidCharacters = errors.New("grid reference may only contain digits")
)

// Reference is a normalized grid reference in base distance units
// (metres).
type Reference struct {
	Northing int
	Easting  int
}

// Normalize validates raw and expands it to 10-figure precision.
func Normalize(raw string) (Reference, error) {
	if len(raw) > MaxLength {
		return Reference{}, fmt.Errorf("%q is too long: %w", raw, ErrInvalidLength)
	}
	if len(raw) < MinLength {
		return Reference{}, fmt.Errorf("%q is too short: %w", raw, ErrInvalidLength)
	}
	if len(raw)%2 != 0 {
		return Reference{}, fmt.Errorf("%q has an odd number of digits: %w", raw, ErrInvalidLength)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return Reference{}, fmt.Errorf("%q: %w", raw, ErrInvalidCharacters)
		}
	}

	half := len(raw) / 2
	northing, err := parseHalf(raw[:half])
	if err != nil {
		return Reference{}, err
	}
	easting, err := parseHalf(raw[half:])
	if err != nil {
		return Reference{}, err
	}
	return Reference{Northing: northing, Easting: easting}, nil
}

// Valid reports whether raw would normalize without error.
func Valid(raw string) bool {
	_, err := Normalize(raw)
	return err == nil
}

func parseHalf(digits string) (int, error) {
	padded := digits + strings.Repeat("0", HalfDigits-len(digits))
	v, err := strconv.Atoi(padded)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", digits, ErrInvalidCharacters)
	}
	return v, nil
}

// String renders the reference as a 10-figure grid.
func (r Reference) String() string {
	return fmt.Sprintf("%05d%05d", r.Northing, r.Easting)
}

// Display splits a raw grid at its midpoint with a space for
// readability, e.g. "321456" -> "321 456". Odd-length input is returned
// unchanged.
func Display(raw string) string {
	if len(raw) == 0 || len(raw)%2 != 0 {
		return raw
	}
	half := len(raw) / 2
	return raw[:half] + " " + raw[half:]
}

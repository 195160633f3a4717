// Package routeshape writes a navigation sheet as a planar PolyLine
// shapefile. Coordinates are grid metres (X easting, Y northing) within
// the 100 km square; no projection file is written.
package routeshape

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"

	"github.com/ngmaloney/navdata-terminal/internal/grid"
	"github.com/ngmaloney/navdata-terminal/internal/models"
)

// DBF column order. Names are limited to 10 characters.
const (
	fieldSerial = iota
	fieldFrom
	fieldTo
	fieldBearing
	fieldDistance
	fieldTime
	fieldGoing
	fieldRemarks
)

var fields = []shp.Field{
	shp.NumberField("SERIAL", 6),
	shp.StringField("FROM", 12),
	shp.StringField("TO", 12),
	shp.FloatField("BEARING", 10, 2),
	shp.NumberField("DIST_M", 10),
	shp.StringField("TIME", 10),
	shp.StringField("GOING", 80),
	shp.StringField("REMARKS", 160),
}

// Leg is one route segment read back from a shapefile.
type Leg struct {
	Serial  int
	From    string
	To      string
	Bearing float64
	Meters  int
	Time    string
	Going   string
	Remarks string
	Points  []shp.Point
}

// Export writes base.shp, base.shx and base.dbf with one PolyLine per
// row and returns the .shp path. A trailing ".shp" on base is ignored.
func Export(base string, rows []models.Row) (string, error) {
	base = strings.TrimSuffix(base, ".shp")
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating export directory: %w", err)
		}
	}

	lines := make([]*shp.PolyLine, len(rows))
	for i, row := range rows {
		line, err := polyLine(row)
		if err != nil {
			return "", fmt.Errorf("serial %d: %w", row.Serial, err)
		}
		lines[i] = line
	}

	w, err := shp.Create(base+".shp", shp.POLYLINE)
	if err != nil {
		return "", fmt.Errorf("creating shapefile: %w", err)
	}
	if err := w.SetFields(fields); err != nil {
		w.Close()
		return "", fmt.Errorf("setting dbf fields: %w", err)
	}

	for i, row := range rows {
		n := int(w.Write(lines[i]))
		attrs := []any{
			row.Serial,
			row.GridFrom,
			row.GridTo,
			row.Bearing,
			row.Meters,
			row.Time,
			row.Going,
			row.Remarks,
		}
		for f, v := range attrs {
			if s, ok := v.(string); ok {
				v = clip(s, int(fields[f].Size))
			}
			if err := w.WriteAttribute(n, f, v); err != nil {
				w.Close()
				return "", fmt.Errorf("writing serial %d %s: %w", row.Serial, fields[f], err)
			}
		}
	}
	w.Close()

	// go-shp names the table "<base>dbf"; readers expect "<base>.dbf".
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return "", fmt.Errorf("renaming dbf: %w", err)
	}
	return base + ".shp", nil
}

// Read loads the legs of a shapefile written by Export.
func Read(path string) ([]Leg, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile: %w", err)
	}
	defer r.Close()

	var legs []Leg
	for r.Next() {
		n, s := r.Shape()
		line, ok := s.(*shp.PolyLine)
		if !ok {
			return nil, fmt.Errorf("record %d: unexpected shape %T", n, s)
		}
		attr := func(f int) string {
			return strings.Trim(r.ReadAttribute(n, f), "\x00 ")
		}

		leg := Leg{
			From:    attr(fieldFrom),
			To:      attr(fieldTo),
			Time:    attr(fieldTime),
			Going:   attr(fieldGoing),
			Remarks: attr(fieldRemarks),
			Points:  line.Points,
		}
		if leg.Serial, err = strconv.Atoi(attr(fieldSerial)); err != nil {
			return nil, fmt.Errorf("record %d serial: %w", n, err)
		}
		if leg.Bearing, err = strconv.ParseFloat(attr(fieldBearing), 64); err != nil {
			return nil, fmt.Errorf("record %d bearing: %w", n, err)
		}
		if leg.Meters, err = strconv.Atoi(attr(fieldDistance)); err != nil {
			return nil, fmt.Errorf("record %d distance: %w", n, err)
		}
		legs = append(legs, leg)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading shapefile: %w", err)
	}
	return legs, nil
}

func polyLine(row models.Row) (*shp.PolyLine, error) {
	from, err := grid.Normalize(row.From10)
	if err != nil {
		return nil, fmt.Errorf("from grid: %w", err)
	}
	to, err := grid.Normalize(row.To10)
	if err != nil {
		return nil, fmt.Errorf("to grid: %w", err)
	}
	return shp.NewPolyLine([][]shp.Point{{
		{X: float64(from.Easting), Y: float64(from.Northing)},
		{X: float64(to.Easting), Y: float64(to.Northing)},
	}}), nil
}

// clip shortens s to at most n bytes without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

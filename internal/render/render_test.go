package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ngmaloney/navdata-terminal/internal/models"
	"github.com/ngmaloney/navdata-terminal/internal/units"
)

func sampleRow() models.Row {
	return models.Row{
		Serial:   1,
		GridFrom: "321 456",
		GridTo:   "312 465",
		Bearing:  5600,
		Distance: 1272,
		Time:     "15",
		Going:    "open field",
		Remarks:  "RV at bridge",
	}
}

func TestCells(t *testing.T) {
	mods := models.DefaultModifiers()
	got := Cells(sampleRow(), mods)
	want := []string{"1", "321 456", "312 465", "5600", "1272", "15", "open field", "RV at bridge"}
	if len(got) != len(want) {
		t.Fatalf("Cells() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Cells()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	mods.DistanceUnit = units.Kilometers
	row := sampleRow()
	row.Distance = 1.27
	row.Bearing = 315.5
	got = Cells(row, mods)
	if got[3] != "315.5" || got[4] != "1.27" {
		t.Errorf("Cells() bearing/distance = %q/%q", got[3], got[4])
	}
}

func TestHeaders(t *testing.T) {
	mods := models.DefaultModifiers()
	mods.DistanceUnit = units.Miles
	h := Headers(mods)
	if h[3] != "Bearing (mils)" || h[4] != "Distance (mi)" || h[5] != "Time (minutes)" {
		t.Errorf("Headers() = %v", h)
	}
}

func TestSheet(t *testing.T) {
	mods := models.DefaultModifiers()
	mods.GridZoneDesignator = "18T"

	out := Sheet("Route Alpha", mods, []models.Row{sampleRow()})
	for _, want := range []string{"Route Alpha", "GZD 18T", "Serial", "321 456", "312 465", "5600", "1272", "RV at bridge"} {
		if !strings.Contains(out, want) {
			t.Errorf("Sheet() missing %q:\n%s", want, out)
		}
	}

	empty := Sheet("", mods, nil)
	if !strings.Contains(empty, "No legs.") {
		t.Errorf("empty Sheet() = %q", empty)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "print", "sheet.txt")
	if err := WriteFile(path, "Route", models.DefaultModifiers(), []models.Row{sampleRow()}); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(b), "open field") {
		t.Errorf("printed sheet missing going: %s", b)
	}
}

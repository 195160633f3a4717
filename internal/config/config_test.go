package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ngmaloney/navdata-terminal/internal/geometry"
	"github.com/ngmaloney/navdata-terminal/internal/models"
	"github.com/ngmaloney/navdata-terminal/internal/movement"
	"github.com/ngmaloney/navdata-terminal/internal/units"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "navdata.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	mods, err := cfg.Modifiers.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if mods != models.DefaultModifiers() {
		t.Errorf("modifiers = %+v, want defaults", mods)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q, want info", cfg.Log.Level)
	}
	if cfg.Export.DBPath() != filepath.Join("data", "navdata.db") {
		t.Errorf("DBPath() = %q", cfg.Export.DBPath())
	}
	if cfg.Export.ShapeBase() != filepath.Join("data", "route") {
		t.Errorf("ShapeBase() = %q", cfg.Export.ShapeBase())
	}
}

func TestLoad_Modifiers(t *testing.T) {
	path := writeTempConfig(t, `
modifiers:
  time_of_day: night
  terrain: Close
  tactical: Tac
  gma: 12.5
  east_west: east
  grid_zone_designator: 30U
  angle_unit: degrees
  distance_unit: kilometers
  time_format: hours:minutes
  bearing_mode: compass
log:
  level: debug
export:
  dir: out
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	mods, err := cfg.Modifiers.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	want := models.Modifiers{
		TimeOfDay:          movement.Night,
		Terrain:            movement.Close,
		Tactical:           movement.Tac,
		GMA:                12.5,
		EastWest:           models.East,
		GridZoneDesignator: "30U",
		AngleUnit:          geometry.Degrees,
		DistanceUnit:       units.Kilometers,
		TimeFormat:         units.HoursMinutes,
		BearingMode:        geometry.Compass,
	}
	if mods != want {
		t.Errorf("modifiers = %+v, want %+v", mods, want)
	}
	if cfg.Export.PrintPath() != filepath.Join("out", "navdata-sheet.txt") {
		t.Errorf("PrintPath() = %q", cfg.Export.PrintPath())
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		want     string
	}{
		{"bad terrain", "modifiers:\n  terrain: swamp\n", "modifiers.terrain"},
		{"bad time format", "modifiers:\n  time_format: seconds\n", "modifiers.time_format"},
		{"bad east west", "modifiers:\n  east_west: north\n", "modifiers.east_west"},
		{"bad angle", "modifiers:\n  angle_unit: grads\n", "modifiers.angle_unit"},
		{"bad level", "log:\n  level: loud\n", "log.level must be one of"},
		{"nan gma", "modifiers:\n  gma: .nan\n", "modifiers.gma"},
		{"inf gma", "modifiers:\n  gma: .inf\n", "modifiers.gma"},
		{"negative inf gma", "modifiers:\n  gma: -.Inf\n", "modifiers.gma"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeTempConfig(t, tc.contents))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestLoad_RateErrorIsTyped(t *testing.T) {
	_, err := Load(writeTempConfig(t, "modifiers:\n  tactical: sneaky\n"))
	if !errors.Is(err, movement.ErrUnknownRateCombination) {
		t.Errorf("error = %v, want ErrUnknownRateCombination", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	if _, err := Load(writeTempConfig(t, "modifiers: [\n")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoad_GMAIsTyped(t *testing.T) {
	_, err := Load(writeTempConfig(t, "modifiers:\n  gma: .nan\n"))
	if !errors.Is(err, models.ErrInvalidGMA) {
		t.Errorf("error = %v, want ErrInvalidGMA", err)
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "reading "+dir) {
		t.Errorf("Load(directory) error = %v, want reading %s", err, dir)
	}
}

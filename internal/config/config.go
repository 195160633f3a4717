// Package config loads the YAML settings file: default modifiers, log
// output and export locations.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ngmaloney/navdata-terminal/internal/geometry"
	"github.com/ngmaloney/navdata-terminal/internal/models"
	"github.com/ngmaloney/navdata-terminal/internal/movement"
	"github.com/ngmaloney/navdata-terminal/internal/units"
)

type Config struct {
	Modifiers ModifiersConfig `yaml:"modifiers"`
	Log       LogConfig       `yaml:"log"`
	Export    ExportConfig    `yaml:"export"`
}

// ModifiersConfig uses the same option strings as the command line.
type ModifiersConfig struct {
	TimeOfDay          string  `yaml:"time_of_day"`
	Terrain            string  `yaml:"terrain"`
	Tactical           string  `yaml:"tactical"`
	GMA                float64 `yaml:"gma"`
	EastWest           string  `yaml:"east_west"`
	GridZoneDesignator string  `yaml:"grid_zone_designator"`
	AngleUnit          string  `yaml:"angle_unit"`
	DistanceUnit       string  `yaml:"distance_unit"`
	TimeFormat         string  `yaml:"time_format"`
	BearingMode        string  `yaml:"bearing_mode"`
}

type LogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

type ExportConfig struct {
	Dir       string `yaml:"dir"`
	DBName    string `yaml:"db_name"`
	ShapeName string `yaml:"shape_name"`
	PrintName string `yaml:"print_name"`
}

// DefaultPath is where the config file is looked for when no path is
// given.
func DefaultPath() string {
	return filepath.Join("data", "navdata.yaml")
}

// Default returns a config with every default applied.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads path. A missing file yields Default().
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyDefaults()

	if _, err := cfg.Modifiers.Resolve(); err != nil {
		return Config{}, err
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	m := &cfg.Modifiers
	if m.TimeOfDay == "" {
		m.TimeOfDay = movement.Day.String()
	}
	if m.Terrain == "" {
		m.Terrain = movement.Open.String()
	}
	if m.Tactical == "" {
		m.Tactical = movement.NonTac.String()
	}
	if m.EastWest == "" {
		m.EastWest = "west"
	}
	if m.AngleUnit == "" {
		m.AngleUnit = geometry.Mils.String()
	}
	if m.DistanceUnit == "" {
		m.DistanceUnit = units.Meters.String()
	}
	if m.TimeFormat == "" {
		m.TimeFormat = units.Minutes.String()
	}
	if m.BearingMode == "" {
		m.BearingMode = geometry.Legacy.String()
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "data"
	}
	if cfg.Export.DBName == "" {
		cfg.Export.DBName = "navdata.db"
	}
	if cfg.Export.ShapeName == "" {
		cfg.Export.ShapeName = "route"
	}
	if cfg.Export.PrintName == "" {
		cfg.Export.PrintName = "navdata-sheet.txt"
	}
}

// Resolve turns the option strings into engine modifiers.
func (m ModifiersConfig) Resolve() (models.Modifiers, error) {
	out := models.DefaultModifiers()
	var err error

	if out.TimeOfDay, err = movement.ParseTimeOfDay(m.TimeOfDay); err != nil {
		return models.Modifiers{}, fmt.Errorf("modifiers.time_of_day: %w", err)
	}
	if out.Terrain, err = movement.ParseTerrain(m.Terrain); err != nil {
		return models.Modifiers{}, fmt.Errorf("modifiers.terrain: %w", err)
	}
	if out.Tactical, err = movement.ParseTactical(m.Tactical); err != nil {
		return models.Modifiers{}, fmt.Errorf("modifiers.tactical: %w", err)
	}
	if out.EastWest, err = models.ParseEastWest(m.EastWest); err != nil {
		return models.Modifiers{}, fmt.Errorf("modifiers.east_west: %w", err)
	}
	if out.AngleUnit, err = geometry.ParseAngleUnit(m.AngleUnit); err != nil {
		return models.Modifiers{}, fmt.Errorf("modifiers.angle_unit: %w", err)
	}
	if out.DistanceUnit, err = units.ParseDistanceUnit(m.DistanceUnit); err != nil {
		return models.Modifiers{}, fmt.Errorf("modifiers.distance_unit: %w", err)
	}
	if out.TimeFormat, err = units.ParseTimeFormat(m.TimeFormat); err != nil {
		return models.Modifiers{}, fmt.Errorf("modifiers.time_format: %w", err)
	}
	if out.BearingMode, err = geometry.ParseBearingMode(m.BearingMode); err != nil {
		return models.Modifiers{}, fmt.Errorf("modifiers.bearing_mode: %w", err)
	}
	if err := models.CheckGMA(m.GMA); err != nil {
		return models.Modifiers{}, fmt.Errorf("modifiers.gma: %w", err)
	}
	out.GMA = m.GMA
	out.GridZoneDesignator = m.GridZoneDesignator
	return out, nil
}

// DBPath is the sheet export database.
func (e ExportConfig) DBPath() string {
	return filepath.Join(e.Dir, e.DBName)
}

// ShapeBase is the shapefile base name, without extension.
func (e ExportConfig) ShapeBase() string {
	return filepath.Join(e.Dir, e.ShapeName)
}

// PrintPath is where printed sheets are written from the UI.
func (e ExportConfig) PrintPath() string {
	return filepath.Join(e.Dir, e.PrintName)
}

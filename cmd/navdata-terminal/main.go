package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/navdata-terminal/internal/config"
	"github.com/ngmaloney/navdata-terminal/internal/database"
	"github.com/ngmaloney/navdata-terminal/internal/geometry"
	"github.com/ngmaloney/navdata-terminal/internal/logging"
	"github.com/ngmaloney/navdata-terminal/internal/models"
	"github.com/ngmaloney/navdata-terminal/internal/movement"
	"github.com/ngmaloney/navdata-terminal/internal/navdata"
	"github.com/ngmaloney/navdata-terminal/internal/render"
	"github.com/ngmaloney/navdata-terminal/internal/routeshape"
	"github.com/ngmaloney/navdata-terminal/internal/ui"
	"github.com/ngmaloney/navdata-terminal/internal/units"
)

// legList collects repeated -leg FROM:TO flags.
type legList [][2]string

func (l *legList) String() string {
	parts := make([]string, len(*l))
	for i, leg := range *l {
		parts[i] = leg[0] + ":" + leg[1]
	}
	return strings.Join(parts, ",")
}

func (l *legList) Set(v string) error {
	from, to, ok := strings.Cut(v, ":")
	if !ok || from == "" || to == "" {
		return fmt.Errorf("leg must be FROM:TO, got %q", v)
	}
	*l = append(*l, [2]string{from, to})
	return nil
}

// overrides are modifier flags; empty strings were not given.
type overrides struct {
	timeOfDay, terrain, tactical string
	gma, gmaDir, gzd             string
	angle, distance, timeFormat  string
	bearing                      string
}

func main() {
	configPath := flag.String("config", config.DefaultPath(), "Path to the YAML config file")
	title := flag.String("title", "Navigation Data Sheet", "Sheet title used when printing and exporting")
	printSheet := flag.Bool("print", false, "Print the sheet built from -leg flags to stdout and exit")
	exportDB := flag.String("export-db", "", "Save the sheet built from -leg flags to this sqlite file and exit")
	exportShp := flag.String("export-shp", "", "Write the sheet built from -leg flags as a shapefile with this base name and exit")

	var legs legList
	flag.Var(&legs, "leg", "Leg as FROM:TO grid references (repeatable), e.g. 321456:312465")

	var o overrides
	flag.StringVar(&o.timeOfDay, "time-of-day", "", "day or night")
	flag.StringVar(&o.terrain, "terrain", "", "Open, Close or Xtreme")
	flag.StringVar(&o.tactical, "tactical", "", "NonTac or Tac")
	flag.StringVar(&o.gma, "gma", "", "Grid-magnetic angle in the current angle unit")
	flag.StringVar(&o.gmaDir, "gma-dir", "", "Direction of the grid-magnetic angle: east or west")
	flag.StringVar(&o.gzd, "gzd", "", "Grid zone designator shown on the sheet")
	flag.StringVar(&o.angle, "angle", "", "Angle unit: mils or degrees")
	flag.StringVar(&o.distance, "distance", "", "Distance unit: meters, kilometers, feet, yards or miles")
	flag.StringVar(&o.timeFormat, "time-format", "", "Time format: minutes or hours:minutes")
	flag.StringVar(&o.bearing, "bearing", "", "Bearing formula: legacy or compass")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	mods, err := cfg.Modifiers.Resolve()
	if err != nil {
		fmt.Printf("Error in config: %v\n", err)
		os.Exit(1)
	}
	if mods, err = o.apply(mods); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		fmt.Printf("Error starting logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.Info("starting", "config", *configPath, "modifiers", mods.Summary(), "legs", len(legs))

	sheet, err := buildSheet(legs, mods)
	if err != nil {
		logger.Error("building sheet", "error", err)
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *printSheet || *exportDB != "" || *exportShp != "" {
		if err := runBatch(os.Stdout, logger, sheet, mods, *title, *printSheet, *exportDB, *exportShp); err != nil {
			logger.Error("batch run failed", "error", err)
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	model := ui.NewModel(ui.Options{
		Title:     *title,
		Sheet:     sheet,
		Modifiers: mods,
		Export:    cfg.Export,
		Logger:    logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

// apply lays the given flags over mods.
func (o overrides) apply(mods models.Modifiers) (models.Modifiers, error) {
	var err error
	if o.timeOfDay != "" {
		if mods.TimeOfDay, err = movement.ParseTimeOfDay(o.timeOfDay); err != nil {
			return mods, fmt.Errorf("-time-of-day: %w", err)
		}
	}
	if o.terrain != "" {
		if mods.Terrain, err = movement.ParseTerrain(o.terrain); err != nil {
			return mods, fmt.Errorf("-terrain: %w", err)
		}
	}
	if o.tactical != "" {
		if mods.Tactical, err = movement.ParseTactical(o.tactical); err != nil {
			return mods, fmt.Errorf("-tactical: %w", err)
		}
	}
	if o.gma != "" {
		if mods.GMA, err = models.ParseGMA(o.gma); err != nil {
			return mods, fmt.Errorf("-gma: %w", err)
		}
	}
	if o.gmaDir != "" {
		if mods.EastWest, err = models.ParseEastWest(o.gmaDir); err != nil {
			return mods, fmt.Errorf("-gma-dir: %w", err)
		}
	}
	if o.gzd != "" {
		mods.GridZoneDesignator = o.gzd
	}
	if o.angle != "" {
		if mods.AngleUnit, err = geometry.ParseAngleUnit(o.angle); err != nil {
			return mods, fmt.Errorf("-angle: %w", err)
		}
	}
	if o.distance != "" {
		if mods.DistanceUnit, err = units.ParseDistanceUnit(o.distance); err != nil {
			return mods, fmt.Errorf("-distance: %w", err)
		}
	}
	if o.timeFormat != "" {
		if mods.TimeFormat, err = units.ParseTimeFormat(o.timeFormat); err != nil {
			return mods, fmt.Errorf("-time-format: %w", err)
		}
	}
	if o.bearing != "" {
		if mods.BearingMode, err = geometry.ParseBearingMode(o.bearing); err != nil {
			return mods, fmt.Errorf("-bearing: %w", err)
		}
	}
	return mods, nil
}

// buildSheet appends every leg in order.
func buildSheet(legs legList, mods models.Modifiers) (*navdata.Sheet, error) {
	sheet := navdata.NewSheet()
	for _, leg := range legs {
		p, err := navdata.NewPoint(leg[0], leg[1], mods)
		if err != nil {
			return nil, fmt.Errorf("leg %s:%s: %w", leg[0], leg[1], err)
		}
		if _, err := sheet.Append(p); err != nil {
			return nil, fmt.Errorf("leg %s:%s: %w", leg[0], leg[1], err)
		}
	}
	return sheet, nil
}

// runBatch prints and exports without starting the UI.
func runBatch(w io.Writer, logger *logging.Logger, sheet *navdata.Sheet, mods models.Modifiers, title string, toStdout bool, dbPath, shapeBase string) error {
	rows := sheet.Rows()
	if toStdout {
		fmt.Fprint(w, render.Sheet(title, mods, rows))
	}
	if dbPath != "" {
		id, err := database.NewRepository(dbPath).SaveSheet(title, mods, rows)
		if err != nil {
			return fmt.Errorf("exporting to database: %w", err)
		}
		logger.Info("sheet exported", "db", dbPath, "sheet_id", id, "legs", len(rows))
		fmt.Fprintf(w, "Saved sheet %d (%d legs) to %s\n", id, len(rows), dbPath)
	}
	if shapeBase != "" {
		path, err := routeshape.Export(shapeBase, rows)
		if err != nil {
			return fmt.Errorf("exporting shapefile: %w", err)
		}
		logger.Info("sheet exported", "shapefile", path, "legs", len(rows))
		fmt.Fprintf(w, "Wrote %d legs to %s\n", len(rows), path)
	}
	return nil
}

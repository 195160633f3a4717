package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ngmaloney/navdata-terminal/internal/models"
)

// SheetRecord is a stored snapshot header.
type SheetRecord struct {
	ID                 int64
	Title              string
	GridZoneDesignator string
	Modifiers          string
	AngleUnit          string
	DistanceUnit       string
	TimeFormat         string
	CreatedAt          time.Time
	Rows               int
}

// Repository writes navigation sheet snapshots to an sqlite file. Each
// save is a new snapshot; nothing is ever read back into a session.
type Repository struct {
	path string
}

// NewRepository creates a repository for the database at path. An empty
// path uses DBPath().
func NewRepository(path string) *Repository {
	if path == "" {
		path = DBPath()
	}
	return &Repository{path: path}
}

// Path returns the database file the repository writes to.
func (r *Repository) Path() string {
	return r.path
}

// SaveSheet stores one snapshot of rows in a single transaction and
// returns its id.
func (r *Repository) SaveSheet(title string, mods models.Modifiers, rows []models.Row) (int64, error) {
	db, err := Open(r.path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO nav_sheets (title, grid_zone_designator, modifiers, angle_unit, distance_unit, time_format, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		title,
		mods.GridZoneDesignator,
		mods.Summary(),
		mods.AngleUnit.String(),
		mods.DistanceUnit.String(),
		mods.TimeFormat.String(),
		time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("saving sheet: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO nav_rows (sheet_id, serial, grid_from, grid_to, from_10, to_10, bearing, distance, meters, time, going, remarks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing row insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(id, row.Serial, row.GridFrom, row.GridTo, row.From10, row.To10,
			row.Bearing, row.Distance, row.Meters, row.Time, row.Going, row.Remarks); err != nil {
			return 0, fmt.Errorf("saving serial %d: %w", row.Serial, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing sheet: %w", err)
	}
	return id, nil
}

// ListSheets returns every stored snapshot, newest first.
func (r *Repository) ListSheets() ([]SheetRecord, error) {
	db, err := Open(r.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT s.id, s.title, s.grid_zone_designator, s.modifiers, s.angle_unit, s.distance_unit, s.time_format, s.created_at,
			(SELECT COUNT(*) FROM nav_rows r WHERE r.sheet_id = s.id)
		FROM nav_sheets s
		ORDER BY s.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sheets: %w", err)
	}
	defer rows.Close()

	var sheets []SheetRecord
	for rows.Next() {
		var s SheetRecord
		var gzd sql.NullString
		if err := rows.Scan(&s.ID, &s.Title, &gzd, &s.Modifiers, &s.AngleUnit, &s.DistanceUnit, &s.TimeFormat, &s.CreatedAt, &s.Rows); err != nil {
			return nil, fmt.Errorf("scanning sheet: %w", err)
		}
		s.GridZoneDesignator = gzd.String
		sheets = append(sheets, s)
	}
	return sheets, rows.Err()
}

// SheetRows returns the rows of one snapshot in serial order.
func (r *Repository) SheetRows(id int64) ([]models.Row, error) {
	db, err := Open(r.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT serial, grid_from, grid_to, from_10, to_10, bearing, distance, meters, time, going, remarks
		FROM nav_rows WHERE sheet_id = ? ORDER BY serial
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	defer rows.Close()

	var out []models.Row
	for rows.Next() {
		var row models.Row
		var going, remarks sql.NullString
		if err := rows.Scan(&row.Serial, &row.GridFrom, &row.GridTo, &row.From10, &row.To10,
			&row.Bearing, &row.Distance, &row.Meters, &row.Time, &going, &remarks); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row.Going = going.String
		row.Remarks = remarks.String
		out = append(out, row)
	}
	return out, rows.Err()
}

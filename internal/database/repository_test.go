package database

import (
	"path/filepath"
	"testing"

	"github.com/ngmaloney/navdata-terminal/internal/models"
	"github.com/ngmaloney/navdata-terminal/internal/navdata"
)

func testRows(t *testing.T, mods models.Modifiers) []models.Row {
	t.Helper()
	sheet := navdata.NewSheet()
	legs := [][2]string{{"321456", "312465"}, {"312465", "330480"}}
	for _, leg := range legs {
		p, err := navdata.NewPoint(leg[0], leg[1], mods)
		if err != nil {
			t.Fatalf("NewPoint(%q, %q) error = %v", leg[0], leg[1], err)
		}
		if _, err := sheet.Append(p); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := sheet.SetGoing(1, "wooded"); err != nil {
		t.Fatalf("SetGoing() error = %v", err)
	}
	if err := sheet.SetRemark(2, "cross at ford"); err != nil {
		t.Fatalf("SetRemark() error = %v", err)
	}
	return sheet.Rows()
}

func TestRepository_SaveAndList(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "sheets.db"))
	mods := models.DefaultModifiers()
	mods.GridZoneDesignator = "18T"
	rows := testRows(t, mods)

	id, err := repo.SaveSheet("Patrol route", mods, rows)
	if err != nil {
		t.Fatalf("SaveSheet() error = %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveSheet() id = %d, want > 0", id)
	}

	sheets, err := repo.ListSheets()
	if err != nil {
		t.Fatalf("ListSheets() error = %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("ListSheets() returned %d sheets, want 1", len(sheets))
	}
	s := sheets[0]
	if s.ID != id || s.Title != "Patrol route" || s.GridZoneDesignator != "18T" {
		t.Errorf("sheet = %+v", s)
	}
	if s.AngleUnit != "mils" || s.DistanceUnit != "meters" || s.TimeFormat != "minutes" {
		t.Errorf("sheet units = %s/%s/%s", s.AngleUnit, s.DistanceUnit, s.TimeFormat)
	}
	if s.Rows != 2 {
		t.Errorf("sheet rows = %d, want 2", s.Rows)
	}

	got, err := repo.SheetRows(id)
	if err != nil {
		t.Fatalf("SheetRows() error = %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("SheetRows() returned %d rows, want %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], rows[i])
		}
	}
	if got[0].Meters != 1272 || got[0].Bearing != 5600 || got[0].Time != "15" {
		t.Errorf("first row = %+v, want 1272 m, 5600 mils, 15 min", got[0])
	}
}

func TestRepository_Snapshots(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "sheets.db"))
	mods := models.DefaultModifiers()

	first, err := repo.SaveSheet("first", mods, testRows(t, mods))
	if err != nil {
		t.Fatalf("SaveSheet() error = %v", err)
	}
	second, err := repo.SaveSheet("empty", mods, nil)
	if err != nil {
		t.Fatalf("SaveSheet() error = %v", err)
	}

	sheets, err := repo.ListSheets()
	if err != nil {
		t.Fatalf("ListSheets() error = %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("ListSheets() returned %d sheets, want 2", len(sheets))
	}
	if sheets[0].ID != second || sheets[1].ID != first {
		t.Errorf("ListSheets() order = %d, %d; want newest first", sheets[0].ID, sheets[1].ID)
	}
	if sheets[0].Rows != 0 {
		t.Errorf("empty sheet has %d rows", sheets[0].Rows)
	}
}

func TestNewRepository_DefaultPath(t *testing.T) {
	if got := NewRepository("").Path(); got != DBPath() {
		t.Errorf("Path() = %q, want %q", got, DBPath())
	}
}

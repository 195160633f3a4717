package navdata

import (
	"errors"
	"testing"

	"github.com/ngmaloney/navdata-terminal/internal/geometry"
	"github.com/ngmaloney/navdata-terminal/internal/models"
	"github.com/ngmaloney/navdata-terminal/internal/movement"
	"github.com/ngmaloney/navdata-terminal/internal/units"
)

func mustPoint(t *testing.T, from, to string) *Point {
	t.Helper()
	p, err := NewPoint(from, to, models.DefaultModifiers())
	if err != nil {
		t.Fatalf("NewPoint(%q, %q) error = %v", from, to, err)
	}
	return p
}

func sheetWith(t *testing.T, legs ...[2]string) *Sheet {
	t.Helper()
	s := NewSheet()
	for _, leg := range legs {
		if _, err := s.Append(mustPoint(t, leg[0], leg[1])); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	return s
}

func serials(rows []models.Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Serial
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSheet_Append(t *testing.T) {
	s := NewSheet()

	serial, err := s.Append(mustPoint(t, "321456", "312465"))
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if serial != 1 {
		t.Errorf("first serial = %d, want 1", serial)
	}
	serial, _ = s.Append(mustPoint(t, "312465", "300400"))
	if serial != 2 {
		t.Errorf("second serial = %d, want 2", serial)
	}

	rows := s.Rows()
	if len(rows) != 2 {
		t.Fatalf("Rows() returned %d rows, want 2", len(rows))
	}
	first := rows[0]
	if first.GridFrom != "321 456" || first.GridTo != "312 465" {
		t.Errorf("grids = %q -> %q, want '321 456' -> '312 465'", first.GridFrom, first.GridTo)
	}
	if first.Bearing != 5600 || first.Distance != 1272 || first.Time != "15" {
		t.Errorf("row = %+v, want bearing 5600, distance 1272, time 15", first)
	}
	if first.From10 != "3210045600" || first.To10 != "3120046500" {
		t.Errorf("normalized grids = %s %s", first.From10, first.To10)
	}
}

func TestSheet_AppendRateErrorStoresNothing(t *testing.T) {
	s := NewSheet()
	mods := models.DefaultModifiers()
	mods.Tactical = movement.Tactical(7)
	p, err := NewPoint("321456", "312465", mods)
	if err != nil {
		t.Fatalf("NewPoint() error = %v", err)
	}
	if _, err := s.Append(p); !errors.Is(err, movement.ErrUnknownRateCombination) {
		t.Errorf("Append() error = %v, want ErrUnknownRateCombination", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSheet_Annotations(t *testing.T) {
	s := sheetWith(t, [2]string{"321456", "312465"}, [2]string{"312465", "300400"})

	if err := s.SetGoing(2, "uphill through forest"); err != nil {
		t.Fatalf("SetGoing() error = %v", err)
	}
	if err := s.SetRemark(1, "cross stream at ford"); err != nil {
		t.Fatalf("SetRemark() error = %v", err)
	}

	row, ok := s.Row(2)
	if !ok || row.Going != "uphill through forest" {
		t.Errorf("Row(2).Going = %q, want 'uphill through forest'", row.Going)
	}
	row, _ = s.Row(1)
	if row.Remarks != "cross stream at ford" {
		t.Errorf("Row(1).Remarks = %q", row.Remarks)
	}

	if err := s.SetGoing(9, "x"); !errors.Is(err, ErrSerialNotFound) {
		t.Errorf("SetGoing(9) error = %v, want ErrSerialNotFound", err)
	}
	if err := s.SetRemark(0, "x"); !errors.Is(err, ErrSerialNotFound) {
		t.Errorf("SetRemark(0) error = %v, want ErrSerialNotFound", err)
	}
}

func TestSheet_ApplyAnnotationsContinuesPastMissing(t *testing.T) {
	s := sheetWith(t, [2]string{"321456", "312465"}, [2]string{"312465", "300400"})

	err := s.ApplyAnnotations([]Annotation{
		{Serial: 1, Field: Going, Text: "track"},
		{Serial: 5, Field: Going, Text: "lost"},
		{Serial: 2, Field: Remarks, Text: "RV"},
	})
	if !errors.Is(err, ErrSerialNotFound) {
		t.Errorf("ApplyAnnotations() error = %v, want ErrSerialNotFound", err)
	}

	rows := s.Rows()
	if rows[0].Going != "track" {
		t.Errorf("serial 1 going = %q, want track", rows[0].Going)
	}
	if rows[1].Remarks != "RV" {
		t.Errorf("serial 2 remarks = %q, want RV", rows[1].Remarks)
	}

	if err := s.ApplyAnnotations([]Annotation{{Serial: 1, Field: Remarks, Text: "ok"}}); err != nil {
		t.Errorf("ApplyAnnotations() error = %v, want nil", err)
	}
}

func TestSheet_RemoveLast(t *testing.T) {
	s := sheetWith(t, [2]string{"321456", "312465"}, [2]string{"312465", "300400"})

	row, ok := s.RemoveLast()
	if !ok || row.Serial != 2 {
		t.Errorf("RemoveLast() = %d, %v, want 2, true", row.Serial, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if err := s.SetGoing(2, "x"); !errors.Is(err, ErrSerialNotFound) {
		t.Errorf("SetGoing(2) after removal error = %v", err)
	}

	serial, _ := s.Append(mustPoint(t, "300400", "3045"))
	if serial != 2 {
		t.Errorf("serial after RemoveLast = %d, want 2", serial)
	}

	s.RemoveLast()
	s.RemoveLast()
	if _, ok := s.RemoveLast(); ok {
		t.Error("RemoveLast() on empty sheet returned ok")
	}
}

func TestSheet_RemoveBySerialRenumbers(t *testing.T) {
	s := sheetWith(t,
		[2]string{"321456", "312465"},
		[2]string{"312465", "300400"},
		[2]string{"300400", "3045"},
		[2]string{"3045", "321456"},
	)
	if err := s.SetRemark(3, "third"); err != nil {
		t.Fatalf("SetRemark() error = %v", err)
	}

	if err := s.RemoveBySerial(2); err != nil {
		t.Fatalf("RemoveBySerial(2) error = %v", err)
	}

	rows := s.Rows()
	if got := serials(rows); !equalInts(got, []int{1, 2, 3}) {
		t.Errorf("serials = %v, want [1 2 3]", got)
	}
	if rows[1].GridFrom != "300 400" || rows[1].Remarks != "third" {
		t.Errorf("row 2 = %+v, want the old serial 3", rows[1])
	}

	// Annotation lookup follows the new numbering.
	if err := s.SetGoing(3, "last leg"); err != nil {
		t.Fatalf("SetGoing(3) error = %v", err)
	}
	if row, _ := s.Row(3); row.GridFrom != "30 45" || row.Going != "last leg" {
		t.Errorf("Row(3) = %+v", row)
	}
	if err := s.RemoveBySerial(4); !errors.Is(err, ErrSerialNotFound) {
		t.Errorf("RemoveBySerial(4) error = %v, want ErrSerialNotFound", err)
	}

	serial, _ := s.Append(mustPoint(t, "321456", "312465"))
	if serial != 4 {
		t.Errorf("next serial = %d, want 4", serial)
	}
}

func TestSheet_Reapply(t *testing.T) {
	s := sheetWith(t, [2]string{"321456", "312465"})
	if err := s.SetGoing(1, "open fields"); err != nil {
		t.Fatalf("SetGoing() error = %v", err)
	}

	mods := models.DefaultModifiers()
	mods.AngleUnit = geometry.Degrees
	mods.DistanceUnit = units.Feet
	mods.TimeFormat = units.HoursMinutes
	mods.TimeOfDay = movement.Night
	if err := s.Reapply(mods); err != nil {
		t.Fatalf("Reapply() error = %v", err)
	}

	row, _ := s.Row(1)
	if row.Bearing != 315 || row.Distance != 4173 || row.Time != "0:30" {
		t.Errorf("row = %+v, want 315 / 4173 / 0:30", row)
	}
	if row.Going != "open fields" || row.Serial != 1 {
		t.Errorf("annotations lost: %+v", row)
	}

	bad := mods
	bad.TimeOfDay = movement.TimeOfDay(4)
	if err := s.Reapply(bad); !errors.Is(err, movement.ErrUnknownRateCombination) {
		t.Errorf("Reapply(bad) error = %v", err)
	}
	if row, _ := s.Row(1); row.Time != "0:30" {
		t.Errorf("failed Reapply changed the sheet: %+v", row)
	}
}

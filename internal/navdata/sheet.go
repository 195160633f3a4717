package navdata

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ngmaloney/navdata-terminal/internal/models"
)

var ErrSerialNotFound = errors.New("serial not found")

// Field names an annotation column.
type Field int

const (
	Going Field = iota
	Remarks
)

func (f Field) String() string {
	if f == Remarks {
		return "remarks"
	}
	return "going"
}

// Annotation is one pending going/remarks update.
type Annotation struct {
	Serial int
	Field  Field
	Text   string
}

type entry struct {
	point *Point
	row   models.Row
}

// Sheet is an ordered list of legs numbered 1..n. It is safe for use
// from the UI loop and background exporters at the same time.
type Sheet struct {
	mu      sync.RWMutex
	entries []entry
	index   map[int]int // serial -> position in entries
}

// NewSheet returns an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{index: make(map[int]int)}
}

// Append computes p and stores it under the next serial. Nothing is
// stored if the leg cannot be computed.
func (s *Sheet) Append(p *Point) (int, error) {
	row, err := p.Row()
	if err != nil {
		return 0, fmt.Errorf("computing leg: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	row.Serial = len(s.entries) + 1
	s.entries = append(s.entries, entry{point: &cp, row: row})
	s.index[row.Serial] = len(s.entries) - 1
	return row.Serial, nil
}

// SetGoing records the going description for serial.
func (s *Sheet) SetGoing(serial int, text string) error {
	return s.annotate(Annotation{Serial: serial, Field: Going, Text: text})
}

// SetRemark records remarks for serial.
func (s *Sheet) SetRemark(serial int, text string) error {
	return s.annotate(Annotation{Serial: serial, Field: Remarks, Text: text})
}

// ApplyAnnotations applies every update it can. Missing serials are
// reported in the joined error but do not stop the others.
func (s *Sheet) ApplyAnnotations(updates []Annotation) error {
	var errs []error
	for _, a := range updates {
		if err := s.annotate(a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Sheet) annotate(a Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[a.Serial]
	if !ok {
		return fmt.Errorf("setting %s on serial %d: %w", a.Field, a.Serial, ErrSerialNotFound)
	}
	switch a.Field {
	case Going:
		s.entries[i].row.Going = a.Text
	case Remarks:
		s.entries[i].row.Remarks = a.Text
	}
	return nil
}

// RemoveLast drops the highest serial. ok is false on an empty sheet.
func (s *Sheet) RemoveLast() (row models.Row, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	if n == 0 {
		return models.Row{}, false
	}
	row = s.entries[n-1].row
	s.entries = s.entries[:n-1]
	delete(s.index, row.Serial)
	return row, true
}

// RemoveBySerial drops serial and renumbers the later rows so serials
// stay contiguous from 1.
func (s *Sheet) RemoveBySerial(serial int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[serial]
	if !ok {
		return fmt.Errorf("removing serial %d: %w", serial, ErrSerialNotFound)
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.reindex()
	return nil
}

func (s *Sheet) reindex() {
	s.index = make(map[int]int, len(s.entries))
	for i := range s.entries {
		s.entries[i].row.Serial = i + 1
		s.index[i+1] = i
	}
}

// Reapply recomputes every row with mods, keeping grids, going and
// remarks. On error the sheet is left unchanged.
func (s *Sheet) Reapply(mods models.Modifiers) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]models.Row, len(s.entries))
	for i, e := range s.entries {
		p := *e.point
		p.Modifiers = mods
		row, err := p.Row()
		if err != nil {
			return fmt.Errorf("recomputing serial %d: %w", e.row.Serial, err)
		}
		row.Serial = e.row.Serial
		row.Going = e.row.Going
		row.Remarks = e.row.Remarks
		rows[i] = row
	}
	for i := range s.entries {
		s.entries[i].point.Modifiers = mods
		s.entries[i].row = rows[i]
	}
	return nil
}

// Row returns the row for serial.
func (s *Sheet) Row(serial int) (models.Row, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[serial]
	if !ok {
		return models.Row{}, false
	}
	return s.entries[i].row, true
}

// Rows returns a copy of the rows in serial order.
func (s *Sheet) Rows() []models.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]models.Row, len(s.entries))
	for i, e := range s.entries {
		rows[i] = e.row
	}
	return rows
}

// Len is the number of serials.
func (s *Sheet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

package models

// Row is one serial of a navigation data sheet, captured when the leg is
// appended.
type Row struct {
	Serial   int     `json:"serial"`
	GridFrom string  `json:"grid_from"` // Display form, e.g. "321 456"
	GridTo   string  `json:"grid_to"`
	Bearing  float64 `json:"bearing"`
	Distance float64 `json:"distance"` // In the sheet's distance unit
	Time     string  `json:"time"`
	Going    string  `json:"going"`
	Remarks  string  `json:"remarks"`

	// Normalized 10-figure grids; used by exporters.
	From10 string `json:"from_10"`
	To10   string `json:"to_10"`
	// Metres, before unit conversion.
	Meters int `json:"meters"`
}

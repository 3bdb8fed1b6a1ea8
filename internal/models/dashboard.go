// ABOUTME: Dashboard projections of a StatsSnapshot onto subsets of fields.
// ABOUTME: Each of the four dashboards is a fixed field selection and layout.
package models

// Dashboard is a named projection of a snapshot.
type Dashboard struct {
	Number int
	Title  string
	Layout string
	Fields []Field
}

// Tile is one rendered field of a dashboard.
type Tile struct {
	Field Field  `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Dashboards lists the four dashboard views in route order.
var Dashboards = []Dashboard{
	{
		Number: 1,
		Title:  "Daily Activity",
		Layout: "rings",
		Fields: []Field{FieldSteps, FieldCalories, FieldActiveMinutes, FieldSleep},
	},
	{
		Number: 2,
		Title:  "Cardio",
		Layout: "cards",
		Fields: []Field{FieldSteps, FieldCalories, FieldHeartRate, FieldSleep},
	},
	{
		Number: 3,
		Title:  "At a Glance",
		Layout: "minimal",
		Fields: []Field{FieldSteps, FieldCalories, FieldSleep},
	},
	{
		Number: 4,
		Title:  "Full Report",
		Layout: "full",
		Fields: AllFields,
	},
}

// GetDashboard returns the dashboard with the given number (1-4).
func GetDashboard(n int) (Dashboard, bool) {
	if n < 1 || n > len(Dashboards) {
		return Dashboard{}, false
	}
	return Dashboards[n-1], true
}

// Project selects the dashboard's fields from a snapshot.
func (d Dashboard) Project(s StatsSnapshot) []Tile {
	tiles := make([]Tile, 0, len(d.Fields))
	for _, f := range d.Fields {
		tiles = append(tiles, Tile{
			Field: f,
			Label: FieldLabels[f],
			Value: s.Value(f),
			Unit:  FieldUnits[f],
		})
	}
	return tiles
}

// ABOUTME: Field enum for the six metrics held in a stats snapshot.
// ABOUTME: Maps each field to the label and unit dashboards display.
package models

// Field names one metric of a StatsSnapshot.
type Field string

const (
	FieldSteps         Field = "steps"
	FieldCalories      Field = "calories"
	FieldActiveMinutes Field = "active_minutes"
	FieldSleep         Field = "sleep"
	FieldHeartRate     Field = "heart_rate"
	FieldWeight        Field = "weight"
)

// FieldUnits maps fields to their display units.
// Sleep is freeform text that already carries its own units.
var FieldUnits = map[Field]string{
	FieldSteps:         "steps",
	FieldCalories:      "kcal",
	FieldActiveMinutes: "min",
	FieldSleep:         "",
	FieldHeartRate:     "bpm",
	FieldWeight:        "lbs",
}

// FieldLabels maps fields to human-readable labels.
var FieldLabels = map[Field]string{
	FieldSteps:         "Steps",
	FieldCalories:      "Calories",
	FieldActiveMinutes: "Active Minutes",
	FieldSleep:         "Sleep",
	FieldHeartRate:     "Heart Rate",
	FieldWeight:        "Weight",
}

// AllFields lists every field in display order.
var AllFields = []Field{
	FieldSteps, FieldCalories, FieldActiveMinutes,
	FieldSleep, FieldHeartRate, FieldWeight,
}

// IsValidField checks if a string names a known field.
func IsValidField(s string) bool {
	for _, f := range AllFields {
		if string(f) == s {
			return true
		}
	}
	return false
}

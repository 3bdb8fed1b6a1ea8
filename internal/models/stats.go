// ABOUTME: StatsSnapshot model holding the shared dashboard statistics row.
// ABOUTME: Defines the seed snapshot and the partial update applied by simulation.
package models

import "strconv"

// Seed values inserted when the stats table is first initialized.
const (
	SeedSteps         = 11500
	SeedCalories      = 780
	SeedActiveMinutes = 65
	SeedSleep         = "7h 30m"
	SeedHeartRate     = 125
	SeedWeight        = 160
)

// StatsSnapshot is one row of fitness statistics. Stats are global, not
// tied to any user.
type StatsSnapshot struct {
	ID            int64  `json:"id" yaml:"id"`
	Steps         int    `json:"steps" yaml:"steps"`
	Calories      int    `json:"calories" yaml:"calories"`
	ActiveMinutes int    `json:"active_minutes" yaml:"active_minutes"`
	Sleep         string `json:"sleep" yaml:"sleep"`
	HeartRate     int    `json:"heart_rate" yaml:"heart_rate"`
	Weight        int    `json:"weight" yaml:"weight"`
}

// SeedSnapshot returns the default snapshot. The ID is left zero; the
// store assigns it.
func SeedSnapshot() StatsSnapshot {
	return StatsSnapshot{
		Steps:         SeedSteps,
		Calories:      SeedCalories,
		ActiveMinutes: SeedActiveMinutes,
		Sleep:         SeedSleep,
		HeartRate:     SeedHeartRate,
		Weight:        SeedWeight,
	}
}

// Value returns the display value of a single field.
func (s StatsSnapshot) Value(f Field) string {
	switch f {
	case FieldSteps:
		return strconv.Itoa(s.Steps)
	case FieldCalories:
		return strconv.Itoa(s.Calories)
	case FieldActiveMinutes:
		return strconv.Itoa(s.ActiveMinutes)
	case FieldSleep:
		return s.Sleep
	case FieldHeartRate:
		return strconv.Itoa(s.HeartRate)
	case FieldWeight:
		return strconv.Itoa(s.Weight)
	}
	return ""
}

// ActivityUpdate carries the four fields a simulated update rewrites.
// Sleep and weight are never part of it.
type ActivityUpdate struct {
	Steps         int `json:"steps"`
	Calories      int `json:"calories"`
	ActiveMinutes int `json:"active_minutes"`
	HeartRate     int `json:"heart_rate"`
}

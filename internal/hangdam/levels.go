package hangdam

import (
	"fmt"

	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/validation"
)

// Threshold promotes a Hangdam to Level once it owns Count happinesses.
type Threshold struct {
	Count int `toml:"count" validate:"gt=0"`
	Level int `toml:"level" validate:"gt=0"`
}

// LevelTable is the growth configuration: an ordered list of thresholds and
// the number of happinesses after which a Hangdam is archived.
type LevelTable struct {
	Thresholds []Threshold `toml:"thresholds" validate:"min=1,dive"`
	Capacity   int         `toml:"capacity" validate:"gt=0"`
}

// DefaultLevelTable is used when the config file does not override growth.
func DefaultLevelTable() LevelTable {
	return LevelTable{
		Thresholds: []Threshold{
			{Count: 1, Level: 1},
			{Count: 10, Level: 2},
			{Count: 20, Level: 3},
			{Count: 30, Level: 4},
		},
		Capacity: constants.DefaultHangdamCapacity,
	}
}

// Validate checks the table is usable as a monotonic step function.
func (t LevelTable) Validate() error {
	if err := validation.Struct(t); err != nil {
		return fmt.Errorf("invalid level table: %w", err)
	}
	for i := 1; i < len(t.Thresholds); i++ {
		prev, cur := t.Thresholds[i-1], t.Thresholds[i]
		if cur.Count <= prev.Count {
			return fmt.Errorf("invalid level table: threshold counts must increase (%d after %d)", cur.Count, prev.Count)
		}
		if cur.Level <= prev.Level {
			return fmt.Errorf("invalid level table: levels must increase (%d after %d)", cur.Level, prev.Level)
		}
	}
	if last := t.Thresholds[len(t.Thresholds)-1]; t.Capacity < last.Count {
		return fmt.Errorf("invalid level table: capacity %d is below the last threshold %d", t.Capacity, last.Count)
	}
	return nil
}

// LevelFor returns the level reached with count happinesses.
func (t LevelTable) LevelFor(count int) int {
	level := 0
	for _, th := range t.Thresholds {
		if count < th.Count {
			break
		}
		level = th.Level
	}
	return level
}

// MaxLevel is the level of a Hangdam that reached capacity.
func (t LevelTable) MaxLevel() int {
	return t.LevelFor(t.Capacity)
}

// IsFull reports whether count happinesses fill a Hangdam.
func (t LevelTable) IsFull(count int) bool {
	return count >= t.Capacity
}

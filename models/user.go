package models

import (
	"math"
	"time"
)

// User represents a Discord user's economy record
type User struct {
	DiscordID  int64     `db:"discord_id"`
	Balance    int64     `db:"balance"`
	Experience int64     `db:"experience"`
	Level      int       `db:"level"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// LevelForExperience returns the level a user with the given experience
// should be at: floor(sqrt(experience/100)) + 1. Levels are only ever
// raised, never lowered, when experience is granted.
func LevelForExperience(experience int64) int {
	if experience < 0 {
		return 1
	}
	return int(math.Sqrt(float64(experience/100))) + 1
}

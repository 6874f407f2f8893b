package dice

import (
	"math/rand"
	"time"

	"lootroll/internal/models"
)

// Roller provides dice rolling functionality for the bot-side roll command.
// Rolls use the canonical full range so they count toward loot sessions.
type Roller struct {
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new dice roller
func New(cfg *Config) *Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &Roller{
		random: random,
	}
}

// Roll generates a random value in the canonical [RollFloor, RollCeiling] range
func (r *Roller) Roll() int {
	span := models.RollCeiling - models.RollFloor + 1
	return r.random.Intn(span) + models.RollFloor
}

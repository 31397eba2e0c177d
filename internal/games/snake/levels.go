package snake

// Level bounds. Level controls both the score multiplier and the tick period.
const (
	MinLevel = 1
	MaxLevel = 5
)

// LevelInfo describes a difficulty tier for display.
type LevelInfo struct {
	ID         int
	Name       string
	Speed      string
	Multiplier int
	Info       string
}

// Levels lists every playable level in order.
var Levels = []LevelInfo{
	{
		ID:         1,
		Name:       "Easy",
		Speed:      "Slow",
		Multiplier: 1,
		Info:       "Perfect for beginners. Each food gives 10 points and 10 ULO.",
	},
	{
		ID:         2,
		Name:       "Medium",
		Speed:      "Normal",
		Multiplier: 2,
		Info:       "Faster snake, doubled points. Each food gives 20 points and 20 ULO.",
	},
	{
		ID:         3,
		Name:       "Hard",
		Speed:      "Fast",
		Multiplier: 3,
		Info:       "Plan your moves ahead. Each food gives 30 points and 30 ULO.",
	},
	{
		ID:         4,
		Name:       "Expert",
		Speed:      "Very Fast",
		Multiplier: 4,
		Info:       "One wrong move and it's over. Each food gives 40 points and 40 ULO.",
	},
	{
		ID:         5,
		Name:       "Master",
		Speed:      "Insane",
		Multiplier: 5,
		Info:       "Only for the elite. Each food gives 50 points and 50 ULO.",
	},
}

// ValidLevel reports whether level is in [MinLevel, MaxLevel].
func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

// GetLevel returns the info for level, falling back to level 1 for unknown levels.
func GetLevel(level int) LevelInfo {
	if !ValidLevel(level) {
		return Levels[0]
	}
	return Levels[level-MinLevel]
}

// LevelCount returns the number of levels.
func LevelCount() int {
	return len(Levels)
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, LevelCount())
	for i, level := range Levels {
		names[i] = level.Name
	}
	return names
}

package bot

import (
	"fmt"
	"sort"
)

type BotLevel int

const (
	BotLevelEasy BotLevel = iota
	BotLevelMedium
	BotLevelHard
)

// ParseLevel maps an identity difficulty to a level. Unknown values are medium.
func ParseLevel(difficulty string) BotLevel {
	switch difficulty {
	case "easy":
		return BotLevelEasy
	case "hard":
		return BotLevelHard
	default:
		return BotLevelMedium
	}
}

// NewBrain creates a new AI brain based on the specified level.
// A nil script uses the built-in progression.
func NewBrain(level BotLevel, script []Step) (Brain, error) {
	if script == nil {
		script = DefaultScript
	}
	steps := append([]Step(nil), script...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Stage < steps[j].Stage })

	switch level {
	case BotLevelEasy:
		return &ScriptedBrain{steps: steps, lead: -2}, nil
	case BotLevelMedium:
		return &ScriptedBrain{steps: steps}, nil
	case BotLevelHard:
		return &ScriptedBrain{steps: steps, lead: 2}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

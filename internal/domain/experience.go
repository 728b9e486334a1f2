package domain

// MaxLevel is the highest player level.
const MaxLevel = 9

// expToNext[l] is the experience needed to go from level l to l+1.
var expToNext = map[int]int{
	1: 2,
	2: 2,
	3: 6,
	4: 10,
	5: 20,
	6: 32,
	7: 50,
	8: 70,
}

// Experience tracks a player's level and progress toward the next one.
type Experience struct {
	Level int
	Exp   int
}

// NewExperience returns level 1 with no progress.
func NewExperience() Experience {
	return Experience{Level: 1}
}

// CanLevel reports whether more experience can still raise the level.
func (e Experience) CanLevel() bool {
	return e.Level < MaxLevel
}

// ExpNeeded is the experience still missing for the next level, 0 at max.
func (e Experience) ExpNeeded() int {
	if !e.CanLevel() {
		return 0
	}
	return expToNext[e.Level] - e.Exp
}

// AddExperience grants experience, levelling up as many times as it allows.
func (e *Experience) AddExperience(amount int) {
	if !e.CanLevel() {
		return
	}
	e.Exp += amount
	for e.CanLevel() && e.Exp >= expToNext[e.Level] {
		e.Exp -= expToNext[e.Level]
		e.Level++
	}
	if !e.CanLevel() {
		e.Exp = 0
	}
}

// SetLevel forces a level, dropping partial progress.
func (e *Experience) SetLevel(level int) {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	e.Level = level
	e.Exp = 0
}

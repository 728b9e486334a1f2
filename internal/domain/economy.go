package domain

import "sort"

const (
	MaxStreak         = 5
	MaxInterest       = 5
	BaseIncome        = 5
	WinBonus          = 1
	RoundExperience   = 2
	RerollCost        = 1
	LevelUpCost       = 4
	LevelUpExperience = 4
)

// NextStreak returns the streak after a player-versus-player round.
func NextStreak(streak int, current, previous BattleResult) int {
	if current == ResultDraw || current != previous {
		return 0
	}
	if streak+1 > MaxStreak {
		return MaxStreak
	}
	return streak + 1
}

// Interest is floor(money/10) capped at MaxInterest.
func Interest(money int) int {
	i := money / 10
	if i > MaxInterest {
		return MaxInterest
	}
	if i < 0 {
		return 0
	}
	return i
}

// Income computes a round's earnings and the interest part of them.
func Income(money, streak int, last BattleResult) (income, interest int) {
	interest = Interest(money)
	income = interest + streak + BaseIncome
	if last == ResultWin {
		income += WinBonus
	}
	return income, interest
}

// RankPlayers assigns ranks 1..N to living players by descending life, then
// descending level. Eliminated players keep the rank they already had.
func RankPlayers(players []*Player) {
	alive := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	sort.SliceStable(alive, func(i, j int) bool {
		if alive[i].Life != alive[j].Life {
			return alive[i].Life > alive[j].Life
		}
		return alive[i].Experience.Level > alive[j].Experience.Level
	})
	for i, p := range alive {
		p.Rank = i + 1
	}
}

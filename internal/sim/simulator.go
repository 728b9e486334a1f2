// Package sim is a lightweight battle simulator: fights are decided by team
// power and last a time proportional to the number of creatures involved.
package sim

import (
	"time"

	"github.com/google/uuid"

	"autobattler/internal/domain"
	"autobattler/internal/ports"
)

const (
	baseDuration        = 5 * time.Second
	perUnitDuration     = time.Second
	pveBasePower        = 2
	pvePowerPerIndex    = 4
	shinyPowerBonus     = 3
	effectPowerBonus    = 2
	weatherMinTeamTypes = 4
)

var rarityPower = map[domain.Rarity]int{
	domain.RarityCommon:    1,
	domain.RarityUncommon:  2,
	domain.RarityRare:      3,
	domain.RarityEpic:      4,
	domain.RarityLegendary: 5,
	domain.RarityMythical:  8,
	domain.RaritySpecial:   2,
	domain.RarityHatch:     1,
	domain.RarityNeutral:   1,
}

var weatherBySynergy = []struct {
	s domain.Synergy
	w domain.Weather
}{
	{domain.SynergyFire, domain.WeatherSun},
	{domain.SynergyWater, domain.WeatherRain},
	{domain.SynergyGround, domain.WeatherSandstorm},
	{domain.SynergyIce, domain.WeatherSnow},
	{domain.SynergyElectric, domain.WeatherStorm},
	{domain.SynergyFairy, domain.WeatherMisty},
	{domain.SynergyDark, domain.WeatherNight},
}

// Simulator implements ports.BattleSimulator.
type Simulator struct{}

var _ ports.BattleSimulator = (*Simulator)(nil)

// New returns a simulator.
func New() *Simulator { return &Simulator{} }

// Weather picks the condition favoured by the most represented type over
// both teams, if it is represented enough.
func (s *Simulator) Weather(team, opponent []domain.Creature) domain.Weather {
	counts := make(map[domain.Synergy]int)
	for _, side := range [][]domain.Creature{team, opponent} {
		for _, c := range side {
			for _, t := range c.Types {
				counts[t]++
			}
		}
	}
	best := domain.WeatherNeutral
	bestCount := weatherMinTeamTypes - 1
	for _, ws := range weatherBySynergy {
		if counts[ws.s] > bestCount {
			best = ws.w
			bestCount = counts[ws.s]
		}
	}
	return best
}

func (s *Simulator) Start(setup ports.BattleSetup) ports.Battle {
	mine := sidePower(setup.Player)
	theirs := sidePower(setup.Opponent)
	b := newBattle(setup.Weather, len(setup.Player.Team)+len(setup.Opponent.Team))
	b.opponentUnits = len(setup.Opponent.Team)
	b.result = compare(mine, theirs)
	if b.result == domain.ResultWin {
		b.achievements = achievements(setup.Player, mine < theirs+effectPowerBonus)
	}
	return b
}

func (s *Simulator) StartPVE(setup ports.PVESetup) ports.Battle {
	mine := sidePower(setup.Player)
	theirs := pveBasePower + setup.Encounter*pvePowerPerIndex
	if setup.Shiny {
		theirs += shinyPowerBonus
	}
	units := setup.Encounter + 1
	b := newBattle(domain.WeatherNeutral, len(setup.Player.Team)+units)
	b.opponentUnits = units
	b.result = compare(mine, theirs)
	return b
}

func sidePower(side ports.BattleSide) int {
	total := 0
	for _, c := range side.Team {
		stars := c.Stars
		if stars < 1 {
			stars = 1
		}
		total += rarityPower[c.Rarity]*stars + len(c.Items)
	}
	return total + effectPowerBonus*len(side.Effects)
}

func compare(mine, theirs int) domain.BattleResult {
	switch {
	case mine > theirs:
		return domain.ResultWin
	case mine < theirs:
		return domain.ResultDefeat
	default:
		return domain.ResultDraw
	}
}

func achievements(side ports.BattleSide, narrow bool) []domain.Title {
	var out []domain.Title
	if len(side.Team) == 1 {
		out = append(out, domain.TitleDuelist)
	}
	if narrow {
		out = append(out, domain.TitleSurvivor)
	}
	if side.Synergies[domain.SynergyFlying] >= 3 {
		out = append(out, domain.TitleBirdKeeper)
	}
	return out
}

type battle struct {
	id            string
	weather       domain.Weather
	length        time.Duration
	elapsed       time.Duration
	result        domain.BattleResult
	opponentUnits int
	achievements  []domain.Title
	stopped       bool
}

func newBattle(w domain.Weather, units int) *battle {
	return &battle{
		id:      uuid.NewString(),
		weather: w,
		length:  baseDuration + time.Duration(units)*perUnitDuration,
	}
}

func (b *battle) ID() string { return b.id }

func (b *battle) Update(dt time.Duration) bool {
	if b.stopped {
		return true
	}
	b.elapsed += dt
	return b.elapsed >= b.length
}

func (b *battle) Result() domain.BattleResult { return b.result }

// Damage is the surviving opposing units plus half the stage, rounded up.
func (b *battle) Damage(stage int) int {
	if b.result == domain.ResultWin {
		return 0
	}
	return b.opponentUnits + (stage+1)/2
}

func (b *battle) Weather() domain.Weather { return b.weather }

func (b *battle) Achievements() []domain.Title { return b.achievements }

func (b *battle) Stop() { b.stopped = true }

package domain

import "sort"

// Synergy is a creature type counted across a team.
type Synergy string

const (
	SynergyNormal   Synergy = "normal"
	SynergyFire     Synergy = "fire"
	SynergyWater    Synergy = "water"
	SynergyGrass    Synergy = "grass"
	SynergyElectric Synergy = "electric"
	SynergyIce      Synergy = "ice"
	SynergyFighting Synergy = "fighting"
	SynergyPsychic  Synergy = "psychic"
	SynergyDark     Synergy = "dark"
	SynergyFairy    Synergy = "fairy"
	SynergyGround   Synergy = "ground"
	SynergyDragon   Synergy = "dragon"
	SynergyFlying   Synergy = "flying"
	SynergyBaby     Synergy = "baby"
)

// Effect is a threshold bonus unlocked by a synergy count.
type Effect string

const (
	EffectTailwind    Effect = "tailwind"
	EffectBlaze       Effect = "blaze"
	EffectDrizzle     Effect = "drizzle"
	EffectIngrain     Effect = "ingrain"
	EffectRisingVolt  Effect = "rising_volt"
	EffectSnowfall    Effect = "snowfall"
	EffectGuts        Effect = "guts"
	EffectAmnesia     Effect = "amnesia"
	EffectSpite       Effect = "spite"
	EffectCharm       Effect = "charm"
	EffectSandstorm   Effect = "sandstorm"
	EffectDragonDance Effect = "dragon_dance"
	EffectFeather     Effect = "feather_dance"
	EffectHatcher     Effect = "hatcher"
	EffectBreeder     Effect = "breeder"
)

type threshold struct {
	Count  int
	Effect Effect
}

// synergyThresholds lists each synergy's effects by ascending count.
var synergyThresholds = map[Synergy][]threshold{
	SynergyNormal:   {{3, EffectTailwind}},
	SynergyFire:     {{2, EffectBlaze}},
	SynergyWater:    {{3, EffectDrizzle}},
	SynergyGrass:    {{3, EffectIngrain}},
	SynergyElectric: {{3, EffectRisingVolt}},
	SynergyIce:      {{2, EffectSnowfall}},
	SynergyFighting: {{2, EffectGuts}},
	SynergyPsychic:  {{3, EffectAmnesia}},
	SynergyDark:     {{3, EffectSpite}},
	SynergyFairy:    {{2, EffectCharm}},
	SynergyGround:   {{2, EffectSandstorm}},
	SynergyDragon:   {{3, EffectDragonDance}},
	SynergyFlying:   {{2, EffectFeather}},
	SynergyBaby:     {{3, EffectHatcher}, {5, EffectBreeder}},
}

// Synergies counts distinct evolution families per type on the team.
type Synergies map[Synergy]int

// ComputeSynergies counts types over team creatures. Several copies of the
// same family count once.
func ComputeSynergies(board map[string]*Creature) Synergies {
	seen := make(map[Synergy]map[Species]bool)
	for _, c := range board {
		if c.OnBench() {
			continue
		}
		family := c.Family
		if family == "" {
			family = c.Species
		}
		for _, t := range c.Types {
			if seen[t] == nil {
				seen[t] = make(map[Species]bool)
			}
			seen[t][family] = true
		}
	}
	out := make(Synergies, len(seen))
	for t, families := range seen {
		out[t] = len(families)
	}
	return out
}

// ComputeEffects returns the highest reached threshold effect per synergy,
// sorted for stable output.
func ComputeEffects(s Synergies) []Effect {
	var out []Effect
	for syn, count := range s {
		var best Effect
		for _, th := range synergyThresholds[syn] {
			if count >= th.Count {
				best = th.Effect
			}
		}
		if best != "" {
			out = append(out, best)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RefreshSynergies recomputes synergies, effects and team size.
func (p *Player) RefreshSynergies() {
	p.Synergies = ComputeSynergies(p.Board)
	p.Effects = ComputeEffects(p.Synergies)
	p.BoardSize = p.TeamSize()
}

// ApplyDynamicSynergies gives a protean creature the player's strongest
// synergies as its own types.
func ApplyDynamicSynergies(p *Player, c *Creature) {
	n := 0
	switch c.Passive {
	case PassiveProtean2:
		n = 2
	case PassiveProtean3:
		n = 3
	default:
		return
	}
	type entry struct {
		s Synergy
		n int
	}
	ranked := make([]entry, 0, len(p.Synergies))
	for s, count := range p.Synergies {
		if count > 0 {
			ranked = append(ranked, entry{s, count})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].n != ranked[j].n {
			return ranked[i].n > ranked[j].n
		}
		return ranked[i].s < ranked[j].s
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	types := make([]Synergy, 0, len(ranked))
	for _, e := range ranked {
		types = append(types, e.s)
	}
	c.Types = types
}

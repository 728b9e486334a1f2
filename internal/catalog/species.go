// Package catalog holds the static species and item data and the factories
// that turn it into creature instances.
package catalog

import (
	"sort"

	"autobattler/internal/domain"
)

// SpeciesData is the static description of one species.
type SpeciesData struct {
	Rarity    domain.Rarity
	Types     []domain.Synergy
	Stars     int
	Evolution domain.Species
	// EvolutionRounds makes Evolution happen on a round timer instead of by
	// merging three copies.
	EvolutionRounds int
	Passive         domain.Passive
	// Benched creatures are never promoted to the team automatically.
	Benched bool
	// Unlisted species never appear in the regular shop pools.
	Unlisted bool
}

type syn = domain.Synergy

const (
	normal   = domain.SynergyNormal
	fire     = domain.SynergyFire
	water    = domain.SynergyWater
	grass    = domain.SynergyGrass
	electric = domain.SynergyElectric
	ice      = domain.SynergyIce
	fighting = domain.SynergyFighting
	psychic  = domain.SynergyPsychic
	dark     = domain.SynergyDark
	fairy    = domain.SynergyFairy
	ground   = domain.SynergyGround
	dragon   = domain.SynergyDragon
	flying   = domain.SynergyFlying
	baby     = domain.SynergyBaby
)

// line registers an evolution chain whose stages evolve by merging.
func line(r domain.Rarity, types [][]syn, names ...domain.Species) map[domain.Species]SpeciesData {
	out := make(map[domain.Species]SpeciesData, len(names))
	for i, n := range names {
		d := SpeciesData{Rarity: r, Types: types[i], Stars: i + 1}
		if i+1 < len(names) {
			d.Evolution = names[i+1]
		}
		if i > 0 {
			d.Unlisted = true
		}
		out[n] = d
	}
	return out
}

func same(n int, types ...syn) [][]syn {
	out := make([][]syn, n)
	for i := range out {
		out[i] = types
	}
	return out
}

var speciesTable = func() map[domain.Species]SpeciesData {
	t := make(map[domain.Species]SpeciesData)
	add := func(m map[domain.Species]SpeciesData) {
		for k, v := range m {
			t[k] = v
		}
	}

	add(line(domain.RarityCommon, same(3, grass), "bulbasaur", "ivysaur", "venusaur"))
	add(line(domain.RarityCommon, same(3, fire), "charmander", "charmeleon", "charizard"))
	add(line(domain.RarityCommon, same(3, water), "squirtle", "wartortle", "blastoise"))
	add(line(domain.RarityCommon, same(3, ground), "geodude", "graveler", "golem"))
	add(line(domain.RarityCommon, [][]syn{{electric, baby}, {electric}, {electric}}, "pichu", "pikachu", "raichu"))
	add(line(domain.RarityCommon, [][]syn{{fairy, normal, baby}, {fairy, normal}, {fairy, normal}}, "igglybuff", "jigglypuff", "wigglytuff"))
	add(line(domain.RarityCommon, same(3, flying, dark), "zubat", "golbat", "crobat"))

	add(line(domain.RarityUncommon, same(3, psychic), "abra", "kadabra", "alakazam"))
	add(line(domain.RarityUncommon, same(3, dark), "gastly", "haunter", "gengar"))
	add(line(domain.RarityUncommon, same(3, ice, ground), "swinub", "piloswine", "mamoswine"))
	add(line(domain.RarityUncommon, same(3, fighting), "machop", "machoke", "machamp"))
	add(line(domain.RarityUncommon, [][]syn{{ice, psychic, baby}, {ice, psychic}}, "smoochum", "jynx"))

	add(line(domain.RarityRare, same(3, dragon), "dratini", "dragonair", "dragonite"))
	add(line(domain.RarityRare, same(3, fire, dark), "houndour", "houndoom", "mega_houndoom"))
	add(line(domain.RarityEpic, same(3, ground, dark), "larvitar", "pupitar", "tyranitar"))
	add(line(domain.RarityEpic, same(3, dragon, flying), "bagon", "shelgon", "salamence"))
	add(line(domain.RarityLegendary, same(2, water, ice), "lapras", "mega_lapras"))
	add(line(domain.RarityLegendary, same(2, flying, ground), "aerodactyl", "mega_aerodactyl"))

	// Additional pick lines.
	add(line(domain.RarityUncommon, same(3, ground), "aron", "lairon", "aggron"))
	add(line(domain.RarityUncommon, same(3, psychic, fairy), "ralts", "kirlia", "gardevoir"))
	add(line(domain.RarityUncommon, same(2, ice), "snorunt", "glalie"))
	add(line(domain.RarityUncommon, same(3, electric), "shinx", "luxio", "luxray"))
	add(line(domain.RarityRare, same(3, dragon, ground), "gible", "gabite", "garchomp"))
	add(line(domain.RarityRare, [][]syn{{fighting, baby}, {fighting}}, "riolu", "lucario"))
	add(line(domain.RarityRare, same(3, water, ground), "mudkip", "marshtomp", "swampert"))
	add(line(domain.RarityRare, same(3, grass, fire), "budew", "roselia", "roserade"))
	add(line(domain.RarityUncommon, same(3, ground, dragon), "trapinch", "vibrava", "flygon"))
	add(line(domain.RarityUncommon, same(3, ice, water), "spheal", "sealeo", "walrein"))
	add(line(domain.RarityUncommon, same(2, fire, ground), "numel", "camerupt"))
	add(line(domain.RarityUncommon, same(2, grass, ice), "snover", "abomasnow"))
	add(line(domain.RarityUncommon, same(2, normal), "buneary", "lopunny"))
	add(line(domain.RarityUncommon, same(2, dark), "shuppet", "banette"))
	add(line(domain.RarityUncommon, same(2, water, flying), "wingull", "pelipper"))
	add(line(domain.RarityUncommon, same(3, normal, flying), "starly", "staravia", "staraptor"))
	add(line(domain.RarityUncommon, same(2, normal, water), "bidoof", "bibarel"))
	add(line(domain.RarityUncommon, same(2, water, ground), "shellos", "gastrodon"))
	add(line(domain.RarityUncommon, same(2, dark), "poochyena", "mightyena"))
	add(line(domain.RarityUncommon, same(2, electric), "electrike", "manectric"))
	add(line(domain.RarityUncommon, same(2, fighting, psychic), "meditite", "medicham"))
	add(line(domain.RarityUncommon, same(3, normal), "slakoth", "vigoroth", "slaking"))
	add(line(domain.RarityUncommon, same(3, dark), "duskull", "dusclops", "dusknoir"))
	add(line(domain.RarityUncommon, same(3, grass, dark), "seedot", "nuzleaf", "shiftry"))
	add(line(domain.RarityUncommon, same(3, water, grass), "lotad", "lombre", "ludicolo"))
	add(line(domain.RarityUncommon, same(2, ground), "cranidos", "rampardos"))
	add(line(domain.RarityUncommon, same(2, ground, normal), "shieldon", "bastiodon"))
	add(line(domain.RarityUncommon, same(2, fighting, dark), "croagunk", "toxicroak"))
	add(line(domain.RarityRare, same(3, psychic, ground), "beldum", "metang", "metagross"))
	add(line(domain.RarityRare, same(2, ground, flying), "gligar", "gliscor"))
	add(line(domain.RarityRare, same(2, dark, ice), "sneasel", "weavile"))
	add(line(domain.RarityRare, same(2, dark, flying), "murkrow", "honchkrow"))
	add(line(domain.RarityRare, same(2, dark, psychic), "misdreavus", "mismagius"))
	add(line(domain.RarityRare, same(2, flying), "yanma", "yanmega"))
	add(line(domain.RarityRare, same(2, grass), "tangela", "tangrowth"))
	add(line(domain.RarityRare, same(3, ground), "rhyhorn", "rhydon", "rhyperior"))
	add(line(domain.RarityRare, [][]syn{{electric, baby}, {electric}, {electric}}, "elekid", "electabuzz", "electivire"))
	add(line(domain.RarityRare, [][]syn{{fire, baby}, {fire}, {fire}}, "magby", "magmar", "magmortar"))
	add(line(domain.RarityRare, same(3, normal, psychic), "porygon", "porygon2", "porygon_z"))
	add(line(domain.RarityRare, same(2, normal), "lickitung", "lickilicky"))
	add(line(domain.RarityRare, same(3, grass, ground), "turtwig", "grotle", "torterra"))
	add(line(domain.RarityRare, same(3, fire, fighting), "chimchar", "monferno", "infernape"))
	add(line(domain.RarityRare, same(3, water, ice), "piplup", "prinplup", "empoleon"))
	add(line(domain.RarityRare, same(3, grass, dragon), "treecko", "grovyle", "sceptile"))
	add(line(domain.RarityRare, same(3, fire, flying), "torchic", "combusken", "blaziken"))
	add(line(domain.RarityRare, same(3, grass, fairy), "snivy", "servine", "serperior"))
	add(line(domain.RarityRare, same(3, dragon), "axew", "fraxure", "haxorus"))
	add(line(domain.RarityRare, same(2, water, electric), "chinchou", "lanturn"))
	for _, s := range append(append([]domain.Species{}, additionalPools[0]...), additionalPools[1]...) {
		d := t[s]
		d.Unlisted = true
		t[s] = d
	}

	t["kecleon"] = SpeciesData{Rarity: domain.RarityRare, Types: []syn{normal}, Stars: 1, Passive: domain.PassiveProtean2}
	t["castform"] = SpeciesData{Rarity: domain.RarityEpic, Types: []syn{normal}, Stars: 1, Passive: domain.PassiveProtean3}

	t[domain.Eevee] = SpeciesData{Rarity: domain.RarityRare, Types: []syn{normal}, Stars: 1}
	for s, ty := range map[domain.Species]syn{
		domain.Vaporeon: water, domain.Flareon: fire, domain.Jolteon: electric, domain.Umbreon: dark,
		domain.Sylveon: fairy, domain.Leafeon: grass, domain.Espeon: psychic, domain.Glaceon: ice,
	} {
		t[s] = SpeciesData{Rarity: domain.RarityRare, Types: []syn{normal, ty}, Stars: 2, Unlisted: true}
	}

	t[domain.Tyrogue] = SpeciesData{Rarity: domain.RarityUncommon, Types: []syn{fighting, baby}, Stars: 1}
	for _, s := range []domain.Species{domain.Hitmonlee, domain.Hitmonchan, domain.Hitmontop} {
		t[s] = SpeciesData{Rarity: domain.RarityUncommon, Types: []syn{fighting}, Stars: 2, Unlisted: true}
	}

	mythical := func(s domain.Species, types ...syn) {
		t[s] = SpeciesData{Rarity: domain.RarityMythical, Types: types, Stars: 1, Unlisted: true}
	}
	mythical("mew", psychic)
	mythical("celebi", grass, psychic)
	mythical("jirachi", psychic, fairy)
	mythical("victini", fire, psychic)
	mythical(domain.Shaymin, grass)
	mythical(domain.ShayminSky, grass, flying)
	mythical(domain.Phione, water)
	mythical(domain.Manaphy, water, fairy)
	mythical(domain.Groudon, ground)
	mythical(domain.PrimalGroudon, ground, fire)
	mythical(domain.Kyogre, water)
	mythical(domain.PrimalKyogre, water, electric)
	mythical(domain.Rayquaza, dragon, flying)
	mythical(domain.MegaRayquaza, dragon, flying)
	mythical("darkrai", dark)
	mythical("deoxys", psychic)

	t[domain.Ditto] = SpeciesData{Rarity: domain.RaritySpecial, Types: []syn{normal}, Stars: 1, Benched: true, Unlisted: true}
	t[domain.Magikarp] = SpeciesData{Rarity: domain.RaritySpecial, Types: []syn{water}, Stars: 1, Evolution: "gyarados", EvolutionRounds: 5, Unlisted: true}
	t["gyarados"] = SpeciesData{Rarity: domain.RaritySpecial, Types: []syn{water, flying}, Stars: 3, Unlisted: true}
	t[domain.Egg] = SpeciesData{Rarity: domain.RarityHatch, Types: nil, Stars: 1, EvolutionRounds: 3, Benched: true, Unlisted: true}

	return t
}()

// Hatchable species come out of eggs.
var hatchable = []domain.Species{"pichu", "igglybuff", "smoochum", domain.Tyrogue, "riolu"}

var additionalPools = [2][]domain.Species{
	{
		"aron", "ralts", "snorunt", "shinx", "trapinch", "spheal", "numel", "snover",
		"buneary", "shuppet", "wingull", "starly", "bidoof", "shellos", "poochyena", "electrike",
		"meditite", "slakoth", "duskull", "seedot", "lotad", "cranidos", "shieldon", "croagunk",
	},
	{
		"gible", "riolu", "mudkip", "budew", "beldum", "gligar", "sneasel", "murkrow",
		"misdreavus", "yanma", "tangela", "rhyhorn", "elekid", "magby", "porygon", "lickitung",
		"turtwig", "chimchar", "piplup", "treecko", "torchic", "snivy", "axew", "chinchou",
	},
}

var mythicalPools = [2][]domain.Species{
	{"mew", "celebi", "jirachi", "victini", domain.Shaymin, domain.Phione},
	{domain.Groudon, domain.Kyogre, domain.Rayquaza, "darkrai", "deoxys"},
}

var rarityCost = map[domain.Rarity]int{
	domain.RarityCommon:    1,
	domain.RarityUncommon:  2,
	domain.RarityRare:      3,
	domain.RarityEpic:      4,
	domain.RarityLegendary: 5,
	domain.RarityMythical:  10,
	domain.RaritySpecial:   1,
}

// Lookup returns the static data of a species.
func Lookup(s domain.Species) (SpeciesData, bool) {
	d, ok := speciesTable[s]
	return d, ok
}

// Cost is the shop price of a species.
func Cost(s domain.Species) int {
	d, ok := speciesTable[s]
	if !ok {
		return 0
	}
	return rarityCost[d.Rarity]
}

// BaseForm walks an evolution line back to its first stage.
func BaseForm(s domain.Species) domain.Species {
	for {
		prev, ok := preEvolution[s]
		if !ok {
			return s
		}
		s = prev
	}
}

var preEvolution = func() map[domain.Species]domain.Species {
	m := make(map[domain.Species]domain.Species)
	for s, d := range speciesTable {
		if d.Evolution != "" {
			m[d.Evolution] = s
		}
	}
	return m
}()

// ShopSpecies lists the purchasable base forms of a rarity in a stable order.
func ShopSpecies(r domain.Rarity) []domain.Species {
	var out []domain.Species
	for s, d := range speciesTable {
		if d.Rarity == r && !d.Unlisted {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AdditionalPool lists the species offered on additional pick n (0 or 1).
func AdditionalPool(n int) []domain.Species {
	if n < 0 || n >= len(additionalPools) {
		return nil
	}
	return append([]domain.Species(nil), additionalPools[n]...)
}

// MythicalPool lists the species offered on mythical pick n (0 or 1).
func MythicalPool(n int) []domain.Species {
	if n < 0 || n >= len(mythicalPools) {
		return nil
	}
	return append([]domain.Species(nil), mythicalPools[n]...)
}

package domain

// Species identifies a creature kind. Static data for each species lives in
// the catalog; the domain only names the species its rules refer to.
type Species string

// SpeciesNone marks an empty shop slot.
const SpeciesNone Species = ""

const (
	Ditto    Species = "ditto"
	Egg      Species = "egg"
	Magikarp Species = "magikarp"

	Eevee    Species = "eevee"
	Vaporeon Species = "vaporeon"
	Flareon  Species = "flareon"
	Jolteon  Species = "jolteon"
	Umbreon  Species = "umbreon"
	Sylveon  Species = "sylveon"
	Leafeon  Species = "leafeon"
	Espeon   Species = "espeon"
	Glaceon  Species = "glaceon"

	Phione  Species = "phione"
	Manaphy Species = "manaphy"

	Groudon       Species = "groudon"
	PrimalGroudon Species = "primal_groudon"
	Kyogre        Species = "kyogre"
	PrimalKyogre  Species = "primal_kyogre"
	Rayquaza      Species = "rayquaza"
	MegaRayquaza  Species = "mega_rayquaza"
	Shaymin       Species = "shaymin"
	ShayminSky    Species = "shaymin_sky"

	Tyrogue    Species = "tyrogue"
	Hitmonlee  Species = "hitmonlee"
	Hitmonchan Species = "hitmonchan"
	Hitmontop  Species = "hitmontop"
)

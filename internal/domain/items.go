package domain

import "sort"

// Item identifies an item kind.
type Item string

// Basic items are the fusion components.
const (
	FossilStone  Item = "fossil_stone"
	MysticWater  Item = "mystic_water"
	Magnet       Item = "magnet"
	BlackGlasses Item = "black_glasses"
	MiracleSeed  Item = "miracle_seed"
	NeverMeltIce Item = "never_melt_ice"
	Charcoal     Item = "charcoal"
	HeartScale   Item = "heart_scale"
)

// Composite items, one per unordered pair of basic items.
const (
	WonderBox       Item = "wonder_box"
	ExpShare        Item = "exp_share"
	DefensiveRibbon Item = "defensive_ribbon"
	ShellBell       Item = "shell_bell"
	Upgrade         Item = "upgrade"
	RockyHelmet     Item = "rocky_helmet"
	LuckyEgg        Item = "lucky_egg"
	SoulDew         Item = "soul_dew"
	KingsRock       Item = "kings_rock"
	Leftovers       Item = "leftovers"
	ChoiceSpecs     Item = "choice_specs"
	Pokemonomicon   Item = "pokemonomicon"
	AquaEgg         Item = "aqua_egg"
	RazorClaw       Item = "razor_claw"
	ZoomLens        Item = "zoom_lens"
	AssaultVest     Item = "assault_vest"
	FlameOrb        Item = "flame_orb"
	PowerLens       Item = "power_lens"
	ScopeLens       Item = "scope_lens"
	RazorFang       Item = "razor_fang"
	FocusBand       Item = "focus_band"
	ReaperCloth     Item = "reaper_cloth"
	MuscleBand      Item = "muscle_band"
	SmokeBall       Item = "smoke_ball"
	GracideaFlower  Item = "gracidea_flower"
	StarDust        Item = "star_dust"
	IcyRock         Item = "icy_rock"
	XRayVision      Item = "xray_vision"
)

// Evolution stones and orbs used by the transformation table.
const (
	FireStone    Item = "fire_stone"
	WaterStone   Item = "water_stone"
	ThunderStone Item = "thunder_stone"
	LeafStone    Item = "leaf_stone"
	MoonStone    Item = "moon_stone"
	DuskStone    Item = "dusk_stone"
	DawnStone    Item = "dawn_stone"
	IceStone     Item = "ice_stone"
	RedOrb       Item = "red_orb"
	BlueOrb      Item = "blue_orb"
	DeltaOrb     Item = "delta_orb"
)

// BasicItems lists the fusion components in a stable order.
var BasicItems = []Item{
	FossilStone, MysticWater, Magnet, BlackGlasses,
	MiracleSeed, NeverMeltIce, Charcoal, HeartScale,
}

// Stones lists the evolution stones in a stable order.
var Stones = []Item{
	FireStone, WaterStone, ThunderStone, LeafStone,
	MoonStone, DuskStone, DawnStone, IceStone,
}

// ItemRecipes maps each composite item to its two components.
var ItemRecipes = map[Item][2]Item{
	WonderBox:       {FossilStone, MysticWater},
	ExpShare:        {FossilStone, Magnet},
	DefensiveRibbon: {FossilStone, BlackGlasses},
	ShellBell:       {FossilStone, MiracleSeed},
	Upgrade:         {FossilStone, NeverMeltIce},
	RockyHelmet:     {FossilStone, Charcoal},
	LuckyEgg:        {FossilStone, HeartScale},
	SoulDew:         {MysticWater, Magnet},
	KingsRock:       {MysticWater, BlackGlasses},
	Leftovers:       {MysticWater, MiracleSeed},
	ChoiceSpecs:     {MysticWater, NeverMeltIce},
	Pokemonomicon:   {MysticWater, Charcoal},
	AquaEgg:         {MysticWater, HeartScale},
	RazorClaw:       {Magnet, BlackGlasses},
	ZoomLens:        {Magnet, MiracleSeed},
	AssaultVest:     {Magnet, NeverMeltIce},
	FlameOrb:        {Magnet, Charcoal},
	PowerLens:       {Magnet, HeartScale},
	ScopeLens:       {BlackGlasses, MiracleSeed},
	RazorFang:       {BlackGlasses, NeverMeltIce},
	FocusBand:       {BlackGlasses, Charcoal},
	ReaperCloth:     {BlackGlasses, HeartScale},
	MuscleBand:      {MiracleSeed, NeverMeltIce},
	SmokeBall:       {MiracleSeed, Charcoal},
	GracideaFlower:  {MiracleSeed, HeartScale},
	StarDust:        {NeverMeltIce, Charcoal},
	IcyRock:         {NeverMeltIce, HeartScale},
	XRayVision:      {Charcoal, HeartScale},
}

type itemPair struct{ a, b Item }

func pairKey(a, b Item) itemPair {
	if b < a {
		a, b = b, a
	}
	return itemPair{a, b}
}

var recipeIndex = func() map[itemPair]Item {
	idx := make(map[itemPair]Item, len(ItemRecipes))
	for result, parts := range ItemRecipes {
		idx[pairKey(parts[0], parts[1])] = result
	}
	return idx
}()

// FindRecipe returns the composite made from a and b, in either order.
func FindRecipe(a, b Item) (Item, bool) {
	result, ok := recipeIndex[pairKey(a, b)]
	return result, ok
}

// IsBasicItem reports whether the item is a fusion component.
func IsBasicItem(it Item) bool {
	for _, b := range BasicItems {
		if b == it {
			return true
		}
	}
	return false
}

// RecipeContains reports whether the composite is built from the component.
func RecipeContains(composite, component Item) bool {
	parts, ok := ItemRecipes[composite]
	if !ok {
		return false
	}
	return parts[0] == component || parts[1] == component
}

// ItemBag is a multiset of items.
type ItemBag map[Item]int

// NewItemBag returns an empty bag.
func NewItemBag() ItemBag { return make(ItemBag) }

// Add puts one copy of the item into the bag.
func (b ItemBag) Add(it Item) { b[it]++ }

// Count returns how many copies of the item are held.
func (b ItemBag) Count(it Item) int { return b[it] }

// Has reports whether at least one copy is held.
func (b ItemBag) Has(it Item) bool { return b[it] > 0 }

// Remove takes one copy out, reporting whether one was held.
func (b ItemBag) Remove(it Item) bool {
	n := b[it]
	if n == 0 {
		return false
	}
	if n == 1 {
		delete(b, it)
	} else {
		b[it] = n - 1
	}
	return true
}

// Len returns the total number of copies held.
func (b ItemBag) Len() int {
	total := 0
	for _, n := range b {
		total += n
	}
	return total
}

// List returns every copy in a deterministic order.
func (b ItemBag) List() []Item {
	out := make([]Item, 0, b.Len())
	for it, n := range b {
		for i := 0; i < n; i++ {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

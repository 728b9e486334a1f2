package domain

// componentRule maps any of Items, or a composite built from one of them,
// to Target.
type componentRule struct {
	Items  []Item
	Target Species
}

// TransformRule describes how a species reacts to being handed an item.
type TransformRule struct {
	// RejectItems makes every equip attempt fail.
	RejectItems bool
	// ByItem maps an exact item to the resulting species.
	ByItem map[Item]Species
	// ByComponent rules are evaluated in order; later matches win.
	ByComponent []componentRule
	// Fallback applies to any item no other rule matched.
	Fallback Species
}

// Transformations is keyed by the species being equipped.
var Transformations = map[Species]TransformRule{
	Eevee: {ByItem: map[Item]Species{
		WaterStone:   Vaporeon,
		FireStone:    Flareon,
		ThunderStone: Jolteon,
		DuskStone:    Umbreon,
		MoonStone:    Sylveon,
		LeafStone:    Leafeon,
		DawnStone:    Espeon,
		IceStone:     Glaceon,
	}},
	Ditto:    {RejectItems: true},
	Phione:   {ByItem: map[Item]Species{AquaEgg: Manaphy}},
	Groudon:  {ByItem: map[Item]Species{RedOrb: PrimalGroudon}},
	Kyogre:   {ByItem: map[Item]Species{BlueOrb: PrimalKyogre}},
	Rayquaza: {ByItem: map[Item]Species{DeltaOrb: MegaRayquaza}},
	Shaymin:  {ByItem: map[Item]Species{GracideaFlower: ShayminSky}},
	Tyrogue: {
		ByComponent: []componentRule{
			{Items: []Item{Charcoal, Magnet}, Target: Hitmonlee},
			{Items: []Item{HeartScale, NeverMeltIce}, Target: Hitmonchan},
		},
		Fallback: Hitmontop,
	},
}

// TransformOutcome is the result of consulting the transformation table.
type TransformOutcome int

const (
	// NoTransform means the item is equipped normally.
	NoTransform TransformOutcome = iota
	// Transform means the creature becomes another species.
	Transform
	// Reject means the species refuses the item.
	Reject
)

// ResolveTransform looks up what happens when species receives item.
func ResolveTransform(species Species, item Item) (Species, TransformOutcome) {
	rule, ok := Transformations[species]
	if !ok {
		return "", NoTransform
	}
	if rule.RejectItems {
		return "", Reject
	}
	if target, ok := rule.ByItem[item]; ok {
		return target, Transform
	}
	var target Species
	for _, cr := range rule.ByComponent {
		for _, it := range cr.Items {
			if item == it || RecipeContains(item, it) {
				target = cr.Target
				break
			}
		}
	}
	if target != "" {
		return target, Transform
	}
	if rule.Fallback != "" {
		return rule.Fallback, Transform
	}
	return "", NoTransform
}

package domain

// Phase represents the room-wide stage of a round.
type Phase string

const (
	// PhasePick is the shopping and positioning window.
	PhasePick Phase = "pick"
	// PhaseFight is the automated battle window.
	PhaseFight Phase = "fight"
	// PhaseMinigame is the carousel window inserted on carousel stages.
	PhaseMinigame Phase = "minigame"
)

// Rarity classifies a species for pricing, pools and placement rules.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythical  Rarity = "mythical"
	RaritySpecial   Rarity = "special"
	RarityHatch     Rarity = "hatch"
	RarityNeutral   Rarity = "neutral"
)

// ActionState is the animation hint sent to clients.
type ActionState string

const (
	ActionIdle ActionState = "idle"
	ActionHop  ActionState = "hop"
	ActionWalk ActionState = "walk"
)

// BattleResult is the outcome of one fight from a player's point of view.
// The zero value means no fight was played.
type BattleResult string

const (
	ResultNone   BattleResult = ""
	ResultWin    BattleResult = "win"
	ResultDefeat BattleResult = "defeat"
	ResultDraw   BattleResult = "draw"
)

// Weather is the ambient condition computed for a pairing.
type Weather string

const (
	WeatherNeutral   Weather = "neutral"
	WeatherSun       Weather = "sun"
	WeatherRain      Weather = "rain"
	WeatherSandstorm Weather = "sandstorm"
	WeatherSnow      Weather = "snow"
	WeatherStorm     Weather = "storm"
	WeatherMisty     Weather = "misty"
	WeatherNight     Weather = "night"
)

// Title is a cosmetic achievement attached to a player.
type Title string

const (
	TitleLoneWolf   Title = "lone_wolf"
	TitleDuelist    Title = "duelist"
	TitleSurvivor   Title = "survivor"
	TitleBirdKeeper Title = "bird_keeper"
)

// Passive is a species trait the room reacts to outside of battle.
type Passive string

const (
	PassiveNone     Passive = ""
	PassiveProtean2 Passive = "protean2"
	PassiveProtean3 Passive = "protean3"
)

// Creature is one instance on a player's board.
type Creature struct {
	ID      string
	Species Species
	// Family is the base form of the evolution line, used for synergy counting.
	Family    Species
	X, Y      int
	Rarity    Rarity
	Stars     int
	Evolution Species // empty when the species is a final form
	Types     []Synergy
	Passive   Passive
	Shiny     bool
	Action    ActionState
	Items     []Item

	// EvolutionTimer counts rounds until the creature turns into Evolution.
	EvolutionTimer int
	HasTimer       bool

	// CanBePlaced is false for creatures that are never promoted to the team
	// by forced placement (eggs, ditto).
	CanBePlaced bool
}

// OnBench reports whether the creature sits on the bench row.
func (c *Creature) OnBench() bool { return c.Y == 0 }

// HasItem reports whether the item is attached.
func (c *Creature) HasItem(it Item) bool {
	for _, held := range c.Items {
		if held == it {
			return true
		}
	}
	return false
}

// AddItem attaches an item. Attached items behave as a set.
func (c *Creature) AddItem(it Item) {
	if c.HasItem(it) {
		return
	}
	c.Items = append(c.Items, it)
}

// RemoveItem detaches an item, reporting whether it was attached.
func (c *Creature) RemoveItem(it Item) bool {
	for i, held := range c.Items {
		if held == it {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// LastBasicItem returns the most recently attached basic item.
func (c *Creature) LastBasicItem() (Item, bool) {
	for i := len(c.Items) - 1; i >= 0; i-- {
		if IsBasicItem(c.Items[i]) {
			return c.Items[i], true
		}
	}
	return "", false
}

// HasType reports whether the creature carries the synergy type.
func (c *Creature) HasType(s Synergy) bool {
	for _, t := range c.Types {
		if t == s {
			return true
		}
	}
	return false
}

// Player holds all per-participant state of a room.
type Player struct {
	ID     string
	Name   string
	Avatar string
	Elo    int
	Role   string
	Titles []Title
	IsBot  bool

	Money      int
	Experience Experience
	Life       int
	Streak     int
	Interest   int
	Alive      bool
	Rank       int

	Board map[string]*Creature
	// Shop slots; an empty string marks a purchased slot.
	Shop       []Species
	ShopLocked bool
	Items      ItemBag

	ItemsProposition    []Item
	PokemonsProposition []Species

	Synergies   Synergies
	Effects     []Effect
	BoardSize   int
	RerollCount int

	OpponentID     string
	OpponentName   string
	OpponentAvatar string
	SimulationID   string
	History        []BattleRecord

	// Collection holds the cosmetic variants the profile owns, by species.
	Collection map[Species]string
}

const (
	InitialLife  = 100
	InitialMoney = 5
	ShopSize     = 6
)

// NewPlayer returns a player with starting economy and an empty board.
func NewPlayer(id, name string, isBot bool) *Player {
	return &Player{
		ID:         id,
		Name:       name,
		IsBot:      isBot,
		Money:      InitialMoney,
		Life:       InitialLife,
		Alive:      true,
		Experience: NewExperience(),
		Board:      make(map[string]*Creature),
		Shop:       make([]Species, ShopSize),
		Items:      NewItemBag(),
		Synergies:  make(Synergies),
		Collection: make(map[Species]string),
	}
}

// AddTitle grants a title once.
func (p *Player) AddTitle(t Title) {
	for _, have := range p.Titles {
		if have == t {
			return
		}
	}
	p.Titles = append(p.Titles, t)
}

// HasTitle reports whether the player owns the title.
func (p *Player) HasTitle(t Title) bool {
	for _, have := range p.Titles {
		if have == t {
			return true
		}
	}
	return false
}

// HasEffect reports whether the effect is active.
func (p *Player) HasEffect(e Effect) bool {
	for _, have := range p.Effects {
		if have == e {
			return true
		}
	}
	return false
}

// TakeDamage subtracts life, never below zero.
func (p *Player) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	p.Life -= amount
	if p.Life < 0 {
		p.Life = 0
	}
}

// BattleRecord is one entry of a player's fight history.
type BattleRecord struct {
	OpponentName   string
	OpponentAvatar string
	Result         BattleResult
	PVE            bool
	Weather        Weather
}

// AddBattleResult appends a fight to the history.
func (p *Player) AddBattleResult(rec BattleRecord) {
	p.History = append(p.History, rec)
}

// LastBattleResult is the most recent recorded outcome, PVE included.
func (p *Player) LastBattleResult() BattleResult {
	if len(p.History) == 0 {
		return ResultNone
	}
	return p.History[len(p.History)-1].Result
}

// LastPlayerBattleResult is the most recent outcome against another player.
func (p *Player) LastPlayerBattleResult() BattleResult {
	for i := len(p.History) - 1; i >= 0; i-- {
		if !p.History[i].PVE {
			return p.History[i].Result
		}
	}
	return ResultNone
}

package ports

import "autobattler/internal/domain"

// CreatureFactory builds creature instances from static data.
type CreatureFactory interface {
	// Create returns a fresh instance with a unique id, off board.
	Create(s domain.Species, variant string) *domain.Creature
	// Transform returns s built in place of c, keeping its tile and items.
	Transform(c *domain.Creature, s domain.Species, variant string) *domain.Creature
	BaseForm(s domain.Species) domain.Species
	RandomEgg() *domain.Creature
	Cost(s domain.Species) int
	SellPrice(c *domain.Creature) int
	// AdditionalPool lists the species offered on additional pick n.
	AdditionalPool(n int) []domain.Species
	// MythicalPool lists the species offered on mythical pick n.
	MythicalPool(n int) []domain.Species
}

// ItemFactory draws random items.
type ItemFactory interface {
	RandomItems() []domain.Item
	RandomBasicItem() domain.Item
}

// BotRoster rebuilds bot boards for a stage.
type BotRoster interface {
	UpdateBots(players []*domain.Player, stage int)
}

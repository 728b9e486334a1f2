package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameAutoBattler is the authoritative match handler name registered with Nakama.
	MatchNameAutoBattler = "autobattler_match"

	// GameLabel tags this module's matches in the match listing.
	GameLabel = "autobattler"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpShop            int64 = 1
	OpItemPick        int64 = 2
	OpPokemonPick     int64 = 3
	OpDragDrop        int64 = 4
	OpDragDropItem    int64 = 5
	OpDragDropCombine int64 = 6
	OpSell            int64 = 7
	OpRefresh         int64 = 8
	OpLock            int64 = 9
	OpLevelUp         int64 = 10

	// Server -> Client events
	OpSnapshot       int64 = 101
	OpDragDropFailed int64 = 102 // send privately
	OpPlayerDamage   int64 = 103 // send privately
	OpPlayerIncome   int64 = 104 // send privately
	OpBroadcastInfo  int64 = 105
	OpGameEnd        int64 = 106
	OpRareWandering  int64 = 107 // send privately
)

const (
	// profileCollection holds one record per user with the game profile.
	profileCollection = "profile"
	profileKey        = "default"
)

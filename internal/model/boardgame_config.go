package model

import "time"

// Subscription tiers. Anything else normalizes to free on write.
const (
	SubscriptionFree  = "free"
	SubscriptionExtra = "extra"
)

func IsValidSubscription(s string) bool {
	return s == SubscriptionFree || s == SubscriptionExtra
}

// BoardgameConfig is the per-user board-game preference document,
// zero or one row per user.
type BoardgameConfig struct {
	UserID              int        `db:"user_id" json:"user_id"`
	GamesOwned          []string   `db:"games_owned" json:"games_owned"`
	GamesLiked          []string   `db:"games_liked" json:"games_liked"`
	GameTypesInterested []string   `db:"game_types_interested" json:"game_types_interested"`
	HasSpace            bool       `db:"has_space" json:"has_space"`
	City                *string    `db:"city" json:"city"`
	Subscription        string     `db:"subscription" json:"subscription"`
	UpdatedAt           *time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultBoardgameConfig is what reads return when the user has no row yet.
func DefaultBoardgameConfig(userID int) *BoardgameConfig {
	return &BoardgameConfig{
		UserID:              userID,
		GamesOwned:          []string{},
		GamesLiked:          []string{},
		GameTypesInterested: []string{},
		Subscription:        SubscriptionFree,
	}
}

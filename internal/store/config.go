package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"boardmates/internal/database"
	"boardmates/internal/model"

	"github.com/jackc/pgx/v5"
)

const configColumns = `user_id, games_owned, games_liked, game_types_interested,
	has_space, city, subscription::text, updated_at`

func scanConfig(row pgx.Row) (*model.BoardgameConfig, error) {
	cfg := &model.BoardgameConfig{}
	var owned, liked, types []byte
	if err := row.Scan(
		&cfg.UserID,
		&owned,
		&liked,
		&types,
		&cfg.HasSpace,
		&cfg.City,
		&cfg.Subscription,
		&cfg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(owned, &cfg.GamesOwned); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(liked, &cfg.GamesLiked); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(types, &cfg.GameTypesInterested); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfig reads a user's board-game config. A user with no row gets
// the zero-value default, not an error.
func GetConfig(ctx context.Context, db database.DB, userID int) (*model.BoardgameConfig, error) {
	row := db.QueryRow(ctx,
		`SELECT `+configColumns+` FROM user_boardgames_config WHERE user_id = $1`,
		userID,
	)
	cfg, err := scanConfig(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DefaultBoardgameConfig(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetConfig: %w", err)
	}
	return cfg, nil
}

// UpsertConfig writes the whole document in one statement keyed on
// user_id and returns the stored row. Single round trip, no
// read-then-write window between concurrent saves.
func UpsertConfig(ctx context.Context, db database.DB, cfg *model.BoardgameConfig) (*model.BoardgameConfig, error) {
	owned, err := json.Marshal(cfg.GamesOwned)
	if err != nil {
		return nil, fmt.Errorf("UpsertConfig: %w", err)
	}
	liked, err := json.Marshal(cfg.GamesLiked)
	if err != nil {
		return nil, fmt.Errorf("UpsertConfig: %w", err)
	}
	types, err := json.Marshal(cfg.GameTypesInterested)
	if err != nil {
		return nil, fmt.Errorf("UpsertConfig: %w", err)
	}

	row := db.QueryRow(ctx,
		`INSERT INTO user_boardgames_config
		 (user_id, games_owned, games_liked, game_types_interested, has_space, city, subscription, updated_at)
		 VALUES ($1, $2::jsonb, $3::jsonb, $4::jsonb, $5, $6, $7::subscription_tier, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id) DO UPDATE SET
		   games_owned = EXCLUDED.games_owned,
		   games_liked = EXCLUDED.games_liked,
		   game_types_interested = EXCLUDED.game_types_interested,
		   has_space = EXCLUDED.has_space,
		   city = EXCLUDED.city,
		   subscription = EXCLUDED.subscription,
		   updated_at = CURRENT_TIMESTAMP
		 RETURNING `+configColumns,
		cfg.UserID,
		string(owned),
		string(liked),
		string(types),
		cfg.HasSpace,
		cfg.City,
		cfg.Subscription,
	)
	stored, err := scanConfig(row)
	if err != nil {
		return nil, fmt.Errorf("UpsertConfig: %w", err)
	}
	return stored, nil
}

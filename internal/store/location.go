package store

import (
	"context"
	"fmt"

	"boardmates/internal/database"
	"boardmates/internal/model"

	"github.com/jackc/pgx/v5"
)

func GetLocation(ctx context.Context, db database.DB, userID int) (*model.Location, error) {
	row := db.QueryRow(ctx,
		`SELECT ST_X(coordinates::geometry) AS lng, ST_Y(coordinates::geometry) AS lat
		 FROM location WHERE user_id = $1`,
		userID,
	)
	loc := &model.Location{UserID: userID}
	if err := row.Scan(&loc.Lng, &loc.Lat); err != nil {
		return nil, fmt.Errorf("GetLocation: %w", err)
	}
	return loc, nil
}

// UpsertLocation writes the user's current position as one atomic
// statement, so two racing reports for the same user cannot interleave
// into a lost update.
func UpsertLocation(ctx context.Context, db database.DB, userID int, lng, lat float64) error {
	_, err := db.Exec(ctx,
		`INSERT INTO location (user_id, coordinates)
		 VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography)
		 ON CONFLICT (user_id) DO UPDATE SET coordinates = EXCLUDED.coordinates`,
		userID,
		lng,
		lat,
	)
	if err != nil {
		return fmt.Errorf("UpsertLocation: %w", err)
	}
	return nil
}

func DeleteLocation(ctx context.Context, db database.DB, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM location WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteLocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteLocation: %w", pgx.ErrNoRows)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"boardmates/internal/database"
)

// nearbyLimit bounds the result set; the radius already bounds
// cardinality in practice.
const nearbyLimit = 500

// NearbyUser is a proximity query result row. Distance is meters from
// the reference point.
type NearbyUser struct {
	ID        int        `json:"user_id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedOn time.Time  `json:"created_on"`
	LastLogin *time.Time `json:"last_login"`
	Active    bool       `json:"active"`
	Lng       float64    `json:"lng"`
	Lat       float64    `json:"lat"`
	Distance  float64    `json:"distance"`
	IsOnline  bool       `json:"is_online"`
}

// NearbyUsers returns active users with a stored location within
// radiusMeters of the reference point, nearest first. The coordinates
// column is geography(Point,4326), so ST_DWithin and ST_Distance both
// operate in spheroidal meters. usernameFilter, when non-empty,
// restricts to case-insensitive substring matches.
func NearbyUsers(ctx context.Context, db database.DB, lat, lng, radiusMeters float64, usernameFilter string) ([]NearbyUser, error) {
	query := `SELECT u.user_id, u.username, u.email, u.created_on, u.last_login, u.active,
		ST_X(l.coordinates::geometry) AS lng,
		ST_Y(l.coordinates::geometry) AS lat,
		ST_Distance(l.coordinates, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) AS distance,
		COALESCE(u.last_login > CURRENT_TIMESTAMP - INTERVAL '5 minutes', false) AS is_online
		FROM users u
		JOIN location l ON u.user_id = l.user_id
		WHERE u.active = true
		AND ST_DWithin(l.coordinates, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)`
	args := []any{lng, lat, radiusMeters}

	if usernameFilter != "" {
		args = append(args, "%"+usernameFilter+"%")
		query += fmt.Sprintf(" AND u.username ILIKE $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY distance ASC LIMIT %d", nearbyLimit)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("NearbyUsers: %w", err)
	}
	defer rows.Close()

	users := []NearbyUser{}
	for rows.Next() {
		var u NearbyUser
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.CreatedOn,
			&u.LastLogin,
			&u.Active,
			&u.Lng,
			&u.Lat,
			&u.Distance,
			&u.IsOnline,
		); err != nil {
			return nil, fmt.Errorf("NearbyUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("NearbyUsers: %w", err)
	}
	return users, nil
}

package model

// Location is the single current position of a user, WGS84 lng/lat.
type Location struct {
	UserID int     `db:"user_id" json:"user_id"`
	Lng    float64 `db:"lng" json:"lng"`
	Lat    float64 `db:"lat" json:"lat"`
}

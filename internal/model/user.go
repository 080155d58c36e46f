package model

import "time"

// Account types. Everything outside this set is rejected on input.
const (
	TypeUser  = "user"
	TypeShop  = "shop"
	TypeEvent = "event"
	TypeAdmin = "admin"
)

var userTypes = map[string]struct{}{
	TypeUser:  {},
	TypeShop:  {},
	TypeEvent: {},
	TypeAdmin: {},
}

func IsValidUserType(t string) bool {
	_, ok := userTypes[t]
	return ok
}

type User struct {
	ID           int        `db:"user_id" json:"user_id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password" json:"-"`
	Type         string     `db:"type" json:"type"`
	Active       bool       `db:"active" json:"active"`
	CreatedOn    time.Time  `db:"created_on" json:"created_on"`
	LastLogin    *time.Time `db:"last_login" json:"last_login"`
}

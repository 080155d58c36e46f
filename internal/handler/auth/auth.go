// Package auth implements registration, login and logout. Login
// failures never reveal whether the email or the password was wrong.
package auth

import (
	"boardmates/internal/service"
	"boardmates/internal/store"
)

// Seams for tests.
var (
	hashPassword    = service.HashPassword
	comparePassword = service.ComparePassword
	getUserByEmail  = store.GetUserByEmail
	createUser      = store.CreateUser
	touchLastLogin  = store.TouchLastLogin
)

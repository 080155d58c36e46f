package store

import (
	"context"
	"fmt"

	"boardmates/internal/database"
	"boardmates/internal/model"

	"github.com/jackc/pgx/v5"
)

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT user_id, username, email, password, type::text, active, created_on, last_login
		 FROM users WHERE user_id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Type,
		&u.Active,
		&u.CreatedOn,
		&u.LastLogin,
	); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT user_id, username, email, password, type::text, active, created_on, last_login
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Type,
		&u.Active,
		&u.CreatedOn,
		&u.LastLogin,
	); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, email, password, type)
		 VALUES ($1, $2, $3, $4::user_type)
		 RETURNING user_id, active, created_on`,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Type,
	)
	if err := row.Scan(&u.ID, &u.Active, &u.CreatedOn); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UserPatch carries the admin-editable fields; nil means keep the
// current value.
type UserPatch struct {
	Username *string
	Email    *string
	Active   *bool
	Type     *string
}

// UpdateUser applies a patch as a single statement so concurrent edits
// of the same user cannot lose each other's fields.
func UpdateUser(ctx context.Context, db database.DB, userID int, p UserPatch) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users
		 SET username = COALESCE($1, username),
		     email    = COALESCE($2, email),
		     active   = COALESCE($3, active),
		     type     = COALESCE($4::user_type, type)
		 WHERE user_id = $5
		 RETURNING user_id, username, email, password, type::text, active, created_on, last_login`,
		p.Username,
		p.Email,
		p.Active,
		p.Type,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Type,
		&u.Active,
		&u.CreatedOn,
		&u.LastLogin,
	); err != nil {
		return nil, fmt.Errorf("UpdateUser: %w", err)
	}
	return u, nil
}

func TouchLastLogin(ctx context.Context, db database.DB, userID int) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("TouchLastLogin: %w", err)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", pgx.ErrNoRows)
	}
	return nil
}

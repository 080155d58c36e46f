package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"boardmates/internal/database"
	"boardmates/internal/model"
)

// UserFilter enumerates the recognized listing filters. Predicates
// compose with AND and are always parameterized; user input never ends
// up inside the SQL text itself.
type UserFilter struct {
	Username string   // case-insensitive substring match
	Active   *bool    // exact match
	Types    []string // set membership, unknown tokens dropped
}

func (f UserFilter) validTypes() []string {
	types := make([]string, 0, len(f.Types))
	for _, t := range f.Types {
		if model.IsValidUserType(t) {
			types = append(types, t)
		}
	}
	return types
}

// where renders the WHERE clause (with leading space) and its
// parameters. An empty filter renders no clause at all.
func (f UserFilter) where() (string, []any) {
	var conds []string
	var args []any

	if f.Username != "" {
		args = append(args, "%"+f.Username+"%")
		conds = append(conds, fmt.Sprintf("username ILIKE $%d", len(args)))
	}
	if f.Active != nil {
		args = append(args, *f.Active)
		conds = append(conds, fmt.Sprintf("active = $%d", len(args)))
	}
	if types := f.validTypes(); len(types) > 0 {
		args = append(args, types)
		conds = append(conds, fmt.Sprintf("type::text = ANY($%d)", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListedUser is a user row as the listing endpoints expose it: no
// password digest, plus the read-time is_online flag.
type ListedUser struct {
	ID        int        `json:"user_id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedOn time.Time  `json:"created_on"`
	LastLogin *time.Time `json:"last_login"`
	Active    bool       `json:"active"`
	Type      string     `json:"type"`
	IsOnline  bool       `json:"is_online"`
}

// ListUsers returns one page ordered by user_id so pagination is stable.
func ListUsers(ctx context.Context, db database.DB, f UserFilter, limit, offset int) ([]ListedUser, error) {
	where, args := f.where()
	query := `SELECT user_id, username, email, created_on, last_login, active, type::text,
		COALESCE(last_login > CURRENT_TIMESTAMP - INTERVAL '5 minutes', false) AS is_online
		FROM users` + where +
		fmt.Sprintf(" ORDER BY user_id ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []ListedUser{}
	for rows.Next() {
		var u ListedUser
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.CreatedOn,
			&u.LastLogin,
			&u.Active,
			&u.Type,
			&u.IsOnline,
		); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

// CountUsers shares the filter predicate with ListUsers so the total
// matches the page query.
func CountUsers(ctx context.Context, db database.DB, f UserFilter) (int, error) {
	where, args := f.where()
	row := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("CountUsers: %w", err)
	}
	return total, nil
}

// CountUsersByType returns per-type account counts, zero-filled for
// types with no rows.
func CountUsersByType(ctx context.Context, db database.DB) (map[string]int, error) {
	rows, err := db.Query(ctx,
		`SELECT type::text, COUNT(*)::int FROM users GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("CountUsersByType: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{
		model.TypeUser:  0,
		model.TypeShop:  0,
		model.TypeEvent: 0,
		model.TypeAdmin: 0,
	}
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("CountUsersByType: %w", err)
		}
		counts[t] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CountUsersByType: %w", err)
	}
	return counts, nil
}

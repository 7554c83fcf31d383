package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"
	"github.com/wolber/school-portal/internal/apperror"
	"github.com/wolber/school-portal/internal/model"
	"github.com/wolber/school-portal/internal/repository"
)

// UserDB implements repository.UserRepository.
type UserDB struct {
	conn *sql.DB
}

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// Create inserts a new user. The ID is generated here; a duplicate
// username maps to apperror.ErrConflict.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = xid.New().String()
	}

	_, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password, role, name, classe)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Password,
		user.Role,
		user.Name,
		user.Classe,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict(fmt.Sprintf("username %q is already taken", user.Username))
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	return nil
}

// GetByUsername retrieves a user by their unique username.
// Returns apperror.ErrNotFound if no such user exists.
func (u *UserDB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return u.getUser(ctx, username,
		`SELECT id, username, password, role, name, classe
		 FROM users WHERE username = ?`,
		username,
	)
}

// GetByCredentials retrieves the user matching the exact username+password
// pair. The comparison is a plain equality against the stored plaintext
// credential, which is the contract legacy clients rely on.
func (u *UserDB) GetByCredentials(ctx context.Context, username, password string) (*model.User, error) {
	return u.getUser(ctx, username,
		`SELECT id, username, password, role, name, classe
		 FROM users WHERE username = ? AND password = ?`,
		username, password,
	)
}

func (u *UserDB) getUser(ctx context.Context, username, query string, args ...any) (*model.User, error) {
	var usr model.User

	err := u.conn.QueryRowContext(ctx, query, args...).Scan(
		&usr.ID,
		&usr.Username,
		&usr.Password,
		&usr.Role,
		&usr.Name,
		&usr.Classe,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}

	return &usr, nil
}

// List returns every user without the password column, in insertion order.
func (u *UserDB) List(ctx context.Context) ([]model.User, error) {
	rows, err := u.conn.QueryContext(ctx,
		`SELECT id, username, role, name, classe FROM users`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var usr model.User
		if err := rows.Scan(&usr.ID, &usr.Username, &usr.Role, &usr.Name, &usr.Classe); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, usr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user rows: %w", err)
	}

	return users, nil
}

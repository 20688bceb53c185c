package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jalonhq/jalon/internal/domain"
	"github.com/jalonhq/jalon/internal/domain/rbac"
	"github.com/jalonhq/jalon/internal/domain/user"
	"github.com/jalonhq/jalon/internal/ports"
)

// Compile-time check that UserRepo implements ports.RoleResolver.
var _ ports.RoleResolver = (*UserRepo)(nil)

// UserRepo persists users and resolves their roles.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a UserRepo over the given database handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user.
func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users(id, email, name, role, created_at) VALUES (?,?,?,?,?)`,
		u.ID, u.Email, u.Name, u.Role, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting user %s: %w", u.ID, err)
	}
	return nil
}

// FindByID returns the user with the given ID, or domain.ErrNotFound.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, created_at FROM users WHERE id=?`, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// RoleOf returns the role of the given user, or domain.ErrNotFound.
func (r *UserRepo) RoleOf(ctx context.Context, userID string) (rbac.Role, error) {
	var role rbac.Role
	err := r.db.QueryRowContext(ctx, `SELECT role FROM users WHERE id=?`, userID).Scan(&role)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

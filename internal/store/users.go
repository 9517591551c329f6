package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("a user with this email already exists")
)

const userColumns = `id, name, email, password_hash, image, role, created_at`

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	role := user.Role

	if role == "" {
		role = models.RoleMember
	}

	var created models.User

	query := `
		INSERT INTO users (name, email, password_hash, image, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	err := s.DB.GetContext(ctx, &created, query, user.Name, strings.ToLower(user.Email), user.PasswordHash, user.Image, role)

	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return &created, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User

	if err := s.DB.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	return &user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := s.DB.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}

	return &user, nil
}

// UpsertOAuthUser creates the user on first sign-in, then refreshes name and image on later ones.
func (s *PostgresStore) UpsertOAuthUser(ctx context.Context, user *models.User) (*models.User, error) {
	var out models.User

	query := `
		INSERT INTO users (name, email, image)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, image = COALESCE(EXCLUDED.image, users.image), updated_at = now()
		RETURNING ` + userColumns

	if err := s.DB.GetContext(ctx, &out, query, user.Name, strings.ToLower(user.Email), user.Image); err != nil {
		return nil, fmt.Errorf("error upserting oauth user: %w", err)
	}

	return &out, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	if err := s.DB.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	return users, nil
}

func (s *PostgresStore) SetUserRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	var user models.User

	query := `UPDATE users SET role = $1, updated_at = now() WHERE id = $2 RETURNING ` + userColumns

	if err := s.DB.GetContext(ctx, &user, query, role, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating user role: %w", err)
	}

	return &user, nil
}

func (s *PostgresStore) SetUserRoleByEmail(ctx context.Context, email string, role string) (*models.User, error) {
	var user models.User

	query := `UPDATE users SET role = $1, updated_at = now() WHERE email = $2 RETURNING ` + userColumns

	if err := s.DB.GetContext(ctx, &user, query, role, strings.ToLower(email)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating user role: %w", err)
	}

	return &user, nil
}

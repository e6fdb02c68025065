package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/registrar-dev/academic-records-api/internal/models"
)

// UserRepository persists API operator accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns the user with the given email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.APIUser, error) {
	const stmt = `SELECT id, email, password_hash, full_name, active, created_at
        FROM api_user WHERE email = $1`
	var user models.APIUser
	if err := r.db.GetContext(ctx, &user, stmt, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.APIUser, error) {
	const stmt = `SELECT id, email, password_hash, full_name, active, created_at
        FROM api_user WHERE id = $1`
	var user models.APIUser
	if err := r.db.GetContext(ctx, &user, stmt, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create persists a new user account.
func (r *UserRepository) Create(ctx context.Context, user *models.APIUser) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	const stmt = `INSERT INTO api_user (id, email, password_hash, full_name, active, created_at)
        VALUES (:id, :email, :password_hash, :full_name, :active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, stmt, user); err != nil {
		return fmt.Errorf("create api user: %w", err)
	}
	return nil
}

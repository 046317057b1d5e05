package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kavr/tasktrack-be/internal/models"
)

// UserRepository defines the typed CRUD surface for user records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
}

type sqliteUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new SQLite-based UserRepository.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqliteUserRepository{db: db}
}

const userColumns = `id, email, username, first_name, last_name, hashed_password, phone_number, is_active`

// Create inserts a new user and fills in its generated id. A UNIQUE
// constraint failure is reported as ErrDuplicateUser: the constraint, not
// the caller's pre-check, is what actually guards against duplicates.
func (r *sqliteUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (email, username, first_name, last_name, hashed_password, phone_number, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		user.Email, user.Username, user.FirstName, user.LastName,
		user.HashedPassword, user.PhoneNumber, user.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new user id: %w", err)
	}
	user.ID = id
	return nil
}

// GetByID retrieves a user by their primary key.
func (r *sqliteUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username.
func (r *sqliteUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// GetByUsernameOrEmail looks for a user matching either field in a single
// query, used by registration to detect collisions up front.
func (r *sqliteUserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ? OR email = ?`
	if err := r.db.GetContext(ctx, &user, query, username, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username or email: %w", err)
	}
	return &user, nil
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"pokemedquest/internal/database"
	"pokemedquest/internal/models"
)

// UserRepository handles database operations for accounts
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new account. ErrDuplicateKey is returned when the username is taken.
func (r *UserRepository) CreateUser(username, passwordHash string, role models.Role) (*models.User, error) {
	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.InsertUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// InsertUser stores user as given, keeping its CreatedAt, and sets its ID
func (r *UserRepository) InsertUser(user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, created_at)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, user.Username, user.PasswordHash, string(user.Role), user.CreatedAt.UTC())
	if err != nil {
		if r.db.GetDialect().IsUniqueViolation(err) {
			return fmt.Errorf("failed to create user %q: %w", user.Username, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id
	return nil
}

// GetUserByUsername retrieves a user by exact username
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = ?
	`
	user, err := scanUser(r.db.QueryRow(query, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE id = ?
	`
	user, err := scanUser(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetAllUsers retrieves every account ordered by ID
func (r *UserRepository) GetAllUsers() ([]models.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users
		ORDER BY id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// DeleteUserByUsername removes an account. The avatar and progress rows go with it
// through ON DELETE CASCADE. Returns false when no row matched.
func (r *UserRepository) DeleteUserByUsername(username string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM users WHERE username = ?", username)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return affected > 0, nil
}

// DeleteAllUsers removes every account and, by cascade, all avatars and progress
func (r *UserRepository) DeleteAllUsers() error {
	if _, err := r.db.Exec("DELETE FROM users"); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var role string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	return user, nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/isdelr/typetester-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is pinned rather than bcrypt.DefaultCost so a library default
// bump never silently changes how long login takes.
const bcryptCost = 12

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, email, username, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UserService provides business logic for accounts and credentials.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register validates the fields in order, each check short-circuiting with its
// own error, then hashes the password and creates the user. Nothing is written
// on any rejection. The pre-checks are not atomic against a concurrent
// registration of the same email or username; a race surfaces as a UNIQUE
// violation on insert and is mapped to the same conflict error the pre-check
// would have produced.
func (s *UserService) Register(ctx context.Context, email, username, password string) (models.User, error) {
	if email == "" || username == "" || password == "" {
		return models.User{}, ErrMissingFields
	}
	if len(username) < 3 || len(username) > 20 {
		return models.User{}, ErrUsernameLength
	}
	if !usernamePattern.MatchString(username) {
		return models.User{}, ErrUsernameCharset
	}
	if len(password) < 6 {
		return models.User{}, ErrWeakPassword
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM users WHERE email = ?", email).Scan(&exists)
	if err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("checking email: %w", err)
	}

	err = s.db.QueryRowContext(ctx, "SELECT 1 FROM users WHERE username = ?", username).Scan(&exists)
	if err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("checking username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users(email, username, password_hash) VALUES(?, ?, ?)",
		email, username, string(hashed))
	if err != nil {
		if conflict := mapUniqueViolation(err); conflict != nil {
			return models.User{}, conflict
		}
		return models.User{}, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("reading new user id: %w", err)
	}
	return models.User{ID: id, Email: email, Username: username}, nil
}

// Authenticate verifies the credentials and returns the user. An unknown
// email, an account whose password_hash is NULL, and a wrong password all
// return the identical ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, username, password_hash, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("looking up user: %w", err)
	}
	if !user.PasswordHash.Valid {
		return models.User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash.String), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't hand the hash back to callers
	user.PasswordHash = sql.NullString{}
	return user, nil
}

// GetUserByID retrieves a single user by their id.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, username, created_at, updated_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("looking up user %d: %w", id, err)
	}
	return user, nil
}

// DeleteUser removes an account. The user's results are kept but orphaned:
// their user_id is set to NULL in the same transaction, explicitly rather
// than relying on the schema's ON DELETE SET NULL clause alone.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE test_results SET user_id = NULL WHERE user_id = ?", id); err != nil {
		return fmt.Errorf("orphaning results for user %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	return tx.Commit()
}

// mapUniqueViolation translates a storage-level UNIQUE violation on the users
// table into the matching conflict error, or nil if the error is anything
// else. sqlite reports the violated column in the error text.
func mapUniqueViolation(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil
	}
	switch {
	case strings.Contains(msg, "users.email"):
		return ErrEmailTaken
	case strings.Contains(msg, "users.username"):
		return ErrUsernameTaken
	}
	return nil
}

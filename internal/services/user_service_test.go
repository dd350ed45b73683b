package services

import (
	"context"
	"errors"
	"testing"

	"github.com/isdelr/typetester-be/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := NewUserService(db)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		username string
		password string
		wantErr  error
	}{
		{name: "missing email", email: "", username: "alice", password: "secret1", wantErr: ErrMissingFields},
		{name: "missing username", email: "a@b.c", username: "", password: "secret1", wantErr: ErrMissingFields},
		{name: "missing password", email: "a@b.c", username: "alice", password: "", wantErr: ErrMissingFields},
		{name: "username too short", email: "a@b.c", username: "ab", password: "secret1", wantErr: ErrUsernameLength},
		{name: "username too long", email: "a@b.c", username: "abcdefghijklmnopqrstu", password: "secret1", wantErr: ErrUsernameLength},
		{name: "uppercase rejected", email: "a@b.c", username: "Alice", password: "secret1", wantErr: ErrUsernameCharset},
		{name: "hyphen rejected", email: "a@b.c", username: "al-ice", password: "secret1", wantErr: ErrUsernameCharset},
		{name: "short password", email: "a@b.c", username: "alice", password: "five5", wantErr: ErrWeakPassword},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(ctx, tc.email, tc.username, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// No rejection may leave partial state behind
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestRegisterCreatesUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := NewUserService(db)
	ctx := context.Background()

	user, err := s.Register(ctx, "alice@example.com", "alice", "hunter22")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.PasswordHash.Valid, "hash must not be returned")

	// The stored hash must verify the original password
	got, err := s.Authenticate(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterConflicts(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := NewUserService(db)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice@example.com", "alice", "hunter22")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice@example.com", "alice2", "hunter22")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.Register(ctx, "other@example.com", "alice", "hunter22")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMapUniqueViolation(t *testing.T) {
	// A racing registration can slip past the pre-checks and hit the UNIQUE
	// index; the storage error must land on the same conflict errors.
	assert.ErrorIs(t, mapUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")), ErrEmailTaken)
	assert.ErrorIs(t, mapUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)")), ErrUsernameTaken)
	assert.Nil(t, mapUniqueViolation(errors.New("database is locked")))
}

func TestAuthenticateIndistinguishableFailures(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := NewUserService(db)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice@example.com", "alice", "hunter22")
	require.NoError(t, err)

	_, wrongPassword := s.Authenticate(ctx, "alice@example.com", "wrong")
	_, unknownEmail := s.Authenticate(ctx, "nobody@example.com", "hunter22")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	// Identical error either way: no account enumeration
	assert.Equal(t, wrongPassword, unknownEmail)
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
}

func TestAuthenticatePasswordlessAccount(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := NewUserService(db)

	// Accounts may exist without a password credential (hash is nullable)
	_, err := db.Exec("INSERT INTO users(email, username, password_hash) VALUES(?, ?, NULL)",
		"sso@example.com", "sso_user")
	require.NoError(t, err)

	_, err = s.Authenticate(context.Background(), "sso@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := NewUserService(db)
	ctx := context.Background()

	user, err := s.Register(ctx, "alice@example.com", "alice", "hunter22")
	require.NoError(t, err)

	got, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = s.GetUserByID(ctx, user.ID+1000)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserOrphansResults(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := NewUserService(db)
	results := NewResultService(db)
	ctx := context.Background()

	user, err := users.Register(ctx, "alice@example.com", "alice", "hunter22")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := results.Submit(ctx, &user.ID, ResultPayload{Wpm: 60, Accuracy: 95})
		require.NoError(t, err)
	}

	require.NoError(t, users.DeleteUser(ctx, user.ID))

	_, err = users.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Results survive the account, just unowned
	var total, orphaned int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM test_results").Scan(&total))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM test_results WHERE user_id IS NULL").Scan(&orphaned))
	assert.Equal(t, 2, total)
	assert.Equal(t, 2, orphaned)
}

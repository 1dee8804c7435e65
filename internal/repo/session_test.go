package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/itineraire-app/auth-service/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))

	return &GormRepo{DB: db}
}

func createTestUser(t *testing.T, r *GormRepo, username string) *models.User {
	t.Helper()

	user := models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, r.CreateUser(context.Background(), &user))
	return &user
}

func TestGormRepo_CreateUser_Duplicate(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	createTestUser(t, r, "alice")

	err := r.CreateUser(ctx, &models.User{Username: "alice", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestGormRepo_FindUserByUsername_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	user, err := r.FindUserByUsername(context.Background(), "nobody")
	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_SessionRoundTrip(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, r, "alice")

	session := models.Session{
		Token:     "tok-1",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, r.CreateSession(ctx, &session))

	found, err := r.FindSessionByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
	assert.False(t, found.CreatedAt.IsZero())

	require.NoError(t, r.DeleteSessionByToken(ctx, "tok-1"))

	_, err = r.FindSessionByToken(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrNotFound)

	err = r.DeleteSessionByToken(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_UpdateCredentials_DuplicateRollsBack(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	createTestUser(t, r, "alice")
	bob := createTestUser(t, r, "bob")

	err := r.UpdateCredentials(ctx, bob.ID, "alice", "new-hash")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateUser)

	// the username conflict aborts the whole update, bob is untouched
	fresh, err := r.GetUserByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", fresh.PasswordHash)
	assert.Equal(t, "bob", fresh.Username)
}

func TestGormRepo_UpdateCredentials_BothFields(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, r, "alice")

	require.NoError(t, r.UpdateCredentials(ctx, user.ID, "alicia", "new-hash"))

	fresh, err := r.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alicia", fresh.Username)
	assert.Equal(t, "new-hash", fresh.PasswordHash)
}

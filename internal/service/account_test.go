package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/connexo-app/backend/internal/models"
)

func TestChangePasswordMismatchLeavesStateUnchanged(t *testing.T) {
	db, profiles := setupServiceTest(t)
	auth := NewAuthService(db, profiles, "test-secret")
	svc := NewAccountService(db, profiles)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Jane", "jane@x.com", "supersecret", "janedoe")
	require.NoError(t, err)
	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "jane@x.com").Error)
	before := user.PasswordHash

	err = svc.ChangePassword(ctx, user.ID, "supersecret", "newpassword", "different")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	require.NoError(t, db.First(&user, "id = ?", user.ID).Error)
	assert.Equal(t, before, user.PasswordHash)
}

func TestChangePasswordRejectsShortAndWrongCurrent(t *testing.T) {
	db, profiles := setupServiceTest(t)
	auth := NewAuthService(db, profiles, "test-secret")
	svc := NewAccountService(db, profiles)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Jane", "jane@x.com", "supersecret", "janedoe")
	require.NoError(t, err)
	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "jane@x.com").Error)

	err = svc.ChangePassword(ctx, user.ID, "supersecret", "short", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	err = svc.ChangePassword(ctx, user.ID, "not-the-password", "newpassword", "newpassword")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangePasswordSuccess(t *testing.T) {
	db, profiles := setupServiceTest(t)
	auth := NewAuthService(db, profiles, "test-secret")
	svc := NewAccountService(db, profiles)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Jane", "jane@x.com", "supersecret", "janedoe")
	require.NoError(t, err)
	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "jane@x.com").Error)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "supersecret", "newpassword", "newpassword"))

	require.NoError(t, db.First(&user, "id = ?", user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")))

	_, err = auth.Login(ctx, "jane@x.com", "newpassword")
	assert.NoError(t, err)
}

func TestUpdateAccountPropagatesUsername(t *testing.T) {
	db, profiles := setupServiceTest(t)
	auth := NewAuthService(db, profiles, "test-secret")
	svc := NewAccountService(db, profiles)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Jane", "jane@x.com", "supersecret", "janedoe")
	require.NoError(t, err)
	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "jane@x.com").Error)

	require.NoError(t, svc.UpdateAccount(ctx, user.ID, "newname", "jane@new.com"))

	require.NoError(t, db.First(&user, "id = ?", user.ID).Error)
	assert.Equal(t, "jane@new.com", user.Email)
	assert.Equal(t, "newname", profiles.Session(ctx, user.ID).Document().Username)
}

func TestUpdateAccountDuplicateEmail(t *testing.T) {
	db, profiles := setupServiceTest(t)
	auth := NewAuthService(db, profiles, "test-secret")
	svc := NewAccountService(db, profiles)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Jane", "jane@x.com", "supersecret", "janedoe")
	require.NoError(t, err)
	_, err = auth.Register(ctx, "Bob", "bob@x.com", "supersecret", "bobwilson")
	require.NoError(t, err)

	var bob models.User
	require.NoError(t, db.First(&bob, "email = ?", "bob@x.com").Error)

	err = svc.UpdateAccount(ctx, bob.ID, "bobwilson", "jane@x.com")
	assert.ErrorIs(t, err, ErrEmailTaken)

	require.NoError(t, db.First(&bob, "id = ?", bob.ID).Error)
	assert.Equal(t, "bob@x.com", bob.Email)
}

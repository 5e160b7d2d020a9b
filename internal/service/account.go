package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/connexo-app/backend/internal/models"
	"github.com/connexo-app/backend/internal/store"
)

var (
	ErrPasswordMismatch = errors.New("new passwords do not match")
	ErrPasswordTooShort = errors.New("new password must be at least 8 characters")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrEmailTaken       = errors.New("email already in use")
)

// AccountService owns the account tab operations: profile information
// and password changes. Username changes flow into the profile document
// so the page address follows the account.
type AccountService struct {
	db       *gorm.DB
	profiles *store.Store
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(db *gorm.DB, profiles *store.Store) *AccountService {
	return &AccountService{db: db, profiles: profiles}
}

// UpdateAccount updates the account email and the document username.
func (s *AccountService) UpdateAccount(ctx context.Context, userID uuid.UUID, username, email string) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("email", email).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}

	sess := s.profiles.Session(ctx, userID)
	if sess.Document().Username != username {
		sess.UpdateUsername(username)
	}
	return nil
}

// ChangePassword verifies the current password and that both new
// password entries match exactly. Validation failures leave all state
// unchanged.
func (s *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPass, confirm string) error {
	if newPass != confirm {
		return ErrPasswordMismatch
	}
	if len(newPass) < 8 {
		return ErrPasswordTooShort
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&user).Update("password_hash", string(hashed)).Error
}

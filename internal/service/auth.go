package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/connexo-app/backend/internal/models"
	"github.com/connexo-app/backend/internal/store"
	"github.com/connexo-app/backend/internal/types"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// AuthService issues and validates session tokens and owns the user
// credential rows.
type AuthService struct {
	db        *gorm.DB
	profiles  *store.Store
	jwtSecret string
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(db *gorm.DB, profiles *store.Store, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		profiles:  profiles,
		jwtSecret: jwtSecret,
	}
}

// Register creates a user, seeds their profile document with the chosen
// username, and returns a session token. Email uniqueness is enforced
// by the unique index, so concurrent registrations cannot both win.
func (s *AuthService) Register(ctx context.Context, name, email, password, username string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrUserExists
		}
		return "", err
	}

	// The document starts from defaults with the chosen page address.
	sess := s.profiles.Session(ctx, user.ID)
	sess.UpdateUsername(username)
	if err := sess.Flush(ctx); err != nil {
		return "", err
	}

	return s.GenerateToken(user.ID, username)
}

// Login verifies credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	username := s.profiles.Session(ctx, user.ID).Document().Username
	return s.GenerateToken(user.ID, username)
}

// Logout handles user logout. Tokens are stateless; the client drops
// the token, the editor flushes any pending document edits.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.profiles.Session(ctx, userID).Flush(ctx)
}

// GenerateToken signs a 24h session token for the user.
func (s *AuthService) GenerateToken(userID uuid.UUID, username string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID.String(),
		"username": username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a session token.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidToken
	}
	username, _ := claims["username"].(string)

	return &types.TokenClaims{
		UserID:   userID,
		Username: username,
	}, nil
}

package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rsharma/fintrack/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// ErrInvalidCredentials is returned for any authentication failure; callers
// must not learn whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenPair is an access/refresh token couple issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates a new user with hashed password and issues a session.
func (s *Service) Register(name, email, password string) (*models.User, TokenPair, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, TokenPair{}, fmt.Errorf("name and email are required")
	}
	if len(password) < 6 {
		return nil, TokenPair{}, fmt.Errorf("password must be at least 6 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, TokenPair{}, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, tokens, nil
}

// Login authenticates a user and issues a fresh token pair.
func (s *Service) Login(email, password string) (*models.User, TokenPair, error) {
	user, err := s.repo.FindUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.log.Infof("User logged in: %s", user.Email)
	return user, tokens, nil
}

// Refresh rotates a valid refresh token into a new token pair.
func (s *Service) Refresh(refreshToken string) (TokenPair, error) {
	userID, err := s.parseToken(refreshToken, s.config.RefreshSecret)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	if err := s.repo.FindRefreshToken(userID, hashToken(refreshToken)); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return TokenPair{}, err
	}

	s.log.Infof("Session refreshed for user %d", user.ID)
	return tokens, nil
}

// GetUser returns the user for an authenticated ID.
func (s *Service) GetUser(id int64) (*models.User, error) {
	return s.repo.FindUserByID(id)
}

// issueTokens signs an access and a refresh token and stores the refresh
// token hash, replacing any previous session.
func (s *Service) issueTokens(user *models.User) (TokenPair, error) {
	now := s.now()

	access, err := s.signToken(user.ID, s.config.JWTSecret, now.Add(accessTokenTTL))
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.signToken(user.ID, s.config.RefreshSecret, now.Add(refreshTokenTTL))
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.repo.StoreRefreshToken(user.ID, hashToken(refresh), now.Add(refreshTokenTTL)); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) signToken(userID int64, secret string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	return token.SignedString([]byte(secret))
}

func (s *Service) parseToken(tokenString, secret string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("invalid claims: %w", err)
	}
	return strconv.ParseInt(sub, 10, 64)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserExists         = errors.New("username already registered")
)

// Claims carried by issued access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// TokenData is the verified identity attached to a request.
type TokenData struct {
	Username string `json:"username"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
}

// User is a registered account. Accounts live in memory, seeded with the two
// default users; persistent user storage is a later concern.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	passwordHash string
}

// Service issues and verifies HS256 access tokens.
type Service struct {
	secret []byte
	expiry time.Duration

	mu    sync.RWMutex
	users map[string]*User
}

func NewService(secret string, expiry time.Duration) *Service {
	s := &Service{
		secret: []byte(secret),
		expiry: expiry,
		users:  make(map[string]*User),
	}
	// Seed accounts matching the documented demo credentials.
	_, _ = s.Register("admin", "admin@example.com", "admin123", "admin")
	_, _ = s.Register("user", "user@example.com", "user123", "user")
	return s
}

func (s *Service) Register(username, email, password, role string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return nil, ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if role == "" {
		role = "user"
	}
	u := &User{
		ID:           strconv.Itoa(len(s.users) + 1),
		Username:     username,
		Email:        email,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		passwordHash: string(hash),
	}
	s.users[username] = u
	return u, nil
}

func (s *Service) GetUser(username string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	return u, ok
}

// Login verifies credentials and returns a signed token plus its lifetime.
func (s *Service) Login(username, password string) (string, time.Duration, error) {
	s.mu.RLock()
	u, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return "", 0, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return "", 0, ErrInvalidCredentials
	}
	token, err := s.createToken(u)
	if err != nil {
		return "", 0, err
	}
	return token, s.expiry, nil
}

func (s *Service) createToken(u *User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		UserID: u.ID,
		Role:   u.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates an access token.
func (s *Service) VerifyToken(tokenString string) (*TokenData, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &TokenData{
		Username: claims.Subject,
		UserID:   claims.UserID,
		Role:     claims.Role,
	}, nil
}

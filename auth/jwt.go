package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimSubject = "sub"
	ClaimEmail   = "email"
	ClaimRole    = "role"
	ClaimType    = "typ"
	ClaimExp     = "exp"
)

const (
	RoleAdmin = "ADMIN"

	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Identity struct {
	Email string
	Role  string
}

// Manager signs and verifies HS256 tokens.
type Manager struct {
	secret        []byte
	accessExpire  time.Duration
	refreshExpire time.Duration
	now           func() time.Time
}

func NewManager(secret string, accessExpire, refreshExpire time.Duration) *Manager {
	return &Manager{
		secret:        []byte(secret),
		accessExpire:  accessExpire,
		refreshExpire: refreshExpire,
		now:           time.Now,
	}
}

// GenerateTokens issues an access and a refresh token for id.
func (m *Manager) GenerateTokens(id Identity) (Tokens, error) {
	now := m.now()
	accessClaims := jwt.MapClaims{
		ClaimSubject: id.Email,
		ClaimEmail:   id.Email,
		ClaimRole:    id.Role,
		ClaimType:    tokenAccess,
		ClaimExp:     now.Add(m.accessExpire).Unix(),
		"iat":        now.Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(m.secret)
	if err != nil {
		return Tokens{}, err
	}

	refreshClaims := jwt.MapClaims{
		ClaimSubject: id.Email,
		ClaimRole:    id.Role,
		ClaimType:    tokenRefresh,
		ClaimExp:     now.Add(m.refreshExpire).Unix(),
		"iat":        now.Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(m.secret)
	if err != nil {
		return Tokens{}, err
	}

	return Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ParseAccess returns the identity carried by a valid access token.
func (m *Manager) ParseAccess(tokenStr string) (Identity, error) {
	return m.parse(tokenStr, tokenAccess)
}

func (m *Manager) ParseRefresh(tokenStr string) (Identity, error) {
	return m.parse(tokenStr, tokenRefresh)
}

func (m *Manager) parse(tokenStr, typ string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims[ClaimType] != typ {
		return Identity{}, ErrInvalidToken
	}
	sub, _ := claims[ClaimSubject].(string)
	role, _ := claims[ClaimRole].(string)
	if sub == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{Email: sub, Role: role}, nil
}

package auth

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Tokens is the signed pair returned by the auth endpoints.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims is the verified identity carried by a parsed token.
type Claims struct {
	UserID string
	Role   Role
	Type   string
}

// TokenIssuer signs and verifies the HS256 tokens used by the API.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{secret: secret}
}

// MustSecretFromEnv loads JWT_SECRET or exits the process with a fatal log.
func MustSecretFromEnv() []byte {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	return []byte(secret)
}

// Issue returns a fresh access/refresh token pair for u.
func (i *TokenIssuer) Issue(u *User) (Tokens, error) {
	access, err := i.IssueAccess(u)
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := i.sign(u, tokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

// IssueAccess returns a fresh access token for u.
func (i *TokenIssuer) IssueAccess(u *User) (string, error) {
	return i.sign(u, tokenTypeAccess, accessTokenTTL)
}

func (i *TokenIssuer) sign(u *User, typ string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    string(u.Role),
		"typ":     typ,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Parse verifies the signature and expiry and extracts the identity claims.
// The user id must be a well-formed uuid and the role one of the known roles.
func (i *TokenIssuer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token")
	}

	userID, _ := claims["user_id"].(string)
	if _, err := uuid.Parse(userID); err != nil {
		return nil, errors.New("invalid token")
	}

	roleStr, _ := claims["role"].(string)
	role, ok := ParseRole(roleStr)
	if !ok {
		return nil, errors.New("invalid token")
	}

	typ, _ := claims["typ"].(string)
	return &Claims{UserID: userID, Role: role, Type: typ}, nil
}

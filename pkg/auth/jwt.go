package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token validation errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrWrongTokenUse = errors.New("token used for the wrong purpose")
)

// Token use values carried in the token_use claim
const (
	tokenUseAccess  = "access"
	tokenUseRefresh = "refresh"
)

// Claims is the payload carried inside access and refresh tokens.
// The identity claim lives in the token itself; there is no separate
// identity endpoint.
type Claims struct {
	Username string `json:"username"`
	TokenUse string `json:"token_use,omitempty"`
	jwt.RegisteredClaims
}

// DecodeIdentity extracts the username claim from an access token without
// verifying the signature. The client treats tokens as opaque credentials;
// signature verification is the server's job.
func DecodeIdentity(accessToken string) (string, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return "", ErrInvalidToken
	}
	if claims.Username == "" {
		return "", errors.New("token carries no username claim")
	}
	return claims.Username, nil
}

// TokenIssuer mints and validates HS256 token pairs.
// Used by the development stub server; the real backend owns this in
// production.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenIssuer creates a token issuer with the given signing secret
func NewTokenIssuer(secret, issuer string) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  15 * time.Minute,
		refreshTTL: 7 * 24 * time.Hour,
	}
}

// IssuePair mints a fresh access/refresh token pair for a user
func (i *TokenIssuer) IssuePair(username string) (access, refresh string, err error) {
	access, err = i.sign(username, tokenUseAccess, i.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = i.sign(username, tokenUseRefresh, i.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// IssueAccess mints a new access token, used by the refresh endpoint
func (i *TokenIssuer) IssueAccess(username string) (string, error) {
	return i.sign(username, tokenUseAccess, i.accessTTL)
}

func (i *TokenIssuer) sign(username, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    i.issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// ValidateAccess verifies an access token's signature and expiry
func (i *TokenIssuer) ValidateAccess(token string) (*Claims, error) {
	return i.validate(token, tokenUseAccess)
}

// ValidateRefresh verifies a refresh token's signature and expiry
func (i *TokenIssuer) ValidateRefresh(token string) (*Claims, error) {
	return i.validate(token, tokenUseRefresh)
}

func (i *TokenIssuer) validate(token, use string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithIssuer(i.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenUse != use {
		return nil, ErrWrongTokenUse
	}
	return claims, nil
}

package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMissingToken     = errors.New("missing authentication token")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// DefaultTokenTTL is the session-token lifetime used when none is configured.
const DefaultTokenTTL = 5 * time.Minute

// Claims represents the session-token claims. The subject is a random
// identifier distinct from the user name; the user name travels in its own
// claim.
type Claims struct {
	UserName string `json:"name"`
	jwt.RegisteredClaims
}

// TokenIssuer mints signed session tokens.
type TokenIssuer struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewTokenIssuer creates a token issuer signing with the shared secret.
func NewTokenIssuer(secret, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("secret key required for token issuance")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		secretKey: []byte(secret),
		issuer:    issuer,
		ttl:       ttl,
	}, nil
}

// Issue generates a signed session token for a user. Each token carries a
// fresh random subject and token ID so two tokens for the same user are
// never identical.
func (i *TokenIssuer) Issue(userName string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secretKey)
}

// TokenValidator verifies session tokens against the shared secret.
//
// AllowExpired reproduces the original service's behavior of checking only
// the signature during validation. It exists as a compatibility switch and
// defaults to off: expired tokens are rejected.
type TokenValidator struct {
	secretKey    []byte
	issuer       string
	allowExpired bool
}

// NewTokenValidator creates a token validator.
func NewTokenValidator(secret, issuer string, allowExpired bool) (*TokenValidator, error) {
	if secret == "" {
		return nil, errors.New("secret key required for token validation")
	}
	return &TokenValidator{
		secretKey:    []byte(secret),
		issuer:       issuer,
		allowExpired: allowExpired,
	}, nil
}

// Validate checks a session token and returns its claims.
func (v *TokenValidator) Validate(tokenString string) (*Claims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	var opts []jwt.ParserOption
	if v.allowExpired {
		// Signature-only validation, matching the legacy verifier.
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method)
		}
		return v.secretKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, fmt.Errorf("%w: invalid issuer", ErrInvalidClaims)
	}
	if claims.UserName == "" {
		return nil, fmt.Errorf("%w: missing user name", ErrInvalidClaims)
	}

	return claims, nil
}

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenIssuer_Issue(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, "recipeapi", 5*time.Minute)
	require.NoError(t, err)
	validator, err := NewTokenValidator(testSecret, "recipeapi", false)
	require.NoError(t, err)

	token, err := issuer.Issue("chef1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := validator.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "chef1", claims.UserName)
	assert.NotEqual(t, "chef1", claims.Subject, "subject is a random identifier, not the user name")
	assert.NotEmpty(t, claims.ID, "token carries a unique id")
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, 10*time.Second)

	t.Run("two tokens for the same user differ", func(t *testing.T) {
		token2, err := issuer.Issue("chef1")
		require.NoError(t, err)
		assert.NotEqual(t, token, token2)
	})
}

func TestTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", "recipeapi", time.Minute)
	require.Error(t, err)
	_, err = NewTokenValidator("", "recipeapi", false)
	require.Error(t, err)
}

func TestTokenValidator_Expiry(t *testing.T) {
	// A non-positive TTL passed to the constructor falls back to the
	// default, so build an already-expired token directly.
	expiredIssuer := &TokenIssuer{secretKey: []byte(testSecret), issuer: "recipeapi", ttl: -time.Minute}

	token, err := expiredIssuer.Issue("chef1")
	require.NoError(t, err)

	t.Run("rejected by default", func(t *testing.T) {
		validator, err := NewTokenValidator(testSecret, "recipeapi", false)
		require.NoError(t, err)

		_, err = validator.Validate(token)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("accepted with the compatibility switch", func(t *testing.T) {
		validator, err := NewTokenValidator(testSecret, "recipeapi", true)
		require.NoError(t, err)

		claims, err := validator.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "chef1", claims.UserName)
	})
}

func TestTokenValidator_Signature(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, "recipeapi", 5*time.Minute)
	require.NoError(t, err)
	token, err := issuer.Issue("chef1")
	require.NoError(t, err)

	tamper := func(tok string) string {
		// Flip a character in the signature segment.
		idx := strings.LastIndex(tok, ".") + 1
		sig := []byte(tok[idx:])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		return tok[:idx] + string(sig)
	}

	for _, allowExpired := range []bool{false, true} {
		validator, err := NewTokenValidator(testSecret, "recipeapi", allowExpired)
		require.NoError(t, err)

		_, err = validator.Validate(tamper(token))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	}
}

func TestTokenValidator_WrongSecret(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, "recipeapi", 5*time.Minute)
	require.NoError(t, err)
	token, err := issuer.Issue("chef1")
	require.NoError(t, err)

	validator, err := NewTokenValidator("other-secret", "recipeapi", false)
	require.NoError(t, err)

	_, err = validator.Validate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenValidator_IssuerMismatch(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, "someone-else", 5*time.Minute)
	require.NoError(t, err)
	token, err := issuer.Issue("chef1")
	require.NoError(t, err)

	validator, err := NewTokenValidator(testSecret, "recipeapi", false)
	require.NoError(t, err)

	_, err = validator.Validate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestTokenValidator_MissingToken(t *testing.T) {
	validator, err := NewTokenValidator(testSecret, "recipeapi", false)
	require.NoError(t, err)

	_, err = validator.Validate("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = validator.Validate("Bearer ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

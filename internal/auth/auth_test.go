package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner(t *testing.T) {
	s, err := NewSigner("test-secret")
	require.NoError(t, err)

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := s.Issue("anna", time.Hour)
		require.NoError(t, err)

		subject, err := s.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "anna", subject)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := s.Issue("anna", time.Minute)
		require.NoError(t, err)

		later := &Signer{secret: s.secret, now: func() time.Time { return time.Now().Add(time.Hour) }}
		_, err = later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongKey", func(t *testing.T) {
		other, err := NewSigner("other-secret")
		require.NoError(t, err)
		token, err := other.Issue("anna", time.Hour)
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongAlgorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
			Issuer:  issuer,
			Subject: "anna",
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = s.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := s.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := s.Issue("", time.Hour)
		assert.Error(t, err)
	})
}

func TestNewSigner_EmptySecret(t *testing.T) {
	_, err := NewSigner("")
	assert.Error(t, err)
}

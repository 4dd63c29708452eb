package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTVerifier_Verify(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "subject-123",
		"email": "user@example.com",
		"name":  "Test User",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	id, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "subject-123", id.Subject)
	require.Equal(t, "user@example.com", id.Email)
	require.Equal(t, "Test User", id.Name)
}

func TestJWTVerifier_Verify_SubjectOnly(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	token := signToken(t, testSecret, jwt.MapClaims{"sub": "subject-123"})

	id, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "subject-123", id.Subject)
	require.Empty(t, id.Email)
	require.Empty(t, id.Name)
}

func TestJWTVerifier_Verify_WrongSecret(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	token := signToken(t, "some-other-secret", jwt.MapClaims{"sub": "subject-123"})

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifier_Verify_MissingSubject(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	token := signToken(t, testSecret, jwt.MapClaims{"email": "user@example.com"})

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifier_Verify_Expired(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "subject-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifier_Verify_Garbage(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret)
	require.NoError(t, err)

	_, err = verifier.Verify("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTVerifier_EmptySecret(t *testing.T) {
	_, err := NewJWTVerifier("")
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestBypassVerifier_MintsFreshSubjects(t *testing.T) {
	verifier := BypassVerifier{}

	first, err := verifier.Verify("anything")
	require.NoError(t, err)
	require.NotEmpty(t, first.Subject)

	second, err := verifier.Verify("anything")
	require.NoError(t, err)
	require.NotEqual(t, first.Subject, second.Subject)
}

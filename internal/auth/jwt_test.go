package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"minerals/backend/internal/auth"
)

const testSecret = "test-secret"

func signHS256(t *testing.T, claims auth.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func validClaims(sub string) auth.Claims {
	return auth.Claims{
		Email: sub + "@example.com",
		Name:  "Test User",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    "https://idp.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestJWTVerifier_HS256(t *testing.T) {
	v, err := auth.NewJWTVerifier(auth.WithHMACSecret(testSecret))
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), signHS256(t, validClaims("user_1")))
	require.NoError(t, err)
	require.Equal(t, auth.Identity{ID: "user_1", Email: "user_1@example.com", Name: "Test User"}, id)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	v, err := auth.NewJWTVerifier(auth.WithHMACSecret(testSecret), auth.WithIssuer("https://idp.example.com"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = v.Verify(ctx, "  ")
	require.ErrorIs(t, err, auth.ErrMissingToken)

	_, err = v.Verify(ctx, "not-a-jwt")
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	expired := validClaims("user_1")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	_, err = v.Verify(ctx, signHS256(t, expired))
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	noExpiry := validClaims("user_1")
	noExpiry.ExpiresAt = nil
	_, err = v.Verify(ctx, signHS256(t, noExpiry))
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	wrongIssuer := validClaims("user_1")
	wrongIssuer.Issuer = "https://evil.example.com"
	_, err = v.Verify(ctx, signHS256(t, wrongIssuer))
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = v.Verify(ctx, signHS256(t, validClaims("")))
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims("user_1")).SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = v.Verify(ctx, other)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTVerifier_RS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	path := filepath.Join(t.TempDir(), "idp.pem")
	require.NoError(t, os.WriteFile(path, pubPEM, 0o600))

	v, err := auth.NewJWTVerifier(auth.WithRSAPublicKeyFile(path))
	require.NoError(t, err)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims("user_rsa")).SignedString(key)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), signed)
	require.NoError(t, err)
	require.Equal(t, "user_rsa", id.ID)

	// HS256 is not accepted when only a public key is configured.
	_, err = v.Verify(context.Background(), signHS256(t, validClaims("user_rsa")))
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestNewJWTVerifier_Errors(t *testing.T) {
	_, err := auth.NewJWTVerifier()
	require.Error(t, err)

	_, err = auth.NewJWTVerifier(auth.WithRSAPublicKeyPEM([]byte("garbage")))
	require.Error(t, err)

	_, err = auth.NewJWTVerifier(auth.WithRSAPublicKeyFile(filepath.Join(t.TempDir(), "missing.pem")))
	require.Error(t, err)
}

func TestContext(t *testing.T) {
	_, ok := auth.FromContext(context.Background())
	require.False(t, ok)

	_, ok = auth.FromContext(auth.WithIdentity(context.Background(), auth.Identity{}))
	require.False(t, ok)

	ctx := auth.WithIdentity(context.Background(), auth.Identity{ID: "user_1"})
	id, ok := auth.FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "user_1", id.ID)
}

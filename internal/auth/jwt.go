package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload issued by the identity provider.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier checks HS256 tokens against a shared secret and RS256 tokens
// against a PEM public key. Either key may be absent.
type JWTVerifier struct {
	secret    []byte
	publicKey *rsa.PublicKey
	issuer    string
}

type JWTOption func(*JWTVerifier) error

func WithHMACSecret(secret string) JWTOption {
	return func(v *JWTVerifier) error {
		if secret != "" {
			v.secret = []byte(secret)
		}
		return nil
	}
}

func WithRSAPublicKeyPEM(pem []byte) JWTOption {
	return func(v *JWTVerifier) error {
		if len(pem) == 0 {
			return nil
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
		if err != nil {
			return fmt.Errorf("parse public key: %w", err)
		}
		v.publicKey = key
		return nil
	}
}

// WithRSAPublicKeyFile reads the PEM key at path. An empty path is ignored.
func WithRSAPublicKeyFile(path string) JWTOption {
	return func(v *JWTVerifier) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read public key: %w", err)
		}
		return WithRSAPublicKeyPEM(data)(v)
	}
}

func WithIssuer(issuer string) JWTOption {
	return func(v *JWTVerifier) error {
		v.issuer = issuer
		return nil
	}
}

func NewJWTVerifier(opts ...JWTOption) (*JWTVerifier, error) {
	v := &JWTVerifier{}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	if len(v.secret) == 0 && v.publicKey == nil {
		return nil, errors.New("jwt verifier: no verification key configured")
	}
	return v, nil
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrMissingToken
	}

	methods := make([]string, 0, 2)
	if len(v.secret) > 0 {
		methods = append(methods, jwt.SigningMethodHS256.Alg())
	}
	if v.publicKey != nil {
		methods = append(methods, jwt.SigningMethodRS256.Alg())
	}
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods(methods), jwt.WithExpirationRequired()}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, v.keyFunc, parserOpts...)
	if err != nil || !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return Identity{ID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

func (v *JWTVerifier) keyFunc(t *jwt.Token) (interface{}, error) {
	switch t.Method.(type) {
	case *jwt.SigningMethodHMAC:
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		return v.publicKey, nil
	default:
		return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
	}
}

// Package identity verifies the identity provider's session JWTs via its
// JWKS endpoint. The provider owns sign-in and sessions; this service only
// ever sees a bearer token carrying the external user id and email.
package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

const defaultLeeway = 30 * time.Second

// Identity is the resolved caller: the provider's stable user id plus the
// primary email address.
type Identity struct {
	ExternalID string
	Email      string
}

type Verifier struct {
	keyfunc keyfunc.Keyfunc
	parser  *jwt.Parser
}

// NewVerifier builds a verifier for the given issuer; jwksURL defaults to the
// issuer's well-known JWKS path.
func NewVerifier(issuer, jwksURL string) (*Verifier, error) {
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		return nil, errors.New("identity issuer must be set")
	}
	if !strings.HasSuffix(issuer, "/") {
		issuer += "/"
	}
	if jwksURL == "" {
		jwksURL = issuer + ".well-known/jwks.json"
	}

	keyProvider, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to init JWKS keyfunc: %w", err)
	}

	parser := jwt.NewParser(
		jwt.WithIssuer(strings.TrimSuffix(issuer, "/")),
		jwt.WithLeeway(defaultLeeway),
		jwt.WithValidMethods([]string{
			jwt.SigningMethodRS256.Name,
			jwt.SigningMethodRS384.Name,
			jwt.SigningMethodRS512.Name,
		}),
	)

	return &Verifier{keyfunc: keyProvider, parser: parser}, nil
}

// Verify parses and validates a session token, returning the caller identity.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	token, err := v.parser.Parse(tokenString, v.keyfunc.Keyfunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	id := &Identity{
		ExternalID: readString(mapClaims, "sub"),
		Email:      readString(mapClaims, "email"),
	}
	if id.ExternalID == "" {
		return nil, errors.New("token missing sub")
	}
	return id, nil
}

func readString(claims jwt.MapClaims, key string) string {
	if s, ok := claims[key].(string); ok {
		return s
	}
	return ""
}

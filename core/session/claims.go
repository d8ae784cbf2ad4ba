package session

import (
	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Claims mirrors the authorization claims the server puts in its JWTs.
type Claims struct {
	jwt.StandardClaims
	Role  string `json:"role,omitempty"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

var errMalformedToken = errors.New("malformed token")

// DecodeClaims reads the claims out of a token without verifying the
// signature. The client never holds the signing key; the server is the
// verifier and announces expiry with a 401.
func DecodeClaims(token string) (*Claims, error) {
	claims := new(Claims)
	parser := new(jwt.Parser)
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, errMalformedToken
	}
	return claims, nil
}

// identityFromToken fills in any profile fields the login payload omitted.
func identityFromToken(token string, usr User) User {
	claims, err := DecodeClaims(token)
	if err != nil {
		return usr
	}
	if usr.ID == "" {
		usr.ID = claims.Subject
	}
	if usr.Role == "" {
		usr.Role = claims.Role
	}
	if usr.Name == "" {
		usr.Name = claims.Name
	}
	if usr.Phone == "" {
		usr.Phone = claims.Phone
	}
	return usr
}

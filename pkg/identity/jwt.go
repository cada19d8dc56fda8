package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/chris/apartment-rentals/pkg/models"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier validates HS256 bearer tokens issued by the external login service.
type Verifier struct {
	secret    []byte
	issuer    string
	clockSkew time.Duration
}

// NewVerifier creates a Verifier. An empty issuer disables the iss check.
func NewVerifier(secret, issuer string, clockSkew time.Duration) *Verifier {
	if clockSkew <= 0 {
		clockSkew = 2 * time.Minute
	}
	return &Verifier{
		secret:    []byte(strings.TrimSpace(secret)),
		issuer:    issuer,
		clockSkew: clockSkew,
	}
}

// Verify parses the token and returns the identity it carries. The user id is
// read from "sub", falling back to "userId".
func (v *Verifier) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrMissingToken
	}
	if len(v.secret) == 0 {
		return Identity{}, errors.New("auth secret not configured")
	}

	opts := []jwt.ParserOption{
		jwt.WithLeeway(v.clockSkew),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("%w: claims not map", ErrInvalidToken)
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		userID, _ = claims["userId"].(string)
	}
	if userID == "" {
		return Identity{}, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	role, _ := claims["role"].(string)

	return Identity{UserID: userID, Role: models.ParseRole(role)}, nil
}

// ExtractBearer returns the token from an Authorization header value.
func ExtractBearer(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// Sign issues a token for id. It is used by tests and local tooling; the
// production login service signs with the same secret.
func (v *Verifier) Sign(id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  id.UserID,
		"role": string(id.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	if v.issuer != "" {
		claims["iss"] = v.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

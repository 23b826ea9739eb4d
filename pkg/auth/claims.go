package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Roles  []string
	Email  string

	// TTL overrides the configured expiration when positive.
	TTL time.Duration
}

// AccessTokenClaims represents the typed JWT issued to clients. The subject
// registered claim carries the principal id.
type AccessTokenClaims struct {
	Roles []string `json:"roles"`
	Email string   `json:"email"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a principal identifier.
func (c *AccessTokenClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session credential payload: exactly the owning user's
// identifier. The credential deliberately carries no expiry; only the cookie
// max-age and rotation of the signing secret bound a session's lifetime.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Codec signs user identifiers into opaque bearer credentials and verifies
// them back. The secret is injected once at construction; the codec is
// immutable and safe for concurrent use.
type Codec struct {
	secret []byte
}

// NewCodec constructs a Codec around the process-wide signing secret.
func NewCodec(secret string) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Issue produces a signed HS256 assertion over the user identifier.
func (c *Codec) Issue(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("auth: userID is required")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: userID})
	return token.SignedString(c.secret)
}

// Verify checks the signature and payload shape and returns the embedded
// user identifier. Fails with ErrInvalidToken on any mismatch; expiry is not
// checked here because the credential carries none.
func (c *Codec) Verify(credential string) (string, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(credential, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || strings.TrimSpace(claims.UserID) == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// PurposeAuth is the access tag carried by login tokens.
const PurposeAuth = "auth"

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, malformed or incomplete claims.
var ErrInvalidToken = errors.New("invalid token")

// Codec signs and verifies auth tokens with a shared HS256 secret. Tokens
// carry no expiry; they stay valid until removed from the user's token list.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Issue produces a signed token binding the user id to an access purpose.
// The jti keeps repeated logins distinct; without it two tokens for the same
// user would be byte-identical and collide in the token list.
func (c *Codec) Issue(userID, access string) (string, error) {
	claims := jwt.MapClaims{
		"_id":    userID,
		"access": access,
		"iat":    time.Now().Unix(),
		"jti":    uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the signature and returns the embedded user id and access
// purpose, or ErrInvalidToken.
func (c *Codec) Verify(tok string) (userID, access string, err error) {
	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	userID, _ = claims["_id"].(string)
	access, _ = claims["access"].(string)
	if userID == "" || access == "" {
		return "", "", ErrInvalidToken
	}
	return userID, access, nil
}

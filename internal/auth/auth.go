// Package auth issues session tokens and handles stored passwords.
//
// Both default to demo behaviour: the token is the fixed literal DemoToken
// and passwords are stored and compared as plaintext. Setting a JWT secret
// switches to signed HS256 tokens; enabling hashing switches to bcrypt.
package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const DemoToken = "demo-token"

const tokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type JWTClaims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// Signed reports whether Issue produces real JWTs.
func (t *TokenIssuer) Signed() bool {
	return len(t.secret) > 0
}

func (t *TokenIssuer) Issue(userID string) (string, error) {
	if !t.Signed() {
		return DemoToken, nil
	}
	claims := JWTClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  t.now().Unix(),
			ExpiresAt: t.now().Add(tokenTTL).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse validates a token produced by Issue and returns its claims.
func (t *TokenIssuer) Parse(tokenStr string) (*JWTClaims, error) {
	if !t.Signed() {
		if tokenStr == DemoToken {
			return &JWTClaims{}, nil
		}
		return nil, ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type Passwords struct {
	hashing bool
}

func NewPasswords(hashing bool) Passwords {
	return Passwords{hashing: hashing}
}

// Hashing reports whether stored passwords are bcrypt hashes. When false the
// store can match email and password in a single lookup.
func (p Passwords) Hashing() bool {
	return p.hashing
}

// Prepare converts a plaintext password into its stored form.
func (p Passwords) Prepare(plain string) (string, error) {
	if !p.hashing {
		return plain, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (p Passwords) Matches(stored, plain string) bool {
	if !p.hashing {
		return stored == plain
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

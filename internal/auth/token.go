package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that does not
// carry a valid signature and the expected claims.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity embedded in every issued token.
type Claims struct {
	ID       int
	Username string
}

// Issue signs an HS256 token carrying the user's id and username.
// Tokens have no expiry; a token stays valid as long as the secret does.
func Issue(secret []byte, id int, username string) (string, error) {
	claims := jwt.MapClaims{
		"id":       id,
		"username": username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token issued by Issue. It rejects
// tokens signed with a different algorithm so a crafted "none" or RSA
// token cannot pass with the shared secret as key material.
func Verify(secret []byte, tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	id, ok := mc["id"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	username, ok := mc["username"].(string)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	return Claims{ID: int(id), Username: username}, nil
}

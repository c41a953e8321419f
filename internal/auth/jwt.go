package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret string

const (
	accessTokenLifetime  = time.Hour * 24
	refreshTokenLifetime = time.Hour * 168
)

func InitJWTSecret() error {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return nil
}

// SetJWTSecret overrides the signing secret. Intended for tests.
func SetJWTSecret(secret string) {
	jwtSecret = secret
}

func GenerateAccessToken(userID uint, username string) (string, error) {
	return generate(userID, username, "access", accessTokenLifetime)
}

func GenerateRefreshToken(userID uint, username string) (string, error) {
	return generate(userID, username, "refresh", refreshTokenLifetime)
}

func generate(userID uint, username, tokenType string, lifetime time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"username":   username,
		"token_type": tokenType,
		"exp":        time.Now().Add(lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func VerifyJWT(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("Invalid or expired token")
	}

	return token, nil
}

// VerifyRefreshToken verifies the token and additionally requires the
// refresh token_type claim, so an access token cannot be replayed against
// the refresh endpoint.
func VerifyRefreshToken(tokenString string) (*jwt.Token, error) {
	token, err := VerifyJWT(tokenString)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok || claims["token_type"] != "refresh" {
		return nil, fmt.Errorf("Invalid or expired token")
	}

	return token, nil
}

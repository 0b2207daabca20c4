package utils

import (
	"time"

	"content-planner/infrastructure/logger"

	"github.com/golang-jwt/jwt"
)

func GetCurrentTime() time.Time {
	return time.Now().UTC()
}

// GenerateToken signs payload with HS256; used by the CLI and tests to mint
// bearer tokens the auth middleware accepts.
func GenerateToken(payload map[string]interface{}, secretKey string) (string, error) {
	var claims jwt.MapClaims = payload
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while generate token")
		return "", err
	}
	return tokenString, nil
}

// GenerateUserToken mints a token for userID that expires after ttl.
func GenerateUserToken(userID, userName, secretKey string, ttl time.Duration) (string, error) {
	now := GetCurrentTime()
	return GenerateToken(map[string]interface{}{
		"iss":       userID,
		"sub":       userID,
		"user_name": userName,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}, secretKey)
}

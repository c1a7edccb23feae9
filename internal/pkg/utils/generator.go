package utils

import (
	"medimarket-service/internal/pkg/constvars"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// SessionClaims identifies the wallet account behind a request and the view
// session its catalog snapshots belong to.
type SessionClaims struct {
	Account   string `json:"account"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateIdempotencyKey() string {
	return uuid.NewString()
}

func GenerateSessionJWT(account, sessionID, secret string, jwtExpiryTimeInHour int) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Account:   account,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(jwtExpiryTimeInHour) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseSessionJWT(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims.SessionID == "" {
		claims.SessionID = claims.Account
	}
	return claims, nil
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/simskyeconomy/simsky-core/internal/config"
)

// Claims identify the account a session belongs to.
type Claims struct {
	AccountID uint `json:"account_id"`
	jwt.RegisteredClaims
}

// SessionManager is the session boundary: it turns an authenticated
// account id into a bearer token and back.
type SessionManager struct {
	config *config.AuthConfig
}

func NewSessionManager(config *config.AuthConfig) *SessionManager {
	return &SessionManager{config: config}
}

func (m *SessionManager) Establish(accountID uint) (string, error) {
	expirationTime := time.Now().Add(m.config.SessionDuration)
	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.JWTSecret))
}

func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(m.config.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid session token")
	}

	return claims, nil
}

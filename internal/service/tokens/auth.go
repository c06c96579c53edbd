package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// UserClaims Subject содержит идентификатор пользователя, ID идентификатор сессии.
type UserClaims struct {
	jwt.RegisteredClaims
}

func (c *UserClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject) //nolint:wrapcheck
}

func (c *UserClaims) SessionID() (uuid.UUID, error) {
	return uuid.Parse(c.ID) //nolint:wrapcheck
}

// GenerateUserJWT выпускает токен, который истекает вместе с сессией.
func GenerateUserJWT(userID, sessionID uuid.UUID, expiresAt time.Time, key []byte) (string, error) {
	userClaims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        sessionID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := generateJWT(userClaims, key)
	if err != nil {
		return "", fmt.Errorf("generating user jwt token: %s", err.Error())
	}
	return token, nil
}

// ValidateUserJWT проверяет подпись и срок действия токена. Возвращает ErrTokenExpired для
// истекших токенов и ErrInvalidToken для всех остальных ошибок разбора.
func ValidateUserJWT(tokenString string, key []byte) (*UserClaims, error) {
	token, err := validateJWT(tokenString, new(UserClaims), key)
	if err != nil {
		return nil, fmt.Errorf("validating user jwt token: %w", err)
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if _, idErr := claims.UserID(); idErr != nil {
		return nil, ErrInvalidToken
	}
	if _, idErr := claims.SessionID(); idErr != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func generateJWT(claims jwt.Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating jwt token: %s", err.Error())
	}

	return tokenString, nil
}

func validateJWT(tokenString string, claims jwt.Claims, key []byte) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	return token, nil
}

package services

import (
	"fmt"
	"time"

	"busbooking/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "busbooking"

// Claims is the payload of an access token.
type Claims struct {
	UserID domain.ID   `json:"user_id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 access tokens.
type TokenManager struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewTokenManager(secret string, expiration time.Duration) *TokenManager {
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), expiration: expiration, now: time.Now}
}

func (m *TokenManager) Generate(userID domain.ID, role domain.Role) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse validates a token and returns its claims. Any failure is reported
// as domain.UnauthorizedError.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, domain.UnauthorizedError{Msg: "phiên đăng nhập không hợp lệ hoặc đã hết hạn"}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.UnauthorizedError{Msg: "phiên đăng nhập không hợp lệ hoặc đã hết hạn"}
	}
	if _, err := domain.ParseRole(string(claims.Role)); err != nil {
		return nil, domain.UnauthorizedError{Msg: "phiên đăng nhập không hợp lệ hoặc đã hết hạn"}
	}
	return claims, nil
}

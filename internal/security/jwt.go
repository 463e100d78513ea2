package security

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// JWTManager проверяет сессионные токены, которые платформа выдает встроенному приложению.
// Токен подписан HS256 секретом приложения, aud - API key приложения, dest - https://{shop}.
type JWTManager struct {
	apiKey string
	secret []byte
	leeway time.Duration
}

type Claims struct {
	jwt.RegisteredClaims
	Dest      string `json:"dest"`
	SessionID string `json:"sid,omitempty"`
}

func NewJWTManager(apiKey, apiSecret string, leeway time.Duration) (*JWTManager, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, errors.New("api key and api secret are required")
	}

	return &JWTManager{
		apiKey: apiKey,
		secret: []byte(apiSecret),
		leeway: leeway,
	}, nil
}

// Generate выпускает токен для магазина. Используется в тестах и при локальной отладке.
func (m *JWTManager) Generate(shop string, expiration time.Duration) (string, error) {
	now := time.Now()
	dest := "https://" + shop
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    dest + "/admin",
			Audience:  jwt.ClaimStrings{m.apiKey},
		},
		Dest: dest,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(m.apiKey),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.leeway),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateToken реализация interfaces.AuthPort
func (m *JWTManager) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := m.Validate(token)
	if err != nil {
		return "", err
	}

	shop, err := ShopFromDest(claims.Dest)
	if err != nil {
		return "", err
	}

	// iss выпускается админкой того же магазина
	if iss, err := ShopFromDest(claims.Issuer); err != nil || iss != shop {
		return "", ErrInvalidToken
	}

	return shop, nil
}

// ShopFromDest извлекает домен магазина из https://{shop}[/admin]
func ShopFromDest(dest string) (string, error) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("%w: bad dest %q", ErrInvalidToken, dest)
	}
	return strings.ToLower(u.Host), nil
}

package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SaydirasulovFirdavs/web-kutubxona/dto"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alphabatem/common/context"
)

type JWTService struct {
	context.DefaultService

	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	jwtSecretKey         string
}

type CustomClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

const (
	JWT_SVC = "jwt_svc"

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	svc.AccessTokenDuration = 15 * time.Minute
	svc.RefreshTokenDuration = 7 * 24 * time.Hour
	svc.jwtSecretKey = os.Getenv("JWT_SECRET")
	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	if svc.jwtSecretKey == "" {
		return errors.New("JWT_SECRET is not set")
	}
	return nil
}

func (svc *JWTService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("authorization header format must be Bearer <token>")
	}

	return parts[1], nil
}

// VerifyJWTToken validates an access token and returns the user id it carries.
func (svc *JWTService) VerifyJWTToken(jwtToken string) (string, error) {
	claims, err := svc.parseClaims(jwtToken)
	if err != nil {
		return "", err
	}

	if claims.TokenType != tokenTypeAccess {
		return "", errors.New("token is not an access token")
	}

	return claims.UserID, nil
}

// VerifyRefreshToken validates a refresh token and returns the user id.
func (svc *JWTService) VerifyRefreshToken(jwtToken string) (string, error) {
	claims, err := svc.parseClaims(jwtToken)
	if err != nil {
		return "", err
	}

	if claims.TokenType != tokenTypeRefresh {
		return "", errors.New("token is not a refresh token")
	}

	return claims.UserID, nil
}

func (svc *JWTService) parseClaims(jwtToken string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(jwtToken, &CustomClaims{}, svc.getJWTKey)
	if err == nil && token.Valid {
		claims, ok := token.Claims.(*CustomClaims)
		if ok && claims != nil {
			expTime, err := claims.GetExpirationTime()
			if err != nil {
				return nil, fmt.Errorf("failed to get expiration time: %v", err)
			}
			now := jwt.NewNumericDate(time.Now())
			if expTime.Unix() < now.Unix() {
				return nil, errors.New("token has expired")
			}

			if claims.UserID == "" {
				return nil, errors.New("token carries no user id")
			}

			return claims, nil
		}
	}

	return nil, errors.New("unsupported JWT format")
}

func (svc *JWTService) getJWTKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return []byte(svc.jwtSecretKey), nil
}

func (svc *JWTService) GenerateTokenPair(userID string) (*dto.TokenPair, error) {
	accessToken, err := svc.signToken(userID, tokenTypeAccess, svc.AccessTokenDuration)
	if err != nil {
		return nil, err
	}

	refreshToken, err := svc.signToken(userID, tokenTypeRefresh, svc.RefreshTokenDuration)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(svc.AccessTokenDuration.Seconds()),
	}, nil
}

func (svc *JWTService) signToken(userID, tokenType string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(svc.jwtSecretKey))
}

// TokenRemainingLifetime reports how long until the token expires, for
// blacklisting on logout.
func (svc *JWTService) TokenRemainingLifetime(jwtToken string) (time.Duration, error) {
	claims, err := svc.parseClaims(jwtToken)
	if err != nil {
		return 0, err
	}

	expTime, err := claims.GetExpirationTime()
	if err != nil {
		return 0, err
	}

	remaining := time.Until(expTime.Time)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

package services

import (
	goContext "context"
	"errors"
	"time"

	"github.com/SaydirasulovFirdavs/web-kutubxona/dto"
	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	context.DefaultService

	sqlSvc   DatabaseService
	jwtSvc   *JWTService
	redisSvc *RedisService
}

const AUTH_SVC = "auth_svc"

const blacklistKeyPrefix = "auth:blacklist:"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(DB_SVC).(DatabaseService)
	svc.jwtSvc = ctx.Service(JWT_SVC).(*JWTService)
	svc.redisSvc = ctx.Service(REDIS_SVC).(*RedisService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	_, err := svc.sqlSvc.Users().GetUserByEmail(req.Email)
	if err == nil {
		return nil, shared.NewConflictError(nil, "Bu email allaqachon ro'yxatdan o'tgan")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.sqlSvc.HandleError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	user := &model.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.RoleUser,
	}

	user, err = svc.sqlSvc.Users().CreateUser(user)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if err := svc.sqlSvc.Reading().EnsureStreak(user.ID); err != nil {
		log.WithError(err).Warn("Failed to seed streak row")
	}

	log.WithFields(log.Fields{"user_id": user.ID}).Info("User registered")

	return &dto.RegisterResponse{UserID: user.ID}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.sqlSvc.Users().GetUserByEmail(req.Email)
	if err != nil {
		return nil, shared.NewUnauthorizedError(nil, "Email yoki parol noto'g'ri")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(nil, "Email yoki parol noto'g'ri")
	}

	if user.IsBlocked {
		return nil, shared.NewForbiddenError(nil, "Sizning hisobingiz bloklangan")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate tokens")
	}

	user.LastLogin = time.Now()
	if err := svc.sqlSvc.Users().UpdateUser(user); err != nil {
		log.WithError(err).Warn("Failed to record last login")
	}

	return &dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User: dto.UserInfo{
			ID:        user.ID,
			FullName:  user.FullName,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

func (svc *AuthService) RefreshToken(req dto.RefreshTokenRequest) (*dto.TokenPair, error) {
	userID, err := svc.jwtSvc.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid refresh token")
	}

	blacklisted, err := svc.IsTokenBlacklisted(req.RefreshToken)
	if err != nil {
		log.WithError(err).Warn("Blacklist lookup failed")
	}
	if blacklisted {
		return nil, shared.NewUnauthorizedError(nil, "Invalid refresh token")
	}

	user, err := svc.sqlSvc.Users().GetUserByID(userID)
	if err != nil {
		return nil, shared.NewUnauthorizedError(nil, "Invalid refresh token")
	}
	if user.IsBlocked {
		return nil, shared.NewForbiddenError(nil, "Sizning hisobingiz bloklangan")
	}

	// The old refresh token is burned so each one is single use.
	if err := svc.blacklistToken(req.RefreshToken); err != nil {
		log.WithError(err).Warn("Failed to blacklist refresh token")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate tokens")
	}
	return pair, nil
}

func (svc *AuthService) Logout(accessToken string) error {
	if err := svc.blacklistToken(accessToken); err != nil {
		return shared.NewInternalError(err, "Failed to log out")
	}
	return nil
}

func (svc *AuthService) blacklistToken(token string) error {
	remaining, err := svc.jwtSvc.TokenRemainingLifetime(token)
	if err != nil {
		return err
	}
	if remaining == 0 {
		return nil
	}

	ctx := goContext.Background()
	return svc.redisSvc.Set(ctx, blacklistKeyPrefix+token, "1", remaining)
}

func (svc *AuthService) IsTokenBlacklisted(token string) (bool, error) {
	ctx := goContext.Background()
	return svc.redisSvc.Exists(ctx, blacklistKeyPrefix+token)
}

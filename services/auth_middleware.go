package services

import (
	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"
)

type AuthMiddleware struct {
	context.DefaultService

	sqlSvc  DatabaseService
	jwtSvc  *JWTService
	authSvc *AuthService
}

const AUTH_MIDDLEWARE_SVC = "auth"

func (svc AuthMiddleware) Id() string {
	return AUTH_MIDDLEWARE_SVC
}

func (svc *AuthMiddleware) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(DB_SVC).(DatabaseService)
	svc.jwtSvc = ctx.Service(JWT_SVC).(*JWTService)
	svc.authSvc = ctx.Service(AUTH_SVC).(*AuthService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthMiddleware) Start() error {
	return nil
}

// RequiredAuth rejects the request unless it carries a valid, non-revoked
// access token for an active account.
func (svc *AuthMiddleware) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.authenticate(c)
		if err != nil {
			return err
		}

		c.Locals(shared.UserID, user.ID)
		c.Locals(shared.UserRole, user.Role)
		return c.Next()
	}
}

// RequireAdmin additionally checks for an admin role.
func (svc *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.authenticate(c)
		if err != nil {
			return err
		}

		if user.Role != model.RoleAdmin && user.Role != model.RoleSuperAdmin {
			return shared.NewForbiddenError(nil, "Sizda bu amalni bajarish huquqi yo'q")
		}

		c.Locals(shared.UserID, user.ID)
		c.Locals(shared.UserRole, user.Role)
		return c.Next()
	}
}

func (svc *AuthMiddleware) authenticate(c *fiber.Ctx) (*model.User, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return nil, shared.NewUnauthorizedError(err, "Unauthorized")
	}

	userID, err := svc.jwtSvc.VerifyJWTToken(token)
	if err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid JWT token")
	}

	blacklisted, err := svc.authSvc.IsTokenBlacklisted(token)
	if err == nil && blacklisted {
		return nil, shared.NewUnauthorizedError(nil, "Token has been revoked")
	}

	user, err := svc.sqlSvc.Users().GetUserByID(userID)
	if err != nil {
		return nil, shared.NewUnauthorizedError(err, "Unauthorized")
	}
	if user.IsBlocked {
		return nil, shared.NewForbiddenError(nil, "Sizning hisobingiz bloklangan")
	}

	return user, nil
}

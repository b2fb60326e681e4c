package services

import (
	"github.com/SaydirasulovFirdavs/web-kutubxona/dto"
	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

// AdminService handles moderation: user management and catalog oversight.
type AdminService struct {
	context.DefaultService

	sqlSvc DatabaseService
}

const ADMIN_SVC = "admin_svc"

func (svc AdminService) Id() string {
	return ADMIN_SVC
}

func (svc *AdminService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(DB_SVC).(DatabaseService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *AdminService) Start() error {
	return nil
}

func (svc *AdminService) ListUsers(search string, page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := svc.sqlSvc.Users().ListUsers(search, page, limit)
	if err != nil {
		return nil, 0, svc.sqlSvc.HandleError(err)
	}
	return users, total, nil
}

func (svc *AdminService) SetUserBlocked(userID string, blocked bool) error {
	user, err := svc.sqlSvc.Users().GetUserByID(userID)
	if err != nil {
		return shared.NewNotFoundError(err, "Foydalanuvchi topilmadi")
	}
	if user.Role == model.RoleSuperAdmin {
		return shared.NewForbiddenError(nil, "Super adminni bloklab bo'lmaydi")
	}

	user.IsBlocked = blocked
	if err := svc.sqlSvc.Users().UpdateUser(user); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"blocked": blocked,
	}).Info("User block status changed")
	return nil
}

func (svc *AdminService) SetUserRole(userID string, req dto.SetUserRoleRequest) error {
	user, err := svc.sqlSvc.Users().GetUserByID(userID)
	if err != nil {
		return shared.NewNotFoundError(err, "Foydalanuvchi topilmadi")
	}
	if user.Role == model.RoleSuperAdmin {
		return shared.NewForbiddenError(nil, "Super admin rolini o'zgartirib bo'lmaydi")
	}

	user.Role = req.Role
	if err := svc.sqlSvc.Users().UpdateUser(user); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"role":    req.Role,
	}).Info("User role changed")
	return nil
}

func (svc *AdminService) GetOverview() (*dto.AdminOverviewResponse, error) {
	users, err := svc.sqlSvc.Users().CountUsers()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	books, err := svc.sqlSvc.Books().CountBooks()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.AdminOverviewResponse{
		TotalUsers: users,
		TotalBooks: books,
	}, nil
}

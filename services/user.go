package services

import (
	"github.com/SaydirasulovFirdavs/web-kutubxona/dto"
	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"

	"github.com/alphabatem/common/context"
	"golang.org/x/crypto/bcrypt"
)

// UserService covers the reader profile and the personal library.
type UserService struct {
	context.DefaultService

	sqlSvc     DatabaseService
	readingSvc *ReadingService
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(DB_SVC).(DatabaseService)
	svc.readingSvc = ctx.Service(READING_SVC).(*ReadingService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	return nil
}

func (svc *UserService) GetProfile(userID string) (*dto.UserInfo, error) {
	user, err := svc.sqlSvc.Users().GetUserByID(userID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Foydalanuvchi topilmadi")
	}

	return &dto.UserInfo{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (svc *UserService) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := svc.sqlSvc.Users().GetUserByID(userID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Foydalanuvchi topilmadi")
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, shared.NewInternalError(err, "Failed to hash password")
		}
		user.Password = string(hashed)
	}

	if err := svc.sqlSvc.Users().UpdateUser(user); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.UserInfo{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (svc *UserService) AddToLibrary(userID, bookID string) error {
	if _, err := svc.sqlSvc.Books().GetActiveBook(bookID); err != nil {
		return shared.NewNotFoundError(err, "Kitob topilmadi")
	}

	if err := svc.sqlSvc.Library().AddToLibrary(userID, bookID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}

func (svc *UserService) RemoveFromLibrary(userID, bookID string) error {
	if err := svc.sqlSvc.Library().RemoveFromLibrary(userID, bookID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}

func (svc *UserService) GetLibrary(userID string) ([]model.UserLibrary, error) {
	entries, err := svc.sqlSvc.Library().GetLibrary(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return entries, nil
}

// FinishBook marks a library book as read. The book must already be in the
// user's library.
func (svc *UserService) FinishBook(userID, bookID string) error {
	inLibrary, err := svc.sqlSvc.Library().InLibrary(userID, bookID)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if !inLibrary {
		return shared.NewNotFoundError(nil, "Kitob kutubxonangizda topilmadi")
	}

	return svc.readingSvc.RecordBookFinished(userID, bookID)
}

func (svc *UserService) SaveBookmark(userID, bookID string, req dto.SaveBookmarkRequest) (*model.Bookmark, error) {
	if _, err := svc.sqlSvc.Books().GetActiveBook(bookID); err != nil {
		return nil, shared.NewNotFoundError(err, "Kitob topilmadi")
	}

	bookmark, err := svc.sqlSvc.Library().SaveBookmark(userID, bookID, req.Page)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return bookmark, nil
}

func (svc *UserService) GetBookmarks(userID string) ([]model.Bookmark, error) {
	bookmarks, err := svc.sqlSvc.Library().GetBookmarks(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return bookmarks, nil
}

func (svc *UserService) CreateHighlight(userID, bookID string, req dto.CreateHighlightRequest) (*model.Highlight, error) {
	if _, err := svc.sqlSvc.Books().GetActiveBook(bookID); err != nil {
		return nil, shared.NewNotFoundError(err, "Kitob topilmadi")
	}

	highlight := &model.Highlight{
		UserID: userID,
		BookID: bookID,
		Page:   req.Page,
		Text:   req.Text,
		Note:   req.Note,
		Color:  req.Color,
	}
	highlight, err := svc.sqlSvc.Library().CreateHighlight(highlight)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return highlight, nil
}

func (svc *UserService) GetHighlights(userID, bookID string) ([]model.Highlight, error) {
	highlights, err := svc.sqlSvc.Library().GetHighlights(userID, bookID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return highlights, nil
}

func (svc *UserService) DeleteHighlight(userID, highlightID string) error {
	rows, err := svc.sqlSvc.Library().DeleteHighlight(userID, highlightID)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if rows == 0 {
		return shared.NewNotFoundError(nil, "Belgi topilmadi")
	}
	return nil
}

func (svc *UserService) GetDownloadHistory(userID string) ([]model.DownloadHistory, error) {
	records, err := svc.sqlSvc.Library().GetDownloadHistory(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return records, nil
}

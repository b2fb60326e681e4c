package handlers

import (
	"mime/multipart"

	"github.com/SaydirasulovFirdavs/web-kutubxona/dto"
	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(req dto.RefreshTokenRequest) (*dto.TokenPair, error)
	Logout(accessToken string) error
}

type ReadingServiceInterface interface {
	StartSession(userID, bookID string) (*dto.StartSessionResponse, error)
	EndSession(userID, sessionID string) (string, error)
	GetMyStats(userID string) (*dto.UserStatsResponse, error)
	GetMyAchievements(userID string) ([]dto.EarnedAchievementResponse, error)
	ExplainText(req dto.ExplainRequest) *dto.ExplainResponse
}

type BookServiceInterface interface {
	ListBooks(req dto.ListBooksRequest, includeInactive bool) (*dto.BookListResponse, error)
	GetBook(bookID string) (*dto.BookResponse, error)
	TrendingBooks(limit int) ([]dto.BookResponse, error)
	NewArrivals(limit int) ([]dto.BookResponse, error)
	RecommendedBooks(userID string, limit int) ([]dto.BookResponse, error)
	DownloadBook(userID, bookID string) (string, error)
	CreateBook(req dto.CreateBookRequest) (*dto.BookResponse, error)
	UpdateBook(bookID string, req dto.UpdateBookRequest) (*dto.BookResponse, error)
	DeleteBook(bookID string) error
	UploadCover(bookID string, file *multipart.FileHeader) (*dto.BookResponse, error)
	UploadFile(bookID string, file *multipart.FileHeader) (*dto.BookResponse, error)
	CreateCategory(req dto.CreateCategoryRequest) (*model.Category, error)
	ListCategories() ([]model.Category, error)
	CreateReview(userID, bookID string, req dto.CreateReviewRequest) (*model.Review, error)
	GetReviews(bookID string) ([]model.Review, error)
}

type UserServiceInterface interface {
	GetProfile(userID string) (*dto.UserInfo, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserInfo, error)
	AddToLibrary(userID, bookID string) error
	RemoveFromLibrary(userID, bookID string) error
	GetLibrary(userID string) ([]model.UserLibrary, error)
	FinishBook(userID, bookID string) error
	SaveBookmark(userID, bookID string, req dto.SaveBookmarkRequest) (*model.Bookmark, error)
	GetBookmarks(userID string) ([]model.Bookmark, error)
	CreateHighlight(userID, bookID string, req dto.CreateHighlightRequest) (*model.Highlight, error)
	GetHighlights(userID, bookID string) ([]model.Highlight, error)
	DeleteHighlight(userID, highlightID string) error
	GetDownloadHistory(userID string) ([]model.DownloadHistory, error)
}

type AdminServiceInterface interface {
	ListUsers(search string, page, limit int) ([]model.User, int64, error)
	SetUserBlocked(userID string, blocked bool) error
	SetUserRole(userID string, req dto.SetUserRoleRequest) error
	GetOverview() (*dto.AdminOverviewResponse, error)
}

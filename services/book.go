package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/SaydirasulovFirdavs/web-kutubxona/dto"
	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BookService manages the catalog and book files.
type BookService struct {
	context.DefaultService

	sqlSvc   DatabaseService
	minioSvc *MinIOService
}

const BOOK_SVC = "book_svc"

const presignedURLExpiry = time.Hour

func (svc BookService) Id() string {
	return BOOK_SVC
}

func (svc *BookService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(DB_SVC).(DatabaseService)
	svc.minioSvc = ctx.Service(MINIO_SVC).(*MinIOService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *BookService) Start() error {
	return nil
}

func (svc *BookService) ListBooks(req dto.ListBooksRequest, includeInactive bool) (*dto.BookListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	books, total, err := svc.sqlSvc.Books().ListBooks(req.Search, req.Category, page, limit, includeInactive)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := &dto.BookListResponse{
		Books: make([]dto.BookResponse, 0, len(books)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for i := range books {
		resp.Books = append(resp.Books, svc.toResponse(&books[i], false))
	}
	return resp, nil
}

// TrendingBooks ranks active books by a weighted view/download score.
func (svc *BookService) TrendingBooks(limit int) ([]dto.BookResponse, error) {
	books, err := svc.sqlSvc.Books().TrendingBooks(clampDiscoveryLimit(limit))
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return svc.toResponseList(books), nil
}

func (svc *BookService) NewArrivals(limit int) ([]dto.BookResponse, error) {
	books, err := svc.sqlSvc.Books().NewArrivals(clampDiscoveryLimit(limit))
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return svc.toResponseList(books), nil
}

// RecommendedBooks suggests unread books sharing categories with the user's library.
func (svc *BookService) RecommendedBooks(userID string, limit int) ([]dto.BookResponse, error) {
	books, err := svc.sqlSvc.Books().RecommendedBooks(userID, clampDiscoveryLimit(limit))
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return svc.toResponseList(books), nil
}

func clampDiscoveryLimit(limit int) int {
	if limit < 1 || limit > 50 {
		return 10
	}
	return limit
}

func (svc *BookService) toResponseList(books []model.Book) []dto.BookResponse {
	resp := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		resp = append(resp, svc.toResponse(&books[i], false))
	}
	return resp
}

func (svc *BookService) GetBook(bookID string) (*dto.BookResponse, error) {
	book, err := svc.sqlSvc.Books().GetActiveBook(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Kitob topilmadi")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	if err := svc.sqlSvc.Books().IncrementViewCount(bookID); err != nil {
		log.WithError(err).Warn("Failed to increment view count")
	}

	resp := svc.toResponse(book, true)
	return &resp, nil
}

// DownloadBook records the download and hands back a presigned file URL.
func (svc *BookService) DownloadBook(userID, bookID string) (string, error) {
	book, err := svc.sqlSvc.Books().GetActiveBook(bookID)
	if err != nil {
		return "", shared.NewNotFoundError(err, "Kitob topilmadi")
	}
	if book.FileKey == "" {
		return "", shared.NewNotFoundError(nil, "Kitob fayli mavjud emas")
	}

	url, err := svc.minioSvc.GetFileURL(book.FileKey, presignedURLExpiry)
	if err != nil {
		return "", shared.NewInternalError(err, "Failed to generate download link")
	}

	if err := svc.sqlSvc.Library().RecordDownload(userID, bookID); err != nil {
		log.WithError(err).Warn("Failed to record download")
	}
	if err := svc.sqlSvc.Books().IncrementDownloadCount(bookID); err != nil {
		log.WithError(err).Warn("Failed to increment download count")
	}

	return url, nil
}

func (svc *BookService) CreateBook(req dto.CreateBookRequest) (*dto.BookResponse, error) {
	book := &model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Year:        req.Year,
		Pages:       req.Pages,
		Language:    req.Language,
		Status:      shared.BookStatusActive,
	}

	book, err := svc.sqlSvc.Books().CreateBook(book)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if len(req.CategoryIDs) > 0 {
		if err := svc.sqlSvc.Books().ReplaceCategories(book, req.CategoryIDs); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	created, err := svc.sqlSvc.Books().GetBook(book.ID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := svc.toResponse(created, false)
	return &resp, nil
}

func (svc *BookService) UpdateBook(bookID string, req dto.UpdateBookRequest) (*dto.BookResponse, error) {
	book, err := svc.sqlSvc.Books().GetBook(bookID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Kitob topilmadi")
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Year != nil {
		book.Year = *req.Year
	}
	if req.Pages != nil {
		book.Pages = *req.Pages
	}
	if req.Language != nil {
		book.Language = *req.Language
	}
	if req.Status != nil {
		book.Status = *req.Status
	}

	if err := svc.sqlSvc.Books().UpdateBook(book); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if req.CategoryIDs != nil {
		if err := svc.sqlSvc.Books().ReplaceCategories(book, req.CategoryIDs); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	updated, err := svc.sqlSvc.Books().GetBook(bookID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := svc.toResponse(updated, false)
	return &resp, nil
}

func (svc *BookService) DeleteBook(bookID string) error {
	book, err := svc.sqlSvc.Books().GetBook(bookID)
	if err != nil {
		return shared.NewNotFoundError(err, "Kitob topilmadi")
	}

	// Soft removal keeps sessions and history pointing at a real row.
	book.Status = shared.BookStatusInactive
	if err := svc.sqlSvc.Books().UpdateBook(book); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}

func (svc *BookService) UploadCover(bookID string, file *multipart.FileHeader) (*dto.BookResponse, error) {
	return svc.uploadAsset(bookID, file, "covers", func(book *model.Book, key string) {
		svc.removeStaleAsset(book.CoverKey)
		book.CoverKey = key
	})
}

func (svc *BookService) UploadFile(bookID string, file *multipart.FileHeader) (*dto.BookResponse, error) {
	return svc.uploadAsset(bookID, file, "books", func(book *model.Book, key string) {
		svc.removeStaleAsset(book.FileKey)
		book.FileKey = key
	})
}

// removeStaleAsset drops a replaced object from storage, best effort.
func (svc *BookService) removeStaleAsset(key string) {
	if key == "" {
		return
	}
	if err := svc.minioSvc.DeleteFile(key); err != nil {
		log.WithError(err).WithField("object", key).Warn("Failed to remove replaced file")
	}
}

func (svc *BookService) uploadAsset(bookID string, file *multipart.FileHeader, prefix string, assign func(*model.Book, string)) (*dto.BookResponse, error) {
	book, err := svc.sqlSvc.Books().GetBook(bookID)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Kitob topilmadi")
	}

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid file upload")
	}
	defer src.Close()

	id, _ := uuid.NewV7()
	objectName := fmt.Sprintf("%s/%s%s", prefix, id.String(), filepath.Ext(file.Filename))

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := svc.minioSvc.UploadFile(objectName, src, file.Size, contentType); err != nil {
		return nil, shared.NewInternalError(err, "Failed to store file")
	}

	assign(book, objectName)
	if err := svc.sqlSvc.Books().UpdateBook(book); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := svc.toResponse(book, true)
	return &resp, nil
}

func (svc *BookService) CreateCategory(req dto.CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{
		Name: req.Name,
		Slug: req.Slug,
	}
	category, err := svc.sqlSvc.Books().CreateCategory(category)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return category, nil
}

func (svc *BookService) ListCategories() ([]model.Category, error) {
	categories, err := svc.sqlSvc.Books().ListCategories()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return categories, nil
}

func (svc *BookService) CreateReview(userID, bookID string, req dto.CreateReviewRequest) (*model.Review, error) {
	if _, err := svc.sqlSvc.Books().GetActiveBook(bookID); err != nil {
		return nil, shared.NewNotFoundError(err, "Kitob topilmadi")
	}

	review := &model.Review{
		UserID:  userID,
		BookID:  bookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	review, err := svc.sqlSvc.Library().SaveReview(review)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return review, nil
}

func (svc *BookService) GetReviews(bookID string) ([]model.Review, error) {
	reviews, err := svc.sqlSvc.Library().GetReviews(bookID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return reviews, nil
}

func (svc *BookService) toResponse(book *model.Book, withURLs bool) dto.BookResponse {
	resp := dto.BookResponse{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Description:   book.Description,
		Year:          book.Year,
		Pages:         book.Pages,
		Language:      book.Language,
		Status:        book.Status,
		ViewCount:     book.ViewCount,
		DownloadCount: book.DownloadCount,
		Categories:    make([]string, 0, len(book.Categories)),
	}
	for _, category := range book.Categories {
		resp.Categories = append(resp.Categories, category.Name)
	}

	if withURLs {
		if book.CoverKey != "" {
			if url, err := svc.minioSvc.GetFileURL(book.CoverKey, presignedURLExpiry); err == nil {
				resp.CoverURL = url
			}
		}
		if book.FileKey != "" {
			if url, err := svc.minioSvc.GetFileURL(book.FileKey, presignedURLExpiry); err == nil {
				resp.FileURL = url
			}
		}
	}

	return resp
}

package repositories

import (
	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LibraryRepository handles per-user book state: saved books, bookmarks,
// highlights, downloads and reviews.
type LibraryRepository struct {
	BaseRepository
}

func NewLibraryRepository(db *gorm.DB) *LibraryRepository {
	return &LibraryRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *LibraryRepository) AddToLibrary(userID, bookID string) error {
	id, _ := uuid.NewV7()
	entry := model.UserLibrary{
		ID:     id.String(),
		UserID: userID,
		BookID: bookID,
	}
	return ds.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

func (ds *LibraryRepository) RemoveFromLibrary(userID, bookID string) error {
	return ds.db.
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&model.UserLibrary{}).Error
}

func (ds *LibraryRepository) GetLibrary(userID string) ([]model.UserLibrary, error) {
	var entries []model.UserLibrary
	err := ds.db.
		Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// MarkFinished flips the finished flag once. Returns true only on the first
// call for a given (user, book) pair, which keeps book counts idempotent.
func (ds *LibraryRepository) MarkFinished(userID, bookID string) (bool, error) {
	res := ds.db.Model(&model.UserLibrary{}).
		Where("user_id = ? AND book_id = ? AND finished = ?", userID, bookID, false).
		Update("finished", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (ds *LibraryRepository) InLibrary(userID, bookID string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.UserLibrary{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

func (ds *LibraryRepository) RecordDownload(userID, bookID string) error {
	id, _ := uuid.NewV7()
	record := model.DownloadHistory{
		ID:     id.String(),
		UserID: userID,
		BookID: bookID,
	}
	return ds.db.Create(&record).Error
}

func (ds *LibraryRepository) GetDownloadHistory(userID string) ([]model.DownloadHistory, error) {
	var records []model.DownloadHistory
	err := ds.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// SaveBookmark upserts the user's single bookmark per book.
func (ds *LibraryRepository) SaveBookmark(userID, bookID string, page int) (*model.Bookmark, error) {
	id, _ := uuid.NewV7()
	bookmark := model.Bookmark{
		ID:     id.String(),
		UserID: userID,
		BookID: bookID,
		Page:   page,
	}
	err := ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"page", "updated_at"}),
	}).Create(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (ds *LibraryRepository) GetBookmarks(userID string) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	err := ds.db.
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (ds *LibraryRepository) CreateHighlight(highlight *model.Highlight) (*model.Highlight, error) {
	id, _ := uuid.NewV7()
	highlight.ID = id.String()
	if err := ds.db.Create(highlight).Error; err != nil {
		return nil, err
	}
	return highlight, nil
}

func (ds *LibraryRepository) GetHighlights(userID, bookID string) ([]model.Highlight, error) {
	query := ds.db.Where("user_id = ?", userID)
	if bookID != "" {
		query = query.Where("book_id = ?", bookID)
	}

	var highlights []model.Highlight
	if err := query.Order("created_at DESC").Find(&highlights).Error; err != nil {
		return nil, err
	}
	return highlights, nil
}

func (ds *LibraryRepository) DeleteHighlight(userID, highlightID string) (int64, error) {
	res := ds.db.
		Where("id = ? AND user_id = ?", highlightID, userID).
		Delete(&model.Highlight{})
	return res.RowsAffected, res.Error
}

// SaveReview upserts the user's single review per book.
func (ds *LibraryRepository) SaveReview(review *model.Review) (*model.Review, error) {
	id, _ := uuid.NewV7()
	review.ID = id.String()
	err := ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(review).Error
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (ds *LibraryRepository) GetReviews(bookID string) ([]model.Review, error) {
	var reviews []model.Review
	err := ds.db.
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

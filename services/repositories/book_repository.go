package repositories

import (
	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookRepository handles the book catalog and categories
type BookRepository struct {
	BaseRepository
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *BookRepository) CreateBook(book *model.Book) (*model.Book, error) {
	id, _ := uuid.NewV7()
	book.ID = id.String()
	if book.Status == "" {
		book.Status = shared.BookStatusActive
	}
	if err := ds.db.Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

func (ds *BookRepository) GetBook(bookID string) (*model.Book, error) {
	var book model.Book
	if err := ds.db.Preload("Categories").Where("id = ?", bookID).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (ds *BookRepository) GetActiveBook(bookID string) (*model.Book, error) {
	var book model.Book
	err := ds.db.Preload("Categories").
		Where("id = ? AND status = ?", bookID, shared.BookStatusActive).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (ds *BookRepository) UpdateBook(book *model.Book) error {
	return ds.db.Save(book).Error
}

func (ds *BookRepository) ListBooks(search, categorySlug string, page, limit int, includeInactive bool) ([]model.Book, int64, error) {
	query := ds.db.Model(&model.Book{})

	if !includeInactive {
		query = query.Where("books.status = ?", shared.BookStatusActive)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("books.title LIKE ? OR books.author LIKE ?", pattern, pattern)
	}
	if categorySlug != "" {
		query = query.
			Joins("JOIN book_categories bc ON bc.book_id = books.id").
			Joins("JOIN categories c ON c.id = bc.category_id").
			Where("c.slug = ?", categorySlug)
	}

	// Count on its own session: Distinct would otherwise stick to the shared
	// statement and strip the select list from the Find below.
	var total int64
	if err := query.Session(&gorm.Session{}).Distinct("books.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []model.Book
	err := query.
		Preload("Categories").
		Order("books.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// TrendingBooks ranks the active catalog by weighted engagement, downloads
// counting heavier than views.
func (ds *BookRepository) TrendingBooks(limit int) ([]model.Book, error) {
	var books []model.Book
	err := ds.db.
		Preload("Categories").
		Where("status = ?", shared.BookStatusActive).
		Order("(0.3 * view_count + 0.7 * download_count) DESC").
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (ds *BookRepository) NewArrivals(limit int) ([]model.Book, error) {
	var books []model.Book
	err := ds.db.
		Preload("Categories").
		Where("status = ?", shared.BookStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// RecommendedBooks suggests active books that share a category with the user's
// library, skipping books the user already saved.
func (ds *BookRepository) RecommendedBooks(userID string, limit int) ([]model.Book, error) {
	var books []model.Book
	err := ds.db.
		Preload("Categories").
		Where("books.status = ?", shared.BookStatusActive).
		Where(`books.id IN (
			SELECT bc.book_id FROM book_categories bc
			WHERE bc.category_id IN (
				SELECT bc2.category_id FROM book_categories bc2
				JOIN user_libraries ul ON ul.book_id = bc2.book_id
				WHERE ul.user_id = ?
			)
		)`, userID).
		Where("books.id NOT IN (SELECT book_id FROM user_libraries WHERE user_id = ?)", userID).
		Order("books.view_count DESC").
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (ds *BookRepository) IncrementViewCount(bookID string) error {
	return ds.db.Model(&model.Book{}).
		Where("id = ?", bookID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (ds *BookRepository) IncrementDownloadCount(bookID string) error {
	return ds.db.Model(&model.Book{}).
		Where("id = ?", bookID).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
}

func (ds *BookRepository) ReplaceCategories(book *model.Book, categoryIDs []string) error {
	var categories []model.Category
	if len(categoryIDs) > 0 {
		if err := ds.db.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
			return err
		}
	}
	return ds.db.Model(book).Association("Categories").Replace(categories)
}

func (ds *BookRepository) CreateCategory(category *model.Category) (*model.Category, error) {
	id, _ := uuid.NewV7()
	category.ID = id.String()
	if err := ds.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (ds *BookRepository) ListCategories() ([]model.Category, error) {
	var categories []model.Category
	if err := ds.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (ds *BookRepository) CountBooks() (int64, error) {
	var total int64
	err := ds.db.Model(&model.Book{}).Count(&total).Error
	return total, err
}

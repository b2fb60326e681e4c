package repositories

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SaydirasulovFirdavs/web-kutubxona/model"
	"github.com/SaydirasulovFirdavs/web-kutubxona/shared"
)

func setupBookTestDB(t *testing.T) (*gorm.DB, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.Book{},
		&model.Category{},
		&model.UserLibrary{},
	)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func createCatalogBook(t *testing.T, repo *BookRepository, title, author string, categories ...model.Category) *model.Book {
	t.Helper()
	book, err := repo.CreateBook(&model.Book{
		Title:  title,
		Author: author,
		Status: shared.BookStatusActive,
	})
	require.NoError(t, err)

	if len(categories) > 0 {
		ids := make([]string, 0, len(categories))
		for _, c := range categories {
			ids = append(ids, c.ID)
		}
		require.NoError(t, repo.ReplaceCategories(book, ids))
	}
	return book
}

func TestListBooks_RowsCarryAllColumns(t *testing.T) {
	db, cleanup := setupBookTestDB(t)
	defer cleanup()
	repo := NewBookRepository(db)

	createCatalogBook(t, repo, "Yulduzli Tunlar", "Odil Yoqubov")
	createCatalogBook(t, repo, "O'tkan Kunlar", "Abdulla Qodiriy")

	books, total, err := repo.ListBooks("", "", 1, 20, false)
	require.NoError(t, err)

	assert.EqualValues(t, 2, total)
	require.Len(t, books, 2)
	for _, book := range books {
		assert.NotEmpty(t, book.ID)
		assert.NotEmpty(t, book.Title)
		assert.NotEmpty(t, book.Author)
		assert.Equal(t, shared.BookStatusActive, book.Status)
	}
}

func TestListBooks_CategoryFilterKeepsColumns(t *testing.T) {
	db, cleanup := setupBookTestDB(t)
	defer cleanup()
	repo := NewBookRepository(db)

	tarix, err := repo.CreateCategory(&model.Category{Name: "Tarix", Slug: "tarix"})
	require.NoError(t, err)

	createCatalogBook(t, repo, "O'tkan Kunlar", "Abdulla Qodiriy", *tarix)
	createCatalogBook(t, repo, "Sariq Devni Minib", "Xudoyberdi To'xtaboyev")

	books, total, err := repo.ListBooks("", "tarix", 1, 20, false)
	require.NoError(t, err)

	assert.EqualValues(t, 1, total)
	require.Len(t, books, 1)
	assert.Equal(t, "O'tkan Kunlar", books[0].Title)
	assert.Equal(t, "Abdulla Qodiriy", books[0].Author)
}

func TestListBooks_SearchMatchesTitleOrAuthor(t *testing.T) {
	db, cleanup := setupBookTestDB(t)
	defer cleanup()
	repo := NewBookRepository(db)

	createCatalogBook(t, repo, "Yulduzli Tunlar", "Odil Yoqubov")
	createCatalogBook(t, repo, "Ufq", "Said Ahmad")

	books, total, err := repo.ListBooks("Yoqubov", "", 1, 20, false)
	require.NoError(t, err)

	assert.EqualValues(t, 1, total)
	require.Len(t, books, 1)
	assert.Equal(t, "Yulduzli Tunlar", books[0].Title)
}

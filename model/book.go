package model

import "time"

type Book struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"not null"`
	Author        string    `json:"author" gorm:"not null"`
	Description   string    `json:"description"`
	Year          int       `json:"year"`
	Pages         int       `json:"pages"`
	Language      string    `json:"language"`
	CoverKey      string    `json:"cover_key"`
	FileKey       string    `json:"file_key"`
	Status        string    `json:"status" gorm:"not null;default:active"`
	ViewCount     int64     `json:"view_count" gorm:"not null;default:0"`
	DownloadCount int64     `json:"download_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Categories []Category `json:"categories,omitempty" gorm:"many2many:book_categories"`
}

type Category struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique;not null"`
	Slug      string    `json:"slug" gorm:"unique;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserLibrary links a user to a saved book. Finished flips once, the first
// time the user marks the book read, so total book counts stay idempotent.
type UserLibrary struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_library"`
	BookID    string    `json:"book_id" gorm:"not null;uniqueIndex:idx_user_library"`
	Finished  bool      `json:"finished" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID"`
}

type DownloadHistory struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;index"`
	BookID    string    `json:"book_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

type Bookmark struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_bookmark"`
	BookID    string    `json:"book_id" gorm:"not null;uniqueIndex:idx_user_bookmark"`
	Page      int       `json:"page" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Highlight struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;index"`
	BookID    string    `json:"book_id" gorm:"not null;index"`
	Page      int       `json:"page" gorm:"not null"`
	Text      string    `json:"text" gorm:"not null"`
	Note      string    `json:"note"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Review struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_review"`
	BookID    string    `json:"book_id" gorm:"not null;uniqueIndex:idx_user_review"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

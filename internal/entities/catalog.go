package entities

import "time"

type Author struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex:idx_authors_name;size:256;not null" json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	IsActive    bool      `gorm:"index;not null" json:"isActive"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Author) TableName() string {
	return "authors"
}

type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CategoryName string    `gorm:"size:256;not null" json:"categoryName"`
	IsActive     bool      `gorm:"index;not null" json:"isActive"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// Book references exactly one author and one category. The references are
// fixed at creation time.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"index;size:512;not null" json:"title"`
	ISBN          string    `gorm:"column:isbn;uniqueIndex:idx_books_isbn;size:20;not null" json:"isbn"`
	PublishedDate time.Time `gorm:"index" json:"publishedDate"`
	IsActive      bool      `gorm:"index;not null" json:"isActive"`
	CategoryID    uint      `gorm:"index;not null" json:"categoryId"`
	AuthorID      uint      `gorm:"index;not null" json:"authorId"`
	Category      *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Author        *Author   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

func (Book) TableName() string {
	return "books"
}

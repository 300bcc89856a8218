package models

// Author represents a book author in the library demo. Deleting an author
// cascades to their books.
type Author struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:200"`
	Books []Book `json:"books,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// Book represents a book in the library demo
type Book struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Title           string `json:"title" gorm:"size:200"`
	PublicationYear int    `json:"publication_year"`
	AuthorID        uint   `json:"author" gorm:"index"`
}

// BookRequest defines the request body for creating or updating a book.
// PublicationYear not being in the future is checked in the handler since
// it depends on the current date.
type BookRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	PublicationYear int    `json:"publication_year" validate:"required"`
	AuthorID        uint   `json:"author" validate:"required"`
}

// AuthorRequest defines the request body for creating an author
type AuthorRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

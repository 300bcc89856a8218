package repositories

import (
	"errors"

	"github.com/pulsefeed/backend/internal/models"
	"gorm.io/gorm"
)

// BookFilter carries the list-endpoint query parameters. Zero values mean
// "no filter".
type BookFilter struct {
	Search          string // matches book title or author name
	AuthorID        uint
	PublicationYear int
	Ordering        string // "title", "publication_year", "-" prefix for descending
}

// BookRepository defines the interface for the library demo data operations
type BookRepository interface {
	CreateAuthor(author *models.Author) error
	GetAuthorByID(id uint) (*models.Author, error)
	GetAuthors() ([]models.Author, error)
	CreateBook(book *models.Book) error
	GetBookByID(id uint) (*models.Book, error)
	ListBooks(filter BookFilter) ([]models.Book, error)
	UpdateBook(book *models.Book) error
	DeleteBook(id uint) error
}

// PostgresBookRepository implements BookRepository for PostgreSQL
type PostgresBookRepository struct {
	db *gorm.DB
}

// NewPostgresBookRepository creates a new PostgresBookRepository
func NewPostgresBookRepository(db *gorm.DB) *PostgresBookRepository {
	return &PostgresBookRepository{db: db}
}

func (r *PostgresBookRepository) CreateAuthor(author *models.Author) error {
	return r.db.Create(author).Error
}

// GetAuthorByID retrieves an author with their books preloaded
func (r *PostgresBookRepository) GetAuthorByID(id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.Preload("Books").First(&author, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &author, nil
}

func (r *PostgresBookRepository) GetAuthors() ([]models.Author, error) {
	var authors []models.Author
	if err := r.db.Preload("Books").Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *PostgresBookRepository) CreateBook(book *models.Book) error {
	return r.db.Create(book).Error
}

func (r *PostgresBookRepository) GetBookByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// ListBooks applies search, filters and ordering. Search matches the book
// title or the author's name, case-insensitive. Default ordering is by title.
func (r *PostgresBookRepository) ListBooks(filter BookFilter) ([]models.Book, error) {
	db := r.db.Model(&models.Book{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Joins("JOIN authors ON authors.id = books.author_id").
			Where("LOWER(books.title) LIKE LOWER(?) OR LOWER(authors.name) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.AuthorID != 0 {
		db = db.Where("books.author_id = ?", filter.AuthorID)
	}
	if filter.PublicationYear != 0 {
		db = db.Where("books.publication_year = ?", filter.PublicationYear)
	}

	switch filter.Ordering {
	case "title", "":
		db = db.Order("books.title ASC")
	case "-title":
		db = db.Order("books.title DESC")
	case "publication_year":
		db = db.Order("books.publication_year ASC")
	case "-publication_year":
		db = db.Order("books.publication_year DESC")
	default:
		db = db.Order("books.title ASC")
	}

	var books []models.Book
	if err := db.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *PostgresBookRepository) UpdateBook(book *models.Book) error {
	return r.db.Save(book).Error
}

func (r *PostgresBookRepository) DeleteBook(id uint) error {
	res := r.db.Delete(&models.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

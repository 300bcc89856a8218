package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
)

// BookHandler handles the library demo endpoints. Reads are public,
// writes require authentication.
type BookHandler struct {
	bookRepository repositories.BookRepository
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(bookRepo repositories.BookRepository) *BookHandler {
	return &BookHandler{bookRepository: bookRepo}
}

// RegisterPublicBookRoutes registers the read-only library routes
func (h *BookHandler) RegisterPublicBookRoutes(g *echo.Group) {
	g.GET("/books", h.ListBooks)
	g.GET("/books/:id", h.GetBook)
	g.GET("/authors", h.ListAuthors)
	g.GET("/authors/:id", h.GetAuthor)
}

// RegisterBookRoutes registers the authenticated library routes
func (h *BookHandler) RegisterBookRoutes(g *echo.Group) {
	g.POST("/books", h.CreateBook)
	g.PUT("/books/:id", h.UpdateBook)
	g.DELETE("/books/:id", h.DeleteBook)
	g.POST("/authors", h.CreateAuthor)
}

// validateBookRequest rejects publication years in the future
func validateBookRequest(req *models.BookRequest) error {
	if req.PublicationYear > time.Now().Year() {
		return errors.New("publication year cannot be in the future")
	}
	return nil
}

// ListBooks lists books with search, filters and ordering:
// ?search= matches title or author name, ?author= and ?publication_year=
// filter, ?ordering=title|publication_year (- prefix for descending).
func (h *BookHandler) ListBooks(c echo.Context) error {
	filter := repositories.BookFilter{
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}
	if a := c.QueryParam("author"); a != "" {
		id, err := strconv.ParseUint(a, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
		}
		filter.AuthorID = uint(id)
	}
	if y := c.QueryParam("publication_year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid publication year")
		}
		filter.PublicationYear = year
	}

	books, err := h.bookRepository.ListBooks(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook retrieves a single book by ID
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	book, err := h.bookRepository.GetBookByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

// CreateBook creates a new book
func (h *BookHandler) CreateBook(c echo.Context) error {
	var req models.BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validateBookRequest(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.bookRepository.GetAuthorByID(req.AuthorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Author does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	book := &models.Book{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	}

	if err := h.bookRepository.CreateBook(book); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, book)
}

// UpdateBook updates an existing book
func (h *BookHandler) UpdateBook(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	var req models.BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validateBookRequest(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.bookRepository.GetBookByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.bookRepository.GetAuthorByID(req.AuthorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Author does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	book.Title = req.Title
	book.PublicationYear = req.PublicationYear
	book.AuthorID = req.AuthorID

	if err := h.bookRepository.UpdateBook(book); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook deletes a book
func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	if err := h.bookRepository.DeleteBook(uint(id)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAuthors lists all authors with their books
func (h *BookHandler) ListAuthors(c echo.Context) error {
	authors, err := h.bookRepository.GetAuthors()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, authors)
}

// GetAuthor retrieves an author with their books
func (h *BookHandler) GetAuthor(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
	}

	author, err := h.bookRepository.GetAuthorByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Author not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, author)
}

// CreateAuthor creates a new author
func (h *BookHandler) CreateAuthor(c echo.Context) error {
	var req models.AuthorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	author := &models.Author{Name: req.Name}
	if err := h.bookRepository.CreateAuthor(author); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, author)
}

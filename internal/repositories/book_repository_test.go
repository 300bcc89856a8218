package repositories

import (
	"testing"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLibrary(t *testing.T, repo BookRepository) (tolkien, herbert *models.Author) {
	t.Helper()
	tolkien = &models.Author{Name: "J.R.R. Tolkien"}
	herbert = &models.Author{Name: "Frank Herbert"}
	require.NoError(t, repo.CreateAuthor(tolkien))
	require.NoError(t, repo.CreateAuthor(herbert))

	books := []*models.Book{
		{Title: "The Hobbit", PublicationYear: 1937, AuthorID: tolkien.ID},
		{Title: "The Fellowship of the Ring", PublicationYear: 1954, AuthorID: tolkien.ID},
		{Title: "Dune", PublicationYear: 1965, AuthorID: herbert.ID},
	}
	for _, b := range books {
		require.NoError(t, repo.CreateBook(b))
	}
	return tolkien, herbert
}

func TestListBooksSearchMatchesTitleAndAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresBookRepository(db)
	seedLibrary(t, repo)

	books, err := repo.ListBooks(BookFilter{Search: "hobbit"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Hobbit", books[0].Title)

	books, err = repo.ListBooks(BookFilter{Search: "tolkien"})
	require.NoError(t, err)
	assert.Len(t, books, 2)

	books, err = repo.ListBooks(BookFilter{Search: "asimov"})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestListBooksOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresBookRepository(db)
	seedLibrary(t, repo)

	books, err := repo.ListBooks(BookFilter{})
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Dune", books[0].Title)

	books, err = repo.ListBooks(BookFilter{Ordering: "-publication_year"})
	require.NoError(t, err)
	assert.Equal(t, 1965, books[0].PublicationYear)
	assert.Equal(t, 1937, books[2].PublicationYear)

	books, err = repo.ListBooks(BookFilter{Ordering: "publication_year"})
	require.NoError(t, err)
	assert.Equal(t, 1937, books[0].PublicationYear)

	// unknown ordering falls back to title
	books, err = repo.ListBooks(BookFilter{Ordering: "isbn"})
	require.NoError(t, err)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestListBooksFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresBookRepository(db)
	tolkien, _ := seedLibrary(t, repo)

	books, err := repo.ListBooks(BookFilter{AuthorID: tolkien.ID})
	require.NoError(t, err)
	assert.Len(t, books, 2)

	books, err = repo.ListBooks(BookFilter{PublicationYear: 1965})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)

	books, err = repo.ListBooks(BookFilter{Search: "the", AuthorID: tolkien.ID, PublicationYear: 1937})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Hobbit", books[0].Title)
}

func TestGetAuthorPreloadsBooks(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresBookRepository(db)
	tolkien, _ := seedLibrary(t, repo)

	author, err := repo.GetAuthorByID(tolkien.ID)
	require.NoError(t, err)
	assert.Len(t, author.Books, 2)

	_, err = repo.GetAuthorByID(12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBook(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresBookRepository(db)
	seedLibrary(t, repo)

	books, err := repo.ListBooks(BookFilter{Search: "dune"})
	require.NoError(t, err)
	require.Len(t, books, 1)

	require.NoError(t, repo.DeleteBook(books[0].ID))

	_, err = repo.GetBookByID(books[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.DeleteBook(books[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

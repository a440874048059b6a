package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/BiblioGo/LibraryApp/internal/domain"
	"github.com/BiblioGo/LibraryApp/internal/usecase"
)

// Cover uploads above this size are rejected.
const maxCoverSize = 10 << 20

// BookHandler serves the /books endpoints.
type BookHandler struct {
	bookUseCase usecase.BookUseCase
	logger      *slog.Logger
}

func NewBookHandler(uc usecase.BookUseCase, logger *slog.Logger) *BookHandler {
	return &BookHandler{bookUseCase: uc, logger: logger}
}

// CreateBook handles POST /books.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var book domain.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := book.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	created, err := h.bookUseCase.CreateBook(r.Context(), &book)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, created, h.logger)
}

// ListBooks handles GET /books.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookUseCase.ListBooks(r.Context())
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	if books == nil {
		books = []domain.Book{}
	}
	respondWithJSON(w, http.StatusOK, books, h.logger)
}

// GetBook handles GET /books/{id}.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid book id", h.logger)
		return
	}

	book, err := h.bookUseCase.GetBook(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, book, h.logger)
}

// UpdateBook handles PUT /books/{id}.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid book id", h.logger)
		return
	}

	var book domain.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := book.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	updated, err := h.bookUseCase.UpdateBook(r.Context(), id, &book)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, updated, h.logger)
}

// DeleteBook handles DELETE /books/{id}.
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid book id", h.logger)
		return
	}

	if err := h.bookUseCase.DeleteBook(r.Context(), id); err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchByTitle handles GET /books/search/title?title=...
func (h *BookHandler) SearchByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		respondWithError(w, http.StatusBadRequest, "missing title parameter", h.logger)
		return
	}

	books, err := h.bookUseCase.SearchByTitle(r.Context(), title)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	if books == nil {
		books = []domain.Book{}
	}
	respondWithJSON(w, http.StatusOK, books, h.logger)
}

// SearchByAuthor handles GET /books/search/author?author=...
func (h *BookHandler) SearchByAuthor(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")
	if author == "" {
		respondWithError(w, http.StatusBadRequest, "missing author parameter", h.logger)
		return
	}

	books, err := h.bookUseCase.SearchByAuthor(r.Context(), author)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	if books == nil {
		books = []domain.Book{}
	}
	respondWithJSON(w, http.StatusOK, books, h.logger)
}

// Available handles GET /books/{id}/available.
func (h *BookHandler) Available(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid book id", h.logger)
		return
	}

	available, err := h.bookUseCase.IsBookAvailable(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"available": available}, h.logger)
}

// UploadCover handles POST /books/{id}/cover with a multipart "cover" file.
func (h *BookHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid book id", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxCoverSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form", h.logger)
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "missing cover file", h.logger)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	book, err := h.bookUseCase.UploadCover(r.Context(), id, file, contentType)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("cover uploaded", "book_id", id, "filename", header.Filename)
	respondWithJSON(w, http.StatusOK, book, h.logger)
}

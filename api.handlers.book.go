package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// CreateBook godoc
// @Summary Add a new book
// @Tags Books
// @Accept json
// @Produce json
// @Param book body CreateBookRequest true "Book fields"
// @Success 201 {object} Book
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/books [post]
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	var req CreateBookRequest
	if err := DecodeRequestBody(r, &req); err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, "failed to decode the request body"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	if err := ValidateCreateBookRequestBody(&req); err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, err.Error()); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book := req.Book()
	if err := api.bookService.Add(r.Context(), &book); err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusInternalServerError, "Error creating book"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to create book", zap.Uint("book.id", book.ID), zap.String("request.id", requestID))
	if err := WriteJSON(r.Context(), w, http.StatusCreated, book); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllBooks godoc
// @Summary Retrieve the list of books
// @Tags Books
// @Produce json
// @Success 200 {array} Book
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/books [get]
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	books, err := api.bookService.GetAll(r.Context())
	if err != nil {
		api.logger.Error("failed to get all books", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusInternalServerError, "Error fetching books"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get all books", zap.Int("books.total", len(books)), zap.String("request.id", requestID))
	if err = WriteJSON(r.Context(), w, http.StatusOK, books); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOneBook godoc
// @Summary Retrieve book details
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} Book
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/books/{id} [get]
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id, err := ParseBookID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, err.Error()); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	book, err := api.bookService.GetOne(r.Context(), id)
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.Uint("book.id", id), zap.String("request.id", requestID))
		if err = WriteErrorResponse(r.Context(), w, http.StatusNotFound, "Book not found"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get book", zap.Uint("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusInternalServerError, "Error fetching book"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get book", zap.Uint("book.id", id), zap.String("request.id", requestID))
	if err = WriteJSON(r.Context(), w, http.StatusOK, book); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateBook godoc
// @Summary Update book details
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param book body UpdateBookRequest true "Book fields to update"
// @Success 200 {object} Book
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/books/{id} [put]
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id, err := ParseBookID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, err.Error()); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	// An empty body is a valid update request: nothing to overwrite.
	var req UpdateBookRequest
	if err = DecodeRequestBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		api.logger.Error("failed to update book", zap.Uint("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, "failed to decode the request body"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	if err = ValidateUpdateBookRequestBody(&req); err != nil {
		api.logger.Error("failed to update book", zap.Uint("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, err.Error()); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.Update(r.Context(), id, req.Fields())
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.Uint("book.id", id), zap.String("request.id", requestID))
		if err = WriteErrorResponse(r.Context(), w, http.StatusNotFound, "Book not found"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to update book", zap.Uint("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusInternalServerError, "Error updating book"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to update book", zap.Uint("book.id", id), zap.String("request.id", requestID))
	if err = WriteJSON(r.Context(), w, http.StatusOK, book); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// DeleteOneBook godoc
// @Summary Delete a book
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/books/{id} [delete]
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id, err := ParseBookID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, err.Error()); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = api.bookService.Delete(r.Context(), id)
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.Uint("book.id", id), zap.String("request.id", requestID))
		if err = WriteErrorResponse(r.Context(), w, http.StatusNotFound, "Book not found"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to delete book", zap.Uint("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusInternalServerError, "Error deleting book"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to delete book", zap.Uint("book.id", id), zap.String("request.id", requestID))
	if err = WriteJSON(r.Context(), w, http.StatusOK, &MessageResponse{Message: "Book successfully deleted"}); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

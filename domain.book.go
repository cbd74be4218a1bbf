package main

import (
	"context"
	"time"
)

// Book represents a book record persisted in the `books` table.
// The publication date travels as a plain YYYY-MM-DD string on the
// wire and in the table, same as the rest of the business fields.
type Book struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"not null"`
	Author        string    `json:"author" gorm:"not null"`
	PublishedDate string    `json:"publishedDate" gorm:"not null"`
	NumberOfPages int       `json:"numberOfPages" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BookStorage defines possible operations on book records.
type BookStorage interface {
	Add(ctx context.Context, book *Book) error
	GetOne(ctx context.Context, id uint) (Book, error)
	Delete(ctx context.Context, id uint) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
}

// CreateBookRequest is the payload expected when creating a book. Pointer
// fields let the validation step tell a missing field from a zero value.
type CreateBookRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	PublishedDate *string `json:"publishedDate"`
	NumberOfPages *int    `json:"numberOfPages"`
}

// UpdateBookRequest is the payload expected when updating a book.
// Every field is optional. Only the provided ones are persisted.
type UpdateBookRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	PublishedDate *string `json:"publishedDate"`
	NumberOfPages *int    `json:"numberOfPages"`
}

// Book builds the record to insert from a validated creation payload.
func (req *CreateBookRequest) Book() Book {
	return Book{
		Title:         *req.Title,
		Author:        *req.Author,
		PublishedDate: *req.PublishedDate,
		NumberOfPages: *req.NumberOfPages,
	}
}

// Fields maps the provided update payload fields to their column names.
func (req *UpdateBookRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Author != nil {
		fields["author"] = *req.Author
	}
	if req.PublishedDate != nil {
		fields["published_date"] = *req.PublishedDate
	}
	if req.NumberOfPages != nil {
		fields["number_of_pages"] = *req.NumberOfPages
	}
	return fields
}

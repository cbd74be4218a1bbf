package main

import (
	"context"

	"go.uber.org/zap"
)

type BookServiceProvider interface {
	Add(ctx context.Context, book *Book) error
	GetOne(ctx context.Context, id uint) (Book, error)
	Delete(ctx context.Context, id uint) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
}

type BookService struct {
	logger  *zap.Logger
	config  *Config
	storage BookStorage
}

func NewBookService(logger *zap.Logger, config *Config, storage BookStorage) BookServiceProvider {
	return &BookService{
		logger:  logger,
		config:  config,
		storage: storage,
	}
}

func (bs *BookService) Add(ctx context.Context, book *Book) error {
	return bs.storage.Add(ctx, book)
}

func (bs *BookService) GetOne(ctx context.Context, id uint) (Book, error) {
	book, err := bs.storage.GetOne(ctx, id)
	return book, err
}

func (bs *BookService) Delete(ctx context.Context, id uint) error {
	return bs.storage.Delete(ctx, id)
}

func (bs *BookService) Update(ctx context.Context, id uint, fields map[string]interface{}) (Book, error) {
	return bs.storage.Update(ctx, id, fields)
}

func (bs *BookService) GetAll(ctx context.Context) ([]Book, error) {
	books, err := bs.storage.GetAll(ctx)
	return books, err
}

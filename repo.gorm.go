package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type gormBookStorage struct {
	logger *zap.Logger
	db     *gorm.DB
}

// OpenDatabase connects to the sqlite database and syncs the books table
// schema. The server must not start accepting connections before this
// completes.
func OpenDatabase(config *Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(config.Database.FilePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err = db.AutoMigrate(&Book{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// NewGormBookStorage provides an instance of gorm-based book storage.
func NewGormBookStorage(logger *zap.Logger, db *gorm.DB) BookStorage {
	return &gormBookStorage{
		logger: logger,
		db:     db,
	}
}

// Close shuts down the underlying database connection pool.
func (gs *gormBookStorage) Close() error {
	sqlDB, err := gs.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Add inserts a new book record and fills in its generated id.
func (gs *gormBookStorage) Add(ctx context.Context, book *Book) error {
	return gs.db.WithContext(ctx).Create(book).Error
}

// GetOne retrieves a book record based on its ID.
func (gs *gormBookStorage) GetOne(ctx context.Context, id uint) (Book, error) {
	var book Book
	err := gs.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return book, ErrBookNotFound
	}
	return book, err
}

// Delete removes a book record based on its ID.
func (gs *gormBookStorage) Delete(ctx context.Context, id uint) error {
	result := gs.db.WithContext(ctx).Delete(&Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// Update overwrites only the supplied fields on an existing record
// and returns the updated record.
func (gs *gormBookStorage) Update(ctx context.Context, id uint, fields map[string]interface{}) (Book, error) {
	var book Book
	err := gs.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return book, ErrBookNotFound
	}
	if err != nil {
		return book, err
	}
	if len(fields) != 0 {
		if err = gs.db.WithContext(ctx).Model(&book).Updates(fields).Error; err != nil {
			return book, err
		}
	}
	err = gs.db.WithContext(ctx).First(&book, id).Error
	return book, err
}

// GetAll retrieves a list of all books stored in the database.
func (gs *gormBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	books := []Book{}
	err := gs.db.WithContext(ctx).Find(&books).Error
	return books, err
}

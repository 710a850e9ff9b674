package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"goblog/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

// List returns every post in insertion order.
func (r *PostRepository) List() ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Order("id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

// UpdateFields mutates title and body only; created_at is left untouched.
// Existence is checked by the service, so a zero-row update here just means
// the submitted fields matched the stored ones.
func (r *PostRepository) UpdateFields(id uint, title, body string) error {
	result := r.db.Model(&model.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title": title,
		"body":  body,
	})
	if result.Error != nil {
		return fmt.Errorf("update post failed: %w", result.Error)
	}
	return nil
}

func (r *PostRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&model.Post{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("delete post failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

package repository

import (
	"context"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID int64) ([]models.Review, error)
	ExistsForTitleAndAuthor(ctx context.Context, titleID int64, authorID string) (bool, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts the review. The composite unique index on
// (title_id, author_id) turns the losing side of a concurrent duplicate
// insert into a Conflict here.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return apperr.FromStorage(err, "create review")
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("Author").First(&review, id).Error; err != nil {
		return nil, apperr.FromStorage(err, "review not found")
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("Author").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, apperr.FromStorage(err, "list reviews")
	}
	return reviews, nil
}

func (r *reviewRepository) ExistsForTitleAndAuthor(ctx context.Context, titleID int64, authorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	if err != nil {
		return false, apperr.FromStorage(err, "check review existence")
	}
	return count > 0, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return apperr.FromStorage(err, "update review")
	}
	return nil
}

// Delete removes the review; its comments go with it via the FK cascade.
func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return apperr.FromStorage(result.Error, "delete review")
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "review not found")
	}
	return nil
}

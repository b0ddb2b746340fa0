package repository

import (
	"context"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context, search string) ([]models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, search string) ([]models.Category, error) {
	var categories []models.Category
	q := r.db.WithContext(ctx).Order("slug ASC")
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, apperr.FromStorage(err, "list categories")
	}
	return categories, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, apperr.FromStorage(err, "category not found")
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return apperr.FromStorage(err, "create category")
	}
	return nil
}

// DeleteBySlug relies on the SET NULL constraint: titles referencing the
// category survive with an unset category.
func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Category{})
	if result.Error != nil {
		return apperr.FromStorage(result.Error, "delete category")
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "category not found")
	}
	return nil
}

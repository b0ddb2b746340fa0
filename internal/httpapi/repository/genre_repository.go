package repository

import (
	"context"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	List(ctx context.Context, search string) ([]models.Genre, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	Create(ctx context.Context, genre *models.Genre) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) List(ctx context.Context, search string) ([]models.Genre, error) {
	var genres []models.Genre
	q := r.db.WithContext(ctx).Order("slug ASC")
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := q.Find(&genres).Error; err != nil {
		return nil, apperr.FromStorage(err, "list genres")
	}
	return genres, nil
}

// FindBySlugs resolves every slug or fails: a write payload referencing
// an unknown genre is a validation error, not a silent drop.
func (r *genreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if len(slugs) == 0 {
		return genres, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, apperr.FromStorage(err, "resolve genres")
	}
	if len(genres) != len(uniqueStrings(slugs)) {
		return nil, apperr.New(apperr.Validation, "unknown genre slug")
	}
	return genres, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return apperr.FromStorage(err, "create genre")
	}
	return nil
}

// DeleteBySlug removes the genre and, via the join-table cascade, its
// association rows only. Titles keep everything else.
func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Genre{})
	if result.Error != nil {
		return apperr.FromStorage(result.Error, "delete genre")
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "genre not found")
	}
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

package service

import (
	"context"
	"math"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter) ([]dto.TitleResponse, error)
	Get(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, req dto.CreateTitleRequest) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
}

func NewTitleService(
	titles repository.TitleRepository,
	categories repository.CategoryRepository,
	genres repository.GenreRepository,
) TitleService {
	return &titleService{titles: titles, categories: categories, genres: genres}
}

// truncateRating turns a mean score into the integer rating: truncated
// toward zero, so reviews scored [8, 9] read back as 8.
func truncateRating(avg float64) int {
	return int(math.Trunc(avg))
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter) ([]dto.TitleResponse, error) {
	titles, err := s.titles.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(titles))
	for i := range titles {
		ids = append(ids, titles[i].ID)
	}
	averages, err := s.titles.AverageScores(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		var rating *int
		if avg, ok := averages[titles[i].ID]; ok {
			r := truncateRating(avg)
			rating = &r
		}
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i], rating))
	}
	return responses, nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	averages, err := s.titles.AverageScores(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	var rating *int
	if avg, ok := averages[id]; ok {
		r := truncateRating(avg)
		rating = &r
	}
	return dto.FromModelToTitleResponse(title, rating), nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleRequest) (*dto.TitleResponse, error) {
	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}

	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	genres, err := s.genres.FindBySlugs(ctx, req.Genres)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titles.Create(ctx, title); err != nil {
		return nil, err
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*dto.TitleResponse, error) {
	title, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if req.Genres != nil {
		genres, err := s.genres.FindBySlugs(ctx, req.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.titles.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	// Save without clobbering the association set we just replaced
	title.Genres = nil
	if err := s.titles.Update(ctx, title); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	return s.titles.Delete(ctx, id)
}

// resolveCategory maps an unknown slug to a validation failure: the
// write payload referenced something that does not exist.
func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.Newf(apperr.Validation, "unknown category slug %q", slug)
		}
		return nil, err
	}
	return category, nil
}

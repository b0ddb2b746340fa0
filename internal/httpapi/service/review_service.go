package service

import (
	"context"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/policy"
	"reviewhub/internal/httpapi/repository"
)

const (
	minScore = 1
	maxScore = 10
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64) ([]dto.ReviewResponse, error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
}

func NewReviewService(reviews repository.ReviewRepository, titles repository.TitleRepository) ReviewService {
	return &reviewService{reviews: reviews, titles: titles}
}

func validScore(score int) bool {
	return score >= minScore && score <= maxScore
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64) ([]dto.ReviewResponse, error) {
	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return responses, nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

// Create posts the actor's single review for a title. The existence
// pre-check gives a friendly Conflict; the unique index gives the same
// Conflict to whoever loses a concurrent race.
func (s *reviewService) Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if !validScore(req.Score) {
		return nil, apperr.Newf(apperr.Validation, "score must be between %d and %d", minScore, maxScore)
	}
	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsForTitleAndAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "you already reviewed this title")
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	// Reload with author data
	review, err = s.reviews.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, policy.ActionUpdate, review); err != nil {
		return nil, err
	}

	if req.Score != nil {
		if !validScore(*req.Score) {
			return nil, apperr.Newf(apperr.Validation, "score must be between %d and %d", minScore, maxScore)
		}
		review.Score = *req.Score
	}
	if req.Text != nil {
		review.Text = *req.Text
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	review, err := s.getForTitle(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, policy.ActionDelete, review); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, reviewID)
}

// authorize applies the capability table. Ownership comes from the
// author reference stored at creation time, never re-derived.
func (s *reviewService) authorize(actor *models.User, action policy.Action, review *models.Review) error {
	owner := actor != nil && review.AuthorID == actor.ID
	if !policy.Can(policy.RoleOf(actor), action, policy.ResourceReview, owner) {
		return apperr.New(apperr.Forbidden, "not allowed to modify this review")
	}
	return nil
}

func (s *reviewService) getForTitle(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, apperr.New(apperr.NotFound, "review not found for this title")
	}
	return review, nil
}

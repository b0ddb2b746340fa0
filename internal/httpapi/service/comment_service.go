package service

import (
	"context"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/policy"
	"reviewhub/internal/httpapi/repository"
)

type CommentService interface {
	ListByReview(ctx context.Context, reviewID int64) ([]dto.CommentResponse, error)
	Get(ctx context.Context, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(ctx context.Context, actor *models.User, reviewID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Update(ctx context.Context, actor *models.User, reviewID, commentID int64, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actor *models.User, reviewID, commentID int64) error
}

type commentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
}

func NewCommentService(comments repository.CommentRepository, reviews repository.ReviewRepository) CommentService {
	return &commentService{comments: comments, reviews: reviews}
}

func (s *commentService) ListByReview(ctx context.Context, reviewID int64) ([]dto.CommentResponse, error) {
	if _, err := s.reviews.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return responses, nil
}

func (s *commentService) Get(ctx context.Context, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

// Create attaches a comment to a review. No uniqueness: an author may
// comment as often as they like.
func (s *commentService) Create(ctx context.Context, actor *models.User, reviewID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.reviews.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload with author data
	comment, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Update(ctx context.Context, actor *models.User, reviewID, commentID int64, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, policy.ActionUpdate, comment); err != nil {
		return nil, err
	}

	comment.Text = req.Text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, actor *models.User, reviewID, commentID int64) error {
	comment, err := s.getForReview(ctx, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, policy.ActionDelete, comment); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *commentService) authorize(actor *models.User, action policy.Action, comment *models.Comment) error {
	owner := actor != nil && comment.AuthorID == actor.ID
	if !policy.Can(policy.RoleOf(actor), action, policy.ResourceComment, owner) {
		return apperr.New(apperr.Forbidden, "not allowed to modify this comment")
	}
	return nil
}

func (s *commentService) getForReview(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, apperr.New(apperr.NotFound, "comment not found for this review")
	}
	return comment, nil
}

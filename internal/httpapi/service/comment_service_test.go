package service

import (
	"context"
	"testing"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByReview(ctx context.Context, reviewID int64) ([]models.Comment, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateCommentUnknownReview(t *testing.T) {
	reviews := new(MockReviewRepository)
	reviews.On("GetByID", mock.Anything, int64(404)).
		Return(nil, apperr.New(apperr.NotFound, "review not found"))

	svc := NewCommentService(new(MockCommentRepository), reviews)
	actor := &models.User{ID: "u1", Role: models.RoleUser}

	_, err := svc.Create(context.Background(), actor, 404, dto.CreateCommentRequest{Text: "hi"})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCreateCommentSuccess(t *testing.T) {
	reviews := new(MockReviewRepository)
	reviews.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Review{ID: 7, TitleID: 1, AuthorID: "someone"}, nil)

	comments := new(MockCommentRepository)
	comments.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 11
		}).
		Return(nil)
	comments.On("GetByID", mock.Anything, int64(11)).
		Return(&models.Comment{
			ID:       11,
			ReviewID: 7,
			AuthorID: "u1",
			Text:     "hi",
			Author:   models.User{ID: "u1", Username: "carol"},
		}, nil)

	svc := NewCommentService(comments, reviews)
	actor := &models.User{ID: "u1", Username: "carol", Role: models.RoleUser}

	resp, err := svc.Create(context.Background(), actor, 7, dto.CreateCommentRequest{Text: "hi"})
	assert.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "carol", resp.Author)
}

// a second comment from the same author goes through: no uniqueness
// on (review, author)
func TestCreateCommentRepeatedAuthor(t *testing.T) {
	reviews := new(MockReviewRepository)
	reviews.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Review{ID: 7, TitleID: 1, AuthorID: "someone"}, nil)

	comments := new(MockCommentRepository)
	comments.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 12
		}).
		Return(nil)
	comments.On("GetByID", mock.Anything, int64(12)).
		Return(&models.Comment{ID: 12, ReviewID: 7, AuthorID: "u1", Text: "again"}, nil)

	svc := NewCommentService(comments, reviews)
	actor := &models.User{ID: "u1", Role: models.RoleUser}

	resp, err := svc.Create(context.Background(), actor, 7, dto.CreateCommentRequest{Text: "again"})
	assert.NoError(t, err)
	assert.Equal(t, int64(12), resp.ID)
}

func TestGetCommentWrongReview(t *testing.T) {
	comments := new(MockCommentRepository)
	comments.On("GetByID", mock.Anything, int64(11)).
		Return(&models.Comment{ID: 11, ReviewID: 99, AuthorID: "u1"}, nil)

	svc := NewCommentService(comments, new(MockReviewRepository))

	_, err := svc.Get(context.Background(), 7, 11)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestDeleteCommentAuthorization(t *testing.T) {
	tests := []struct {
		name    string
		actor   *models.User
		allowed bool
	}{
		{"owner", &models.User{ID: "owner", Role: models.RoleUser}, true},
		{"other user", &models.User{ID: "someone-else", Role: models.RoleUser}, false},
		{"moderator", &models.User{ID: "mod", Role: models.RoleModerator}, true},
		{"admin", &models.User{ID: "root", Role: models.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := new(MockCommentRepository)
			comments.On("GetByID", mock.Anything, int64(11)).
				Return(&models.Comment{ID: 11, ReviewID: 7, AuthorID: "owner"}, nil)
			comments.On("Delete", mock.Anything, int64(11)).Return(nil)

			svc := NewCommentService(comments, new(MockReviewRepository))

			err := svc.Delete(context.Background(), tt.actor, 7, 11)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
				comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUpdateCommentByOwner(t *testing.T) {
	comments := new(MockCommentRepository)
	comments.On("GetByID", mock.Anything, int64(11)).
		Return(&models.Comment{ID: 11, ReviewID: 7, AuthorID: "owner", Text: "old"}, nil)
	comments.On("Update", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	svc := NewCommentService(comments, new(MockReviewRepository))
	actor := &models.User{ID: "owner", Role: models.RoleUser}

	resp, err := svc.Update(context.Background(), actor, 7, 11, dto.UpdateCommentRequest{Text: "new"})
	assert.NoError(t, err)
	assert.Equal(t, "new", resp.Text)
}

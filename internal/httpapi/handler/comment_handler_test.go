package handler

import (
	"net/http"
	"testing"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListCommentsPublic(t *testing.T) {
	comments := new(MockCommentService)
	comments.On("ListByReview", mock.Anything, int64(7)).
		Return([]dto.CommentResponse{{ID: 11, Text: "hi", Author: "alice"}}, nil)

	r := newTestRouter(t, Services{Comment: comments})

	w := perform(r, http.MethodGet, "/api/titles/1/reviews/7/comments", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp []dto.CommentResponse
	decodeBody(t, w, &resp)
	assert.Len(t, resp, 1)
}

func TestCreateCommentRequiresAuth(t *testing.T) {
	r := newTestRouter(t, Services{Comment: new(MockCommentService)})

	w := perform(r, http.MethodPost, "/api/titles/1/reviews/7/comments", "", dto.CreateCommentRequest{Text: "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateComment(t *testing.T) {
	comments := new(MockCommentService)
	comments.On("Create", mock.Anything, testUser, int64(7), dto.CreateCommentRequest{Text: "hi"}).
		Return(&dto.CommentResponse{ID: 11, Text: "hi", Author: "alice"}, nil)

	r := newTestRouter(t, Services{Comment: comments})

	w := perform(r, http.MethodPost, "/api/titles/1/reviews/7/comments", userToken, dto.CreateCommentRequest{Text: "hi"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateCommentUnknownReview(t *testing.T) {
	comments := new(MockCommentService)
	comments.On("Create", mock.Anything, testUser, int64(404), mock.Anything).
		Return(nil, apperr.New(apperr.NotFound, "review not found"))

	r := newTestRouter(t, Services{Comment: comments})

	w := perform(r, http.MethodPost, "/api/titles/1/reviews/404/comments", userToken, dto.CreateCommentRequest{Text: "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCommentForbiddenForOtherUser(t *testing.T) {
	comments := new(MockCommentService)
	comments.On("Update", mock.Anything, testUser, int64(7), int64(11), mock.Anything).
		Return(nil, apperr.New(apperr.Forbidden, "not allowed to modify this comment"))

	r := newTestRouter(t, Services{Comment: comments})

	w := perform(r, http.MethodPatch, "/api/titles/1/reviews/7/comments/11", userToken, dto.UpdateCommentRequest{Text: "edit"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteCommentAsModerator(t *testing.T) {
	comments := new(MockCommentService)
	comments.On("Delete", mock.Anything, testModerator, int64(7), int64(11)).Return(nil)

	r := newTestRouter(t, Services{Comment: comments})

	w := perform(r, http.MethodDelete, "/api/titles/1/reviews/7/comments/11", modToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCommentInvalidID(t *testing.T) {
	r := newTestRouter(t, Services{Comment: new(MockCommentService)})

	w := perform(r, http.MethodGet, "/api/titles/1/reviews/7/comments/nope", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

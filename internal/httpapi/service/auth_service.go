package service

import (
	"context"
	"fmt"
	"time"

	"reviewhub/internal/httpapi/apperr"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/mail"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	confirmationMailSubject = "Welcome to reviewhub"
	tokenTypeAccess         = "access"
)

type AuthService interface {
	Register(ctx context.Context, username, email string) (*models.User, error)
	IssueToken(ctx context.Context, username, code string) (string, error)
	ResolveActor(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	users     repository.UserRepository
	codes     repository.ConfirmationCodeStore
	mailer    mail.Mailer
	logger    *zap.Logger
	jwtSecret string
	tokenTTL  time.Duration
	codeTTL   time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	codes repository.ConfirmationCodeStore,
	mailer mail.Mailer,
	logger *zap.Logger,
	jwtSecret string,
	tokenTTL, codeTTL time.Duration,
) AuthService {
	return &authService{
		users:     users,
		codes:     codes,
		mailer:    mailer,
		logger:    logger,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		codeTTL:   codeTTL,
	}
}

// Register creates the pending identity, or reissues the code when the
// exact same username+email pair signs up again. A username or email
// already bound to a different counterpart is rejected.
func (s *authService) Register(ctx context.Context, username, email string) (*models.User, error) {
	if username == "" || email == "" {
		return nil, apperr.New(apperr.Validation, "username and email are required")
	}
	if username == models.SelfReference {
		return nil, apperr.Newf(apperr.Validation, "%q is a reserved username", models.SelfReference)
	}

	user, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if user.Email != email {
			return nil, apperr.New(apperr.Validation, "username is already taken")
		}
		// same pair: idempotent re-registration, reissue the code
	case apperr.KindOf(err) == apperr.NotFound:
		existing, lookupErr := s.users.FindByEmail(ctx, email)
		switch {
		case lookupErr == nil:
			if existing.Username != username {
				return nil, apperr.New(apperr.Validation, "email is already taken")
			}
		case apperr.KindOf(lookupErr) != apperr.NotFound:
			return nil, lookupErr
		}
		user = &models.User{Username: username, Email: email, Role: models.RoleUser, Active: true}
		// the unique indexes catch a racing duplicate signup here
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	code, err := newConfirmationCode()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "generate confirmation code", err)
	}
	hash, err := hashConfirmationCode(code)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "hash confirmation code", err)
	}
	if err := s.codes.Set(ctx, username, hash, s.codeTTL); err != nil {
		return nil, err
	}

	// fire-and-forget: mail failures never fail the registration
	go func() {
		body := fmt.Sprintf("Use code %s to obtain your access token", code)
		if err := s.mailer.Send(email, confirmationMailSubject, body); err != nil {
			s.logger.Warn("confirmation mail delivery failed",
				zap.String("username", username),
				zap.Error(err))
		}
	}()

	return user, nil
}

// IssueToken checks the confirmation code and hands out an access
// token. Codes are single use: a successful exchange burns the code.
func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	hash, err := s.codes.Get(ctx, username)
	if err != nil {
		return "", err
	}
	if err := verifyConfirmationCode(hash, code); err != nil {
		return "", apperr.New(apperr.Validation, "confirmation code does not match")
	}

	if err := s.codes.Delete(ctx, username); err != nil {
		s.logger.Warn("failed to burn confirmation code", zap.String("username", username), zap.Error(err))
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn("failed to stamp last login", zap.String("username", username), zap.Error(err))
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
		"type":     tokenTypeAccess,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "sign access token", err)
	}
	return signed, nil
}

// ResolveActor turns a bearer token into the current identity. The user
// row is re-read so a role change after token issue takes effect
// immediately.
func (s *authService) ResolveActor(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.Unauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.New(apperr.Unauthorized, "invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, apperr.New(apperr.Unauthorized, "invalid token claims")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.New(apperr.Unauthorized, "unknown identity")
	}
	return user, nil
}

// Copyright (c) 2026 RateUp. All rights reserved.

package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/authz"
	"github.com/nifoox/rateup/internal/platform/sec"
	"github.com/nifoox/rateup/internal/platform/validate"
)

// Service implements the comment use cases.
type Service struct {
	repo    Repository
	reviews ReviewLookup
	logger  *slog.Logger
}

// NewService constructs a comment [Service].
func NewService(repo Repository, reviews ReviewLookup, logger *slog.Logger) *Service {
	return &Service{repo: repo, reviews: reviews, logger: logger}
}

// List returns one page of a review's comments, oldest first.
func (service *Service) List(ctx context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	if err := service.requireReview(ctx, reviewID); err != nil {
		return nil, 0, err
	}

	comments, total, err := service.repo.List(ctx, reviewID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("comment_service_list_failed: %w", err)
	}
	return comments, total, nil
}

// Create posts a comment as the authenticated caller.
func (service *Service) Create(ctx context.Context, subject *sec.Subject, reviewID int64, content string) (*Comment, error) {
	if err := authz.Check(subject, authz.Authenticated(authz.KindCommentCreate)); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	if err := service.requireReview(ctx, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{ReviewID: reviewID, UserID: subject.ID, Content: content}
	if err := service.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", reviewID),
		slog.Int64("user_id", subject.ID),
	)
	return comment, nil
}

// Update edits a comment. Only its author or an administrator may do so.
func (service *Service) Update(ctx context.Context, subject *sec.Subject, reviewID, commentID int64, content string) (*Comment, error) {
	comment, err := service.owned(ctx, subject, reviewID, commentID, authz.KindCommentUpdate)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := service.repo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("comment_service_update_failed: %w", err)
	}

	service.logger.Info("comment_updated", slog.Int64("comment_id", commentID), slog.Int64("actor_id", subject.ID))
	return comment, nil
}

// Delete removes a comment. Only its author or an administrator may do so.
func (service *Service) Delete(ctx context.Context, subject *sec.Subject, reviewID, commentID int64) error {
	if _, err := service.owned(ctx, subject, reviewID, commentID, authz.KindCommentDelete); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("comment_service_delete_failed: %w", err)
	}

	service.logger.Info("comment_deleted", slog.Int64("comment_id", commentID), slog.Int64("actor_id", subject.ID))
	return nil
}

// owned authenticates the caller, loads the comment and applies the owner rule.
// A comment filed under another review is reported as missing.
func (service *Service) owned(ctx context.Context, subject *sec.Subject, reviewID, commentID int64, kind authz.Kind) (*Comment, error) {
	if err := authz.Check(subject, authz.Authenticated(kind)); err != nil {
		return nil, err
	}

	comment, err := service.repo.Get(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_lookup_failed: %w", err)
	}
	if comment.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}

	if err := authz.Check(subject, authz.OwnedBy(kind, comment.UserID)); err != nil {
		return nil, err
	}
	return comment, nil
}

func (service *Service) requireReview(ctx context.Context, reviewID int64) error {
	exists, err := service.reviews.Exists(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("comment_service_review_lookup_failed: %w", err)
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}

func validateContent(content string) error {
	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, maxContentLength)
	return validator.Err()
}

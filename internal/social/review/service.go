// Copyright (c) 2026 RateUp. All rights reserved.

package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nifoox/rateup/internal/catalog/game"
	"github.com/nifoox/rateup/internal/platform/authz"
	"github.com/nifoox/rateup/internal/platform/constants"
	"github.com/nifoox/rateup/internal/platform/sec"
	"github.com/nifoox/rateup/internal/platform/validate"
	"github.com/nifoox/rateup/internal/social/comment"
	"github.com/nifoox/rateup/internal/social/vote"
	"github.com/nifoox/rateup/pkg/pointer"
)

// # Contracts & Types

// GameLookup resolves a game by ID.
type GameLookup interface {
	GetGame(ctx context.Context, id int64) (*game.Game, error)
}

// VoteSummarizer tallies the votes of a review.
type VoteSummarizer interface {
	Summarize(ctx context.Context, reviewID int64) (vote.Summary, error)
}

// CommentLister pages through the comments of a review.
type CommentLister interface {
	List(ctx context.Context, reviewID int64, limit, offset int) ([]*comment.Comment, int, error)
}

// Service implements the review use cases.
type Service struct {
	repo     Repository
	games    GameLookup
	votes    VoteSummarizer
	comments CommentLister
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a review [Service].
func NewService(repo Repository, games GameLookup, votes VoteSummarizer, comments CommentLister, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		games:    games,
		votes:    votes,
		comments: comments,
		logger:   logger,
		now:      time.Now,
	}
}

// # Reads

// List returns one page of reviews matching filter.
func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Detail, int, error) {
	if filter.Sort == "" {
		filter.Sort = SortNew
	}

	reviews, total, err := service.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("review_service_list_failed: %w", err)
	}
	return reviews, total, nil
}

// Get returns one review with its author, game and tally.
func (service *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	detail, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("review_service_get_failed: %w", err)
	}
	return detail, nil
}

// Exists reports whether a review with id exists.
func (service *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return service.repo.Exists(ctx, id)
}

/*
Full returns a review, its tally from the vote ledger and the first page of
its comments.

Returns:
  - *Full: Review, votes and comments
  - error: NOT_FOUND or store failures
*/
func (service *Service) Full(ctx context.Context, id int64) (*Full, error) {
	detail, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := service.votes.Summarize(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("review_service_full_votes_failed: %w", err)
	}
	detail.Votes = summary

	comments, total, err := service.comments.List(ctx, id, constants.FullReviewCommentLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("review_service_full_comments_failed: %w", err)
	}

	return &Full{Detail: *detail, Comments: comments, CommentCount: total}, nil
}

// Trending returns the highest scored reviews written in the last days days.
func (service *Service) Trending(ctx context.Context, days, limit int) ([]*Detail, error) {
	since := service.now().Add(-time.Duration(days) * 24 * time.Hour)

	reviews, err := service.repo.Trending(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("review_service_trending_failed: %w", err)
	}
	return reviews, nil
}

// # Writes

// Create publishes a review of an existing game as the authenticated caller.
func (service *Service) Create(ctx context.Context, subject *sec.Subject, input CreateInput) (*Detail, error) {
	if err := authz.Check(subject, authz.Authenticated(authz.KindReviewCreate)); err != nil {
		return nil, err
	}

	input.Content = strings.TrimSpace(input.Content)

	validator := &validate.Validator{}
	validator.Positive(FieldGameID, input.GameID)
	validateBody(validator, input.Content, input.Score)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.games.GetGame(ctx, input.GameID); err != nil {
		return nil, fmt.Errorf("review_service_game_lookup_failed: %w", err)
	}

	review := &Review{GameID: input.GameID, UserID: subject.ID, Content: input.Content, Score: input.Score}
	if err := service.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("review_service_create_failed: %w", err)
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("game_id", review.GameID),
		slog.Int64("user_id", subject.ID),
	)

	return service.Get(ctx, review.ID)
}

/*
Update edits a review. The caller must be its author or an administrator.

Description: Authentication is checked before the lookup; the owner rule
after it, since ownership is only known once the review is loaded.
*/
func (service *Service) Update(ctx context.Context, subject *sec.Subject, id int64, patch Patch) (*Detail, error) {
	detail, err := service.owned(ctx, subject, id, authz.KindReviewUpdate)
	if err != nil {
		return nil, err
	}

	review := detail.Review
	review.Content = strings.TrimSpace(pointer.Fallback(patch.Content, review.Content))
	review.Score = pointer.Fallback(patch.Score, review.Score)

	validator := &validate.Validator{}
	validateBody(validator, review.Content, review.Score)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, &review); err != nil {
		return nil, fmt.Errorf("review_service_update_failed: %w", err)
	}

	service.logger.Info("review_updated", slog.Int64("review_id", id), slog.Int64("actor_id", subject.ID))
	return service.Get(ctx, id)
}

// Delete removes a review with its comments and votes.
func (service *Service) Delete(ctx context.Context, subject *sec.Subject, id int64) error {
	if _, err := service.owned(ctx, subject, id, authz.KindReviewDelete); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("review_service_delete_failed: %w", err)
	}

	service.logger.Info("review_deleted", slog.Int64("review_id", id), slog.Int64("actor_id", subject.ID))
	return nil
}

func (service *Service) owned(ctx context.Context, subject *sec.Subject, id int64, kind authz.Kind) (*Detail, error) {
	if err := authz.Check(subject, authz.Authenticated(kind)); err != nil {
		return nil, err
	}

	detail, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Check(subject, authz.OwnedBy(kind, detail.UserID)); err != nil {
		return nil, err
	}
	return detail, nil
}

func validateBody(validator *validate.Validator, content string, score int) {
	validator.Required(FieldContent, content).
		MaxLen(FieldContent, content, maxContentLength).
		Range(FieldScore, score, MinScore, MaxScore)
}

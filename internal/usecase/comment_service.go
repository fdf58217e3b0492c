package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/comment"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/platform/id"
)

type CreateCommentInput struct {
	Actor    user.Principal
	BattleID string
	Content  string
	ParentID string
}

type CommentThreads struct {
	Threads []comment.Thread
	Authors map[string]profile.Profile
}

type CommentService struct {
	comments comment.Repository
	battles  battle.Repository
	profiles profile.Repository
	idGen    id.Generator
	now      func() time.Time
}

func NewCommentService(
	comments comment.Repository,
	battles battle.Repository,
	profiles profile.Repository,
	idGen id.Generator,
) *CommentService {
	return &CommentService{
		comments: comments,
		battles:  battles,
		profiles: profiles,
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *CommentService) ensureBattle(ctx context.Context, battleID string) error {
	if battleID == "" {
		return fmt.Errorf("%w: battle id is required", ErrInvalidInput)
	}
	if _, exists, err := s.battles.GetByID(ctx, battleID); err != nil {
		return fmt.Errorf("get battle: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: battle=%s", ErrNotFound, battleID)
	}
	return nil
}

func (s *CommentService) ListThreads(ctx context.Context, battleID string) (CommentThreads, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CommentService.ListThreads")
	defer span.End()

	battleID = strings.TrimSpace(battleID)
	if err := s.ensureBattle(ctx, battleID); err != nil {
		return CommentThreads{}, err
	}

	list, err := s.comments.ListByBattle(ctx, battleID)
	if err != nil {
		return CommentThreads{}, fmt.Errorf("list comments: %w", err)
	}
	authors, err := profilesByID(ctx, s.profiles, comment.AuthorIDs(list))
	if err != nil {
		return CommentThreads{}, err
	}

	return CommentThreads{Threads: comment.BuildThreads(list), Authors: authors}, nil
}

// Create adds a comment or a reply. A reply's parent must belong to the same
// battle.
func (s *CommentService) Create(ctx context.Context, input CreateCommentInput) (comment.Comment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CommentService.Create")
	defer span.End()

	if input.Actor.UserID == "" {
		return comment.Comment{}, fmt.Errorf("%w: sign in to comment", ErrUnauthorized)
	}

	battleID := strings.TrimSpace(input.BattleID)
	parentID := strings.TrimSpace(input.ParentID)
	content := strings.TrimSpace(input.Content)
	if err := comment.ValidateContent(content); err != nil {
		return comment.Comment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.ensureBattle(ctx, battleID); err != nil {
		return comment.Comment{}, err
	}

	if parentID != "" {
		parent, exists, err := s.comments.GetByID(ctx, parentID)
		if err != nil {
			return comment.Comment{}, fmt.Errorf("get parent comment: %w", err)
		}
		if !exists {
			return comment.Comment{}, fmt.Errorf("%w: parent comment=%s", ErrNotFound, parentID)
		}
		if parent.BattleID != battleID {
			return comment.Comment{}, fmt.Errorf("%w: parent comment belongs to another battle", ErrInvalidInput)
		}
	}

	commentID, err := s.idGen.NewID()
	if err != nil {
		return comment.Comment{}, fmt.Errorf("generate comment id: %w", err)
	}

	now := s.now().UTC()
	item := comment.Comment{
		ID:        commentID,
		BattleID:  battleID,
		AuthorID:  input.Actor.UserID,
		Content:   content,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, item); err != nil {
		return comment.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	return item, nil
}

// Delete removes a comment and, through the schema, its replies.
func (s *CommentService) Delete(ctx context.Context, actor user.Principal, commentID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CommentService.Delete")
	defer span.End()

	commentID = strings.TrimSpace(commentID)
	if commentID == "" {
		return fmt.Errorf("%w: comment id is required", ErrInvalidInput)
	}

	item, exists, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("get comment: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: comment=%s", ErrNotFound, commentID)
	}
	if item.AuthorID != actor.UserID && !actor.IsAdmin() {
		return fmt.Errorf("%w: only the author or an admin can delete this comment", ErrForbidden)
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

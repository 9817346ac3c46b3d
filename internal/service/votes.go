package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
	"github.com/emilythestrangee/qna-forum/backend/internal/metrics"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

// Vote toggles userID's vote on one entity of the given kind.
//
// Requesting the direction the user already holds removes the vote;
// requesting the other direction switches it. The transition is applied
// atomically by storage, so concurrent voters never lose each other's votes.
func (s *Service) Vote(ctx context.Context, kind vote.Kind, id, userID, direction string) (*vote.Result, error) {
	const op = "service/votes/Vote"

	id = strings.TrimSpace(id)
	lg := logger.From(ctx).With("op", op, "kind", string(kind), "id", id, "user_id", userID)

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, fmt.Sprintf("%q is not votable", kind)))
	}
	if id == "" {
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "id is required"))
	}

	dir, err := vote.ParseDirection(direction)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, err.Error()))
	}

	ballot, err := s.storage.ToggleVote(ctx, vote.Target{Kind: kind, ID: id}, userID, dir)
	if err != nil {
		return nil, storageErr(lg, op, err, string(kind)+" not found")
	}

	res := vote.ResultFor(ballot, userID)
	outcome := "none"
	if res.UserVote != nil {
		outcome = string(*res.UserVote)
	}
	metrics.Votes.WithLabelValues(string(kind), outcome).Inc()
	lg.Debug("vote applied", "result", outcome, "vote_count", res.VoteCount)

	if kind == vote.KindQuestion {
		s.invalidatePages(ctx)
	}
	return &res, nil
}

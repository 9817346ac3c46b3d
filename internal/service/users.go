package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
)

const (
	activityPerKind = 3
	activityLimit   = 5
)

type badgeRule struct {
	badge models.Badge
	earns func(models.UserStats) bool
}

var badgeRules = []badgeRule{
	{models.Badge{Name: "Curious", Description: "Asked 5 or more questions"}, func(s models.UserStats) bool { return s.Questions >= 5 }},
	{models.Badge{Name: "Helper", Description: "Posted 10 or more answers"}, func(s models.UserStats) bool { return s.Answers >= 10 }},
	{models.Badge{Name: "Expert", Description: "Had 3 or more answers accepted"}, func(s models.UserStats) bool { return s.BestAnswers >= 3 }},
}

func badgesFor(stats models.UserStats) []models.Badge {
	out := []models.Badge{}
	for _, r := range badgeRules {
		if r.earns(stats) {
			out = append(out, r.badge)
		}
	}
	return out
}

// mergeActivity labels items by kind and keeps the newest limit of them.
func mergeActivity(items []models.Activity, limit int) []models.Activity {
	out := make([]models.Activity, len(items))
	copy(out, items)
	for i := range out {
		switch out[i].Type {
		case models.ActivityAnswer:
			out[i].Title = "Answer to: " + out[i].Title
		case models.ActivityComment:
			out[i].Title = "Comment on: " + out[i].Title
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Profile returns the public profile of a user with stats, badges and the
// most recent activity.
func (s *Service) Profile(ctx context.Context, id string) (*models.Profile, error) {
	const op = "service/users/Profile"

	id = strings.TrimSpace(id)
	lg := logger.From(ctx).With("op", op, "user_id", id)

	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		return nil, storageErr(lg, op, err, "user not found")
	}
	stats, err := s.storage.UserStats(ctx, id)
	if err != nil {
		return nil, storageErr(lg, op, err, "user not found")
	}
	activity, err := s.storage.RecentActivity(ctx, id, activityPerKind)
	if err != nil {
		return nil, storageErr(lg, op, err, "user not found")
	}

	return &models.Profile{
		ID:             user.ID,
		Name:           user.Name,
		Image:          user.Image,
		Bio:            user.Bio,
		Location:       user.Location,
		JoinedAt:       user.JoinedAt,
		Stats:          stats,
		Badges:         badgesFor(stats),
		RecentActivity: mergeActivity(activity, activityLimit),
	}, nil
}

// UpdateProfile changes bio, location and image. Users may only edit
// themselves.
func (s *Service) UpdateProfile(ctx context.Context, callerID, id string, req models.UpdateProfileRequest) (*models.User, error) {
	const op = "service/users/UpdateProfile"

	id = strings.TrimSpace(id)
	lg := logger.From(ctx).With("op", op, "user_id", id, "caller_id", callerID)

	if callerID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	if callerID != id {
		return nil, fmt.Errorf("%s: %w", op, because(ErrForbidden, "you can only update your own profile"))
	}

	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		return nil, storageErr(lg, op, err, "user not found")
	}
	if req.Bio != nil {
		user.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.Location != nil {
		user.Location = strings.TrimSpace(*req.Location)
	}
	if req.Image != nil {
		user.Image = strings.TrimSpace(*req.Image)
	}

	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return nil, storageErr(lg, op, err, "user not found")
	}
	return user, nil
}

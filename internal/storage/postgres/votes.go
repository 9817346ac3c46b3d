package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

// tableOf maps a vote target kind to the table holding its entities.
func tableOf(kind vote.Kind) (string, error) {
	switch kind {
	case vote.KindQuestion:
		return "questions", nil
	case vote.KindAnswer:
		return "answers", nil
	case vote.KindReply:
		return "replies", nil
	case vote.KindComment:
		return "comments", nil
	default:
		return "", fmt.Errorf("unknown vote target kind %q", kind)
	}
}

// ToggleVote locks the caller's vote row (if any) and moves it to the next
// state. Voters never share a row, so concurrent voters cannot overwrite
// each other.
func (s *Store) ToggleVote(ctx context.Context, target vote.Target, userID string, dir vote.Direction) (*vote.Ballot, error) {
	table, err := tableOf(target.Kind)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Table(table).Where("id = ?", target.ID).Count(&n).Error; err != nil {
			return mapErr(err)
		}
		if n == 0 {
			return storage.ErrNotFound
		}

		var existing models.Vote
		current := vote.None
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("target_type = ? AND target_id = ? AND user_id = ?", string(target.Kind), target.ID, userID).
			Take(&existing).Error
		switch {
		case err == nil:
			current = vote.FromValue(existing.Value)
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return mapErr(err)
		}

		next := vote.Next(current, dir)
		switch {
		case next == vote.None:
			return tx.Delete(&existing).Error
		case current == vote.None:
			row := models.Vote{
				TargetType: string(target.Kind),
				TargetID:   target.ID,
				UserID:     userID,
				Value:      next.Value(),
			}
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "target_type"}, {Name: "target_id"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&row).Error
		default:
			return tx.Model(&existing).Update("value", next.Value()).Error
		}
	})
	if err != nil {
		return nil, err
	}

	ballots, err := s.ballots(ctx, s.db, target.Kind, []string{target.ID})
	if err != nil {
		return nil, err
	}
	return ballots[target.ID], nil
}

type voteRow struct {
	TargetID string
	UserID   string
	Value    int
}

// ballots loads the vote sets of ids. Every requested id gets a (possibly
// empty) ballot.
func (s *Store) ballots(ctx context.Context, db *gorm.DB, kind vote.Kind, ids []string) (map[string]*vote.Ballot, error) {
	out := make(map[string]*vote.Ballot, len(ids))
	for _, id := range ids {
		out[id] = &vote.Ballot{Upvotes: []string{}, Downvotes: []string{}}
	}
	if len(ids) == 0 {
		return out, nil
	}

	var rows []voteRow
	err := db.WithContext(ctx).Model(&models.Vote{}).
		Select("target_id, user_id, value").
		Where("target_type = ? AND target_id IN ?", string(kind), ids).
		Order("created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, mapErr(err)
	}

	for _, r := range rows {
		b, ok := out[r.TargetID]
		if !ok {
			continue
		}
		b.Set(r.UserID, vote.FromValue(r.Value))
	}
	return out, nil
}

// attachBallots fills the ballot and derived vote count of every item.
func attachBallots[T any, P interface {
	*T
	vote.Votable
	Derive()
}](ctx context.Context, s *Store, kind vote.Kind, items []T, idOf func(*T) string) error {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = idOf(&items[i])
	}

	ballots, err := s.ballots(ctx, s.db, kind, ids)
	if err != nil {
		return err
	}

	for i := range items {
		p := P(&items[i])
		*p.VoteBallot() = *ballots[ids[i]]
		p.Derive()
	}
	return nil
}

func deleteVotes(tx *gorm.DB, kind vote.Kind, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Where("target_type = ? AND target_id IN ?", string(kind), ids).Delete(&models.Vote{}).Error
}

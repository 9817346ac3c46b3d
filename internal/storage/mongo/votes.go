package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

// maxVoteAttempts bounds the retries when the caller's own vote changes
// between reading and writing it.
const maxVoteAttempts = 5

var ballotProjection = bson.D{{Key: "upvotes", Value: 1}, {Key: "downvotes", Value: 1}}

// ToggleVote reads the caller's current vote, then applies the transition
// with a single conditional update whose filter asserts that vote. Other
// voters' concurrent $addToSet/$pull on the same arrays do not interfere.
func (m *Mongo) ToggleVote(ctx context.Context, target vote.Target, userID string, dir vote.Direction) (*vote.Ballot, error) {
	const op = "storage/mongo/ToggleVote"

	coll, err := m.collectionOf(target.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for attempt := 0; attempt < maxVoteAttempts; attempt++ {
		var seen vote.Ballot
		err := coll.FindOne(ctx, byID(target.ID), options.FindOne().SetProjection(ballotProjection)).Decode(&seen)
		if err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
			}
			return nil, fmt.Errorf("%s: find: %w", op, err)
		}

		current := seen.Of(userID)
		next := seen.Toggle(userID, dir)

		filter := append(byID(target.ID), stateFilter(userID, current)...)
		opts := options.FindOneAndUpdate().
			SetProjection(ballotProjection).
			SetReturnDocument(options.After)

		var after vote.Ballot
		err = coll.FindOneAndUpdate(ctx, filter, transition(userID, next), opts).Decode(&after)
		switch {
		case err == nil:
			emptyBallot(&after)
			return &after, nil
		case errors.Is(err, mongodriver.ErrNoDocuments):
			// our vote moved (or the document vanished); look again
			continue
		default:
			return nil, fmt.Errorf("%s: update: %w", op, err)
		}
	}

	return nil, fmt.Errorf("%s: %w: vote kept changing", op, storage.ErrConflict)
}

// stateFilter matches only while userID's vote is still current.
func stateFilter(userID string, current vote.Direction) bson.D {
	switch current {
	case vote.Up:
		return bson.D{{Key: "upvotes", Value: userID}}
	case vote.Down:
		return bson.D{{Key: "downvotes", Value: userID}}
	default:
		return bson.D{
			{Key: "upvotes", Value: bson.D{{Key: "$ne", Value: userID}}},
			{Key: "downvotes", Value: bson.D{{Key: "$ne", Value: userID}}},
		}
	}
}

// transition moves userID into the set of next, out of the other one.
func transition(userID string, next vote.Direction) bson.D {
	switch next {
	case vote.Up:
		return bson.D{
			{Key: "$pull", Value: bson.D{{Key: "downvotes", Value: userID}}},
			{Key: "$addToSet", Value: bson.D{{Key: "upvotes", Value: userID}}},
		}
	case vote.Down:
		return bson.D{
			{Key: "$pull", Value: bson.D{{Key: "upvotes", Value: userID}}},
			{Key: "$addToSet", Value: bson.D{{Key: "downvotes", Value: userID}}},
		}
	default:
		return bson.D{
			{Key: "$pull", Value: bson.D{{Key: "upvotes", Value: userID}, {Key: "downvotes", Value: userID}}},
		}
	}
}

// Package vote implements the toggle-vote state machine shared by every
// votable entity (questions, answers, replies and comments).
package vote

import (
	"errors"
	"slices"
)

// ErrInvalidDirection is returned for anything other than "up" or "down".
var ErrInvalidDirection = errors.New("vote type must be \"up\" or \"down\"")

// Direction is a user's vote on a single entity. The zero value means no vote.
type Direction string

const (
	None Direction = ""
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts exactly "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up:
		return Up, nil
	case Down:
		return Down, nil
	default:
		return None, ErrInvalidDirection
	}
}

// Value maps a direction to the +1/-1 stored in vote rows.
func (d Direction) Value() int {
	switch d {
	case Up:
		return 1
	case Down:
		return -1
	default:
		return 0
	}
}

// FromValue is the inverse of Value.
func FromValue(v int) Direction {
	switch {
	case v > 0:
		return Up
	case v < 0:
		return Down
	default:
		return None
	}
}

// Next returns the user's vote after requesting dir while currently at current.
// Repeating the same direction clears the vote; anything else moves to dir.
func Next(current, dir Direction) Direction {
	if current == dir {
		return None
	}
	return dir
}

// Ballot holds the upvoter and downvoter id sets of one entity.
// A user id is never present in both sets.
type Ballot struct {
	Upvotes   []string `json:"upvotes" bson:"upvotes"`
	Downvotes []string `json:"downvotes" bson:"downvotes"`
}

// Votable is implemented by every entity carrying a Ballot.
type Votable interface {
	VoteBallot() *Ballot
}

// Of reports the current vote of userID.
func (b *Ballot) Of(userID string) Direction {
	switch {
	case slices.Contains(b.Upvotes, userID):
		return Up
	case slices.Contains(b.Downvotes, userID):
		return Down
	default:
		return None
	}
}

// Toggle applies dir for userID and returns the user's vote afterwards.
func (b *Ballot) Toggle(userID string, dir Direction) Direction {
	next := Next(b.Of(userID), dir)
	b.Set(userID, next)
	return next
}

// Set forces userID into the set matching dir, removing it from the other.
func (b *Ballot) Set(userID string, dir Direction) {
	b.Upvotes = remove(b.Upvotes, userID)
	b.Downvotes = remove(b.Downvotes, userID)
	switch dir {
	case Up:
		b.Upvotes = append(b.Upvotes, userID)
	case Down:
		b.Downvotes = append(b.Downvotes, userID)
	}
}

// Count is |upvotes| - |downvotes|.
func (b *Ballot) Count() int {
	return len(b.Upvotes) - len(b.Downvotes)
}

func remove(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(s string) bool { return s == id })
}

// Result is the response of a vote request.
type Result struct {
	Upvotes       []string   `json:"upvotes"`
	Downvotes     []string   `json:"downvotes"`
	UpvoteCount   int        `json:"upvoteCount"`
	DownvoteCount int        `json:"downvoteCount"`
	VoteCount     int        `json:"voteCount"`
	UserVote      *Direction `json:"userVote"`
}

// ResultFor builds the Result of b as seen by userID.
func ResultFor(b *Ballot, userID string) Result {
	up := append([]string{}, b.Upvotes...)
	down := append([]string{}, b.Downvotes...)

	res := Result{
		Upvotes:       up,
		Downvotes:     down,
		UpvoteCount:   len(up),
		DownvoteCount: len(down),
		VoteCount:     len(up) - len(down),
	}
	if d := b.Of(userID); d != None {
		res.UserVote = &d
	}
	return res
}
